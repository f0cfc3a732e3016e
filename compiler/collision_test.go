// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/weavelang/weave/lang"
)

func TestMerge_NoCollisionsProducesWordTable(t *testing.T) {
	r := NewResolver(Roots{StdlibRoot: "../testdata/stdlib"})
	files, err := r.Resolve("../testdata/root_ok.seq")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	prog, err := Merge(files)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	for _, name := range []string{"square", "cube", "double", "main"} {
		if _, ok := prog.Words[name]; !ok {
			t.Errorf("expected merged word table to contain %q", name)
		}
	}
}

// TestMerge_DuplicateDefinitionReportsAllLocations exercises scenario S5:
// the same word name defined in an included std file and in the root file
// must be reported with every definition site, not just the first one found.
func TestMerge_DuplicateDefinitionReportsAllLocations(t *testing.T) {
	r := NewResolver(Roots{StdlibRoot: "../testdata/stdlib"})
	files, err := r.Resolve("../testdata/root_collision.seq")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	_, err = Merge(files)
	if err == nil {
		t.Fatalf("expected Merge to fail on a duplicate 'square' definition")
	}
	if err.Error() == "" {
		t.Fatalf("expected a non-empty collision error message")
	}
	for _, loc := range []string{"core.seq:3", "root_collision.seq:3"} {
		if !strings.Contains(err.Error(), loc) {
			t.Fatalf("expected collision error to list %s, got: %v", loc, err)
		}
	}
	if !errors.Is(err, lang.DuplicateDefinition) {
		t.Fatalf("expected Merge's returned error to unwrap to lang.DuplicateDefinition")
	}
}

func TestCollisionError_UnwrapsToDuplicateDefinition(t *testing.T) {
	ce := &CollisionError{Name: "square", Locations: []string{"a.seq:1", "b.seq:2"}}
	if !errors.Is(ce, lang.DuplicateDefinition) {
		t.Fatalf("expected CollisionError to unwrap to lang.DuplicateDefinition")
	}
}
