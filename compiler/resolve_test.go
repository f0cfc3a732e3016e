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

import "testing"

func TestResolver_ResolveOrdersIncludesBeforeIncluders(t *testing.T) {
	r := NewResolver(Roots{StdlibRoot: "../testdata/stdlib"})
	files, err := r.Resolve("../testdata/root_ok.seq")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3 (core.seq, helper.seq, root_ok.seq)", len(files))
	}
	last := files[len(files)-1]
	if last.Path[len(last.Path)-len("root_ok.seq"):] != "root_ok.seq" {
		t.Fatalf("expected root file last in dependency order, got %s", last.Path)
	}
}

func TestResolver_ResolveIsCachedAcrossRepeatedIncludes(t *testing.T) {
	r := NewResolver(Roots{StdlibRoot: "../testdata/stdlib"})
	if _, err := r.Resolve("../testdata/root_ok.seq"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// A second resolve of the same root must not re-append already-visited
	// files to the dependency order it accumulates on the shared Resolver.
	files, err := r.Resolve("../testdata/root_ok.seq")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files after repeat resolve, want 3 (no duplicate appends)", len(files))
	}
}

func TestResolver_MissingStdlibRootFails(t *testing.T) {
	r := NewResolver(Roots{})
	if _, err := r.Resolve("../testdata/root_ok.seq"); err == nil {
		t.Fatalf("expected an error when std: include cannot be resolved without a stdlib root")
	}
}

func TestResolver_MissingFileFails(t *testing.T) {
	r := NewResolver(Roots{StdlibRoot: "../testdata/stdlib"})
	if _, err := r.Resolve("../testdata/does_not_exist.seq"); err == nil {
		t.Fatalf("expected an error for a missing root file")
	}
}
