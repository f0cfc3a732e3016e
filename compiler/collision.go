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
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/weavelang/weave/lang"
)

// Program is the merged result of resolving and collision-checking a root
// source file: every included file's words, keyed by name, with exactly one
// definition surviving per name.
type Program struct {
	Files []*SourceFile
	Words map[string]WordDef
}

// CollisionError reports every location a word name was defined at, when a
// name is defined more than once across the merged include graph (§4.6).
type CollisionError struct {
	Name      string
	Locations []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %q defined at %s", lang.DuplicateDefinition, e.Name, strings.Join(e.Locations, ", "))
}

func (e *CollisionError) Unwrap() error {
	return lang.DuplicateDefinition
}

// Merge folds a dependency-ordered file list (as returned by
// Resolver.Resolve) into a single word table, reporting every duplicate
// name with all of its definition sites rather than failing on the first
// one found.
func Merge(files []*SourceFile) (*Program, error) {
	byName := make(map[string][]WordDef)
	for _, sf := range files {
		for _, w := range sf.Words {
			byName[w.Name] = append(byName[w.Name], w)
		}
	}

	names := maps.Keys(byName)
	sort.Strings(names)

	var collisions []*CollisionError
	words := make(map[string]WordDef, len(names))
	for _, name := range names {
		defs := byName[name]
		if len(defs) > 1 {
			locs := make([]string, len(defs))
			for i, d := range defs {
				locs[i] = d.Location()
			}
			collisions = append(collisions, &CollisionError{Name: name, Locations: locs})
			continue
		}
		words[name] = defs[0]
	}

	if len(collisions) > 0 {
		joined := make([]error, len(collisions))
		for i, c := range collisions {
			joined[i] = c
		}
		return nil, fmt.Errorf("%d duplicate definition(s):\n%w", len(collisions), errors.Join(joined...))
	}

	return &Program{Files: files, Words: words}, nil
}
