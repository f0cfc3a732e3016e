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

func TestParseFile_IncludesAndWords(t *testing.T) {
	src := `# a comment line
include std:core
include ffi:sha3
include "helpers.seq"

: square ( n -- n*n )
  dup *
;

: cube ( n -- n*n*n ) dup dup * * ;
`
	sf, err := parseFile("root.seq", []byte(src))
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}

	if len(sf.Includes) != 3 {
		t.Fatalf("got %d includes, want 3", len(sf.Includes))
	}
	if sf.Includes[0].Kind != IncludeStd || sf.Includes[0].Target != "core" {
		t.Fatalf("include[0] = %+v", sf.Includes[0])
	}
	if sf.Includes[1].Kind != IncludeFfi || sf.Includes[1].Target != "sha3" {
		t.Fatalf("include[1] = %+v", sf.Includes[1])
	}
	if sf.Includes[2].Kind != IncludeRelative || sf.Includes[2].Target != "helpers.seq" {
		t.Fatalf("include[2] = %+v", sf.Includes[2])
	}

	if len(sf.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(sf.Words))
	}
	if sf.Words[0].Name != "square" || sf.Words[0].StackEffect != "n -- n*n" {
		t.Fatalf("word[0] = %+v", sf.Words[0])
	}
	if sf.Words[1].Name != "cube" {
		t.Fatalf("word[1] = %+v", sf.Words[1])
	}
}

func TestParseFile_RejectsMalformedInclude(t *testing.T) {
	_, err := parseFile("root.seq", []byte("include bogus\n"))
	if err == nil {
		t.Fatalf("expected an error for a malformed include directive")
	}
}

func TestParseFile_RejectsMissingStackEffect(t *testing.T) {
	_, err := parseFile("root.seq", []byte(": broken drop ;\n"))
	if err == nil {
		t.Fatalf("expected an error for a word header missing its stack effect comment")
	}
}
