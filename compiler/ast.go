// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package compiler implements the include-resolution and
// collision-detection phase: it turns a root source file and a
// standard-library root directory into a single merged word table. The
// surface-syntax parser proper is out of scope (§1); this package's
// parsing is the minimal scanner needed to find include directives and
// word-definition headers, grounded on the small, data-only AST node
// style of Tosca's go/ct/rule.go.
package compiler

import "strconv"

// IncludeKind discriminates the three include directive forms (§4.6).
type IncludeKind int

const (
	IncludeStd IncludeKind = iota
	IncludeFfi
	IncludeRelative
)

// Include is one `include` directive as it appears in a source file.
type Include struct {
	Kind   IncludeKind
	Target string // NAME for std:/ffi:, relative path for the quoted form
	Line   int
}

// WordDef is a word definition: `: NAME ( STACK-EFFECT ) BODY ;`. Body
// lowering is delegated to the downstream phase (out of scope); Body here
// is the raw source text between the stack-effect comment and the closing
// `;`, kept only so a merged program can be handed on.
type WordDef struct {
	Name         string
	StackEffect  string
	Body         string
	File         string
	Line         int
	FromFfi      bool
	FfiQuoteName string
}

// Location renders a human-readable "file:line" position for diagnostics.
func (w WordDef) Location() string {
	return w.File + ":" + strconv.Itoa(w.Line)
}

// SourceFile is one parsed `.seq` file: its own include directives and the
// words it defines, in file order.
type SourceFile struct {
	Path     string
	Includes []Include
	Words    []WordDef
}
