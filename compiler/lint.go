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
	"fmt"
	"regexp"
)

// Warning is a non-fatal diagnostic produced by Lint.
type Warning struct {
	Word    string
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.Word, w.Line, w.Message)
}

// weaveWordRE finds `weave` invocations in a word body's raw text. The
// lexer-less body text means this is a best-effort, line-oriented scan, not
// a real dataflow analysis: it flags the common, obvious mistake (spawn a
// weave, never resume/cancel/join it) called for in §4.5, and accepts some
// false negatives in exchange for never touching the real parser.
var weaveWordRE = regexp.MustCompile(`\bweave\b`)
var consumeWordRE = regexp.MustCompile(`\b(resume|weave-cancel|join)\b`)

// Lint performs a best-effort static check across a merged program's word
// bodies: a word whose body invokes `weave` but never invokes one of
// resume/weave-cancel/join anywhere in the same body is reported, since the
// spawned weave's strand can never be observed to completion from that word.
//
// This is deliberately coarse — it does not track whether the particular
// weave result reaching `weave` is the one passed to a later consumer, only
// whether the word's body contains both calls anywhere. A real dataflow
// analysis would require the lowered IR this package does not build.
func Lint(p *Program) []Warning {
	var warnings []Warning
	for _, w := range p.Words {
		if !weaveWordRE.MatchString(w.Body) {
			continue
		}
		if consumeWordRE.MatchString(w.Body) {
			continue
		}
		warnings = append(warnings, Warning{
			Word:    w.Name,
			Line:    w.Line,
			Message: fmt.Sprintf("weave spawned in %q is never resumed, cancelled, or joined", w.Name),
		})
	}
	return warnings
}
