// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package pipeline is the composition root wiring compiler (include/
// collision resolution), abi (runtime primitives) and sched (the strand
// scheduler) into something runnable: Load produces a merged Program;
// Program.Run spawns a root strand executing a named word and joins it.
//
// This mirrors how Tosca's processor packages (go/processor/opera,
// go/processor/floria) wire an Interpreter to a WorldState and run a full
// transaction rather than a single opcode; here the same composition-root
// role assembles a merged word table and a Runtime into a program that can
// actually execute a word end to end.
package pipeline

import (
	"context"
	"fmt"

	"github.com/weavelang/weave/abi"
	"github.com/weavelang/weave/compiler"
	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/sched"
)

// Program is a fully resolved, collision-checked word table plus the
// runtime needed to execute it.
type Program struct {
	Merged *compiler.Program
	rt     *abi.Runtime
}

// Load resolves rootPath's include graph, collision-checks the result, and
// loads opts.FfiManifestPath (if any) into the global FFI binding registry.
// workers sizes the scheduler (<=0 selects runtime.GOMAXPROCS(0), see
// sched.New); io is the HostIO implementation word bodies' write_line/
// read_line/read_line_plus primitives use.
func Load(rootPath string, opts compiler.Options, workers int, io abi.HostIO) (*Program, error) {
	if err := compiler.LoadFfiManifest(opts.FfiManifestPath); err != nil {
		return nil, fmt.Errorf("loading ffi manifest: %w", err)
	}

	resolver := compiler.NewResolver(compiler.Roots{StdlibRoot: opts.ResolveStdlibRoot()})
	files, err := resolver.Resolve(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolving includes: %w", err)
	}

	merged, err := compiler.Merge(files)
	if err != nil {
		return nil, err
	}

	return &Program{
		Merged: merged,
		rt:     abi.NewRuntime(workers, io),
	}, nil
}

// Lint runs the weave-leak static check (§11.1) over the merged program.
func (p *Program) Lint() []compiler.Warning {
	return compiler.Lint(p.Merged)
}

// Scheduler exposes the program's strand scheduler so a driver can attach a
// sched.ProgressReporter (e.g. cmd/weave's --progress flag) before running.
func (p *Program) Scheduler() *sched.Scheduler {
	return p.rt.Scheduler
}

// BindWord associates a merged program's word name with the QuotationID its
// compiled body was registered under, failing if the name is not part of
// the merged word table.
func (p *Program) BindWord(name string, id lang.QuotationID) error {
	if _, ok := p.Merged.Words[name]; !ok {
		return fmt.Errorf("word not found: %s", name)
	}
	p.rt.BindWordQuotation(name, id)
	return nil
}

// Run spawns a root strand executing wordName and blocks until it
// finishes, returning its final value. wordName must name a quotation
// previously registered (via abi.RegisterQuotation) for the merged
// program's corresponding WordDef — wiring a WordDef's raw body text to a
// compiled Quotation is the downstream lowering phase this repository
// treats as an external collaborator (§1).
func (p *Program) Run(ctx context.Context, wordName string) (lang.Value, error) {
	word, ok := p.Merged.Words[wordName]
	if !ok {
		return lang.Value{}, fmt.Errorf("word not found: %s", wordName)
	}
	id, ok := p.quotationFor(word)
	if !ok {
		return lang.Value{}, fmt.Errorf("no compiled body registered for word %q", wordName)
	}
	return abi.RunRoot(p.rt, ctx, id)
}

// quotationFor resolves a WordDef to the QuotationID its compiled body was
// registered under. FFI-backed words carry their id via the ffi registry;
// ordinary words resolve by name through the binding BindWord recorded,
// which whatever drives lowering (a test harness, in this repository) must
// have made.
func (p *Program) quotationFor(w compiler.WordDef) (lang.QuotationID, bool) {
	if w.FromFfi {
		b, ok := lang.LookupFfiBinding(w.FfiQuoteName)
		if !ok {
			return 0, false
		}
		return b.Quote, true
	}
	id, ok := p.rt.LookupWordQuotation(w.Name)
	return id, ok
}
