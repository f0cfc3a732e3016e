// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package abi

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/sched"
	"github.com/weavelang/weave/weave"
)

// Runtime is the process-wide state a Machine's strand-local ABI calls
// share: the scheduler and the channel/strand/weave registries that let a
// chan_make'd id (an opaque Int on the stack, per §6.1) be looked up by any
// strand that later receives the same id over a channel or spawn argument.
type Runtime struct {
	Scheduler *sched.Scheduler
	IO        HostIO

	idSeq atomic.Int64

	mu         sync.Mutex
	channels   map[int64]*sched.Channel
	strands    map[int64]*sched.Handle
	weaves     map[int64]*weave.Handle
	wordByName map[string]lang.QuotationID
}

// NewRuntime creates a Runtime with workers strand-execution slots (see
// sched.New) and the given HostIO.
func NewRuntime(workers int, io HostIO) *Runtime {
	return &Runtime{
		Scheduler: sched.New(workers),
		IO:        io,
		channels:   make(map[int64]*sched.Channel),
		strands:    make(map[int64]*sched.Handle),
		weaves:     make(map[int64]*weave.Handle),
		wordByName: make(map[string]lang.QuotationID),
	}
}

// BindWordQuotation associates a merged program's word name with the
// QuotationID its compiled body was registered under (via
// RegisterQuotation). The downstream lowering phase (or, in this
// repository, a test harness standing in for it) calls this once per word
// after compiling it.
func (rt *Runtime) BindWordQuotation(name string, id lang.QuotationID) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.wordByName[name] = id
}

// LookupWordQuotation resolves a word name bound by BindWordQuotation.
func (rt *Runtime) LookupWordQuotation(name string) (lang.QuotationID, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	id, ok := rt.wordByName[name]
	return id, ok
}

func (rt *Runtime) nextID() int64 {
	return rt.idSeq.Add(1)
}

func (rt *Runtime) putChannel(c *sched.Channel) int64 {
	id := rt.nextID()
	rt.mu.Lock()
	rt.channels[id] = c
	rt.mu.Unlock()
	return id
}

func (rt *Runtime) getChannel(id int64) (*sched.Channel, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	c, ok := rt.channels[id]
	return c, ok
}

func (rt *Runtime) putStrand(h *sched.Handle) int64 {
	id := rt.nextID()
	rt.mu.Lock()
	rt.strands[id] = h
	rt.mu.Unlock()
	return id
}

func (rt *Runtime) getStrand(id int64) (*sched.Handle, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	h, ok := rt.strands[id]
	return h, ok
}

func (rt *Runtime) putWeave(h *weave.Handle) int64 {
	id := rt.nextID()
	rt.mu.Lock()
	rt.weaves[id] = h
	rt.mu.Unlock()
	return id
}

func (rt *Runtime) getWeave(id int64) (*weave.Handle, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	h, ok := rt.weaves[id]
	return h, ok
}

// Machine is the per-strand handle every ABI primitive is a method of: its
// own owned stack and arena (via Strand) plus a shared Runtime for anything
// that must be visible to other strands.
type Machine struct {
	*Runtime
	Strand *sched.Strand
}

// NewMachine wraps an already-spawned strand in a Machine. Outside tests,
// only the strand body closures in RunRoot (below) and Machine.Spawn and
// Machine.Weave (abi.go) construct one, so every primitive runs against a
// strand that owns its stack and arena exclusively.
func NewMachine(rt *Runtime, st *sched.Strand) *Machine {
	return &Machine{Runtime: rt, Strand: st}
}

// RunRoot spawns the root strand running quotation id to completion and
// waits for it, the composition root pipeline.Program.Run drives.
func RunRoot(rt *Runtime, ctx context.Context, id lang.QuotationID) (lang.Value, error) {
	h := rt.Scheduler.Spawn(ctx, func(st *sched.Strand) (lang.Value, error) {
		m := NewMachine(rt, st)
		if err := CallQuotation(m, id); err != nil {
			return lang.Value{}, err
		}
		if m.Strand.Stack.Len() == 0 {
			return lang.Value{}, nil
		}
		return m.Strand.Stack.Pop(), nil
	})
	return h.Join()
}
