// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sched implements the strand scheduler and the channel fabric
// that backs both concurrency and weaves.
//
// Each strand body runs on its own goroutine; a channel send/receive that
// cannot proceed immediately blocks natively on a Go channel, which is
// exactly the "park Waiting, resume on any worker" suspension the spec
// calls for — Go's own M:N goroutine scheduler already provides "a strand
// may resume on a different OS thread after suspension" for free. A
// semaphore-style worker slot (sem, sized by Scheduler's workers argument)
// caps how many strand bodies run concurrently, modeling the spec's fixed
// worker pool on top of that native scheduling, the same
// bounded-concurrency idiom Tosca's conformance driver uses in
// go/ct/driver/coordination.go (there bounding test-case workers, here
// bounding strand workers).
package sched

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/weavelang/weave/arena"
	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/stack"
)

// State is a strand's position in the Ready -> Running -> (Waiting |
// Finished) state machine. Go gives goroutines no external hook for
// "currently parked on a channel operation", so Waiting is not separately
// observable here; State reports Ready/Running/Finished only.
type State int32

const (
	Ready State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Strand is a lightweight execution context: an owned operand stack, an
// owned arena, and scheduler bookkeeping (cancellation, completion
// signaling). Its lifetime is bounded by its spawning body.
type Strand struct {
	id    uint64
	Stack *stack.Stack
	Arena *arena.Arena

	ctx      context.Context
	cancelFn context.CancelCauseFunc

	state  atomic.Int32
	done   chan struct{}
	result lang.Value
	err    error
}

// NewStrand constructs a standalone Strand with its own stack and arena,
// for use outside the scheduler's own Spawn path — e.g. unit tests that
// exercise abi.Machine primitives directly against one strand without
// paying for a full scheduler spawn/join round trip.
func NewStrand(ctx context.Context) *Strand {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancelCause(ctx)
	st := &Strand{
		Stack:    stack.New(),
		Arena:    arena.New("test-arena", arena.DefaultWatermark),
		ctx:      ctx,
		cancelFn: cancel,
		done:     make(chan struct{}),
	}
	st.setState(Ready)
	return st
}

// ID returns the strand's scheduler-assigned identifier, stable for its
// lifetime and never reused.
func (s *Strand) ID() uint64 { return s.id }

// Context returns the strand's cancellation context. Channel operations
// select on Done() to implement §5's "cancellation observed at the next
// suspension point" rule; long-running pure-compute words should poll
// Cancelled() themselves since compiled word bodies have no implicit
// suspension points (§5).
func (s *Strand) Context() context.Context { return s.ctx }

// Cancelled reports whether this strand's cancellation flag has been set.
func (s *Strand) Cancelled() bool {
	return s.ctx.Err() != nil
}

// YieldNow is the explicit yield-now suspension point (§5): it gives other
// ready strands a chance to run on this worker without blocking on any
// channel.
func (s *Strand) YieldNow() {
	runtime.Gosched()
}

// State reports the strand's current position in the state machine.
func (s *Strand) State() State {
	return State(s.state.Load())
}

func (s *Strand) setState(st State) {
	s.state.Store(int32(st))
}
