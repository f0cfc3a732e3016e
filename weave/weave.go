// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package weave implements the bidirectional generator protocol layered on
// top of sched: a weave is a strand plus two implicit rendezvous channels
// (to-weave, from-weave) exchanging values with its caller.
//
// The two-channel handshake is grounded on the bidirectional hand-off
// idiom in Tosca's conformance driver (go/ct/driver/coordination.go),
// where a producer goroutine and a reporter goroutine pass control back
// and forth over a pair of channels; here it is generalized from a
// one-shot done signal to a repeated value exchange.
package weave

import (
	"context"
	"sync/atomic"

	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/sched"
)

// Ctx is the opaque handle a weave's body thread explicitly through its
// stack, wrapping the from-weave channel and the owning strand's
// cancellation context. The language surface exposes Ctx so weave bodies
// thread it explicitly rather than relying on implicit coroutine state.
type Ctx struct {
	toWeave   *sched.Channel
	fromWeave *sched.Channel
	strand    *sched.Strand
}

// Yield sends v to the caller and blocks until the caller resumes with a
// new value (or cancels, or the strand's own cancellation fires).
func (c *Ctx) Yield(v lang.Value) (lang.Value, error) {
	if err := c.fromWeave.Send(c.strand.Context(), v); err != nil {
		return lang.Value{}, err
	}
	return c.toWeave.Receive(c.strand.Context())
}

// Strand exposes the owning strand, e.g. so a weave body can poll
// Cancelled() between yields of its own accord.
func (c *Ctx) Strand() *sched.Strand { return c.strand }

// Body is a weave's entry point, receiving the Ctx and the value supplied
// by the first Resume call.
type Body func(ctx *Ctx, first lang.Value) (lang.Value, error)

// Handle is a reference to a spawned weave.
type Handle struct {
	strandHandle *sched.Handle
	toWeave      *sched.Channel
	fromWeave    *sched.Channel
	closed       atomic.Bool
}

// Spawn allocates a strand running body and wires up the to-weave /
// from-weave rendezvous channels. The parent continues immediately; the
// first Resume call delivers the body's first_resume_value.
func Spawn(s *sched.Scheduler, parent context.Context, body Body) *Handle {
	toWeave := sched.NewChannel(0)
	fromWeave := sched.NewChannel(0)

	strandHandle := s.Spawn(parent, func(st *sched.Strand) (lang.Value, error) {
		first, err := toWeave.Receive(st.Context())
		if err != nil {
			fromWeave.Close()
			return lang.Value{}, err
		}
		ctx := &Ctx{toWeave: toWeave, fromWeave: fromWeave, strand: st}
		result, err := body(ctx, first)
		fromWeave.Close()
		return result, err
	})

	return &Handle{strandHandle: strandHandle, toWeave: toWeave, fromWeave: fromWeave}
}

// Resume sends v to the weave and waits for its next yielded value. The
// bool result reports has_more: false means the weave body has returned
// (or been cancelled) and y is the sentinel value lang.Int(0). Calling
// Resume again after has_more is false returns lang.ReceiveOnClosed: "the
// weave completed" is end-state, per §4.5.
func (h *Handle) Resume(ctx context.Context, v lang.Value) (y lang.Value, hasMore bool, err error) {
	if h.closed.Load() {
		return lang.Value{}, false, lang.ReceiveOnClosed
	}
	if err := h.toWeave.Send(ctx, v); err != nil {
		return lang.Value{}, false, err
	}
	y, err = h.fromWeave.Receive(ctx)
	if err != nil {
		h.closed.Store(true)
		return lang.Int(0), false, nil
	}
	return y, true, nil
}

// Cancel closes to-weave. The weave's next yield (blocked sending on
// from-weave, then receiving on to-weave) or its next blocked receive on
// to-weave observes the closure and unwinds; its resources are released
// the same way a normally-completing strand's are.
func (h *Handle) Cancel() {
	h.toWeave.Close()
}

// Join blocks until the weave's underlying strand finishes and returns its
// body's final result.
func (h *Handle) Join() (lang.Value, error) {
	return h.strandHandle.Join()
}
