// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sched

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/weavelang/weave/arena"
	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/stack"
)

// Body is a strand's entry point: a function that runs against the
// strand's own owned stack and arena and produces a final Value or error.
// The word body itself (its quotation) is supplied by the abi/pipeline
// layer; Body is the seam between the scheduler and that layer.
type Body func(*Strand) (lang.Value, error)

// Scheduler is a cooperative, multi-threaded-capable strand runtime. A
// fixed-size semaphore bounds how many strand bodies run concurrently,
// modeling the spec's worker-thread pool on top of Go's own M:N goroutine
// scheduler (see the package doc comment).
type Scheduler struct {
	sem       chan struct{}
	arenaPool *arena.Pool
	idSeq     atomic.Uint64
	wg        sync.WaitGroup

	progress atomic.Pointer[ProgressReporter]
}

// New creates a Scheduler with the given number of workers. workers <= 0
// selects runtime.GOMAXPROCS(0), the same "default = host parallelism"
// rule as §4.4.1 and the same default Tosca's --jobs flag uses
// (runtime.NumCPU(), see go/ct/driver/cli/flags.go).
func New(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{
		sem:       make(chan struct{}, workers),
		arenaPool: arena.NewPool(arena.DefaultWatermark),
	}
}

// SetProgress attaches a ProgressReporter that Spawn increments once per
// strand (scenario S6's ten-thousand-strand run is exactly the case this
// exists to make observable). Passing nil detaches any previously attached
// reporter; the scheduler never owns the reporter's lifecycle (callers
// still call Stop themselves).
func (s *Scheduler) SetProgress(r *ProgressReporter) {
	s.progress.Store(r)
}

// Handle is a reference to a spawned strand: Join blocks until it
// finishes, Cancel requests cooperative cancellation.
type Handle struct {
	strand *Strand
}

// Spawn allocates a strand, pushes an independent stack and arena, and
// schedules it to execute body. The caller continues immediately; the
// returned Handle exposes Join and Cancel.
func (s *Scheduler) Spawn(parent context.Context, body Body) *Handle {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancelCause(parent)
	st := &Strand{
		id:       s.idSeq.Add(1),
		Stack:    stack.New(),
		Arena:    s.arenaPool.Acquire(),
		ctx:      ctx,
		cancelFn: cancel,
		done:     make(chan struct{}),
	}
	st.setState(Ready)
	if r := s.progress.Load(); r != nil {
		r.Inc()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// Suspension point: wait for a free worker slot.
		s.sem <- struct{}{}
		defer func() { <-s.sem }()

		st.setState(Running)
		func() {
			defer func() {
				if r := recover(); r != nil {
					if err, ok := r.(error); ok {
						st.err = err
					} else {
						st.err = fmt.Errorf("strand panic: %v", r)
					}
				}
			}()
			st.result, st.err = body(st)
		}()
		st.setState(Finished)

		// Resource release, in the order §4.4.4 specifies: drop the
		// operand stack, reset (and return) the arena, then release the
		// strand record by signaling completion.
		st.Stack.Drain()
		s.arenaPool.Release(st.Arena)
		close(st.done)
	}()

	return &Handle{strand: st}
}

// Strand returns the underlying strand, for callers (e.g. weave) that
// need direct access to its context or stack.
func (h *Handle) Strand() *Strand { return h.strand }

// Join blocks until the strand finishes and returns its final value or
// error.
func (h *Handle) Join() (lang.Value, error) {
	<-h.strand.done
	return h.strand.result, h.strand.err
}

// Cancel sets the strand's cancellation flag. The target strand observes
// it when a channel operation fails with lang.Cancelled or when its body
// polls Cancelled() itself. Strand.YieldNow does not check the flag.
func (h *Handle) Cancel() {
	h.strand.cancelFn(lang.Cancelled)
}

// Wait blocks until every strand ever spawned by this scheduler has
// finished. Intended for shutdown/tests, not for ordinary join logic.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
