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
	"sync/atomic"
	"time"
)

// ProgressReporter periodically reports the number of strands spawned so
// far, for long-running schedulers (e.g. driving scenario S6's ten
// thousand strands). It is grounded directly on the ticker-driven
// reporter goroutine in Tosca's conformance driver
// (go/ct/driver/coordination.go), generalized from "tests completed" to
// "strands spawned".
type ProgressReporter struct {
	count    atomic.Int64
	interval time.Duration
	report   func(count int64)
	done     chan struct{}
	stopped  chan struct{}
}

// NewProgressReporter starts a reporter goroutine that calls report every
// interval until Stop is called.
func NewProgressReporter(interval time.Duration, report func(count int64)) *ProgressReporter {
	r := &ProgressReporter{
		interval: interval,
		report:   report,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *ProgressReporter) loop() {
	defer close(r.stopped)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.report(r.count.Load())
		}
	}
}

// Inc records one more strand having been spawned.
func (r *ProgressReporter) Inc() {
	r.count.Add(1)
}

// Stop halts the reporter goroutine and waits for it to exit.
func (r *ProgressReporter) Stop() {
	close(r.done)
	<-r.stopped
}
