// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package arena implements the per-strand bump allocator and the
// dual-mode string representation built on top of it.
package arena

import (
	"fmt"
	"log"
	"sync"

	"github.com/dsnet/golib/unitconv"
)

// DefaultWatermark is the soft per-arena watermark at which Arena logs a
// warning. It does not trigger a reset: resetting mid-execution would
// invalidate arena strings still referenced from a live stack.
const DefaultWatermark = 10 << 20 // 10 MiB

// Arena is a bump allocator. Go exposes no thread-local storage, so
// rather than literally binding one Arena per OS thread this runtime binds
// one Arena per strand for its lifetime (see sched.Strand and Pool below);
// DESIGN.md records this as a deliberate, documented simplification of the
// spec's thread-local framing. It is not safe for concurrent use by
// multiple goroutines.
type Arena struct {
	store     []byte
	watermark int
	warned    bool
	label     string
}

// New creates an empty Arena. watermark <= 0 selects DefaultWatermark.
func New(label string, watermark int) *Arena {
	if watermark <= 0 {
		watermark = DefaultWatermark
	}
	return &Arena{watermark: watermark, label: label}
}

// AllocBytes copies data into the arena and returns a slice valid until the
// next Reset. The returned slice must never be retained past that Reset.
func (a *Arena) AllocBytes(data []byte) []byte {
	start := len(a.store)
	a.store = append(a.store, data...)
	if len(a.store) >= a.watermark && !a.warned {
		a.warned = true
		log.Printf("arena %q: crossed soft watermark of %s (current size %s)",
			a.label, unitconv.FormatPrefix(float64(a.watermark), unitconv.IEC, 0),
			unitconv.FormatPrefix(float64(len(a.store)), unitconv.IEC, 0))
	}
	return a.store[start:len(a.store):len(a.store)]
}

// Reset invalidates every prior allocation in O(1), reusing the backing
// array for future allocations.
func (a *Arena) Reset() {
	a.store = a.store[:0]
	a.warned = false
}

// Size reports the number of bytes currently allocated, for diagnostics.
func (a *Arena) Size() int {
	return len(a.store)
}

// Pool recycles Arena backing storage across strand lifetimes, the same
// amortize-allocation motivation Tosca gives for pooling whole stack
// instances (go/interpreter/lfvm/stack.go) applied to arenas: a strand
// acquires an Arena at start-up and returns it (reset) at termination
// instead of letting it be collected, so a long-running scheduler does not
// re-grow a fresh backing array for every strand it ever runs.
type Pool struct {
	mu      sync.Mutex
	free    []*Arena
	seq     int
	watermark int
}

// NewPool creates an empty Arena pool. watermark <= 0 selects
// DefaultWatermark for every Arena it hands out.
func NewPool(watermark int) *Pool {
	return &Pool{watermark: watermark}
}

// Acquire returns a reset Arena, reusing a previously released one when
// available.
func (p *Pool) Acquire() *Arena {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		a := p.free[n-1]
		p.free = p.free[:n-1]
		return a
	}
	p.seq++
	return New(fmt.Sprintf("strand-arena-%d", p.seq), p.watermark)
}

// Release resets a Arena and returns it to the pool for reuse.
func (p *Pool) Release(a *Arena) {
	a.Reset()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, a)
}
