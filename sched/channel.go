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
	"sync"

	"github.com/weavelang/weave/lang"
)

// Channel is a bounded, typed point of rendezvous between strands,
// carrying Values. Capacity 0 is a rendezvous channel. Per-channel
// ordering is FIFO; across channels there is no ordering guarantee.
type Channel struct {
	data chan lang.Value

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
}

// NewChannel creates a Channel with the given capacity (0 = rendezvous).
func NewChannel(capacity int) *Channel {
	return &Channel{
		data:    make(chan lang.Value, capacity),
		closeCh: make(chan struct{}),
	}
}

// Send enqueues a clone of v, promoted to fully global ownership by
// Value.Clone, and returns. If the channel has no room it parks until a
// receive frees a slot, the channel is closed, or ctx is cancelled.
//
// Cloning at send time is the one canonical bridge by which a value
// becomes safe to share across a strand boundary (§4.3's safety rule):
// an arena-backed string or a variant containing one is copied to
// global-owned form before it is ever visible to another strand.
func (c *Channel) Send(ctx context.Context, v lang.Value) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return lang.SendOnClosed
	}
	c.mu.Unlock()

	clone := v.Clone()
	select {
	case c.data <- clone:
		return nil
	case <-c.closeCh:
		return lang.SendOnClosed
	case <-ctx.Done():
		return lang.Cancelled
	}
}

// Receive dequeues the next value in FIFO order, parking if the channel is
// empty. If the channel is closed and empty it fails with
// ReceiveOnClosed; buffered values sent before closure are still
// delivered first.
func (c *Channel) Receive(ctx context.Context) (lang.Value, error) {
	select {
	case v := <-c.data:
		return v, nil
	case <-c.closeCh:
		select {
		case v := <-c.data:
			return v, nil
		default:
			return lang.Value{}, lang.ReceiveOnClosed
		}
	case <-ctx.Done():
		return lang.Value{}, lang.Cancelled
	}
}

// Close is idempotent; it wakes every strand parked on Send or Receive so
// they observe closure.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.closeCh)
}

// Closed reports whether Close has been called.
func (c *Channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
