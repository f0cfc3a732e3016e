// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package arena

import "testing"

func TestArena_AllocBytesGrowsSize(t *testing.T) {
	a := New("test", DefaultWatermark)
	a.AllocBytes([]byte("abc"))
	a.AllocBytes([]byte("de"))

	if got, want := a.Size(), 5; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}

func TestArena_ResetReclaimsAllAtOnce(t *testing.T) {
	a := New("test", DefaultWatermark)
	a.AllocBytes([]byte("abcdefg"))
	a.Reset()

	if got := a.Size(); got != 0 {
		t.Fatalf("Size() after Reset = %d, want 0", got)
	}
}

func TestPool_AcquireReleaseReusesArenas(t *testing.T) {
	p := NewPool(DefaultWatermark)

	a1 := p.Acquire()
	a1.AllocBytes([]byte("data"))
	p.Release(a1)

	a2 := p.Acquire()
	if a2 != a1 {
		t.Fatalf("expected Acquire after Release to reuse the same arena")
	}
	if got := a2.Size(); got != 0 {
		t.Fatalf("expected Release to reset the arena before reuse, got size %d", got)
	}
}

func TestPool_AcquireWithoutReleaseAllocatesFresh(t *testing.T) {
	p := NewPool(DefaultWatermark)

	a1 := p.Acquire()
	a2 := p.Acquire()

	if a1 == a2 {
		t.Fatalf("expected distinct arenas when none have been released")
	}
}
