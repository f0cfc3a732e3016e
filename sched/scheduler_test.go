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
	"testing"
	"time"

	"github.com/weavelang/weave/lang"
)

func TestScheduler_SpawnJoinReturnsResult(t *testing.T) {
	s := New(4)
	h := s.Spawn(context.Background(), func(st *Strand) (lang.Value, error) {
		st.Stack.Push(lang.Int(41))
		return lang.Int(st.Stack.Pop().AsInt() + 1), nil
	})

	v, err := h.Join()
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("Join() = %d, want 42", v.AsInt())
	}
}

func TestScheduler_SpawnRecoversPanic(t *testing.T) {
	s := New(1)
	h := s.Spawn(context.Background(), func(st *Strand) (lang.Value, error) {
		panic(lang.StackUnderflow)
	})

	_, err := h.Join()
	if err == nil {
		t.Fatalf("expected Join to surface the panicking strand's error")
	}
}

func TestScheduler_CancelObservedAtSuspensionPoint(t *testing.T) {
	s := New(1)
	entered := make(chan struct{})
	h := s.Spawn(context.Background(), func(st *Strand) (lang.Value, error) {
		close(entered)
		<-st.Context().Done()
		return lang.Value{}, context.Cause(st.Context())
	})

	<-entered
	h.Cancel()

	_, err := h.Join()
	if err != lang.Cancelled {
		t.Fatalf("got %v, want Cancelled", err)
	}
}

// TestScheduler_ManyStrandsReleaseArenas exercises scenario S6: spawning a
// large number of short-lived strands must not leak arenas — the pool's
// free list should settle back down once every strand has finished, since
// each strand's arena is reset and returned at termination.
func TestScheduler_ManyStrandsReleaseArenas(t *testing.T) {
	const n = 10000
	s := New(8)

	handles := make([]*Handle, n)
	for i := 0; i < n; i++ {
		handles[i] = s.Spawn(context.Background(), func(st *Strand) (lang.Value, error) {
			st.Stack.Push(lang.Int(1))
			return st.Stack.Pop(), nil
		})
	}
	for _, h := range handles {
		if _, err := h.Join(); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}

	if got := len(s.arenaPool.free); got == 0 {
		t.Fatalf("expected released arenas to return to the pool's free list")
	}
	if got := len(s.arenaPool.free); got > n {
		t.Fatalf("pool free list grew beyond the number of strands spawned: %d > %d", got, n)
	}
}

// TestScheduler_ProgressReporterCountsSpawns exercises the Spawn -> Inc
// wiring scenario S6 makes observable: a reporter attached via SetProgress
// sees exactly one Inc per strand spawned.
func TestScheduler_ProgressReporterCountsSpawns(t *testing.T) {
	s := New(4)

	reports := make(chan int64, 16)
	reporter := NewProgressReporter(time.Millisecond, func(n int64) {
		select {
		case reports <- n:
		default:
		}
	})
	defer reporter.Stop()
	s.SetProgress(reporter)

	const n = 20
	handles := make([]*Handle, n)
	for i := 0; i < n; i++ {
		handles[i] = s.Spawn(context.Background(), func(st *Strand) (lang.Value, error) {
			return lang.Int(0), nil
		})
	}
	for _, h := range handles {
		if _, err := h.Join(); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}

	deadline := time.After(time.Second)
	for {
		select {
		case got := <-reports:
			if got == n {
				return
			}
		case <-deadline:
			t.Fatalf("reporter never observed all %d spawns", n)
		}
	}
}

func TestScheduler_WaitBlocksUntilAllStrandsFinish(t *testing.T) {
	s := New(2)
	const n = 50
	counter := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		s.Spawn(context.Background(), func(st *Strand) (lang.Value, error) {
			time.Sleep(time.Millisecond)
			counter <- struct{}{}
			return lang.Value{}, nil
		})
	}

	s.Wait()
	if len(counter) != n {
		t.Fatalf("Wait returned before all %d strands finished; only %d did", n, len(counter))
	}
}
