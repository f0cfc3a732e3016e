// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stack

import (
	"testing"

	"pgregory.net/rand"

	"github.com/weavelang/weave/lang"
)

func TestStack_PushPopLIFO(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Push(lang.Int(3))

	for _, want := range []int64{3, 2, 1} {
		if got := s.Pop().AsInt(); got != want {
			t.Fatalf("Pop() = %d, want %d", got, want)
		}
	}
}

func TestStack_PopOnEmptyPanicsUnderflow(t *testing.T) {
	s := New()
	defer func() {
		r := recover()
		if r != lang.StackUnderflow {
			t.Fatalf("expected StackUnderflow panic, got %v", r)
		}
	}()
	s.Pop()
}

func TestStack_DupClonesIndependently(t *testing.T) {
	s := New()
	s.Push(lang.Variant(lang.NewVariantData(1, []lang.Value{lang.Int(9)})))
	s.Dup()

	top := s.Pop()
	top.AsVariant().Fields[0] = lang.Int(-1)

	remaining := s.Pop()
	if remaining.AsVariant().Fields[0].AsInt() != 9 {
		t.Fatalf("Dup did not produce an ownership-independent copy")
	}
}

func TestStack_Swap(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Swap()

	if s.Pop().AsInt() != 1 || s.Pop().AsInt() != 2 {
		t.Fatalf("Swap did not exchange the top two values")
	}
}

func TestStack_Over(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Over()

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Pop().AsInt() != 1 || s.Pop().AsInt() != 2 || s.Pop().AsInt() != 1 {
		t.Fatalf("Over did not clone the second-from-top value onto the top")
	}
}

func TestStack_Rot(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Push(lang.Int(3))
	s.Rot()

	if s.Pop().AsInt() != 1 || s.Pop().AsInt() != 3 || s.Pop().AsInt() != 2 {
		t.Fatalf("Rot did not produce (a b c -- b c a)")
	}
}

func TestStack_Nip(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Nip()

	if s.Len() != 1 || s.Pop().AsInt() != 2 {
		t.Fatalf("Nip did not discard the second-from-top value")
	}
}

func TestStack_Tuck(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Tuck()

	if s.Pop().AsInt() != 2 || s.Pop().AsInt() != 1 || s.Pop().AsInt() != 2 {
		t.Fatalf("Tuck did not produce (a b -- b a b)")
	}
}

func TestStack_DrainEmptiesStack(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Drain()

	if s.Len() != 0 {
		t.Fatalf("Len() after Drain = %d, want 0", s.Len())
	}
}

func TestStack_PopNPushNRoundTrip(t *testing.T) {
	s := New()
	s.Push(lang.Int(1))
	s.Push(lang.Int(2))
	s.Push(lang.Int(3))

	vs := s.PopN(3)
	s.PushN(vs)

	for _, want := range []int64{3, 2, 1} {
		if got := s.Pop().AsInt(); got != want {
			t.Fatalf("PopN/PushN round trip broke ordering: got %d, want %d", got, want)
		}
	}
}

// TestStack_ShuffleDuplicateInvariant exercises the swap half of invariant 2
// (§8): on randomly generated stacks, swap applied twice leaves the sequence
// of values observed when unwinding by Pop unchanged.
func TestStack_ShuffleDuplicateInvariant(t *testing.T) {
	rnd := rand.New()
	for trial := 0; trial < 200; trial++ {
		s := New()
		n := 2 + rnd.Intn(5)
		want := make([]int64, n)
		for i := 0; i < n; i++ {
			want[i] = rnd.Int63()
			s.Push(lang.Int(want[i]))
		}

		s.Swap()
		s.Swap()

		for i := n - 1; i >= 0; i-- {
			if got := s.Pop().AsInt(); got != want[i] {
				t.Fatalf("trial %d: double swap is not an identity: got %d, want %d", trial, got, want[i])
			}
		}
	}
}
