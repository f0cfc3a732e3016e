// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lang

import (
	"testing"

	"github.com/weavelang/weave/arena"
)

func TestValue_CloneStringPromotesToGlobal(t *testing.T) {
	a := arena.New("t", arena.DefaultWatermark)
	v := String(arena.FromArena(a, []byte("hello")))

	clone := v.Clone()

	if !clone.AsString().Global {
		t.Fatalf("expected cloned string to be global-mode")
	}
	if !v.AsString().Equal(clone.AsString()) {
		t.Fatalf("clone bytes diverged from original")
	}
}

func TestValue_EqualComparesByKindAndPayload(t *testing.T) {
	if !Int(42).Equal(Int(42)) {
		t.Fatalf("expected equal ints to compare equal")
	}
	if Int(42).Equal(Float(42)) {
		t.Fatalf("expected different kinds to never compare equal")
	}
	if Bool(true).Equal(Bool(false)) {
		t.Fatalf("expected unequal bools to compare unequal")
	}
}

func TestValue_AsIntPanicsOnKindMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on kind mismatch")
		}
	}()
	Bool(true).AsInt()
}

func TestValue_CloneVariantIsDeepAndIndependent(t *testing.T) {
	v := Variant(NewVariantData(7, []Value{Int(1), Int(2)}))
	clone := v.Clone()

	clone.AsVariant().Fields[0] = Int(999)

	if v.AsVariant().Fields[0].AsInt() != 1 {
		t.Fatalf("mutating the clone's fields leaked into the original")
	}
}
