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

import "testing"

func TestVariantData_FieldClonesNotAliases(t *testing.T) {
	d := NewVariantData(3, []Value{Variant(NewVariantData(1, []Value{Int(9)}))})

	f := d.Field(0)
	f.AsVariant().Fields[0] = Int(-1)

	if d.Fields[0].AsVariant().Fields[0].AsInt() != 9 {
		t.Fatalf("Field returned an alias instead of a clone")
	}
}

func TestVariantData_EqualStructural(t *testing.T) {
	a := NewVariantData(1, []Value{Int(1), Int(2)})
	b := NewVariantData(1, []Value{Int(1), Int(2)})
	c := NewVariantData(1, []Value{Int(1), Int(3)})

	if !a.Equal(b) {
		t.Fatalf("expected structurally identical variants to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected variants with differing fields to be unequal")
	}
}

func TestVariantData_NewVariantDataCopiesInputSlice(t *testing.T) {
	fields := []Value{Int(1)}
	d := NewVariantData(0, fields)
	fields[0] = Int(2)

	if d.Fields[0].AsInt() != 1 {
		t.Fatalf("NewVariantData must copy its input slice, not alias it")
	}
}
