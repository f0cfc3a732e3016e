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
	"fmt"
	"strings"
)

// VariantData is the owned payload of a Variant value: a resolved-at-
// compile-time tag plus an owned, contiguous sequence of fields. Fields
// are never stored as a linked list and never share cells with the
// operand stack — the re-architecture described in the runtime's design
// notes, which eliminates the aliasing bugs a stack-node-linked field
// chain produced in the prior design.
type VariantData struct {
	Tag    uint32
	Fields []Value
}

// NewVariantData constructs a VariantData from fields already in
// declaration order (field 0 first). Callers assembling a variant by
// popping values off a stack are responsible for reversing pop order
// first; see abi.MakeVariant.
func NewVariantData(tag uint32, fields []Value) *VariantData {
	cp := make([]Value, len(fields))
	copy(cp, fields)
	return &VariantData{Tag: tag, Fields: cp}
}

// Field returns a clone of the field at index i. The variant itself is
// left owned and unmodified; FieldOutOfBounds is the caller's
// responsibility to raise when i is out of range (abi.FieldAt does this).
func (d *VariantData) Field(i int) Value {
	return d.Fields[i].Clone()
}

// Clone deep-clones every field, producing a VariantData with no storage
// shared with the receiver.
func (d *VariantData) Clone() *VariantData {
	fields := make([]Value, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = f.Clone()
	}
	return &VariantData{Tag: d.Tag, Fields: fields}
}

// Equal reports structural equality: same tag, same fields in order.
func (d *VariantData) Equal(o *VariantData) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil {
		return false
	}
	if d.Tag != o.Tag || len(d.Fields) != len(o.Fields) {
		return false
	}
	for i := range d.Fields {
		if !d.Fields[i].Equal(o.Fields[i]) {
			return false
		}
	}
	return true
}

func (d *VariantData) String() string {
	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("#%d(%s)", d.Tag, strings.Join(parts, ", "))
}
