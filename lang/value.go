// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package lang defines the canonical tagged value model shared by every
// other component of the runtime: the operand stack, the arena-backed
// string store, the scheduler's channels, and the compiled-code ABI all
// move Value instances around without reaching into their representation.
package lang

import (
	"fmt"

	"github.com/weavelang/weave/arena"
)

// Kind discriminates the alternatives of a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindFloat
	KindString
	KindVariant
	KindQuotation
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVariant:
		return "variant"
	case KindQuotation:
		return "quotation"
	default:
		return "unknown"
	}
}

// QuotationID identifies a compile-time code pointer. The runtime core
// treats it as opaque; resolving it to native code is delegated to the
// downstream lowering phase (out of scope, §1).
type QuotationID uint32

// Value is the tagged union every stack slot, variant field, and channel
// payload holds. Every Value is either a plain bit pattern (Int, Bool,
// Float, Quotation) or owns its composite data exclusively (String,
// Variant) — never both, and never a pointer into another Value's storage.
type Value struct {
	kind     Kind
	i        int64
	f        float64
	b        bool
	str      arena.StringRef
	variant  *VariantData
	quote    QuotationID
}

// Int constructs an Int value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Bool constructs a Bool value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Float constructs a Float value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String constructs a String value directly from a StringRef, with
// whatever mode the caller already resolved (arena for literals, global
// for anything that must survive a concurrency boundary).
func String(s arena.StringRef) Value { return Value{kind: KindString, str: s} }

// Quotation constructs a Quotation value.
func Quotation(id QuotationID) Value { return Value{kind: KindQuotation, quote: id} }

// Variant constructs a Variant value wrapping an already-built VariantData.
func Variant(v *VariantData) Value { return Value{kind: KindVariant, variant: v} }

func (v Value) Kind() Kind { return v.kind }

// AsInt returns the Int payload; it panics if Kind() != KindInt, matching
// the rest of this runtime's policy of aborting the offending strand on a
// programmer-error class of mistake rather than silently coercing.
func (v Value) AsInt() int64 {
	v.mustBe(KindInt)
	return v.i
}

func (v Value) AsBool() bool {
	v.mustBe(KindBool)
	return v.b
}

func (v Value) AsFloat() float64 {
	v.mustBe(KindFloat)
	return v.f
}

func (v Value) AsString() arena.StringRef {
	v.mustBe(KindString)
	return v.str
}

func (v Value) AsQuotation() QuotationID {
	v.mustBe(KindQuotation)
	return v.quote
}

func (v Value) AsVariant() *VariantData {
	v.mustBe(KindVariant)
	return v.variant
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value kind mismatch: want %s, have %s", k, v.kind))
	}
}

// Clone produces a fully independent value: strings are deep-copied to the
// global allocator and variants are deep-cloned field by field. This is
// the operation `dup` performs on the top of the operand stack, and the
// one every channel send and weave yield performs implicitly.
func (v Value) Clone() Value {
	switch v.kind {
	case KindString:
		return String(v.str.Clone())
	case KindVariant:
		return Variant(v.variant.Clone())
	default:
		return v
	}
}

// Equal reports structural equality: same kind, same payload (bytes for
// strings, recursively for variants).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindBool:
		return v.b == o.b
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.str.Equal(o.str)
	case KindQuotation:
		return v.quote == o.quote
	case KindVariant:
		return v.variant.Equal(o.variant)
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.str.String())
	case KindQuotation:
		return fmt.Sprintf("quot#%d", v.quote)
	case KindVariant:
		return v.variant.String()
	default:
		return "<invalid>"
	}
}
