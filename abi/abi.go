// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package abi

import (
	"github.com/weavelang/weave/arena"
	"github.com/weavelang/weave/lang"
	"github.com/weavelang/weave/sched"
	wv "github.com/weavelang/weave/weave"
)

// --- Value pushers ---

func (m *Machine) PushInt(v int64) {
	m.Strand.Stack.Push(lang.Int(v))
}

func (m *Machine) PushBool(v bool) {
	m.Strand.Stack.Push(lang.Bool(v))
}

func (m *Machine) PushFloat(v float64) {
	m.Strand.Stack.Push(lang.Float(v))
}

// PushStringLiteral allocates bytes in the strand's own arena and pushes an
// arena-mode String value — the representation every string literal in
// compiled code uses until it crosses a concurrency boundary (§3.3).
func (m *Machine) PushStringLiteral(bytes []byte) {
	ref := arena.FromArena(m.Strand.Arena, bytes)
	m.Strand.Stack.Push(lang.String(ref))
}

func (m *Machine) PushQuotation(id lang.QuotationID) {
	m.Strand.Stack.Push(lang.Quotation(id))
}

// --- Arithmetic and comparison (Int, Float) ---

func (m *Machine) AddInt()  { m.binInt(func(a, b int64) int64 { return a + b }) }
func (m *Machine) SubInt()  { m.binInt(func(a, b int64) int64 { return a - b }) }
func (m *Machine) MulInt()  { m.binInt(func(a, b int64) int64 { return a * b }) }
func (m *Machine) DivInt()  { m.binInt(func(a, b int64) int64 { return a / b }) }
func (m *Machine) ModInt()  { m.binInt(func(a, b int64) int64 { return a % b }) }
func (m *Machine) NegInt() {
	v := m.Strand.Stack.Pop().AsInt()
	m.PushInt(-v)
}

func (m *Machine) binInt(op func(a, b int64) int64) {
	b := m.Strand.Stack.Pop().AsInt()
	a := m.Strand.Stack.Pop().AsInt()
	m.PushInt(op(a, b))
}

func (m *Machine) AddFloat() { m.binFloat(func(a, b float64) float64 { return a + b }) }
func (m *Machine) SubFloat() { m.binFloat(func(a, b float64) float64 { return a - b }) }
func (m *Machine) MulFloat() { m.binFloat(func(a, b float64) float64 { return a * b }) }
func (m *Machine) DivFloat() { m.binFloat(func(a, b float64) float64 { return a / b }) }

func (m *Machine) binFloat(op func(a, b float64) float64) {
	b := m.Strand.Stack.Pop().AsFloat()
	a := m.Strand.Stack.Pop().AsFloat()
	m.PushFloat(op(a, b))
}

func (m *Machine) EqInt()  { m.cmpInt(func(a, b int64) bool { return a == b }) }
func (m *Machine) LtInt()  { m.cmpInt(func(a, b int64) bool { return a < b }) }
func (m *Machine) LeInt()  { m.cmpInt(func(a, b int64) bool { return a <= b }) }
func (m *Machine) GtInt()  { m.cmpInt(func(a, b int64) bool { return a > b }) }
func (m *Machine) GeInt()  { m.cmpInt(func(a, b int64) bool { return a >= b }) }

func (m *Machine) cmpInt(op func(a, b int64) bool) {
	b := m.Strand.Stack.Pop().AsInt()
	a := m.Strand.Stack.Pop().AsInt()
	m.PushBool(op(a, b))
}

func (m *Machine) EqFloat() { m.cmpFloat(func(a, b float64) bool { return a == b }) }
func (m *Machine) LtFloat() { m.cmpFloat(func(a, b float64) bool { return a < b }) }
func (m *Machine) LeFloat() { m.cmpFloat(func(a, b float64) bool { return a <= b }) }
func (m *Machine) GtFloat() { m.cmpFloat(func(a, b float64) bool { return a > b }) }
func (m *Machine) GeFloat() { m.cmpFloat(func(a, b float64) bool { return a >= b }) }

func (m *Machine) cmpFloat(op func(a, b float64) bool) {
	b := m.Strand.Stack.Pop().AsFloat()
	a := m.Strand.Stack.Pop().AsFloat()
	m.PushBool(op(a, b))
}

// --- Stack shuffles (§4.2), delegated directly to the stack package ---

func (m *Machine) Dup()  { m.Strand.Stack.Dup() }
func (m *Machine) Drop() { m.Strand.Stack.Drop() }
func (m *Machine) Swap() { m.Strand.Stack.Swap() }
func (m *Machine) Over() { m.Strand.Stack.Over() }
func (m *Machine) Rot()  { m.Strand.Stack.Rot() }
func (m *Machine) Nip()  { m.Strand.Stack.Nip() }
func (m *Machine) Tuck() { m.Strand.Stack.Tuck() }

// --- Variant operations (§4.1) ---

// MakeVariant pops n values (deepest first) and pushes a fresh Variant
// tagged tag, per the construction-order rule in §4.1.
func (m *Machine) MakeVariant(tag uint32, n int) {
	if m.Strand.Stack.Len() < n {
		panic(lang.ArityViolation)
	}
	fields := m.Strand.Stack.PopN(n)
	m.Strand.Stack.Push(lang.Variant(lang.NewVariantData(tag, fields)))
}

// ExtractVariant destructures the top-of-stack variant, pushing its fields
// so field 0 ends deepest (§4.1's `dup field-at 0` compatibility rule).
// The caller must know the variant's tag at compile time (§4.1: "a variant
// whose tag is known to match"); expectedTag is checked against the
// variant's actual discriminant and a mismatch aborts the strand with
// lang.TagMismatch rather than silently destructuring the wrong shape.
func (m *Machine) ExtractVariant(expectedTag uint32) {
	v := m.Strand.Stack.Pop().AsVariant()
	if v.Tag != expectedTag {
		panic(lang.TagMismatch)
	}
	m.Strand.Stack.PushN(v.Fields)
}

// VariantTag reads the discriminant without consuming the variant.
func (m *Machine) VariantTag() {
	v := m.Strand.Stack.Peek(0).AsVariant()
	m.PushInt(int64(v.Tag))
}

// FieldAt clones field i of the variant below i on the stack, leaving the
// variant owned and in place: ( V i -- V f ).
func (m *Machine) FieldAt() {
	i := int(m.Strand.Stack.Pop().AsInt())
	v := m.Strand.Stack.Peek(0).AsVariant()
	if i < 0 || i >= len(v.Fields) {
		panic(lang.FieldOutOfBounds)
	}
	m.Strand.Stack.Push(v.Field(i))
}

// --- Channel operations ---

// ChanMake creates a channel of the given capacity and returns its id.
func (m *Machine) ChanMake(capacity int64) int64 {
	return m.putChannel(sched.NewChannel(int(capacity)))
}

func (m *Machine) ChanSend(id int64) error {
	ch, ok := m.getChannel(id)
	if !ok {
		return lang.SendOnClosed
	}
	v := m.Strand.Stack.Pop()
	return ch.Send(m.Strand.Context(), v)
}

func (m *Machine) ChanRecv(id int64) error {
	ch, ok := m.getChannel(id)
	if !ok {
		return lang.ReceiveOnClosed
	}
	v, err := ch.Receive(m.Strand.Context())
	if err != nil {
		return err
	}
	m.Strand.Stack.Push(v)
	return nil
}

func (m *Machine) ChanClose(id int64) {
	if ch, ok := m.getChannel(id); ok {
		ch.Close()
	}
}

// --- Strand operations ---

// Spawn starts quotation id on a fresh strand sharing this Machine's
// Runtime and returns a strand id other primitives (Join, Cancel) use to
// refer to it.
func (m *Machine) Spawn(id lang.QuotationID) int64 {
	h := m.Scheduler.Spawn(m.Strand.Context(), func(st *sched.Strand) (lang.Value, error) {
		child := NewMachine(m.Runtime, st)
		if err := CallQuotation(child, id); err != nil {
			return lang.Value{}, err
		}
		if child.Strand.Stack.Len() == 0 {
			return lang.Value{}, nil
		}
		return child.Strand.Stack.Pop(), nil
	})
	return m.putStrand(h)
}

func (m *Machine) Join(strandID int64) error {
	h, ok := m.getStrand(strandID)
	if !ok {
		return lang.ReceiveOnClosed
	}
	v, err := h.Join()
	if err != nil {
		return err
	}
	m.Strand.Stack.Push(v)
	return nil
}

func (m *Machine) Cancel(strandID int64) {
	if h, ok := m.getStrand(strandID); ok {
		h.Cancel()
	}
}

// YieldNow is the explicit suspension point (§5).
func (m *Machine) YieldNow() {
	m.Strand.YieldNow()
}

// --- Weave operations (§4.5) ---

// Weave spawns quotation id as a weave body and returns its weave id.
// Bodies registered for weave use go through RegisterWeaveBody rather than
// RegisterQuotation, since a weave body additionally needs the Ctx to call
// Yield.
func (m *Machine) Weave(id lang.QuotationID) int64 {
	fn, ok := lookupWeaveBody(id)
	if !ok {
		panic(lang.UnknownFfi)
	}
	rt := m.Runtime
	body := func(ctx *wv.Ctx, first lang.Value) (lang.Value, error) {
		child := NewMachine(rt, ctx.Strand())
		return fn(child, ctx, first)
	}
	h := wv.Spawn(m.Scheduler, m.Strand.Context(), body)
	return m.putWeave(h)
}

func (m *Machine) Resume(weaveID int64) error {
	h, ok := m.getWeave(weaveID)
	if !ok {
		return lang.ReceiveOnClosed
	}
	arg := m.Strand.Stack.Pop()
	y, hasMore, err := h.Resume(m.Strand.Context(), arg)
	if err != nil {
		return err
	}
	m.Strand.Stack.Push(y)
	m.PushBool(hasMore)
	return nil
}

func (m *Machine) WeaveCancel(weaveID int64) {
	if h, ok := m.getWeave(weaveID); ok {
		h.Cancel()
	}
}

// --- I/O ---

func (m *Machine) WriteLine() error {
	s := m.Strand.Stack.Pop().AsString()
	return m.IO.WriteLine(s.String())
}

func (m *Machine) ReadLine() error {
	line, ok, err := m.IO.ReadLine()
	if err != nil {
		return err
	}
	if !ok {
		m.Strand.Stack.Push(lang.String(arena.FromArena(m.Strand.Arena, nil)))
		return nil
	}
	m.Strand.Stack.Push(lang.String(arena.FromArena(m.Strand.Arena, []byte(line))))
	return nil
}

// ReadLinePlus pushes (String, Int) where Int = 0 on EOF, the two-result
// convention named in §11.1 and grounded on Tosca's (value, ok) host-call
// signatures (go/tosca/interpreter.go).
func (m *Machine) ReadLinePlus() error {
	line, ok, err := m.IO.ReadLine()
	if err != nil {
		return err
	}
	m.Strand.Stack.Push(lang.String(arena.FromArena(m.Strand.Arena, []byte(line))))
	if ok {
		m.PushInt(1)
	} else {
		m.PushInt(0)
	}
	return nil
}
