// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package stack implements the operand stack: a singly-linked chain of
// nodes, each owning one value, threaded through every compiled word.
//
// Shuffle operations operate purely on values: they move or clone Values
// between nodes and never read or write a node link for any purpose other
// than maintaining stack order. This is a deliberate re-architecture from
// a prior design that aliased the node link for variant field chains and
// match-scope extraction as well — see DESIGN.md.
package stack

import (
	"github.com/weavelang/weave/lang"
)

// Node is one element of the stack's chain. Its Value is owned exclusively
// by the stack until popped.
type Node struct {
	Value lang.Value
	next  *Node
}

// Stack is the operand stack: the head of the chain is the top of stack.
// A Stack exclusively owns all of its nodes and their values. Stack is not
// safe for concurrent use; each strand owns exactly one.
type Stack struct {
	top   *Node
	count int
}

// New creates an empty Stack.
func New() *Stack {
	return &Stack{}
}

// Len reports the number of values currently on the stack.
func (s *Stack) Len() int {
	return s.count
}

// Push transfers ownership of v into a freshly allocated node at the top
// of the stack.
func (s *Stack) Push(v lang.Value) {
	n := acquireNode()
	n.Value = v
	n.next = s.top
	s.top = n
	s.count++
}

// Pop removes the head node, returning ownership of its Value to the
// caller and freeing the node. Pop panics with lang.StackUnderflow if the
// stack is empty — stack underflow is a programmer error per the error
// handling design, not a recoverable condition.
func (s *Stack) Pop() lang.Value {
	if s.top == nil {
		panic(lang.StackUnderflow)
	}
	n := s.top
	v := n.Value
	s.top = n.next
	s.count--
	releaseNode(n)
	return v
}

// Peek returns the value at depth n from the top without removing it.
// Peek(0) is the top of stack.
func (s *Stack) Peek(n int) lang.Value {
	node := s.nodeAt(n)
	return node.Value
}

func (s *Stack) nodeAt(n int) *Node {
	if n < 0 || n >= s.count {
		panic(lang.StackUnderflow)
	}
	node := s.top
	for i := 0; i < n; i++ {
		node = node.next
	}
	return node
}

// Dup clones the top value and pushes the clone. Per the clone semantics
// of lang.Value, the two copies are ownership-independent afterwards:
// cloning an arena string allocates a global copy, cloning a variant
// deep-clones every field.
func (s *Stack) Dup() {
	s.requireAtLeast(1)
	s.Push(s.top.Value.Clone())
}

// Drop discards the top value.
func (s *Stack) Drop() {
	s.Pop()
}

// Swap exchanges the top two values: ( a b -- b a ).
func (s *Stack) Swap() {
	s.requireAtLeast(2)
	a, b := s.top, s.top.next
	a.Value, b.Value = b.Value, a.Value
}

// Over clones the second-from-top value and pushes it: ( a b -- a b a ).
// Over never mutates the second-from-top value itself.
func (s *Stack) Over() {
	s.requireAtLeast(2)
	v := s.top.next.Value.Clone()
	s.Push(v)
}

// Rot rotates the top three values: ( a b c -- b c a ).
func (s *Stack) Rot() {
	s.requireAtLeast(3)
	a, b, c := s.top.next.next, s.top.next, s.top
	a.Value, b.Value, c.Value = b.Value, c.Value, a.Value
}

// Nip discards the second-from-top value: ( a b -- b ).
func (s *Stack) Nip() {
	s.requireAtLeast(2)
	top := s.Pop()
	s.Pop()
	s.Push(top)
}

// Tuck duplicates the top value below the second-from-top: ( a b -- b a b ).
func (s *Stack) Tuck() {
	s.requireAtLeast(2)
	b := s.Pop()
	a := s.Pop()
	s.Push(b.Clone())
	s.Push(a)
	s.Push(b)
}

func (s *Stack) requireAtLeast(n int) {
	if s.count < n {
		panic(lang.StackUnderflow)
	}
}

// Drain pops and discards every remaining value, in top-to-bottom order.
// The scheduler calls this at strand termination before releasing the
// strand's arena.
func (s *Stack) Drain() {
	for s.top != nil {
		s.Pop()
	}
}

// PopN pops n values and returns them in push order (the deepest of the n
// first), the ordering make_variant needs when moving popped arguments
// into a VariantData field sequence.
func (s *Stack) PopN(n int) []lang.Value {
	if s.count < n {
		panic(lang.StackUnderflow)
	}
	out := make([]lang.Value, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = s.Pop()
	}
	return out
}

// PushN pushes values in slice order (index 0 first, so it ends up
// deepest), the inverse of PopN — used by extract_variant.
func (s *Stack) PushN(vs []lang.Value) {
	for _, v := range vs {
		s.Push(v)
	}
}
