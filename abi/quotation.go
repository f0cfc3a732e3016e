// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package abi is the runtime ABI surface consumed by compiled code (§6.1):
// a flat set of primitives operating on a Machine's owned stack, arena, and
// the process-wide channel/strand/weave registries. Each primitive is a
// method on *Machine taking zero or more scalar arguments; it updates the
// strand's stack in place rather than returning a new stack pointer, and
// returns an error only where it can fail recoverably (channel, join,
// resume and I/O primitives).
package abi

import (
	"fmt"
	"sync"

	"github.com/weavelang/weave/lang"
)

// Quotation is a compiled word body: the code the downstream lowering phase
// (out of scope, §1) produces for a QuotationID. It operates directly on
// the Machine's stack, the same calling convention every other ABI
// primitive uses, so cross-calls between compiled code and runtime
// primitives never need to inline or box arguments.
type Quotation func(m *Machine) error

var (
	quotationsMu sync.Mutex
	quotations   = make(map[lang.QuotationID]Quotation)
)

// RegisterQuotation binds id to fn. Downstream lowering (or, in this repo,
// tests standing in for it) calls this once per compiled word; registering
// the same id twice panics, even with the same fn (unlike
// lang.RegisterFfiBinding, which accepts an identical re-registration).
func RegisterQuotation(id lang.QuotationID, fn Quotation) {
	quotationsMu.Lock()
	defer quotationsMu.Unlock()
	if _, exists := quotations[id]; exists {
		panic(fmt.Sprintf("abi: quotation %d already registered", id))
	}
	quotations[id] = fn
}

// LookupQuotation returns the compiled body for id, if any was registered.
func LookupQuotation(id lang.QuotationID) (Quotation, bool) {
	quotationsMu.Lock()
	defer quotationsMu.Unlock()
	fn, ok := quotations[id]
	return fn, ok
}

// CallQuotation runs the quotation bound to id against m's own stack,
// failing with lang.UnknownFfi's sibling condition when no body was ever
// registered for it — a Quotation value that cannot be resolved is as much
// a programmer error as an out-of-range field index.
func CallQuotation(m *Machine, id lang.QuotationID) error {
	fn, ok := LookupQuotation(id)
	if !ok {
		return fmt.Errorf("abi: unresolved quotation %d", id)
	}
	return fn(m)
}
