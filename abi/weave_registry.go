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
	"fmt"
	"sync"

	"github.com/weavelang/weave/lang"
	wv "github.com/weavelang/weave/weave"
)

// WeaveBody is a compiled word body invoked as a weave (§4.5): unlike a
// plain Quotation it receives the weave's Ctx (to call Yield) alongside the
// Machine (to operate on its own strand's stack and arena) and the value
// supplied by the first Resume call.
type WeaveBody func(m *Machine, ctx *wv.Ctx, first lang.Value) (lang.Value, error)

var (
	weaveBodiesMu sync.Mutex
	weaveBodies   = make(map[lang.QuotationID]WeaveBody)
)

// RegisterWeaveBody binds id to fn for use with the `weave` primitive.
// Panics on a duplicate id, the same discipline RegisterQuotation uses.
func RegisterWeaveBody(id lang.QuotationID, fn WeaveBody) {
	weaveBodiesMu.Lock()
	defer weaveBodiesMu.Unlock()
	if _, exists := weaveBodies[id]; exists {
		panic(fmt.Sprintf("abi: weave body %d already registered", id))
	}
	weaveBodies[id] = fn
}

func lookupWeaveBody(id lang.QuotationID) (WeaveBody, bool) {
	weaveBodiesMu.Lock()
	defer weaveBodiesMu.Unlock()
	fn, ok := weaveBodies[id]
	return fn, ok
}
