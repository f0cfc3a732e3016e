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
	"sync"

	"golang.org/x/exp/maps"
)

// FfiBinding is a bundled or manifest-declared foreign binding reachable
// through `include ffi:NAME`. The runtime core treats every binding as an
// opaque Quotation once resolved; what it runs is delegated to the
// downstream lowering phase.
type FfiBinding struct {
	Name  string
	Quote QuotationID
}

var (
	ffiRegistryLock sync.Mutex
	ffiRegistry     = map[string]FfiBinding{}
)

// RegisterFfiBinding makes a bundled FFI binding available for `include
// ffi:NAME` resolution, independent of any manifest file. Name lookups are
// case-insensitive, mirroring the interpreter registry this is modeled on.
// Re-registering the same name with a different binding is a programming
// error and panics, exactly as the interpreter registry does.
func RegisterFfiBinding(b FfiBinding) {
	ffiRegistryLock.Lock()
	defer ffiRegistryLock.Unlock()
	key := strings.ToLower(b.Name)
	if existing, ok := ffiRegistry[key]; ok && existing != b {
		panic(fmt.Sprintf("ffi binding already registered under name %q", b.Name))
	}
	ffiRegistry[key] = b
}

// LookupFfiBinding performs a case-insensitive lookup of a bundled FFI
// binding. The bool result is false if no such binding was registered.
func LookupFfiBinding(name string) (FfiBinding, bool) {
	ffiRegistryLock.Lock()
	defer ffiRegistryLock.Unlock()
	b, ok := ffiRegistry[strings.ToLower(name)]
	return b, ok
}

// AllFfiBindings snapshots the current registry contents.
func AllFfiBindings() map[string]FfiBinding {
	ffiRegistryLock.Lock()
	defer ffiRegistryLock.Unlock()
	return maps.Clone(ffiRegistry)
}
