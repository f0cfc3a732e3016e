// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package compiler

import (
	"encoding/json"
	"os"

	"github.com/weavelang/weave/lang"
)

// StdlibRootEnvVar is the single recognized environment override for the
// standard-library root (§6.4).
const StdlibRootEnvVar = "WEAVE_STDLIB_ROOT"

// Options carries the two environment knobs §6.4 names. Zero-value Options
// means "no explicit stdlib root, no FFI manifest": non-bundled ffi:
// includes are disabled, and std: includes are disabled too unless
// WEAVE_STDLIB_ROOT is set (see ResolveStdlibRoot).
type Options struct {
	StdlibRoot      string
	FfiManifestPath string
}

// ResolveStdlibRoot returns o.StdlibRoot if set, else the WEAVE_STDLIB_ROOT
// environment variable, else "".
func (o Options) ResolveStdlibRoot() string {
	if o.StdlibRoot != "" {
		return o.StdlibRoot
	}
	return os.Getenv(StdlibRootEnvVar)
}

// ffiManifestEntry is one binding listed in an FFI manifest file.
type ffiManifestEntry struct {
	Name     string `json:"name"`
	QuoteID  uint32 `json:"quote_id"`
	Bundled  bool   `json:"bundled"`
}

// LoadFfiManifest reads a JSON manifest (name -> bundled|external binding
// id, §10.2) and registers each entry against lang's global FFI binding
// registry. A manifest is a simple JSON array; absence of a manifest path
// disables all non-bundled ffi: includes, per §6.4.
func LoadFfiManifest(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var entries []ffiManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, e := range entries {
		lang.RegisterFfiBinding(lang.FfiBinding{Name: e.Name, Quote: lang.QuotationID(e.QuoteID)})
	}
	return nil
}
