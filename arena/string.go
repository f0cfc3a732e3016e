// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package arena

// StringRef is the dual-mode string representation. Global-mode bytes are
// owned on the process heap; arena-mode bytes are owned by a strand's
// Arena and must never be dereferenced after that arena's next Reset. The
// Global bit is the single source of truth for how bytes are (not)
// reclaimed: global-mode refs are simply garbage collected, arena-mode
// refs are reclaimed in bulk by Arena.Reset and must not be read past it.
//
// StringRef does not track capacity separately from length (see
// DESIGN.md's note on the corresponding open question); this is a known
// approximation.
type StringRef struct {
	bytes  []byte
	Global bool
}

// FromArena allocates bytes in a (normally the current strand's arena) and
// returns an arena-mode StringRef.
func FromArena(a *Arena, data []byte) StringRef {
	return StringRef{bytes: a.AllocBytes(data), Global: false}
}

// FromGlobal allocates bytes on the process heap and returns a global-mode
// StringRef.
func FromGlobal(data []byte) StringRef {
	cp := make([]byte, len(data))
	copy(cp, data)
	return StringRef{bytes: cp, Global: true}
}

// Clone always returns a global-mode copy, independent of the mode of the
// receiver. This is the one canonical bridge by which a value crosses a
// concurrency boundary safely (channel send, weave yield, spawn argument).
func (s StringRef) Clone() StringRef {
	return FromGlobal(s.bytes)
}

// Bytes returns the underlying bytes. For an arena-mode StringRef the
// result is only valid until the owning arena's next Reset.
func (s StringRef) Bytes() []byte {
	return s.bytes
}

// String renders the StringRef's bytes as a Go string (a copy).
func (s StringRef) String() string {
	return string(s.bytes)
}

// Len returns the byte length.
func (s StringRef) Len() int {
	return len(s.bytes)
}

// Equal compares bytes, not modes, per the data model's equality rule.
func (s StringRef) Equal(o StringRef) bool {
	if len(s.bytes) != len(o.bytes) {
		return false
	}
	for i := range s.bytes {
		if s.bytes[i] != o.bytes[i] {
			return false
		}
	}
	return true
}
