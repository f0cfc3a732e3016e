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
	"bufio"
	"io"
)

// HostIO is the process's I/O surface, grounded on the same small
// interface-over-stdio seam Tosca's go/tosca/interpreter.go uses to keep
// host calls testable without a real process: write_line/read_line never
// touch os.Stdin/os.Stdout directly so tests can substitute buffers, and
// go.uber.org/mock can generate a mock implementation for ABI-level unit
// tests.
type HostIO interface {
	WriteLine(s string) error
	// ReadLine returns the next line with its trailing newline stripped,
	// and ok = false at end of file (the read_line_plus sentinel, §11.1).
	ReadLine() (s string, ok bool, err error)
}

// stdHostIO is the default HostIO backed by real process stdio.
type stdHostIO struct {
	out io.Writer
	in  *bufio.Reader
}

// NewStdHostIO wraps out and in as a HostIO.
func NewStdHostIO(out io.Writer, in io.Reader) HostIO {
	return &stdHostIO{out: out, in: bufio.NewReader(in)}
}

func (h *stdHostIO) WriteLine(s string) error {
	_, err := io.WriteString(h.out, s+"\n")
	return err
}

func (h *stdHostIO) ReadLine() (string, bool, error) {
	line, err := h.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line == "" {
				return "", false, nil
			}
			return line, true, nil
		}
		return "", false, err
	}
	return trimNewline(line), true, nil
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
		if n > 0 && s[n-1] == '\r' {
			n--
		}
	}
	return s[:n]
}
