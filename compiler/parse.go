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
	"bufio"
	"fmt"
	"strings"
)

// parseFile scans source text for `include` directives and word-definition
// headers (§6.2). It is intentionally minimal: word bodies are kept as raw
// text, since lowering them is out of scope for this phase.
func parseFile(path string, contents []byte) (*SourceFile, error) {
	sf := &SourceFile{Path: path}

	scanner := bufio.NewScanner(strings.NewReader(string(contents)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var current *WordDef
	var bodyLines []string
	line := 0

	flush := func() {
		if current != nil {
			current.Body = strings.Join(bodyLines, "\n")
			sf.Words = append(sf.Words, *current)
			current = nil
			bodyLines = nil
		}
	}

	for scanner.Scan() {
		line++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if idx := strings.IndexByte(trimmed, '#'); idx >= 0 && current == nil {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
		if trimmed == "" {
			continue
		}

		if current == nil && strings.HasPrefix(trimmed, "include ") {
			inc, err := parseInclude(strings.TrimSpace(trimmed[len("include "):]), line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			sf.Includes = append(sf.Includes, inc)
			continue
		}

		if current == nil && strings.HasPrefix(trimmed, ": ") {
			rest := strings.TrimSpace(trimmed[2:])
			name, effect, bodyStart, err := parseWordHeader(rest)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			current = &WordDef{Name: name, StackEffect: effect, File: path, Line: line}
			if bodyStart != "" {
				bodyLines = append(bodyLines, bodyStart)
			}
			if strings.HasSuffix(strings.TrimSpace(rest), ";") {
				flush()
			}
			continue
		}

		if current != nil {
			if strings.HasSuffix(trimmed, ";") {
				bodyLines = append(bodyLines, strings.TrimSuffix(trimmed, ";"))
				flush()
			} else {
				bodyLines = append(bodyLines, trimmed)
			}
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	flush()
	return sf, nil
}

func parseInclude(rest string, line int) (Include, error) {
	switch {
	case strings.HasPrefix(rest, "std:"):
		return Include{Kind: IncludeStd, Target: strings.TrimPrefix(rest, "std:"), Line: line}, nil
	case strings.HasPrefix(rest, "ffi:"):
		return Include{Kind: IncludeFfi, Target: strings.TrimPrefix(rest, "ffi:"), Line: line}, nil
	case strings.HasPrefix(rest, `"`) && strings.HasSuffix(rest, `"`) && len(rest) >= 2:
		return Include{Kind: IncludeRelative, Target: rest[1 : len(rest)-1], Line: line}, nil
	default:
		return Include{}, fmt.Errorf("malformed include directive: %q", rest)
	}
}

// parseWordHeader splits `NAME ( EFFECT ) BODY...` into its parts. BODY may
// be empty if the definition's body starts on the next line.
func parseWordHeader(rest string) (name, effect, bodyStart string, err error) {
	fields := strings.SplitN(rest, "(", 2)
	if len(fields) != 2 {
		return "", "", "", fmt.Errorf("missing stack effect comment in word header: %q", rest)
	}
	name = strings.TrimSpace(fields[0])
	if name == "" {
		return "", "", "", fmt.Errorf("missing word name in header: %q", rest)
	}
	closeIdx := strings.Index(fields[1], ")")
	if closeIdx < 0 {
		return "", "", "", fmt.Errorf("unterminated stack effect comment: %q", rest)
	}
	effect = strings.TrimSpace(fields[1][:closeIdx])
	bodyStart = strings.TrimSpace(fields[1][closeIdx+1:])
	bodyStart = strings.TrimSuffix(bodyStart, ";")
	return name, effect, strings.TrimSpace(bodyStart), nil
}
