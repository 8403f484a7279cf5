// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package textblock normalizes the indentation of multi-line manifest
// values. Manifest formats keep the indentation of their surroundings in
// block strings (TOML multi-line literals, YAML flow scalars, HCL
// heredocs), so commands and macro bodies are de-indented before use and
// re-indented when they are nested inside a generated script block.
package textblock

import (
	"strings"

	"github.com/lithammer/dedent"
)

// Dedent removes the leading whitespace prefix shared by every non-blank
// line of s, then trims leading and trailing whitespace from the result.
// Whitespace-only lines do not contribute to the shared prefix.
func Dedent(s string) string {
	return strings.TrimSpace(dedent.Dedent(s))
}

// Indent prefixes every non-empty line of s with width spaces. Empty lines
// stay empty so the result carries no trailing whitespace.
func Indent(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	prefix := strings.Repeat(" ", width)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
