// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envsub substitutes environment variable references in
// manifest strings.
//
// Three reference forms are recognized:
//
//	${NAME}          value of NAME; an error if NAME is unset
//	${NAME-default}  value of NAME, or the literal default if unset
//	${NAME:-default} same as above
//
// NAME must match [A-Za-z_][A-Za-z0-9_]*. Anything else that looks like a
// reference (a bare $NAME, ${}, an unterminated ${NAME) is copied through
// unchanged. Default text is inserted literally and is never substituted
// again, so a default may itself contain "$" or "${".
//
// A variable that is set to the empty string substitutes as the empty
// string; only an unset variable falls back to the default.
//
// Substitution fails fast: the first reference that cannot be resolved
// aborts the call with a [*NotPresentError] or [*NotUnicodeError] naming
// the variable, and no partial output is returned.
//
// [Substitute] reads the process environment. [Substituter] takes an
// explicit lookup function for callers (and tests) that resolve names
// from somewhere else.
package envsub
