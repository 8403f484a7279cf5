// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envsub

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// referencePattern matches ${NAME}, ${NAME-default} and ${NAME:-default}.
// Submatch 1 is the name, submatch 2 the default (absent for ${NAME}).
var referencePattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::?-(.*?))?\}`)

// NotPresentError reports a reference to an unset variable that has no
// default value.
type NotPresentError struct {
	Name string
}

func (e *NotPresentError) Error() string {
	return fmt.Sprintf("environment variable %q is not set and no default value is specified", e.Name)
}

// NotUnicodeError reports a variable whose value is not valid UTF-8.
type NotUnicodeError struct {
	Name string
}

func (e *NotUnicodeError) Error() string {
	return fmt.Sprintf("environment variable %q contains invalid unicode", e.Name)
}

// LookupFunc resolves a variable name. It has the signature of
// [os.LookupEnv].
type LookupFunc func(name string) (string, bool)

// Substituter resolves references against Lookup.
type Substituter struct {
	// Lookup resolves variable names. Nil means os.LookupEnv.
	Lookup LookupFunc
}

// Substitute resolves every reference in input against the process
// environment.
func Substitute(input string) (string, error) {
	return Substituter{}.Substitute(input)
}

// Substitute resolves every reference in input. Text outside references
// is copied verbatim.
func (s Substituter) Substitute(input string) (string, error) {
	matches := referencePattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input, nil
	}

	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var output strings.Builder
	output.Grow(len(input))

	last := 0
	for _, match := range matches {
		output.WriteString(input[last:match[0]])

		name := input[match[2]:match[3]]
		value, err := resolve(lookup, name, input, match)
		if err != nil {
			return "", err
		}
		output.WriteString(value)

		last = match[1]
	}
	output.WriteString(input[last:])

	return output.String(), nil
}

// resolve returns the replacement text for one match.
func resolve(lookup LookupFunc, name, input string, match []int) (string, error) {
	value, ok := lookup(name)
	if ok {
		if !utf8.ValidString(value) {
			return "", &NotUnicodeError{Name: name}
		}
		return value, nil
	}

	// Submatch 2 is unset (-1) for the plain ${NAME} form.
	if match[4] >= 0 {
		return input[match[4]:match[5]], nil
	}
	return "", &NotPresentError{Name: name}
}
