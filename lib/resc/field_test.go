// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resc

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/renode-run/lib/envsub"
)

func TestFieldConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		construct func(string) (string, error)
		input     string
		expected  string
	}{
		{"name kept verbatim", wrap(NewName), "  blinky  ", "  blinky  "},
		{"description kept verbatim", wrap(NewDescription), "LED demo", "LED demo"},
		{"machine name", wrap(NewMachineName), "stm32f4", "stm32f4"},
		{"variable dedented", wrap(NewVariable), "\n    $uart = sysbus.usart2\n", "$uart = sysbus.usart2"},
		{"init command", wrap(NewInitCommand), "  logLevel 3  ", "logLevel 3"},
		{"pre-start command", wrap(NewPreStartCommand), "emulation CreateServerSocketTerminal 3456 \"term\"", "emulation CreateServerSocketTerminal 3456 \"term\""},
		{"post-start command", wrap(NewPostStartCommand), "\tshowAnalyzer $uart", "showAnalyzer $uart"},
		{
			name:      "reset macro keeps relative indentation",
			construct: wrap(NewResetMacro),
			input:     "\n    sysbus LoadELF $bin\n      cpu PC 0x08000000\n",
			expected:  "sysbus LoadELF $bin\n  cpu PC 0x08000000",
		},
		{"start directive", wrap(NewStartDirective), " emulation RunFor \"00:00:10\" ", "emulation RunFor \"00:00:10\""},
		{"default in reference", wrap(NewMachineName), "${RESC_TEST_UNSET_MACHINE:-fallback}", "fallback"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := test.construct(test.input)
			if err != nil {
				t.Fatalf("constructor(%q) error: %v", test.input, err)
			}
			if got != test.expected {
				t.Errorf("constructor(%q) = %q, expected %q", test.input, got, test.expected)
			}
		})
	}
}

func TestFieldConstructorsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field     string
		construct func(string) (string, error)
		input     string
	}{
		{FieldName, wrap(NewName), ""},
		{FieldDescription, wrap(NewDescription), "${RESC_TEST_UNSET_DESC-}"},
		{FieldMachineName, wrap(NewMachineName), ""},
		{FieldVariables, wrap(NewVariable), "   "},
		{FieldInitCommands, wrap(NewInitCommand), "\n\n"},
		{FieldPreStartCommands, wrap(NewPreStartCommand), ""},
		{FieldPostStartCommands, wrap(NewPostStartCommand), "\t"},
		{FieldReset, wrap(NewResetMacro), "  ${RESC_TEST_UNSET_RESET:-}  "},
		{FieldStart, wrap(NewStartDirective), ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.field, func(t *testing.T) {
			t.Parallel()
			_, err := test.construct(test.input)
			var empty *EmptyFieldError
			if !errors.As(err, &empty) {
				t.Fatalf("constructor(%q) error = %v, expected *EmptyFieldError", test.input, err)
			}
			if empty.Field != test.field {
				t.Errorf("Field = %q, expected %q", empty.Field, test.field)
			}
		})
	}
}

func TestFieldConstructorsSubstitute(t *testing.T) {
	t.Setenv("RESC_TEST_BOARD", "nucleo")

	name, err := NewName("demo-${RESC_TEST_BOARD}")
	if err != nil {
		t.Fatalf("NewName() error: %v", err)
	}
	if name != "demo-nucleo" {
		t.Errorf("NewName() = %q, expected %q", name, "demo-nucleo")
	}

	_, err = NewVariable("$board = ${RESC_TEST_MISSING_BOARD}")
	var notPresent *envsub.NotPresentError
	if !errors.As(err, &notPresent) || notPresent.Name != "RESC_TEST_MISSING_BOARD" {
		t.Errorf("NewVariable() error = %v, expected NotPresentError", err)
	}
}

func TestNewExecutableVariable(t *testing.T) {
	t.Parallel()

	variable, err := NewExecutableVariable("/work/target/thumbv7em-none-eabihf/debug/blinky")
	if err != nil {
		t.Fatalf("NewExecutableVariable() error: %v", err)
	}
	if expected := Variable("$bin = @/work/target/thumbv7em-none-eabihf/debug/blinky"); variable != expected {
		t.Errorf("NewExecutableVariable() = %q, expected %q", variable, expected)
	}
}

func TestResetMacroRender(t *testing.T) {
	t.Parallel()

	reset := ResetMacro("sysbus LoadELF $bin\n\ncpu PC 0x0")
	if expected := "    sysbus LoadELF $bin\n\n    cpu PC 0x0"; reset.Render() != expected {
		t.Errorf("Render() = %q, expected %q", reset.Render(), expected)
	}
	if expected := "    sysbus LoadELF $bin"; DefaultResetMacro.Render() != expected {
		t.Errorf("DefaultResetMacro.Render() = %q, expected %q", DefaultResetMacro.Render(), expected)
	}
}

// wrap adapts a typed constructor to a string-returning one for tables.
func wrap[T ~string](construct func(string) (T, error)) func(string) (string, error) {
	return func(v string) (string, error) {
		value, err := construct(v)
		return string(value), err
	}
}
