// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resc

import (
	"fmt"

	"github.com/bureau-foundation/renode-run/lib/envsub"
	"github.com/bureau-foundation/renode-run/lib/textblock"
)

// Field names used in EmptyFieldError. They match the manifest keys.
const (
	FieldName              = "name"
	FieldDescription       = "description"
	FieldMachineName       = "machine-name"
	FieldVariables         = "variables"
	FieldInitCommands      = "init-commands"
	FieldPreStartCommands  = "pre-start-commands"
	FieldPostStartCommands = "post-start-commands"
	FieldReset             = "reset"
	FieldStart             = "start"
)

// Defaults for optional manifest fields. They apply only when the field
// is absent; a field that is present but resolves to "" is an error.
const (
	DefaultName           Name           = "renode-system"
	DefaultDescription    Description    = "Renode script generated by renode-run"
	DefaultMachineName    MachineName    = "default-machine"
	DefaultResetMacro     ResetMacro     = "sysbus LoadELF $bin"
	DefaultStartDirective StartDirective = "start"
)

// ExecutableVariable is the script variable bound to the target executable.
const ExecutableVariable = "$bin"

// blockIndent is the indentation of bodies nested in triple-quoted blocks.
const blockIndent = 4

// EmptyFieldError reports a field whose value is empty after
// de-indentation and substitution.
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("field %q cannot contain an empty string", e.Field)
}

// Name is the script's :name: header.
type Name string

// NewName substitutes v. Names are not de-indented.
func NewName(v string) (Name, error) {
	s, err := substituteField(FieldName, v)
	return Name(s), err
}

// Description is the script's :description: header.
type Description string

// NewDescription substitutes v. Descriptions are not de-indented.
func NewDescription(v string) (Description, error) {
	s, err := substituteField(FieldDescription, v)
	return Description(s), err
}

// MachineName is the name passed to "mach create".
type MachineName string

// NewMachineName substitutes v. Machine names are not de-indented.
func NewMachineName(v string) (MachineName, error) {
	s, err := substituteField(FieldMachineName, v)
	return MachineName(s), err
}

// Variable is one variable assignment line, e.g. "$uart = sysbus.uart0".
type Variable string

// NewVariable de-indents and substitutes v.
func NewVariable(v string) (Variable, error) {
	s, err := blockField(FieldVariables, v)
	return Variable(s), err
}

// NewExecutableVariable binds ExecutableVariable to path. It goes through
// NewVariable so the same validation applies as for user variables.
func NewExecutableVariable(path string) (Variable, error) {
	return NewVariable(fmt.Sprintf("%s = %s%s", ExecutableVariable, PathSigil, path))
}

// InitCommand runs right after the machine is created.
type InitCommand string

// NewInitCommand de-indents and substitutes v.
func NewInitCommand(v string) (InitCommand, error) {
	s, err := blockField(FieldInitCommands, v)
	return InitCommand(s), err
}

// PreStartCommand runs after platform loading, before the reset macro.
type PreStartCommand string

// NewPreStartCommand de-indents and substitutes v.
func NewPreStartCommand(v string) (PreStartCommand, error) {
	s, err := blockField(FieldPreStartCommands, v)
	return PreStartCommand(s), err
}

// PostStartCommand runs after the start directive.
type PostStartCommand string

// NewPostStartCommand de-indents and substitutes v.
func NewPostStartCommand(v string) (PostStartCommand, error) {
	s, err := blockField(FieldPostStartCommands, v)
	return PostStartCommand(s), err
}

// ResetMacro is the body of the "reset" macro.
type ResetMacro string

// NewResetMacro de-indents and substitutes v.
func NewResetMacro(v string) (ResetMacro, error) {
	s, err := blockField(FieldReset, v)
	return ResetMacro(s), err
}

// Render returns the body indented for the macro's triple-quoted block.
func (r ResetMacro) Render() string {
	return textblock.Indent(string(r), blockIndent)
}

// StartDirective replaces the default "start" line.
type StartDirective string

// NewStartDirective de-indents and substitutes v.
func NewStartDirective(v string) (StartDirective, error) {
	s, err := blockField(FieldStart, v)
	return StartDirective(s), err
}

func substituteField(field, v string) (string, error) {
	s, err := envsub.Substitute(v)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &EmptyFieldError{Field: field}
	}
	return s, nil
}

func blockField(field, v string) (string, error) {
	return substituteField(field, textblock.Dedent(v))
}
