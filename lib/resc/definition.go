// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resc

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/renode-run/lib/config"
)

// ErrMissingPlatformDescription is returned when a manifest configures
// no platform descriptions at all.
var ErrMissingPlatformDescription = errors.New("at least one platform description is required")

// ExecutableNotFoundError reports a target executable that does not exist.
type ExecutableNotFoundError struct {
	Path string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("the application executable file %q could not be found", e.Path)
}

// PlatformDescriptionError wraps the failure of one platform description.
// Index counts from zero across the primary description and the list.
type PlatformDescriptionError struct {
	Index int
	Err   error
}

func (e *PlatformDescriptionError) Error() string {
	return fmt.Sprintf("platform-descriptions[%d]: %v", e.Index, e.Err)
}

func (e *PlatformDescriptionError) Unwrap() error { return e.Err }

// Definition is the validated, substitution-resolved model of one
// emulation session. Build it with NewDefinition and treat it as
// read-only afterwards.
type Definition struct {
	Name                 Name
	Description          Description
	MachineName          MachineName
	InitCommands         []InitCommand
	Variables            []Variable
	PlatformDescriptions []PlatformDescription
	Reset                ResetMacro
	// Start overrides the start directive. Nil means DefaultStartDirective.
	Start             *StartDirective
	PreStartCommands  []PreStartCommand
	PostStartCommands []PostStartCommand
}

// NewDefinition validates the script fields of cfg for the executable at
// executablePath. The first failure aborts construction.
//
// Duplicate commands and variables are kept as written; their order is
// the order of execution in the generated script.
func NewDefinition(cfg *config.Config, executablePath string) (*Definition, error) {
	if _, err := os.Stat(executablePath); err != nil {
		return nil, &ExecutableNotFoundError{Path: executablePath}
	}

	inputs := cfg.PlatformDescriptionInputs()
	if len(inputs) == 0 {
		return nil, ErrMissingPlatformDescription
	}
	platformDescriptions := make([]PlatformDescription, 0, len(inputs))
	for i, input := range inputs {
		description, err := NewPlatformDescription(input)
		if err != nil {
			return nil, &PlatformDescriptionError{Index: i, Err: err}
		}
		platformDescriptions = append(platformDescriptions, description)
	}

	executable, err := NewExecutableVariable(executablePath)
	if err != nil {
		return nil, err
	}
	userVariables, err := newEach(FieldVariables, cfg.Variables, NewVariable)
	if err != nil {
		return nil, err
	}
	variables := append([]Variable{executable}, userVariables...)

	initCommands, err := newEach(FieldInitCommands, cfg.InitCommands, NewInitCommand)
	if err != nil {
		return nil, err
	}
	preStartCommands, err := newEach(FieldPreStartCommands, cfg.PreStartCommands, NewPreStartCommand)
	if err != nil {
		return nil, err
	}
	postStartCommands, err := newEach(FieldPostStartCommands, cfg.PostStartCommands, NewPostStartCommand)
	if err != nil {
		return nil, err
	}

	name, err := newOrDefault(cfg.Name, NewName, DefaultName)
	if err != nil {
		return nil, err
	}
	description, err := newOrDefault(cfg.Description, NewDescription, DefaultDescription)
	if err != nil {
		return nil, err
	}
	machineName, err := newOrDefault(cfg.MachineName, NewMachineName, DefaultMachineName)
	if err != nil {
		return nil, err
	}
	reset, err := newOrDefault(cfg.Reset, NewResetMacro, DefaultResetMacro)
	if err != nil {
		return nil, err
	}

	var start *StartDirective
	if cfg.Start != nil {
		directive, err := NewStartDirective(*cfg.Start)
		if err != nil {
			return nil, err
		}
		start = &directive
	}

	return &Definition{
		Name:                 name,
		Description:          description,
		MachineName:          machineName,
		InitCommands:         initCommands,
		Variables:            variables,
		PlatformDescriptions: platformDescriptions,
		Reset:                reset,
		Start:                start,
		PreStartCommands:     preStartCommands,
		PostStartCommands:    postStartCommands,
	}, nil
}

// StartDirective returns the start override or DefaultStartDirective.
func (d *Definition) StartDirective() StartDirective {
	if d.Start != nil {
		return *d.Start
	}
	return DefaultStartDirective
}

// newEach constructs every value in order, tagging a failure with the
// field and index it came from.
func newEach[T any](field string, values []string, construct func(string) (T, error)) ([]T, error) {
	result := make([]T, 0, len(values))
	for i, value := range values {
		constructed, err := construct(value)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		result = append(result, constructed)
	}
	return result, nil
}

func newOrDefault[T any](value *string, construct func(string) (T, error), fallback T) (T, error) {
	if value == nil {
		return fallback, nil
	}
	return construct(*value)
}
