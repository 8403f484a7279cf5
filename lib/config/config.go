// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPath is the manifest read when no path is given.
const DefaultPath = "Cargo.toml"

// DefaultScriptFileName is the script written into the output directory
// when resc-file-name is not set.
const DefaultScriptFileName = "emulate.resc"

// Config is a renode-run manifest.
type Config struct {
	// Script fields. Optional strings are pointers so that an absent key
	// (use the default) differs from an empty one (an error).

	Name        *string `yaml:"name" json:"name" toml:"name" hcl:"name,optional"`
	Description *string `yaml:"description" json:"description" toml:"description" hcl:"description,optional"`
	MachineName *string `yaml:"machine-name" json:"machine-name" toml:"machine-name" hcl:"machine-name,optional"`

	// InitCommands run right after the machine is created.
	InitCommands []string `yaml:"init-commands" json:"init-commands" toml:"init-commands" hcl:"init-commands,optional"`

	// Variables are assignments such as "$uart = sysbus.usart2".
	Variables []string `yaml:"variables" json:"variables" toml:"variables" hcl:"variables,optional"`

	// PlatformDescription is loaded before PlatformDescriptions.
	PlatformDescription  *string  `yaml:"platform-description" json:"platform-description" toml:"platform-description" hcl:"platform-description,optional"`
	PlatformDescriptions []string `yaml:"platform-descriptions" json:"platform-descriptions" toml:"platform-descriptions" hcl:"platform-descriptions,optional"`

	// Reset is the body of the reset macro.
	Reset *string `yaml:"reset" json:"reset" toml:"reset" hcl:"reset,optional"`

	// Start replaces the "start" directive.
	Start *string `yaml:"start" json:"start" toml:"start" hcl:"start,optional"`

	PreStartCommands  []string `yaml:"pre-start-commands" json:"pre-start-commands" toml:"pre-start-commands" hcl:"pre-start-commands,optional"`
	PostStartCommands []string `yaml:"post-start-commands" json:"post-start-commands" toml:"post-start-commands" hcl:"post-start-commands,optional"`

	// Renode command line flags.

	Plain              bool `yaml:"plain" json:"plain" toml:"plain" hcl:"plain,optional"`
	Port               *int `yaml:"port" json:"port" toml:"port" hcl:"port,optional"`
	DisableXwt         bool `yaml:"disable-xwt" json:"disable-xwt" toml:"disable-xwt" hcl:"disable-xwt,optional"`
	HideMonitor        bool `yaml:"hide-monitor" json:"hide-monitor" toml:"hide-monitor" hcl:"hide-monitor,optional"`
	HideLog            bool `yaml:"hide-log" json:"hide-log" toml:"hide-log" hcl:"hide-log,optional"`
	HideAnalyzers      bool `yaml:"hide-analyzers" json:"hide-analyzers" toml:"hide-analyzers" hcl:"hide-analyzers,optional"`
	Console            bool `yaml:"console" json:"console" toml:"console" hcl:"console,optional"`
	KeepTemporaryFiles bool `yaml:"keep-temporary-files" json:"keep-temporary-files" toml:"keep-temporary-files" hcl:"keep-temporary-files,optional"`

	// renode-run behavior.

	// RescFileName overrides the script path. Relative paths resolve
	// against the working directory, not the output directory.
	RescFileName *string `yaml:"resc-file-name" json:"resc-file-name" toml:"resc-file-name" hcl:"resc-file-name,optional"`

	UsingSysbus    bool `yaml:"using-sysbus" json:"using-sysbus" toml:"using-sysbus" hcl:"using-sysbus,optional"`
	OmitStart      bool `yaml:"omit-start" json:"omit-start" toml:"omit-start" hcl:"omit-start,optional"`
	OmitOutDirPath bool `yaml:"omit-out-dir-path" json:"omit-out-dir-path" toml:"omit-out-dir-path" hcl:"omit-out-dir-path,optional"`

	// EnvironmentVariables are [name, value] pairs exported before any
	// ${NAME} reference is resolved.
	EnvironmentVariables [][]string `yaml:"environment-variables" json:"environment-variables" toml:"environment-variables" hcl:"environment-variables,optional"`

	// Renode is the emulator binary. It may contain ${NAME} references.
	Renode *string `yaml:"renode" json:"renode" toml:"renode" hcl:"renode,optional"`

	// Accepted for compatibility with existing manifests. Neither has
	// any effect.
	UseRelativePaths bool `yaml:"use-relative-paths" json:"use-relative-paths" toml:"use-relative-paths" hcl:"use-relative-paths,optional"`
	DisableEnvsub    bool `yaml:"disable-envsub" json:"disable-envsub" toml:"disable-envsub" hcl:"disable-envsub,optional"`
}

// PlatformDescriptionInputs returns the raw platform descriptions in
// load order: platform-description first, then platform-descriptions.
func (c *Config) PlatformDescriptionInputs() []string {
	var inputs []string
	if c.PlatformDescription != nil {
		inputs = append(inputs, *c.PlatformDescription)
	}
	return append(inputs, c.PlatformDescriptions...)
}

// RenodeArgs returns the Renode command line flags the manifest enables,
// in a fixed order. The script path is not included.
func (c *Config) RenodeArgs() []string {
	var args []string
	if c.Plain {
		args = append(args, "--plain")
	}
	if c.Port != nil {
		args = append(args, "--port", strconv.Itoa(*c.Port))
	}
	if c.DisableXwt {
		args = append(args, "--disable-xwt")
	}
	if c.HideMonitor {
		args = append(args, "--hide-monitor")
	}
	if c.HideLog {
		args = append(args, "--hide-log")
	}
	if c.HideAnalyzers {
		args = append(args, "--hide-analyzers")
	}
	if c.Console {
		args = append(args, "--console")
	}
	if c.KeepTemporaryFiles {
		args = append(args, "--keep-temporary-files")
	}
	return args
}

// ExportEnvironment sets every environment-variables pair through
// setenv, in order. Pass os.Setenv in production. Values are exported
// verbatim; later pairs may override earlier ones.
func (c *Config) ExportEnvironment(setenv func(key, value string) error) error {
	for i, pair := range c.EnvironmentVariables {
		if len(pair) != 2 {
			return fmt.Errorf("environment-variables[%d]: expected [name, value], got %d elements", i, len(pair))
		}
		if err := setenv(pair[0], pair[1]); err != nil {
			return fmt.Errorf("environment-variables[%d]: setting %s: %w", i, pair[0], err)
		}
	}
	return nil
}

// ScriptPath returns resc-file-name when set, and
// <outputDir>/emulate.resc otherwise.
func (c *Config) ScriptPath(outputDir string) string {
	if c.RescFileName != nil {
		return *c.RescFileName
	}
	return filepath.Join(outputDir, DefaultScriptFileName)
}

// Validate checks the manifest for values no format can reject on its
// own. Script fields are validated when the definition is built.
func (c *Config) Validate() error {
	var errs []error

	if c.Port != nil && (*c.Port < 1 || *c.Port > 65535) {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", *c.Port))
	}

	for i, pair := range c.EnvironmentVariables {
		switch {
		case len(pair) != 2:
			errs = append(errs, fmt.Errorf("environment-variables[%d]: expected [name, value], got %d elements", i, len(pair)))
		case pair[0] == "":
			errs = append(errs, fmt.Errorf("environment-variables[%d]: name is empty", i))
		case strings.ContainsAny(pair[0], "=\x00"):
			errs = append(errs, fmt.Errorf("environment-variables[%d]: invalid name %q", i, pair[0]))
		}
	}

	if c.RescFileName != nil && strings.TrimSpace(*c.RescFileName) == "" {
		errs = append(errs, errors.New("resc-file-name is set but empty"))
	}

	return errors.Join(errs...)
}
