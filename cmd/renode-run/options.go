// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
	"github.com/bureau-foundation/renode-run/lib/config"
)

// environment holds the options that can be set from the environment.
// Flags override them.
type environment struct {
	RenodeBinary string `env:"RENODE_RUN_RENODE_BIN"`
	ConfigFile   string `env:"RENODE_RUN_CONFIG_FILE"`
	OutputDir    string `env:"RENODE_RUN_OUTPUT_DIR"`
	Debug        bool   `env:"RENODE_RUN_DEBUG"`
}

// parseEnvironment reads the environment from environ, or from the
// process environment when environ is nil.
func parseEnvironment(environ map[string]string) (environment, error) {
	var parsed environment
	var err error
	if environ == nil {
		err = env.Parse(&parsed)
	} else {
		err = env.ParseWithOptions(&parsed, env.Options{Environment: environ})
	}
	if err != nil {
		return environment{}, fmt.Errorf("reading environment: %w", err)
	}
	if parsed.ConfigFile == "" {
		parsed.ConfigFile = config.DefaultPath
	}
	return parsed, nil
}

// options are the settings shared by run, generate and check.
type options struct {
	cli.JSONOutput

	RenodeBinary string
	ConfigFile   string
	OutputDir    string
	NoRun        bool
	Verbose      bool
}

func newOptions(environ environment) *options {
	return &options{
		RenodeBinary: environ.RenodeBinary,
		ConfigFile:   environ.ConfigFile,
		OutputDir:    environ.OutputDir,
		Verbose:      environ.Debug,
	}
}

// flagSet registers the common flags, plus --no-run when withNoRun is
// set and --json when withJSON is set.
func (o *options) flagSet(name string, withNoRun, withJSON bool) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&o.RenodeBinary, "renode", o.RenodeBinary,
		"renode binary (default: the manifest's renode key, then \"renode\" on PATH)")
	flagSet.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile,
		"manifest file: Cargo.toml, .toml, .yaml, .json, .jsonc or .hcl")
	flagSet.StringVarP(&o.OutputDir, "output", "o", o.OutputDir,
		"output directory for the script and imported platform files (default: a temporary directory)")
	flagSet.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "log debug messages")
	if withNoRun {
		flagSet.BoolVar(&o.NoRun, "no-run", false, "generate the script without running renode")
	}
	if withJSON {
		o.AddJSONFlag(flagSet)
	}
	return flagSet
}

func (o *options) logLevel() slog.Level {
	if o.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
