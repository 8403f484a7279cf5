// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
	"github.com/bureau-foundation/renode-run/lib/config"
	"github.com/bureau-foundation/renode-run/lib/renode"
)

func (a *app) checkCommand(environ environment) *cli.Command {
	opts := newOptions(environ)
	return &cli.Command{
		Name:    "check",
		Summary: "Check the manifest, executable and renode installation",
		Description: `Run the pre-flight checks without generating a script. The manifest
must load, the executable must exist, each platform description must
resolve, the output directory must be writable, and the renode binary
must be on PATH. Exits 1 if any check fails.`,
		Usage: "renode-run check [flags] <executable>",
		Flags: func() *pflag.FlagSet { return opts.flagSet("check", false, true) },
		Run:   func(args []string) error { return a.check(opts, args) },
	}
}

func (a *app) check(opts *options, args []string) error {
	executable, err := executableArgument(args)
	if err != nil {
		return err
	}
	logger := a.newLogger(opts.logLevel()).With("command", "check")

	checkOptions := renode.CheckOptions{
		ManifestPath:   opts.ConfigFile,
		ExecutablePath: executable,
		OutputDir:      opts.OutputDir,
	}

	cfg, err := config.LoadFile(opts.ConfigFile)
	if err == nil {
		err = cfg.ExportEnvironment(a.setenv)
	}
	if err != nil {
		checkOptions.ManifestError = err
	} else {
		checkOptions.Config = cfg
	}

	var configBinary *string
	if cfg != nil {
		configBinary = cfg.Renode
	}
	checkOptions.Binary, checkOptions.BinaryError = renode.ResolveBinary(opts.RenodeBinary, configBinary)

	logger.Debug("running checks", "manifest", opts.ConfigFile, "executable", executable)
	validator := renode.NewValidator()
	validator.ValidateAll(checkOptions)

	if done, err := opts.EmitJSON(a.stdout, validator.Results()); done {
		if err != nil {
			return err
		}
	} else {
		validator.PrintResults(a.stdout)
	}

	if validator.HasErrors() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
