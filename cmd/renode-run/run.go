// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
	"github.com/bureau-foundation/renode-run/lib/renode"
)

func (a *app) runCommand(environ environment) *cli.Command {
	opts := newOptions(environ)
	return &cli.Command{
		Name:    "run",
		Summary: "Generate the script and run renode (the default)",
		Usage:   "renode-run run [flags] <executable>",
		Flags:   func() *pflag.FlagSet { return opts.flagSet("run", true, false) },
		Run:     func(args []string) error { return a.run(opts, args) },
	}
}

// run generates the script for the executable in args and, unless
// --no-run is set, runs renode on it.
func (a *app) run(opts *options, args []string) error {
	executable, err := executableArgument(args)
	if err != nil {
		return err
	}
	logger := a.newLogger(opts.logLevel()).With("command", "run")

	s, err := generate(opts, executable, a.setenv, logger)
	if err != nil {
		return err
	}

	if opts.NoRun {
		s.keep()
		fmt.Fprintln(a.stdout, s.scriptPath)
		return nil
	}
	defer s.cleanup(logger)

	binary, err := renode.ResolveBinary(opts.RenodeBinary, s.config.Renode)
	if err != nil {
		return err
	}

	runner := &renode.Runner{
		Binary: binary,
		Args:   s.config.RenodeArgs(),
		Script: s.scriptPath,
		Stdin:  a.stdin,
		Stdout: a.stdout,
		Stderr: a.stderr,
		Logger: logger,
	}
	logger.Debug("running renode", "binary", binary, "script", s.scriptPath)
	return runner.Run(context.Background())
}

// executableArgument returns the single positional argument.
func executableArgument(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("executable path is required\n\nRun 'renode-run --help' for usage.")
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("expected one executable path, got %d arguments: %q", len(args), args)
	}
}
