// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
)

// app holds the process resources commands use, so tests can replace
// them.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// environ overrides the process environment for option parsing.
	// Nil reads the process environment.
	environ map[string]string

	// setenv exports manifest environment-variables. Definition
	// building reads the process environment, so tests that replace it
	// must still export somewhere that lookups see.
	setenv func(key, value string) error

	// newLogger builds the logger once flags are parsed.
	newLogger func(level slog.Level) *slog.Logger
}

func newApp() *app {
	return &app{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		setenv:    os.Setenv,
		newLogger: cli.NewCommandLogger,
	}
}

// root builds the command tree. Options are read from the environment
// once, before any flag is parsed.
func (a *app) root() (*cli.Command, error) {
	environ, err := parseEnvironment(a.environ)
	if err != nil {
		return nil, err
	}

	runOptions := newOptions(environ)
	run := func(args []string) error { return a.run(runOptions, args) }
	runFlags := func() *pflag.FlagSet { return runOptions.flagSet("run", true, false) }

	return &cli.Command{
		Name:    "renode-run",
		Summary: "Generate a Renode script for an executable and run it",
		Description: `Generate a Renode script (.resc) for an embedded executable and run it
in the Renode emulator.

The script is described by a manifest: the [package.metadata.renode] table
of Cargo.toml by default, or any file given with --config. Values may
reference environment variables as ${NAME}, ${NAME-default} or
${NAME:-default}.`,
		Usage: "renode-run [flags] <executable>",
		Examples: []cli.Example{
			{
				Description: "Run a firmware image with the manifest in ./Cargo.toml",
				Command:     "renode-run target/thumbv7em-none-eabihf/debug/blinky",
			},
			{
				Description: "Use cargo's runner hook",
				Command:     "[target.thumbv7em-none-eabihf]\n  runner = \"renode-run\"",
			},
			{
				Description: "Only write the script, keeping it in ./renode",
				Command:     "renode-run --no-run -o renode target/thumbv7em-none-eabihf/debug/blinky",
			},
		},
		Flags: runFlags,
		Run:   run,
		Subcommands: []*cli.Command{
			a.runCommand(environ),
			a.generateCommand(environ),
			a.checkCommand(environ),
			a.versionCommand(),
		},
	}, nil
}
