// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
)

func (a *app) generateCommand(environ environment) *cli.Command {
	opts := newOptions(environ)
	return &cli.Command{
		Name:    "generate",
		Summary: "Write the script without running renode",
		Description: `Write the Renode script and any imported platform description files,
then print the script path. Without --output the files are written to a
new temporary directory, which is kept.`,
		Usage: "renode-run generate [flags] <executable>",
		Examples: []cli.Example{
			{
				Description: "Inspect the generated script",
				Command:     "cat $(renode-run generate target/thumbv7em-none-eabihf/debug/blinky)",
			},
			{
				Description: "Report the files written with their BLAKE3 digests",
				Command:     "renode-run generate --json -o renode target/thumbv7em-none-eabihf/debug/blinky",
			},
		},
		Flags: func() *pflag.FlagSet { return opts.flagSet("generate", false, true) },
		Run:   func(args []string) error { return a.generate(opts, args) },
	}
}

func (a *app) generate(opts *options, args []string) error {
	executable, err := executableArgument(args)
	if err != nil {
		return err
	}
	logger := a.newLogger(opts.logLevel()).With("command", "generate")

	s, err := generate(opts, executable, a.setenv, logger)
	if err != nil {
		return err
	}
	s.keep()

	if done, err := opts.EmitJSON(a.stdout, s.result); done {
		return err
	}
	fmt.Fprintln(a.stdout, s.scriptPath)
	return nil
}
