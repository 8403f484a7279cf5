// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
	"github.com/bureau-foundation/renode-run/lib/version"
)

func (a *app) versionCommand() *cli.Command {
	var output cli.JSONOutput
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			output.AddJSONFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if done, err := output.EmitJSON(a.stdout, version.Current()); done {
				return err
			}
			fmt.Fprintln(a.stdout, version.Full())
			return nil
		},
	}
}
