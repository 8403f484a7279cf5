// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "renode-run",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "check",
				Run: func(args []string) error {
					called = "check"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"check"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "check" {
		t.Errorf("dispatched to %q, want %q", called, "check")
	}
}

func TestCommand_Execute_FallsThroughToRun(t *testing.T) {
	var called string
	var receivedArgs []string
	var noRun bool

	root := &Command{
		Name: "renode-run",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("renode-run", pflag.ContinueOnError)
			flagSet.BoolVar(&noRun, "no-run", false, "generate only")
			return flagSet
		},
		Subcommands: []*Command{
			{Name: "check", Run: func(args []string) error { called = "check"; return nil }},
		},
		Run: func(args []string) error {
			called = "root"
			receivedArgs = args
			return nil
		},
	}

	if err := root.Execute([]string{"target/blinky", "--no-run"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "root" {
		t.Errorf("dispatched to %q, want %q", called, "root")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "target/blinky" {
		t.Errorf("args = %v, want [target/blinky]", receivedArgs)
	}
	if !noRun {
		t.Error("--no-run after the positional argument was not parsed")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var output string
	var target string

	command := &Command{
		Name: "generate",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", "output directory")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"-o", "/tmp/out", "target/blinky"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if output != "/tmp/out" {
		t.Errorf("output = %q, want %q", output, "/tmp/out")
	}
	if target != "target/blinky" {
		t.Errorf("target = %q, want %q", target, "target/blinky")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "generate",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
			flagSet.Bool("no-run", false, "generate only")
			flagSet.String("config", "", "manifest path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--confg", "renode.yaml"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --config?") {
		t.Errorf("error = %q, expected a --config suggestion", err)
	}
	if !strings.Contains(err.Error(), "Run 'generate --help' for usage.") {
		t.Errorf("error = %q, expected a help pointer", err)
	}
}

func TestCommand_Execute_UnknownSubcommand(t *testing.T) {
	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{Name: "check", Run: func(args []string) error { return nil }},
			{Name: "generate", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"chekc"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "check"?`) {
		t.Errorf("error = %q, expected a check suggestion", err)
	}

	err = root.Execute([]string{"zzzzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, expected no suggestion for a distant name", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "tool",
		Subcommands: []*Command{{Name: "check", Run: func(args []string) error { return nil }}},
	}
	if err := root.Execute(nil); err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute(nil) error = %v, expected subcommand required", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "renode-run",
		Description: "Generate a Renode script and run it.",
		Usage:       "renode-run [flags] <executable>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("renode-run", pflag.ContinueOnError)
			flagSet.StringP("config", "c", "Cargo.toml", "manifest path")
			return flagSet
		},
		Examples: []Example{
			{Description: "Run a firmware image", Command: "renode-run target/thumbv7em-none-eabihf/debug/blinky"},
		},
		Subcommands: []*Command{
			{Name: "check", Summary: "Run pre-flight checks"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Generate a Renode script and run it.",
		"Usage:\n  renode-run [flags] <executable>",
		"check",
		"Run pre-flight checks",
		"-c, --config string",
		"# Run a firmware image",
		"Run 'renode-run <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	var seen string
	child := &Command{Name: "check"}
	child.Run = func(args []string) error {
		seen = child.fullName()
		return nil
	}
	root := &Command{Name: "renode-run", Subcommands: []*Command{child}}

	if err := root.Execute([]string{"check"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if seen != "renode-run check" {
		t.Errorf("fullName() = %q, want %q", seen, "renode-run check")
	}
}
