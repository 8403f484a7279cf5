// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for renode-run.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/renode-run and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples. A
// command with both subcommands and a Run function treats an unmatched
// first argument as a positional argument to Run, which is how
// "renode-run <executable>" works alongside "renode-run check".
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// [NewCommandLogger] builds the slog logger every command uses, [ExitError]
// carries a non-zero exit code without an extra error line, and
// [JSONOutput] adds --json to commands with machine-readable results.
package cli
