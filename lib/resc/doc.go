// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resc turns a renode-run manifest into a Renode script (.resc).
//
// The pipeline has two stages. [NewDefinition] validates every script
// field of a [config.Config] and resolves ${NAME} references (see
// package envsub), producing an immutable [Definition]. [Generate] (or
// [WriteScript], which also creates the file and reports digests)
// renders that definition in a fixed directive order:
//
//	:name: / :description: header
//	path add @<output dir>              (unless omitted)
//	using sysbus                        (optional)
//	mach create "<machine name>"
//	init commands
//	variables, "$bin = @<executable>" first
//	one load directive per platform description
//	pre-start commands
//	macro reset / runMacro $reset
//	start, then post-start commands     (unless omitted)
//
// Each configured field has a type of its own ([Name], [Variable],
// [ResetMacro], ...) whose constructor applies the field's rules:
// identifier-like fields are only substituted, command-like fields are
// de-indented first, and every field must be non-empty afterwards.
//
// Platform descriptions are classified by [NewPlatformDescription] into
// four kinds by their syntax alone:
//
//	@platforms/cpus/stm32f4.repl     KindBuiltin, resolved by Renode
//	boards/custom.repl               KindLocalFile, must exist
//	<boards/custom.repl              KindImportedFile, copied to the output dir
//	cpu: CPU.ARMv7A @ sysbus         KindInline
//
// Imported files are written to the output directory before the script
// so the script can load them by file name.
//
// Nothing in this package logs. All failures are returned as typed
// errors for the caller to report.
package resc
