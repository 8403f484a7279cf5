// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// renode-run generates a Renode emulator script for an embedded
// executable and runs Renode on it. It is designed to be used as a cargo
// runner:
//
//	[target.thumbv7em-none-eabihf]
//	runner = "renode-run"
//
// so that "cargo run" boots the freshly built firmware in the emulated
// board described by the crate's [package.metadata.renode] table.
//
// Commands:
//
//	renode-run [run] [flags] <executable>   generate and run (default)
//	renode-run generate [flags] <executable> generate only
//	renode-run check [flags] <executable>    pre-flight checks
//	renode-run version                       version information
//
// Environment:
//
//	RENODE_RUN_RENODE_BIN   default for --renode
//	RENODE_RUN_CONFIG_FILE  default for --config (Cargo.toml otherwise)
//	RENODE_RUN_OUTPUT_DIR   default for --output
//	RENODE_RUN_DEBUG        enables debug logging like --verbose
//
// Renode's exit code is renode-run's exit code.
package main
