// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads renode-run manifests.
//
// A manifest is one flat set of kebab-case keys covering three concerns:
// the script itself (name, platform descriptions, commands, the reset
// macro), the flags passed to the Renode binary (plain, port,
// hide-log, ...), and the behavior of renode-run (resc-file-name,
// using-sysbus, environment-variables, renode, ...).
//
// The manifest lives in one file, chosen by the --config flag or the
// RENODE_RUN_CONFIG_FILE environment variable, and [DefaultPath]
// otherwise. [LoadFile] picks the format from the file name:
//
//   - Cargo.toml: the [package.metadata.renode] table, so an embedded
//     Rust crate carries its emulation setup next to its build metadata.
//     A Cargo.toml without that table yields an empty Config.
//   - *.toml: top-level keys
//   - *.yaml, *.yml: YAML
//   - *.json, *.jsonc: JSON with comments and trailing commas
//   - *.hcl: HCL attributes. HCL evaluates ${...} itself, so references
//     meant for renode-run are written $${NAME}.
//
// Every format rejects keys it does not know.
//
// Values are loaded verbatim. ${NAME} references are resolved later,
// field by field, when the script definition is built.
package config
