// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes BLAKE3 content digests of generated artifacts.
//
// renode-run reports a digest for the generated script and for every
// staged platform description file, so a caller comparing two runs can
// tell whether the emulator was given the same inputs.
//
// The API surface is two functions:
//
//   - [HashFile] -- streams a file through BLAKE3, returning a [32]byte
//     digest with constant memory usage regardless of file size
//   - [FormatDigest] -- converts a [32]byte digest to its canonical
//     "blake3:"-prefixed hex string, used in log output and --json results
//
// This package has no dependencies on other renode-run packages.
package binhash
