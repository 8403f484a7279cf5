// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for renode-run packages.
//
// [WriteFile] and [Executable] create fixtures under t.TempDir():
// manifests, platform description files, and fake emulator binaries
// written as shell scripts so runner tests never need a real Renode
// installation.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no renode-run dependencies.
package testutil
