// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the renode-run entrypoint helpers. They
// centralize the raw I/O that happens after the structured logger is
// gone: reporting the error returned by run() and choosing the process
// exit code.
//
// Errors that carry their own exit code (an ExitCode() int method, as
// cli.ExitError and renode.ExitError do) exit with that code silently,
// because the emulator or the command already reported the failure.
package process
