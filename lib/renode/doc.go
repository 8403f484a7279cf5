// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package renode runs the Renode emulator on a generated script.
//
// [ResolveBinary] picks the emulator executable: the --renode flag,
// then the manifest's renode key (after ${NAME} substitution), then
// [DefaultBinary] looked up on PATH.
//
// [Runner] starts "<binary> <flags...> <script>" with the caller's
// stdio and waits for it. Renode is interactive: it owns the terminal
// while it runs, so the runner keeps it in the foreground process group
// where Ctrl-C reaches it directly, and forwards SIGTERM and SIGHUP sent
// to renode-run itself. A non-zero exit becomes an [ExitError] carrying
// the emulator's code, which renode-run exits with unchanged.
//
// [Validator] performs the pre-flight checks behind "renode-run check":
// manifest validity, the target executable, every platform description,
// the output directory, and the emulator binary. Results are collected
// rather than returned as errors so one report shows every problem.
package renode
