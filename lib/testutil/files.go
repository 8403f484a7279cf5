// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside dir, creating intermediate
// directories, and returns the file's path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := parentCreated(t, dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Executable writes a /bin/sh script named name into dir with mode 0755,
// creating intermediate directories, and returns its path. body is
// everything after the shebang line.
//
//	fake := testutil.Executable(t, dir, "renode", `echo "$@" > args; exit 3`)
func Executable(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := parentCreated(t, dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("writing executable %s: %v", path, err)
	}
	return path
}

// parentCreated joins dir and name and creates the result's parent.
func parentCreated(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	return path
}
