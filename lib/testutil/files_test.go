// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesParents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := WriteFile(t, dir, "boards/custom/led.repl", "led: Miscellaneous.LED @ gpioPortA 5")
	if expected := filepath.Join(dir, "boards", "custom", "led.repl"); path != expected {
		t.Errorf("WriteFile() = %q, expected %q", path, expected)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "led: Miscellaneous.LED @ gpioPortA 5" {
		t.Errorf("content = %q", data)
	}
}

func TestExecutableCreatesParents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := Executable(t, dir, "bin/nested/renode-fake", `echo "args: $@"`)
	if expected := filepath.Join(dir, "bin", "nested", "renode-fake"); path != expected {
		t.Errorf("Executable() = %q, expected %q", path, expected)
	}

	output, err := exec.Command(path, "--version").Output()
	if err != nil {
		t.Fatalf("running %s: %v", path, err)
	}
	if got := strings.TrimSpace(string(output)); got != "args: --version" {
		t.Errorf("output = %q, expected %q", got, "args: --version")
	}
}
