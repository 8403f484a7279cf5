// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfoDefaults(t *testing.T) {
	t.Parallel()

	expected := "0.1.0-dev (unknown, unknown)"
	if got := Info(); got != expected {
		t.Errorf("Info() = %q, expected %q", got, expected)
	}
}

func TestFull(t *testing.T) {
	t.Parallel()

	full := Full()
	if !strings.HasPrefix(full, "renode-run "+Info()) {
		t.Errorf("Full() = %q, expected prefix %q", full, "renode-run "+Info())
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version %q", full, runtime.Version())
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	info := Current()
	if info.Version != Version {
		t.Errorf("Version = %q, expected %q", info.Version, Version)
	}
	if info.Dirty {
		t.Error("Dirty = true for an unstamped build")
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}
