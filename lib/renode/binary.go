// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package renode

import (
	"fmt"

	"github.com/bureau-foundation/renode-run/lib/envsub"
)

// DefaultBinary is run when neither the command line nor the manifest
// names an emulator binary.
const DefaultBinary = "renode"

// ResolveBinary returns the emulator binary to run. A non-empty
// flagValue wins and is used verbatim. Otherwise configValue, when set,
// is substituted and used. The result may be a bare name, which is
// looked up on PATH when the runner starts.
func ResolveBinary(flagValue string, configValue *string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configValue != nil {
		binary, err := envsub.Substitute(*configValue)
		if err != nil {
			return "", fmt.Errorf("resolving renode binary: %w", err)
		}
		if binary == "" {
			return "", fmt.Errorf("resolving renode binary: renode is set but empty")
		}
		return binary, nil
	}
	return DefaultBinary, nil
}
