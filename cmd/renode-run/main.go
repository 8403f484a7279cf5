// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/renode-run/lib/process"
)

func main() {
	root, err := newApp().root()
	if err != nil {
		process.Fatal(err)
	}
	process.Exit(root.Execute(os.Args[1:]))
}
