// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resc

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bureau-foundation/renode-run/lib/binhash"
)

// Artifact is one file written for a session.
type Artifact struct {
	Path   string `json:"path"`
	Digest string `json:"digest"`
}

// Result describes the files written by WriteScript.
type Result struct {
	Script Artifact   `json:"script"`
	Staged []Artifact `json:"staged"`
}

// WriteScript generates the script for def into the file at path,
// staging imported platform descriptions into opts.OutputDir. The file
// is created or truncated, and removed again if generation fails.
func WriteScript(path string, def *Definition, opts GenerateOptions) (*Result, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating script %s: %w", path, err)
	}

	staged, err := writeAndSync(file, def, opts)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing script %s: %w", path, closeErr)
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	script, err := artifact(path)
	if err != nil {
		return nil, err
	}
	result := &Result{Script: script, Staged: make([]Artifact, 0, len(staged))}
	for _, stagedPath := range staged {
		stagedArtifact, err := artifact(stagedPath)
		if err != nil {
			return nil, err
		}
		result.Staged = append(result.Staged, stagedArtifact)
	}
	return result, nil
}

func writeAndSync(file *os.File, def *Definition, opts GenerateOptions) ([]string, error) {
	buffered := bufio.NewWriter(file)
	staged, err := Generate(buffered, def, opts)
	if err != nil {
		return nil, err
	}
	if err := buffered.Flush(); err != nil {
		return nil, fmt.Errorf("writing script %s: %w", file.Name(), err)
	}
	if err := file.Sync(); err != nil {
		return nil, fmt.Errorf("syncing script %s: %w", file.Name(), err)
	}
	return staged, nil
}

func artifact(path string) (Artifact, error) {
	digest, err := binhash.HashFile(path)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: path, Digest: binhash.FormatDigest(digest)}, nil
}
