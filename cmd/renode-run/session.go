// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/renode-run/lib/config"
	"github.com/bureau-foundation/renode-run/lib/resc"
)

// temporaryOutputName is the directory created inside a fresh temporary
// directory when no output directory is given.
const temporaryOutputName = "renode-run"

// session is one generated script and everything needed to run it.
type session struct {
	config     *config.Config
	outputDir  string
	scriptPath string
	result     *resc.Result

	// temporaryRoot is the directory to remove when the session ends, or
	// "" when the output directory belongs to the user.
	temporaryRoot string
}

// generate loads the manifest, exports its environment, and writes the
// script for executable. On error nothing is left behind in a temporary
// output directory.
func generate(opts *options, executable string, setenv func(key, value string) error, logger *slog.Logger) (*session, error) {
	logger.Debug("loading manifest", "path", opts.ConfigFile)
	cfg, err := config.LoadFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.ExportEnvironment(setenv); err != nil {
		return nil, err
	}

	s := &session{config: cfg}
	if err := s.createOutputDir(opts.OutputDir); err != nil {
		return nil, err
	}
	logger.Debug("using output directory", "path", s.outputDir)

	def, err := resc.NewDefinition(cfg, executable)
	if err != nil {
		s.cleanup(logger)
		return nil, err
	}

	s.scriptPath = cfg.ScriptPath(s.outputDir)
	logger.Debug("writing script", "path", s.scriptPath)

	s.result, err = resc.WriteScript(s.scriptPath, def, resc.GenerateOptions{
		OutputDir:         s.outputDir,
		OmitOutputDirPath: cfg.OmitOutDirPath,
		UsingSysbus:       cfg.UsingSysbus,
		OmitStart:         cfg.OmitStart,
	})
	if err != nil {
		s.cleanup(logger)
		return nil, err
	}

	for _, staged := range s.result.Staged {
		logger.Debug("staged platform description", "path", staged.Path, "digest", staged.Digest)
	}
	logger.Debug("script written", "path", s.result.Script.Path, "digest", s.result.Script.Digest)
	return s, nil
}

// createOutputDir creates dir, or a temporary directory when dir is "".
func (s *session) createOutputDir(dir string) error {
	if dir == "" {
		root, err := os.MkdirTemp("", "renode-run-*")
		if err != nil {
			return fmt.Errorf("creating temporary directory: %w", err)
		}
		s.temporaryRoot = root
		dir = filepath.Join(root, temporaryOutputName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.removeTemporary()
		return fmt.Errorf("creating output directory: %w", err)
	}
	s.outputDir = dir
	return nil
}

// keep detaches a temporary output directory from the session so that
// cleanup leaves it in place.
func (s *session) keep() {
	s.temporaryRoot = ""
}

// cleanup removes a temporary output directory.
func (s *session) cleanup(logger *slog.Logger) {
	if s.temporaryRoot == "" {
		return
	}
	logger.Debug("removing temporary directory", "path", s.temporaryRoot)
	if err := s.removeTemporary(); err != nil {
		logger.Warn("removing temporary directory failed", "path", s.temporaryRoot, "error", err)
	}
}

func (s *session) removeTemporary() error {
	if s.temporaryRoot == "" {
		return nil
	}
	return os.RemoveAll(s.temporaryRoot)
}
