// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// GenerateOptions controls script rendering.
type GenerateOptions struct {
	// OutputDir receives imported platform description files. Unless
	// OmitOutputDirPath is set, the script adds it to Renode's search
	// path so the staged files resolve by name.
	OutputDir string

	// OmitOutputDirPath suppresses the "path add" directive.
	OmitOutputDirPath bool

	// UsingSysbus emits "using sysbus" before the machine is created.
	UsingSysbus bool

	// OmitStart suppresses the start directive and the post-start
	// commands that follow it.
	OmitStart bool
}

// Generate stages the imported platform description files of def into
// opts.OutputDir, then writes the script to w. Staged files overwrite
// existing files of the same name. It returns the staged file paths.
//
// The first write error aborts generation. w may then hold a partial
// script, which the caller must discard.
func Generate(w io.Writer, def *Definition, opts GenerateOptions) ([]string, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required")
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	staged, err := stage(def, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	s := &scriptWriter{w: w}
	s.writeHeader(def, opts)
	s.writeMachine(def)
	s.writePlatforms(def)
	s.writeReset(def)
	if !opts.OmitStart {
		s.writeStart(def)
	}
	if s.err != nil {
		return nil, s.err
	}
	return staged, nil
}

// stage writes every imported platform description into dir.
func stage(def *Definition, dir string) ([]string, error) {
	var staged []string
	for _, platform := range def.PlatformDescriptions {
		if platform.Kind() != KindImportedFile {
			continue
		}
		path := filepath.Join(dir, platform.FileName())
		if err := os.WriteFile(path, []byte(platform.Content()), 0o644); err != nil {
			return nil, fmt.Errorf("staging platform description %s: %w", path, err)
		}
		staged = append(staged, path)
	}
	return staged, nil
}

// scriptWriter writes lines until the first error, which it keeps.
type scriptWriter struct {
	w   io.Writer
	err error
}

func (s *scriptWriter) line(text string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text+"\n")
}

func (s *scriptWriter) blank() {
	s.line("")
}

// block writes a directive followed by a triple-quoted body.
func (s *scriptWriter) block(directive, body string) {
	s.line(directive)
	s.line(`"""`)
	s.line(body)
	s.line(`"""`)
}

// lines writes each value on its own line, followed by a blank line if
// there was at least one.
func lines[T ~string](s *scriptWriter, values []T) {
	for _, value := range values {
		s.line(string(value))
	}
	if len(values) > 0 {
		s.blank()
	}
}

func (s *scriptWriter) writeHeader(def *Definition, opts GenerateOptions) {
	s.line(":name: " + string(def.Name))
	s.line(":description: " + string(def.Description))
	s.blank()

	if !opts.OmitOutputDirPath {
		s.line("path add " + PathSigil + opts.OutputDir)
		s.blank()
	}

	if opts.UsingSysbus {
		s.line("using sysbus")
		s.blank()
	}
}

func (s *scriptWriter) writeMachine(def *Definition) {
	s.line(`mach create "` + string(def.MachineName) + `"`)
	s.blank()

	lines(s, def.InitCommands)

	for _, variable := range def.Variables {
		s.line(string(variable))
	}
	s.blank()
}

func (s *scriptWriter) writePlatforms(def *Definition) {
	for _, platform := range def.PlatformDescriptions {
		if platform.Kind() == KindInline {
			s.block("machine LoadPlatformDescriptionFromString", platform.Render())
		} else {
			s.line("machine LoadPlatformDescription " + platform.Render())
		}
	}
	s.blank()

	lines(s, def.PreStartCommands)
}

func (s *scriptWriter) writeReset(def *Definition) {
	s.block("macro reset", def.Reset.Render())
	s.blank()

	s.line("runMacro $reset")
	s.blank()
}

func (s *scriptWriter) writeStart(def *Definition) {
	s.line(string(def.StartDirective()))
	s.blank()

	for _, command := range def.PostStartCommands {
		s.line(string(command))
	}
}
