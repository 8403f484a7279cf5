// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package renode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/renode-run/lib/config"
	"github.com/bureau-foundation/renode-run/lib/resc"
)

// ValidationResult holds the result of a validation check.
type ValidationResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Warning bool   `json:"warning,omitempty"` // True if this is a warning, not an error.
}

// Validator performs pre-flight validation before running the emulator.
type Validator struct {
	results []ValidationResult
	errors  int
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		results: make([]ValidationResult, 0),
	}
}

// Results returns all validation results.
func (v *Validator) Results() []ValidationResult {
	return v.results
}

// HasErrors returns true if any validation failed.
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

func (v *Validator) pass(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
	})
}

// warn records a warning (not a failure).
func (v *Validator) warn(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
		Warning: true,
	})
}

func (v *Validator) fail(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  false,
		Message: message,
	})
	v.errors++
}

// CheckOptions names everything a run would touch.
type CheckOptions struct {
	// ManifestPath is reported in the manifest check.
	ManifestPath string

	// Config is the loaded manifest, or nil when ManifestError is set.
	Config        *config.Config
	ManifestError error

	ExecutablePath string
	OutputDir      string

	// Binary is the resolved emulator binary. BinaryError is set instead
	// when resolution failed.
	Binary      string
	BinaryError error
}

// ValidateAll runs every check. Checks that need the manifest are
// skipped when it failed to load.
func (v *Validator) ValidateAll(opts CheckOptions) {
	v.ValidateManifest(opts.ManifestPath, opts.Config, opts.ManifestError)
	v.ValidateExecutable(opts.ExecutablePath)
	if opts.Config != nil {
		v.ValidatePlatformDescriptions(opts.Config)
		v.ValidateDefinition(opts.Config, opts.ExecutablePath)
	}
	v.ValidateOutputDir(opts.OutputDir)
	if opts.BinaryError != nil {
		v.fail("renode", opts.BinaryError.Error())
	} else {
		v.ValidateBinary(opts.Binary)
	}
}

// ValidateManifest reports the outcome of loading the manifest.
func (v *Validator) ValidateManifest(path string, cfg *config.Config, loadErr error) {
	if loadErr != nil {
		v.fail("manifest", loadErr.Error())
		return
	}
	if cfg == nil {
		v.fail("manifest", "no manifest loaded")
		return
	}
	v.pass("manifest", fmt.Sprintf("loaded: %s", path))
}

// ValidateExecutable checks that the target executable exists and is a
// regular file.
func (v *Validator) ValidateExecutable(path string) {
	if path == "" {
		v.fail("executable", "executable path is required")
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			v.fail("executable", fmt.Sprintf("does not exist: %s", path))
		} else {
			v.fail("executable", fmt.Sprintf("cannot access: %v", err))
		}
		return
	}

	if !info.Mode().IsRegular() {
		v.fail("executable", fmt.Sprintf("not a regular file: %s", path))
		return
	}

	v.pass("executable", fmt.Sprintf("exists: %s (%d bytes)", path, info.Size()))
}

// ValidatePlatformDescriptions classifies each platform description on
// its own, so every bad entry is reported, not only the first.
func (v *Validator) ValidatePlatformDescriptions(cfg *config.Config) {
	inputs := cfg.PlatformDescriptionInputs()
	if len(inputs) == 0 {
		v.fail("platform", resc.ErrMissingPlatformDescription.Error())
		return
	}

	for i, input := range inputs {
		name := fmt.Sprintf("platform[%d]", i)
		description, err := resc.NewPlatformDescription(input)
		if err != nil {
			v.fail(name, err.Error())
			continue
		}
		v.pass(name, fmt.Sprintf("%s: %s", description.Kind(), summarize(description)))
	}
}

// ValidateDefinition builds the full script definition, which covers
// the remaining fields and their ${NAME} references.
func (v *Validator) ValidateDefinition(cfg *config.Config, executablePath string) {
	def, err := resc.NewDefinition(cfg, executablePath)
	if err != nil {
		var platformErr *resc.PlatformDescriptionError
		var notFound *resc.ExecutableNotFoundError
		switch {
		case errors.Is(err, resc.ErrMissingPlatformDescription),
			errors.As(err, &platformErr),
			errors.As(err, &notFound):
			// Already reported by the executable and platform checks.
			v.warn("definition", "skipped: "+err.Error())
		default:
			v.fail("definition", err.Error())
		}
		return
	}
	v.pass("definition", fmt.Sprintf("machine %q, %d variables, %d platform descriptions",
		def.MachineName, len(def.Variables), len(def.PlatformDescriptions)))
}

// ValidateOutputDir checks that the output directory is usable. An
// empty path means a temporary directory, which is always usable.
func (v *Validator) ValidateOutputDir(dir string) {
	if dir == "" {
		v.pass("output", "temporary directory (removed after the run)")
		return
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		v.fail("output", fmt.Sprintf("cannot resolve path: %v", err))
		return
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			v.pass("output", fmt.Sprintf("will be created: %s", absPath))
		} else {
			v.fail("output", fmt.Sprintf("cannot access: %v", err))
		}
		return
	}

	if !info.IsDir() {
		v.fail("output", fmt.Sprintf("not a directory: %s", absPath))
		return
	}

	probe, err := os.CreateTemp(absPath, ".renode-run-probe-*")
	if err != nil {
		v.fail("output", fmt.Sprintf("not writable: %s", absPath))
		return
	}
	probe.Close()
	os.Remove(probe.Name())

	v.pass("output", fmt.Sprintf("writable: %s", absPath))
}

// ValidateBinary checks that the emulator binary can be found and asks
// it for its version.
func (v *Validator) ValidateBinary(binary string) {
	if binary == "" {
		binary = DefaultBinary
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		v.fail("renode", fmt.Sprintf("%s not found (install Renode or set --renode)", binary))
		return
	}

	output, err := exec.Command(path, "--version").Output()
	if err != nil {
		v.warn("renode", fmt.Sprintf("found at %s but --version failed", path))
		return
	}

	version := strings.TrimSpace(string(output))
	if index := strings.IndexByte(version, '\n'); index >= 0 {
		version = version[:index]
	}
	v.pass("renode", fmt.Sprintf("available: %s (%s)", path, version))
}

// PrintResults writes validation results to w, styled when w is a
// terminal.
func (v *Validator) PrintResults(w io.Writer) {
	renderer := lipgloss.NewRenderer(w)
	passStyle := renderer.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle := renderer.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle := renderer.NewStyle().Foreground(lipgloss.Color("1"))
	nameStyle := renderer.NewStyle().Bold(true)

	for _, r := range v.results {
		var prefix string
		switch {
		case !r.Passed:
			prefix = failStyle.Render("✗")
		case r.Warning:
			prefix = warnStyle.Render("⚠")
		default:
			prefix = passStyle.Render("✓")
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, nameStyle.Render(r.Name), r.Message)
	}

	fmt.Fprintln(w)
	if v.HasErrors() {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("Validation failed with %d error(s)", v.errors)))
	} else {
		fmt.Fprintln(w, passStyle.Render("Ready to run renode"))
	}
}

// summarize returns the first line of a description for the report.
func summarize(description resc.PlatformDescription) string {
	text := description.Render()
	if description.Kind() == resc.KindImportedFile {
		return text
	}
	text = strings.TrimSpace(text)
	if index := strings.IndexByte(text, '\n'); index >= 0 {
		return text[:index] + " ..."
	}
	return text
}
