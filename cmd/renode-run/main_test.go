// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/bureau-foundation/renode-run/cmd/renode-run/cli"
	"github.com/bureau-foundation/renode-run/lib/process"
	"github.com/bureau-foundation/renode-run/lib/renode"
	"github.com/bureau-foundation/renode-run/lib/resc"
	"github.com/bureau-foundation/renode-run/lib/testutil"
	"github.com/bureau-foundation/renode-run/lib/version"
)

// fixture is a manifest, a firmware image and a fake renode binary that
// records its arguments.
type fixture struct {
	dir      string
	manifest string
	firmware string
	renode   string
	argsFile string
}

func newFixture(t *testing.T, renodeExit int) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{dir: dir, argsFile: filepath.Join(dir, "renode.args")}
	f.firmware = testutil.WriteFile(t, dir, "target/blinky", "\x7fELF")
	f.renode = testutil.Executable(t, dir, "bin/renode-fake",
		`echo "$@" > '`+f.argsFile+`'`+"\nexit "+strconv.Itoa(renodeExit))
	f.manifest = testutil.WriteFile(t, dir, "renode.yaml", `
name: blinky
machine-name: ${RENODE_RUN_TEST_BOARD}
platform-description: "@platforms/cpus/stm32f4.repl"
hide-log: true
port: 1234
environment-variables:
  - [RENODE_RUN_TEST_BOARD, stm32f4]
`)
	return f
}

// newTestApp returns an app writing to buffers. Manifest environment
// variables go through t.Setenv so they are restored after the test.
func newTestApp(t *testing.T, environ map[string]string) (*app, *bytes.Buffer) {
	t.Helper()
	if environ == nil {
		environ = map[string]string{}
	}
	var stdout bytes.Buffer
	return &app{
		stdin:   strings.NewReader(""),
		stdout:  &stdout,
		stderr:  io.Discard,
		environ: environ,
		setenv: func(key, value string) error {
			t.Setenv(key, value)
			return nil
		},
		newLogger: func(level slog.Level) *slog.Logger {
			return cli.NewLogger(io.Discard, level, false)
		},
	}, &stdout
}

// execute builds the command tree for a and runs it with args.
func execute(a *app, args []string) error {
	root, err := a.root()
	if err != nil {
		return err
	}
	return root.Execute(args)
}

func (f *fixture) recordedArgs(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.argsFile)
	if err != nil {
		t.Fatalf("renode was not run: %v", err)
	}
	return strings.Fields(string(data))
}

func TestRunGeneratesAndRunsRenode(t *testing.T) {
	f := newFixture(t, 0)
	a, _ := newTestApp(t, nil)
	output := filepath.Join(f.dir, "out")

	err := execute(a, []string{"--renode", f.renode, "-c", f.manifest, "-o", output, f.firmware})
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	scriptPath := filepath.Join(output, "emulate.resc")
	args := f.recordedArgs(t)
	expected := []string{"--port", "1234", "--hide-log", scriptPath}
	if strings.Join(args, " ") != strings.Join(expected, " ") {
		t.Errorf("renode args = %q, want %q", args, expected)
	}

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("script not kept in the output directory: %v", err)
	}
	for _, line := range []string{
		":name: blinky",
		`mach create "stm32f4"`,
		"$bin = @" + f.firmware,
		"machine LoadPlatformDescription @platforms/cpus/stm32f4.repl",
	} {
		if !strings.Contains(string(script), line+"\n") {
			t.Errorf("script missing line %q:\n%s", line, script)
		}
	}
}

func TestRunSubcommandMatchesRoot(t *testing.T) {
	f := newFixture(t, 0)
	a, _ := newTestApp(t, nil)
	output := filepath.Join(f.dir, "out")

	if err := execute(a, []string{"run", "--renode", f.renode, "-c", f.manifest, "-o", output, f.firmware}); err != nil {
		t.Fatalf("execute(run) error: %v", err)
	}
	args := f.recordedArgs(t)
	if last := args[len(args)-1]; last != filepath.Join(output, "emulate.resc") {
		t.Errorf("script argument = %q, want %q", last, filepath.Join(output, "emulate.resc"))
	}
}

func TestRunRemovesTemporaryDirectory(t *testing.T) {
	f := newFixture(t, 0)
	a, _ := newTestApp(t, map[string]string{"RENODE_RUN_RENODE_BIN": f.renode})

	if err := execute(a, []string{"-c", f.manifest, f.firmware}); err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	args := f.recordedArgs(t)
	scriptPath := args[len(args)-1]
	outputDir := filepath.Dir(scriptPath)
	if filepath.Base(outputDir) != temporaryOutputName {
		t.Errorf("output directory = %q, want a %q directory", outputDir, temporaryOutputName)
	}
	if _, err := os.Stat(filepath.Dir(outputDir)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary directory %s still exists after the run (stat error: %v)", filepath.Dir(outputDir), err)
	}
}

func TestRunPassesThroughExitCode(t *testing.T) {
	f := newFixture(t, 3)
	a, _ := newTestApp(t, nil)

	err := execute(a, []string{"--renode", f.renode, "-c", f.manifest, "-o", filepath.Join(f.dir, "out"), f.firmware})
	if code, ok := renode.IsExitError(err); !ok || code != 3 {
		t.Fatalf("execute() error = %v, want renode exit code 3", err)
	}
	if code := process.Report(io.Discard, err); code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRunNoRunKeepsTemporaryDirectory(t *testing.T) {
	f := newFixture(t, 0)
	a, stdout := newTestApp(t, nil)

	if err := execute(a, []string{"--no-run", "-c", f.manifest, f.firmware}); err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	scriptPath := strings.TrimSpace(stdout.String())
	t.Cleanup(func() { os.RemoveAll(filepath.Dir(filepath.Dir(scriptPath))) })

	if _, err := os.Stat(scriptPath); err != nil {
		t.Errorf("printed script path %q does not exist: %v", scriptPath, err)
	}
	if _, err := os.Stat(f.argsFile); !errors.Is(err, os.ErrNotExist) {
		t.Error("renode was run despite --no-run")
	}
}

func TestRunErrors(t *testing.T) {
	f := newFixture(t, 0)
	output := filepath.Join(f.dir, "out")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no executable", []string{"-c", f.manifest}, "executable path is required"},
		{"two executables", []string{"-c", f.manifest, f.firmware, f.firmware}, "expected one executable path"},
		{"missing executable", []string{"-c", f.manifest, "-o", output, filepath.Join(f.dir, "missing")}, "could not be found"},
		{"missing manifest", []string{"-c", filepath.Join(f.dir, "absent.yaml"), f.firmware}, "absent.yaml"},
		{"unknown flag", []string{"--outptu", output, f.firmware}, "did you mean --output?"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, _ := newTestApp(t, nil)
			err := execute(a, test.args)
			if err == nil {
				t.Fatal("execute() succeeded")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("execute() error = %q, want it to contain %q", err, test.want)
			}
		})
	}
}

func TestGenerateJSON(t *testing.T) {
	f := newFixture(t, 0)
	a, stdout := newTestApp(t, nil)
	output := filepath.Join(f.dir, "out")

	if err := execute(a, []string{"generate", "--json", "-c", f.manifest, "-o", output, f.firmware}); err != nil {
		t.Fatalf("execute(generate) error: %v", err)
	}

	var result resc.Result
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("decoding %q: %v", stdout.String(), err)
	}
	if result.Script.Path != filepath.Join(output, "emulate.resc") {
		t.Errorf("script path = %q, want %q", result.Script.Path, filepath.Join(output, "emulate.resc"))
	}
	if !strings.HasPrefix(result.Script.Digest, "blake3:") {
		t.Errorf("script digest = %q, want a blake3 digest", result.Script.Digest)
	}
	if len(result.Staged) != 0 {
		t.Errorf("staged = %v, want none", result.Staged)
	}
	if _, err := os.Stat(f.argsFile); !errors.Is(err, os.ErrNotExist) {
		t.Error("generate ran renode")
	}
}

func TestCheckPasses(t *testing.T) {
	f := newFixture(t, 0)
	a, stdout := newTestApp(t, map[string]string{"RENODE_RUN_CONFIG_FILE": f.manifest})

	if err := execute(a, []string{"check", "--renode", f.renode, f.firmware}); err != nil {
		t.Fatalf("execute(check) error: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout.String(), "Ready to run renode") {
		t.Errorf("check output missing the ready line:\n%s", stdout)
	}
}

func TestCheckFailsWithExitCode(t *testing.T) {
	f := newFixture(t, 0)
	a, stdout := newTestApp(t, nil)

	err := execute(a, []string{"check", "--json", "--renode", f.renode, "-c", f.manifest, filepath.Join(f.dir, "missing")})
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("execute(check) error = %v, want exit code 1", err)
	}

	var results []renode.ValidationResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decoding %q: %v", stdout.String(), err)
	}
	var failed []string
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result.Name)
		}
	}
	if strings.Join(failed, ",") != "executable" {
		t.Errorf("failed checks = %q, want [executable]", failed)
	}
}

func TestVersion(t *testing.T) {
	a, stdout := newTestApp(t, nil)
	if err := execute(a, []string{"version"}); err != nil {
		t.Fatalf("execute(version) error: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != version.Full() {
		t.Errorf("version = %q, want %q", got, version.Full())
	}

	stdout.Reset()
	if err := execute(a, []string{"version", "--json"}); err != nil {
		t.Fatalf("execute(version --json) error: %v", err)
	}
	var info version.BuildInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		t.Fatalf("decoding %q: %v", stdout.String(), err)
	}
	if info.Version != version.Version {
		t.Errorf("version = %q, want %q", info.Version, version.Version)
	}
}

func TestRootRejectsMalformedEnvironment(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"RENODE_RUN_DEBUG": "sometimes"})
	if _, err := a.root(); err == nil || !strings.Contains(err.Error(), "reading environment") {
		t.Errorf("root() error = %v, want an environment error", err)
	}
}
