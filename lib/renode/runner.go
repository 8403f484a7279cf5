// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package renode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"time"
)

// waitDelay bounds how long Run waits for the emulator's output pipes to
// close after it exits or is canceled.
const waitDelay = 5 * time.Second

// Runner runs the emulator on one script.
type Runner struct {
	// Binary is the emulator executable, a path or a name on PATH.
	Binary string

	// Args are emulator flags placed before the script path.
	Args []string

	// Script is the path of the generated .resc file.
	Script string

	// Env is the emulator's environment. Nil inherits the environment of
	// renode-run, including manifest environment-variables exported
	// earlier.
	Env []string

	// Stdin, Stdout and Stderr are connected to the emulator. Nil
	// connects the null device.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Argv returns the emulator command line, binary first.
func (r *Runner) Argv() []string {
	argv := make([]string, 0, len(r.Args)+2)
	argv = append(argv, r.Binary)
	argv = append(argv, r.Args...)
	return append(argv, r.Script)
}

// Command builds the emulator command without starting it. Canceling
// ctx sends the emulator SIGTERM.
func (r *Runner) Command(ctx context.Context) (*exec.Cmd, error) {
	if r.Binary == "" {
		return nil, errors.New("renode binary is required")
	}
	if r.Script == "" {
		return nil, errors.New("script path is required")
	}

	cmd := exec.CommandContext(ctx, r.Binary, append(append([]string{}, r.Args...), r.Script)...)
	cmd.Env = r.Env
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Cancel = func() error { return terminate(cmd.Process) }
	cmd.WaitDelay = waitDelay
	return cmd, nil
}

// Run starts the emulator and waits for it to exit. A non-zero exit
// status is returned as *ExitError.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cmd, err := r.Command(ctx)
	if err != nil {
		return err
	}

	logger.Debug("starting renode", "argv", r.Argv())
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", r.Binary, err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, append(forwardedSignals, terminalSignals...)...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				if !isForwarded(sig) {
					// The terminal delivered it to the emulator too.
					logger.Debug("renode received signal from the terminal", "signal", sig)
					continue
				}
				logger.Debug("forwarding signal to renode", "signal", sig, "pid", cmd.Process.Pid)
				if err := forward(cmd.Process, sig); err != nil {
					logger.Warn("forwarding signal to renode failed", "signal", sig, "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	signal.Stop(signals)
	close(done)

	if ctx.Err() != nil {
		return fmt.Errorf("renode interrupted: %w", ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debug("renode exited", "code", exitErr.ExitCode())
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("renode failed: %w", err)
	}
	logger.Debug("renode exited", "code", 0)
	return nil
}

// ExitError represents a non-zero exit from the emulator. Code is -1
// when the emulator was killed by a signal.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("renode exited with code %d", e.Code)
}

// ExitCode returns the code renode-run should exit with. A signal death
// maps to 1.
func (e *ExitError) ExitCode() int {
	if e.Code < 0 {
		return 1
	}
	return e.Code
}

// IsExitError checks if an error is an ExitError and returns the code.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
