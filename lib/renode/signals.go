// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package renode

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// forwardedSignals reach renode-run but not the emulator on their own.
var forwardedSignals = []os.Signal{unix.SIGTERM, unix.SIGHUP}

// terminalSignals are delivered by the terminal to the whole foreground
// process group, emulator included. renode-run catches them while the
// emulator runs so that Ctrl-C stops only the emulator, and renode-run
// can still clean up after it.
var terminalSignals = []os.Signal{unix.SIGINT, unix.SIGQUIT}

func isForwarded(sig os.Signal) bool {
	for _, forwarded := range forwardedSignals {
		if sig == forwarded {
			return true
		}
	}
	return false
}

func forward(process *os.Process, sig os.Signal) error {
	number, ok := sig.(syscall.Signal)
	if !ok {
		return fmt.Errorf("cannot forward non-POSIX signal %v", sig)
	}
	return unix.Kill(process.Pid, number)
}

func terminate(process *os.Process) error {
	if process == nil {
		return os.ErrProcessDone
	}
	if err := unix.Kill(process.Pid, unix.SIGTERM); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	return nil
}
