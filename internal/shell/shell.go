// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/matt-FFFFFF/how-install/internal/signalbroker"
)

const (
	goosWindows          = "windows"
	bash                 = "bash"
	binSh                = "/bin/sh"
	commandSwitchUnix    = "-c"
	commandSwitchWindows = "/C"
	winSystemRootEnv     = "SystemRoot"
	shellEnv             = "SHELL"
)

var (
	// ErrEmptyCommand is returned when there is nothing to run.
	ErrEmptyCommand = errors.New("empty install command")
	// ErrCouldNotStartProcess is returned when the shell could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrCouldNotKillProcess is returned when the shell could not be killed.
	ErrCouldNotKillProcess = errors.New("could not kill process")
	// ErrCancelled is returned when the context was cancelled while the command ran.
	ErrCancelled = errors.New("install command cancelled")
	// ErrDuplicateSignalReceived is returned when a repeated signal forced the child to be killed.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// Command is an install command ready to be run by a shell.
type Command struct {
	Path  string   // shell executable
	Args  []string // arguments, not including the executable name
	Stdin *os.File
	Out   *os.File
	Err   *os.File
	sigCh chan os.Signal // allows injecting signals in tests
}

// New wraps command line in the default shell.
func New(ctx context.Context, line string) (*Command, error) {
	if line == "" {
		return nil, ErrEmptyCommand
	}

	sw := commandSwitchUnix
	if runtime.GOOS == goosWindows {
		sw = commandSwitchWindows
	}

	return &Command{
		Path:  defaultShell(ctx),
		Args:  []string{sw, line},
		Stdin: os.Stdin,
		Out:   os.Stdout,
		Err:   os.Stderr,
	}, nil
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return filepath.Join(systemRoot, "System32", "cmd.exe")
	}

	if p, err := exec.LookPath(bash); err == nil {
		return p
	}

	if s := os.Getenv(shellEnv); s != "" {
		ctxlog.Debug(ctx, "bash not found, using SHELL", "shell", s)
		return s
	}

	return binSh
}

// Run starts the shell, waits for it and returns its exit code.
// A non-zero exit code is not an error.
func (c *Command) Run(ctx context.Context) (int, error) {
	logger := ctxlog.Logger(ctx).With("shell", c.Path)

	if c.sigCh == nil {
		c.sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(c.sigCh)
	}

	args := slices.Concat([]string{filepath.Base(c.Path)}, c.Args)

	logger.Debug("starting install command", "args", c.Args)

	ps, err := os.StartProcess(c.Path, args, &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{c.Stdin, c.Out, c.Err},
	})
	if err != nil {
		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var wg sync.WaitGroup

	done := make(chan struct{})
	killed := make(chan error, 1)

	wg.Add(1)

	go func() {
		defer wg.Done()

		seen := make(map[os.Signal]struct{})

		for {
			select {
			case s := <-c.sigCh:
				if _, ok := seen[s]; ok {
					logger.Info("received duplicate signal, killing process", "signal", s.String())
					killed <- errors.Join(ErrDuplicateSignalReceived, kill(ps))

					return
				}

				seen[s] = struct{}{}

				logger.Info("forwarding signal", "signal", s.String())

				if err := ps.Signal(s); err != nil {
					logger.Info("failed to send signal", "signal", s.String(), "error", err)
				}

			case <-ctx.Done():
				logger.Info("context done, killing process")
				killed <- errors.Join(ErrCancelled, kill(ps))

				return

			case <-done:
				return
			}
		}
	}()

	state, err := ps.Wait()

	close(done)
	wg.Wait()

	if err != nil {
		return -1, fmt.Errorf("waiting for %s: %w", c.Path, err)
	}

	select {
	case e := <-killed:
		return -1, e
	default:
	}

	logger.Debug("process finished", "exitCode", state.ExitCode())

	return state.ExitCode(), nil
}

func kill(ps *os.Process) error {
	if err := ps.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return errors.Join(ErrCouldNotKillProcess, err)
	}

	return nil
}
