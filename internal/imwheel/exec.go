package imwheel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/google/shlex"
	log "github.com/sirupsen/logrus"
)

// Result holds the outcome of a synchronous command
type Result struct {
	Stdout     string
	Stderr     string
	ExitStatus int
}

// Runner launches external programs
type Runner interface {
	// Run blocks until the process exits and captures its output
	Run(ctx context.Context, argv []string) (Result, error)

	// Start launches the process without waiting for it
	Start(argv []string) error
}

// ParseCommand splits a command line into arguments using shell quoting rules
func ParseCommand(line string) ([]string, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes argv and waits for it. A missing binary or a non-zero exit is
// reported through Result, not as an error.
func (ExecRunner) Run(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, ErrEmptyCommand
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitStatus = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound):
		res.ExitStatus = 127
		res.Stderr = err.Error()
	case ctx.Err() != nil:
		return res, ctx.Err()
	default:
		res.ExitStatus = -1
		res.Stderr = err.Error()
	}
	return res, nil
}

// Start launches argv in the background and reaps it when it exits
func (ExecRunner) Start(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
		log.WithField("cmd", argv[0]).Debug("imwheel: background command exited")
	}()
	return nil
}
