package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/infra/op-conform/types"
)

const (
	// DefaultValidator is the validator binary, relative to the working directory.
	DefaultValidator = "out/validator"
	// DefaultTimeout is the fixed wall-clock ceiling for one validator invocation.
	DefaultTimeout = time.Second
	// waitDelay bounds how long Wait blocks on the stderr pipe after the
	// validator has exited or been killed (e.g. a grandchild still holds it).
	waitDelay = 100 * time.Millisecond
)

var _ Executor = (*validatorExecutor)(nil)

// Executor runs the validator against a single test file.
type Executor interface {
	// Execute invokes the validator once for file and reports what it observed.
	// Abnormal exits and timeouts are reported as a Crashed verdict, not as an error.
	// An error is returned only when the validator could not be run at all.
	Execute(ctx context.Context, file types.TestFile) (*types.RunOutcome, error)
}

// CmdBuilder creates the command for a validator invocation. The returned
// function is called once the command has finished.
type CmdBuilder func(ctx context.Context, name string, arg ...string) (*exec.Cmd, func())

// Config configures an Executor.
type Config struct {
	Validator  string        // Path to the validator binary
	Timeout    time.Duration // Per-invocation timeout, DefaultTimeout when zero
	CmdBuilder CmdBuilder    // Optional, exec.CommandContext when nil
	Log        log.Logger
}

// validatorExecutor implements Executor
type validatorExecutor struct {
	validator  string
	timeout    time.Duration
	cmdBuilder CmdBuilder
	log        log.Logger
}

// NewExecutor creates a new validator executor
func NewExecutor(cfg Config) (Executor, error) {
	if cfg.Validator == "" {
		return nil, errors.New("validator cannot be empty")
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative: %v", cfg.Timeout)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	cmdBuilder := cfg.CmdBuilder
	if cmdBuilder == nil {
		cmdBuilder = defaultCmdBuilder
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.Root()
	}

	return &validatorExecutor{
		validator:  cfg.Validator,
		timeout:    timeout,
		cmdBuilder: cmdBuilder,
		log:        logger,
	}, nil
}

// Execute runs the validator as `<validator> <path>` with no stdin and a
// discarded stdout. Only the exit code and stderr are inspected.
func (e *validatorExecutor) Execute(ctx context.Context, file types.TestFile) (*types.RunOutcome, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}
	if file.Path == "" {
		return nil, errors.New("test file path cannot be empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd, cleanup := e.cmdBuilder(runCtx, e.validator, file.Path)
	defer cleanup()

	var stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	e.log.Debug("Running validator", "file", file.Path, "category", file.Category, "command", cmd.String())

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	outcome := &types.RunOutcome{
		File:        file,
		Duration:    duration,
		Diagnostics: DecodeDiagnostics(stderr.Bytes()),
	}

	if runErr != nil {
		// The parent context is never cancelled by this program, but honour it anyway.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			e.log.Debug("Validator timed out", "file", file.Path, "timeout", e.timeout)
			outcome.ExitCode = -1
			outcome.TimedOut = true
			outcome.Verdict = types.VerdictCrashed
			return outcome, nil
		}

		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			outcome.ExitCode = exitErr.ExitCode()
		case errors.Is(runErr, exec.ErrWaitDelay) && cmd.ProcessState != nil:
			outcome.ExitCode = cmd.ProcessState.ExitCode()
		default:
			return nil, fmt.Errorf("failed to run validator %s: %w", e.validator, runErr)
		}
	}

	outcome.Verdict = types.VerdictFromExitCode(outcome.ExitCode)
	e.log.Debug("Validator finished",
		"file", file.Path,
		"exitCode", outcome.ExitCode,
		"verdict", outcome.Verdict,
		"duration", duration)
	return outcome, nil
}

func defaultCmdBuilder(ctx context.Context, name string, arg ...string) (*exec.Cmd, func()) {
	return exec.CommandContext(ctx, name, arg...), func() {}
}
