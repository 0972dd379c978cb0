package conform

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/op-conform/flags"
	"github.com/ethereum-optimism/infra/op-conform/runner"
)

// Config holds the application configuration
type Config struct {
	TestDir          string        // Flat directory holding the y_/n_/i_ test files
	Validator        string        // Validator binary, invoked once per test file
	CheckImplDefined bool          // Also run the implementation-defined category
	Timeout          time.Duration // Per-invocation timeout; fixed, not a flag
	Colors           bool          // ANSI colors in the report
	ShowSummary      bool          // Per-category table before the summary line
	Log              log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	testDir := ctx.String(flags.TestDir.Name)
	if testDir == "" {
		return nil, errors.New("test directory is required")
	}
	validator := ctx.String(flags.Validator.Name)
	if validator == "" {
		return nil, errors.New("validator binary is required")
	}

	// Paths are kept as given; they appear verbatim in the report.
	return &Config{
		TestDir:          testDir,
		Validator:        validator,
		CheckImplDefined: ctx.Bool(flags.ImplDefined.Name),
		Timeout:          runner.DefaultTimeout,
		Colors:           !ctx.Bool(flags.NoColor.Name),
		ShowSummary:      ctx.Bool(flags.Summary.Name),
		Log:              log,
	}, nil
}

// DefaultConfig returns the configuration used when no flag is given.
func DefaultConfig(log log.Logger) *Config {
	return &Config{
		TestDir:          flags.DefaultTestDir,
		Validator:        runner.DefaultValidator,
		CheckImplDefined: flags.CheckImplDefined,
		Timeout:          runner.DefaultTimeout,
		Colors:           true,
		Log:              log,
	}
}
