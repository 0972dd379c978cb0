package conform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/ethereum-optimism/infra/op-conform/discovery"
	"github.com/ethereum-optimism/infra/op-conform/reporting"
	"github.com/ethereum-optimism/infra/op-conform/runner"
	"github.com/ethereum-optimism/infra/op-conform/types"
)

// Conformer runs the validator over every discovered test file and reports
// the results. Runs are strictly sequential.
type Conformer struct {
	config   *Config
	executor runner.Executor
	reporter *reporting.Reporter
	log      log.Logger
}

// Option customizes a Conformer.
type Option func(*Conformer)

// WithOutput sets the writer the report is printed to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Conformer) {
		c.reporter = reporting.NewReporter(w, c.config.Colors, c.log)
	}
}

// WithExecutor replaces the validator executor.
func WithExecutor(e runner.Executor) Option {
	return func(c *Conformer) {
		c.executor = e
	}
}

func New(config *Config, opts ...Option) (*Conformer, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	logger := config.Log
	if logger == nil {
		logger = log.Root()
	}

	logger.Debug("Creating conformer with config",
		"testDir", config.TestDir,
		"validator", config.Validator,
		"checkImplDefined", config.CheckImplDefined,
		"timeout", config.Timeout)

	c := &Conformer{
		config: config,
		log:    logger,
	}
	c.reporter = reporting.NewReporter(os.Stdout, config.Colors, logger)
	for _, opt := range opts {
		opt(c)
	}

	if c.executor == nil {
		executor, err := runner.NewExecutor(runner.Config{
			Validator: config.Validator,
			Timeout:   config.Timeout,
			Log:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create validator executor: %w", err)
		}
		c.executor = executor
	}
	return c, nil
}

// Run discovers the tests, runs the must-accept and must-reject categories
// and, when enabled, the implementation-defined category, then prints the
// summary. It returns the tally together with a *TestFailureError when any
// test failed, or a *RuntimeError when the run could not be carried out.
func (c *Conformer) Run(ctx context.Context) (*reporting.Tally, error) {
	runID := uuid.New().String()
	logger := c.log.New("run_id", runID)
	start := time.Now()

	partition, err := discovery.Discover(c.config.TestDir)
	if err != nil {
		return nil, NewRuntimeError(err)
	}
	logger.Debug("Discovered tests",
		"dir", partition.Dir,
		"mustAccept", len(partition.MustAccept),
		"mustReject", len(partition.MustReject),
		"implementationDefined", len(partition.ImplementationDefined))

	tally := reporting.NewTally()
	categories := []types.Category{types.MustAccept, types.MustReject}
	if c.config.CheckImplDefined {
		categories = append(categories, types.ImplementationDefined)
	}

	for _, category := range categories {
		if category == types.ImplementationDefined {
			c.reporter.Separator()
		}
		if err := c.runCategory(ctx, partition.Files(category), tally); err != nil {
			return tally, NewRuntimeError(err)
		}
	}

	if c.config.ShowSummary {
		c.reporter.SummaryTable(tally, categories)
	}
	c.reporter.Summary(tally, c.config.CheckImplDefined)

	logger.Debug("Test run completed",
		"total", tally.Total(),
		"failures", tally.Failures(),
		"duration", time.Since(start))

	if !tally.Passed() {
		return tally, NewTestFailureError(tally.Failures())
	}
	return tally, nil
}

// runCategory runs every file of one category in order and records each
// outcome in tally.
func (c *Conformer) runCategory(ctx context.Context, files []types.TestFile, tally *reporting.Tally) error {
	for _, file := range files {
		outcome, err := c.executor.Execute(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to run %s: %w", file.Path, err)
		}
		c.reporter.Report(outcome, tally)
	}
	return nil
}
