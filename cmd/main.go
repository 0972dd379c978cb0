package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	conform "github.com/ethereum-optimism/infra/op-conform"
	"github.com/ethereum-optimism/infra/op-conform/exitcodes"
	"github.com/ethereum-optimism/infra/op-conform/flags"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		// Typed errors have already exited through ExitErrHandler.
		log.Error("Application failed", "message", err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "op-conform"
	app.Usage = "Validator conformance test runner"
	app.Description = "op-conform runs a parser/validator binary against y_/n_/i_ test files and reports unexpected verdicts"
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
			return
		}
		code := exitCode(err)
		if code == exitcodes.TestFailure {
			// The report already ends with the failure banner.
			cli.HandleExitCoder(cli.Exit("", code))
			return
		}
		cli.HandleExitCoder(cli.Exit(err.Error(), code))
	}
	return app
}

// exitCode maps an error returned by the run to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case conform.IsRuntimeError(err):
		return exitcodes.RuntimeErr
	case conform.IsTestFailureError(err):
		return exitcodes.TestFailure
	default:
		return exitcodes.TestFailure
	}
}

func run(ctx *cli.Context) error {
	logCfg := oplog.ReadCLIConfig(ctx)
	logger := oplog.NewLogger(ctx.App.ErrWriter, logCfg)
	oplog.SetGlobalLogHandler(logger.Handler())
	oplog.SetupDefaults()

	cfg, err := conform.NewConfig(ctx, logger)
	if err != nil {
		return conform.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	cfg.Log.Debug("Config",
		"testDir", cfg.TestDir,
		"validator", cfg.Validator,
		"checkImplDefined", cfg.CheckImplDefined,
		"timeout", cfg.Timeout)

	c, err := conform.New(cfg, conform.WithOutput(ctx.App.Writer))
	if err != nil {
		return conform.NewRuntimeError(fmt.Errorf("failed to create conformer: %w", err))
	}

	_, err = c.Run(ctx.Context)
	return err
}
