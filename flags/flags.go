package flags

import (
	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	"github.com/ethereum-optimism/infra/op-conform/runner"
)

const EnvVarPrefix = "OP_CONFORM"

// CheckImplDefined is the default for running the implementation-defined
// (i_) category. The category is informational and off unless requested.
const CheckImplDefined = false

const DefaultTestDir = "tests"

var (
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   DefaultTestDir,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TESTDIR"),
		Usage:   "Path to the flat directory of y_/n_/i_ test files",
	}
	Validator = &cli.StringFlag{
		Name:    "validator",
		Value:   runner.DefaultValidator,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "VALIDATOR"),
		Usage:   "Path to the validator binary, invoked as '<validator> <test-file>'",
	}
	ImplDefined = &cli.BoolFlag{
		Name:    "impl-defined",
		Value:   CheckImplDefined,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "IMPL_DEFINED"),
		Usage:   "Also run the implementation-defined (i_) tests. Their results are informational only",
	}
	NoColor = &cli.BoolFlag{
		Name:    "no-color",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "NO_COLOR"),
		Usage:   "Disable ANSI colors in the report",
	}
	Summary = &cli.BoolFlag{
		Name:    "summary",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "SUMMARY"),
		Usage:   "Print a per-category results table before the final summary line",
	}
)

var optionalFlags = []cli.Flag{
	TestDir,
	Validator,
	ImplDefined,
	NoColor,
	Summary,
}

var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = append(Flags, optionalFlags...)
}
