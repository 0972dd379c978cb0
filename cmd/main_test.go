package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	conform "github.com/ethereum-optimism/infra/op-conform"
	"github.com/ethereum-optimism/infra/op-conform/exitcodes"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitcodes.Success},
		{name: "test failure", err: conform.NewTestFailureError(3), want: exitcodes.TestFailure},
		{name: "runtime error", err: conform.NewRuntimeError(errors.New("no such directory")), want: exitcodes.RuntimeErr},
		{name: "wrapped runtime error", err: fmt.Errorf("outer: %w", conform.NewRuntimeError(errors.New("inner"))), want: exitcodes.RuntimeErr},
		{name: "unspecified", err: errors.New("boom"), want: exitcodes.TestFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

// TestExitCodeBehavior runs the CLI in-process with the shell standing in for
// the validator and verifies the resulting exit codes:
// - Exit code 0 when all tests pass
// - Exit code 1 when any test fails or crashes
// - Exit code 2 when the test directory is missing
func TestExitCodeBehavior(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skipf("requires /bin/sh: %v", err)
	}

	testCases := []struct {
		name           string
		files          map[string]string
		missingDir     bool
		extraArgs      []string
		expectedStatus int
		expectedOutput string
	}{
		{
			name: "passing tests should exit with code 0",
			files: map[string]string{
				"y_ok.test":  "exit 0\n",
				"n_bad.test": "exit 2\n",
			},
			expectedStatus: exitcodes.Success,
			expectedOutput: "All validator tests passed!",
		},
		{
			name: "rejected y_ test should exit with code 1",
			files: map[string]string{
				"y_broken.test": "exit 2\n",
			},
			expectedStatus: exitcodes.TestFailure,
			expectedOutput: "1 validator failures!",
		},
		{
			name: "accepted n_ test should exit with code 1",
			files: map[string]string{
				"n_lenient.test": "exit 0\n",
			},
			expectedStatus: exitcodes.TestFailure,
			expectedOutput: "Parsing should have failed",
		},
		{
			name: "crash should exit with code 1",
			files: map[string]string{
				"n_abort.test": "exit 134\n",
			},
			expectedStatus: exitcodes.TestFailure,
			expectedOutput: "Parser crashed",
		},
		{
			name: "implementation-defined tests do not fail the run",
			files: map[string]string{
				"i_weird.test": "exit 2\n",
			},
			extraArgs:      []string{"--impl-defined"},
			expectedStatus: exitcodes.Success,
			expectedOutput: "i_weird.test",
		},
		{
			name:           "missing test directory should exit with code 2",
			missingDir:     true,
			expectedStatus: exitcodes.RuntimeErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testDir := t.TempDir()
			for name, script := range tc.files {
				require.NoError(t, os.WriteFile(filepath.Join(testDir, name), []byte(script), 0o644))
			}
			if tc.missingDir {
				testDir = filepath.Join(testDir, "non-existent-dir")
			}

			var stdout, stderr bytes.Buffer
			status := exitcodes.Success
			app := newApp()
			app.Writer = &stdout
			app.ErrWriter = &stderr
			// The real handler exits the process; record the code instead.
			app.ExitErrHandler = func(c *cli.Context, err error) {
				status = exitCode(err)
			}

			args := append([]string{"op-conform",
				"--testdir", testDir,
				"--validator", "/bin/sh",
				"--no-color",
				"--log.level", "error",
			}, tc.extraArgs...)
			err := app.Run(args)

			if tc.expectedStatus == exitcodes.Success {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			assert.Equal(t, tc.expectedStatus, status, "stdout: %s\nstderr: %s", stdout.String(), stderr.String())
			if tc.expectedOutput != "" {
				assert.Contains(t, stdout.String(), tc.expectedOutput)
			}
			assert.NotContains(t, stdout.String(), "\x1b[", "--no-color output must be plain")
		})
	}
}
