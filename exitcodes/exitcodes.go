// Package exitcodes defines the exit codes of op-conform.
package exitcodes

// Exit code constants used by op-conform:
//
// * Success (0): every y_ and n_ test produced the expected verdict and nothing crashed
// * TestFailure (1): one or more tests failed, including any crash in any category
// * RuntimeErr (2): the run could not be carried out, e.g. the test directory is missing
const (
	Success     = 0 // All tests pass
	TestFailure = 1 // Test failures
	RuntimeErr  = 2 // Runtime errors
)
