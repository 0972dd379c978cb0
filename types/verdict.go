package types

import "time"

// Exit codes of the validator contract.
const (
	ExitAccepted = 0
	ExitRejected = 2
)

// Verdict is the three-way outcome of a single validator invocation.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictRejected Verdict = "rejected"
	// VerdictCrashed covers any other exit code, including timeouts and killed processes.
	VerdictCrashed Verdict = "crashed"
)

// VerdictFromExitCode maps a validator exit code to a Verdict.
func VerdictFromExitCode(code int) Verdict {
	switch code {
	case ExitAccepted:
		return VerdictAccepted
	case ExitRejected:
		return VerdictRejected
	default:
		return VerdictCrashed
	}
}

// RunOutcome is the result of running the validator against one TestFile.
type RunOutcome struct {
	File        TestFile
	Verdict     Verdict
	ExitCode    int
	Diagnostics string        // stderr of the validator, decoded with replacement
	TimedOut    bool          // the invocation hit the timeout; Verdict is VerdictCrashed
	Duration    time.Duration // wall-clock time of the invocation
	Failed      bool          // set during classification
}
