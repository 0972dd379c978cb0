package reporting

import (
	"github.com/ethereum-optimism/infra/op-conform/types"
)

// Class is the reporting class of a single run outcome.
type Class int

const (
	// ClassPass is an expected result. Nothing is printed for it.
	ClassPass Class = iota
	// ClassMismatch is a normal exit (0 or 2) that the category did not expect.
	ClassMismatch
	// ClassCrash is any exit code outside {0, 2}, including timeouts.
	ClassCrash
	// ClassInformational is a non-crash result of an implementation-defined test.
	ClassInformational
)

func (c Class) String() string {
	switch c {
	case ClassPass:
		return "pass"
	case ClassMismatch:
		return "mismatch"
	case ClassCrash:
		return "crash"
	case ClassInformational:
		return "informational"
	default:
		return "unknown"
	}
}

const (
	NoteCrashed             = "Parser crashed"
	NoteShouldHaveFailed    = "Parsing should have failed"
	NoteShouldHaveSucceeded = "Parsing should have succeeded"
	NoteSuccess             = "Success"
)

// Classification is the verdict of comparing an outcome against its category's expectation.
type Classification struct {
	Class  Class
	Failed bool
	Note   string // may be empty
}

// Classify compares the observed exit code with the expectation of the
// outcome's category. Crashes fail in every category; implementation-defined
// results never fail otherwise.
func Classify(o *types.RunOutcome) Classification {
	if o.Verdict == types.VerdictCrashed || types.VerdictFromExitCode(o.ExitCode) == types.VerdictCrashed {
		return Classification{Class: ClassCrash, Failed: true, Note: NoteCrashed}
	}

	expectation := o.File.Category.Expectation()
	if !expectation.Defined {
		c := Classification{Class: ClassInformational}
		if o.ExitCode == types.ExitAccepted {
			c.Note = NoteSuccess
		}
		return c
	}

	if o.ExitCode == expectation.Unexpected {
		c := Classification{Class: ClassMismatch, Failed: true}
		switch expectation.Unexpected {
		case types.ExitAccepted:
			c.Note = NoteShouldHaveFailed
		case types.ExitRejected:
			c.Note = NoteShouldHaveSucceeded
		}
		return c
	}

	return Classification{Class: ClassPass}
}
