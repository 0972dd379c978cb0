package types

import (
	"path/filepath"
	"strings"
)

// Category classifies a test file by the prefix of its filename.
type Category int

const (
	MustAccept            Category = iota // y_ files, the validator must accept them
	MustReject                            // n_ files, the validator must reject them
	ImplementationDefined                 // i_ files, any non-crash result is informational
)

// Categories lists every category in run order.
var Categories = []Category{MustAccept, MustReject, ImplementationDefined}

var categoryPrefixes = map[Category]string{
	MustAccept:            "y_",
	MustReject:            "n_",
	ImplementationDefined: "i_",
}

var categoryNames = map[Category]string{
	MustAccept:            "must-accept",
	MustReject:            "must-reject",
	ImplementationDefined: "implementation-defined",
}

// Expectation records which validator exit code counts as unexpected for a category.
// Categories without an expectation are informational only.
type Expectation struct {
	Unexpected int
	Defined    bool
}

var expectations = map[Category]Expectation{
	MustAccept:            {Unexpected: ExitRejected, Defined: true},
	MustReject:            {Unexpected: ExitAccepted, Defined: true},
	ImplementationDefined: {},
}

// Prefix returns the filename prefix that selects the category.
func (c Category) Prefix() string {
	return categoryPrefixes[c]
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Expectation returns the expected-outcome record for the category.
func (c Category) Expectation() Expectation {
	return expectations[c]
}

// Mandatory reports whether results in this category affect the final exit status.
func (c Category) Mandatory() bool {
	return c.Expectation().Defined
}

// CategoryFromName derives the category of a test file from its base name.
// The second return value is false when the name carries none of the known prefixes.
func CategoryFromName(name string) (Category, bool) {
	base := filepath.Base(name)
	for _, c := range Categories {
		if strings.HasPrefix(base, c.Prefix()) {
			return c, true
		}
	}
	return 0, false
}

// TestFile is a single test case discovered in the test directory.
type TestFile struct {
	Name     string
	Path     string
	Category Category
}

// NewTestFile builds a TestFile for name inside dir. The category is always
// derived from the name; names without a known prefix are rejected.
func NewTestFile(dir, name string) (TestFile, bool) {
	category, ok := CategoryFromName(name)
	if !ok {
		return TestFile{}, false
	}
	return TestFile{
		Name:     name,
		Path:     filepath.Join(dir, name),
		Category: category,
	}, true
}
