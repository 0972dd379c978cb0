// Package discovery lists a flat test directory and partitions its files
// into categories by filename prefix.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ethereum-optimism/infra/op-conform/types"
)

// DiscoveryError reports that the test directory could not be listed.
// It is fatal: no validator is run when discovery fails.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to discover tests in %s: %v", e.Dir, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Partition holds the discovered test files, one sorted sequence per category.
type Partition struct {
	Dir                   string
	MustAccept            []types.TestFile
	MustReject            []types.TestFile
	ImplementationDefined []types.TestFile
}

// Files returns the sequence for the given category.
func (p *Partition) Files(c types.Category) []types.TestFile {
	switch c {
	case types.MustAccept:
		return p.MustAccept
	case types.MustReject:
		return p.MustReject
	case types.ImplementationDefined:
		return p.ImplementationDefined
	default:
		return nil
	}
}

// Len returns the number of discovered test files across all categories.
func (p *Partition) Len() int {
	return len(p.MustAccept) + len(p.MustReject) + len(p.ImplementationDefined)
}

// Discover lists dir and partitions its entries by prefix. Each sequence is
// sorted ascending by filename. Entries without a known prefix and
// sub-directories are skipped.
func Discover(dir string) (*Partition, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DiscoveryError{Dir: dir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	p := &Partition{Dir: dir}
	for _, name := range names {
		file, ok := types.NewTestFile(dir, name)
		if !ok {
			continue
		}
		switch file.Category {
		case types.MustAccept:
			p.MustAccept = append(p.MustAccept, file)
		case types.MustReject:
			p.MustReject = append(p.MustReject, file)
		case types.ImplementationDefined:
			p.ImplementationDefined = append(p.ImplementationDefined, file)
		}
	}
	return p, nil
}
