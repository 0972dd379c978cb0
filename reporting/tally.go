package reporting

import (
	"github.com/ethereum-optimism/infra/op-conform/types"
)

// Stats counts the outcomes of one category.
type Stats struct {
	Total    int
	Passed   int
	Failed   int
	Crashed  int
	TimedOut int
}

// Tally accumulates outcomes across a run. It is owned by the caller and
// passed explicitly to every step that records results.
type Tally struct {
	failures int
	stats    map[types.Category]*Stats
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{stats: make(map[types.Category]*Stats)}
}

// Record adds one classified outcome to the tally.
func (t *Tally) Record(o *types.RunOutcome, c Classification) {
	s, ok := t.stats[o.File.Category]
	if !ok {
		s = &Stats{}
		t.stats[o.File.Category] = s
	}
	s.Total++
	if c.Class == ClassCrash {
		s.Crashed++
	}
	if o.TimedOut {
		s.TimedOut++
	}
	if c.Failed {
		s.Failed++
		t.failures++
	} else {
		s.Passed++
	}
}

// Failures returns the number of failed outcomes recorded so far.
func (t *Tally) Failures() int {
	return t.failures
}

// Passed reports whether no failure has been recorded.
func (t *Tally) Passed() bool {
	return t.failures == 0
}

// Stats returns the counts for a category.
func (t *Tally) Stats(c types.Category) Stats {
	if s, ok := t.stats[c]; ok {
		return *s
	}
	return Stats{}
}

// Total returns the number of recorded outcomes across all categories.
func (t *Tally) Total() int {
	total := 0
	for _, s := range t.stats {
		total += s.Total
	}
	return total
}
