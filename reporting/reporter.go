package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/op-conform/types"
)

const (
	notePrefix    = "→ "
	SuccessBanner = "All validator tests passed!"
)

var (
	errorColor   = text.Colors{text.FgRed, text.Bold}
	infoColor    = text.Colors{text.FgCyan, text.Bold}
	successColor = text.Colors{text.FgGreen, text.Bold}
)

// Reporter prints one block per failing or notable outcome and the final summary.
// Expected results are not printed.
type Reporter struct {
	out    io.Writer
	colors bool
	log    log.Logger
}

// NewReporter creates a Reporter writing to out. With colors disabled no escape
// sequences are written, and any found in the validator's diagnostics are removed.
func NewReporter(out io.Writer, colors bool, logger log.Logger) *Reporter {
	if logger == nil {
		logger = log.Root()
	}
	return &Reporter{
		out:    out,
		colors: colors,
		log:    logger,
	}
}

// FailureBanner returns the summary line printed when failures occurred.
func FailureBanner(failures int) string {
	return fmt.Sprintf("%d validator failures!", failures)
}

// Report classifies the outcome, records it in the tally and prints it when
// it failed or is informational.
func (r *Reporter) Report(o *types.RunOutcome, tally *Tally) Classification {
	c := Classify(o)
	o.Failed = c.Failed
	tally.Record(o, c)

	r.log.Debug("Classified outcome",
		"file", o.File.Path,
		"category", o.File.Category,
		"verdict", o.Verdict,
		"class", c.Class,
		"failed", c.Failed,
		"timedOut", o.TimedOut)

	var b strings.Builder
	switch c.Class {
	case ClassPass:
		return c
	case ClassCrash, ClassMismatch:
		b.WriteString(o.File.Path + "\n")
		b.WriteString(notePrefix + c.Note + "\n")
		b.WriteString(r.diagnostics(o.Diagnostics))
	case ClassInformational:
		b.WriteString(o.File.Path + "\n")
		if c.Note != "" {
			b.WriteString(notePrefix + c.Note + "\n")
		}
		b.WriteString(r.diagnostics(o.Diagnostics))
	}

	block := b.String()
	switch c.Class {
	case ClassCrash:
		block = r.paint(errorColor, block)
	case ClassInformational:
		block = r.paint(infoColor, block)
	}
	r.write(block)
	return c
}

// Separator prints the blank line that precedes the implementation-defined block.
func (r *Reporter) Separator() {
	r.write("\n")
}

// Summary prints the final banner. A blank line precedes it when the
// implementation-defined block was shown or there were failures.
func (r *Reporter) Summary(tally *Tally, implDefinedChecked bool) {
	if implDefinedChecked || !tally.Passed() {
		r.write("\n")
	}
	if tally.Passed() {
		r.write(r.paint(successColor, SuccessBanner) + "\n")
	} else {
		r.write(r.paint(errorColor, FailureBanner(tally.Failures())) + "\n")
	}
}

// SummaryTable renders per-category counts for the given categories.
func (r *Reporter) SummaryTable(tally *Tally, categories []types.Category) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("Validator Conformance Results")

	t.AppendHeader(table.Row{"Category", "Prefix", "Tests", "Passed", "Failed", "Crashed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Crashed", Align: text.AlignRight},
	})

	var total Stats
	for _, c := range categories {
		s := tally.Stats(c)
		t.AppendRow(table.Row{c.String(), c.Prefix() + "*", s.Total, s.Passed, s.Failed, s.Crashed})
		total.Total += s.Total
		total.Passed += s.Passed
		total.Failed += s.Failed
		total.Crashed += s.Crashed
	}
	t.AppendFooter(table.Row{"TOTAL", "", total.Total, total.Passed, total.Failed, total.Crashed})

	switch {
	case !r.colors:
		t.SetStyle(table.StyleLight)
	case tally.Passed():
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.Render()
}

func (r *Reporter) diagnostics(diag string) string {
	if diag == "" {
		return ""
	}
	if !r.colors {
		diag = stripansi.Strip(diag)
	}
	if !strings.HasSuffix(diag, "\n") {
		diag += "\n"
	}
	return notePrefix + diag
}

func (r *Reporter) paint(colors text.Colors, s string) string {
	if !r.colors {
		return s
	}
	return colors.Sprint(s)
}

func (r *Reporter) write(s string) {
	if _, err := io.WriteString(r.out, s); err != nil {
		r.log.Warn("Failed to write report output", "error", err)
	}
}
