package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"jtr/internal/domain"
)

// Formatter renders run summaries, suite lists and single outcomes for
// the terminal.
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintRunStats prints the run's summary line.
func (f *Formatter) PrintRunStats(output *domain.RunOutput) {
	m := output.Meta
	fmt.Println()
	if m.Failed == 0 && m.Incomplete == 0 {
		color.Green("✓ %d suites passed (%s)", m.Passed, m.Duration)
	} else {
		color.Red("✗ %d failed, %d passed, %d skipped, %d incomplete (%s)",
			m.Failed, m.Passed, m.Skipped, m.Incomplete, m.Duration)
	}
	for _, o := range output.Outcomes {
		if o.Status == domain.StatusFail {
			fmt.Printf("  %s %s\n", color.RedString("✗"), o.Suite)
		}
	}
}

// PrintSuites prints discovered suites, one per line. With methods set,
// method-granularity suites are listed; otherwise the classes.
func (f *Formatter) PrintSuites(suites []domain.TestSuite, methods bool) {
	want := domain.GranularityClass
	if methods {
		want = domain.GranularityMethod
	}
	count := 0
	for _, s := range suites {
		if s.Granularity != want {
			continue
		}
		fmt.Println(s.Name)
		count++
	}
	what := "test classes"
	if methods {
		what = "test methods"
	}
	color.Cyan("\n%d %s found", count, what)
}

// RenderOutcome renders one suite's recorded outcome as a read-only
// plain-text document.
func (f *Formatter) RenderOutcome(o *domain.TestOutcome) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\n", o.Suite, o.Status, o.Duration)
	for _, a := range o.Assertions {
		verdict := "pass"
		if !a.Passed {
			verdict = "fail"
		}
		fmt.Fprintf(w, "  [%s]\t%s\n", verdict, a.Message)
		for _, frame := range a.Trace {
			fmt.Fprintf(w, "    %s\n", frame)
		}
	}
	if len(o.Output) > 0 {
		fmt.Fprintf(w, "\noutput:\n")
		for _, line := range o.Output {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	w.Flush()
	return builder.String()
}
