package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/test-summary-reporter/servicedef"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintResults writes a table of test counts by status, followed by the list of failures.
func PrintResults(w io.Writer, results Results, useColor bool) {
	s := results.Summary()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Test results")
	t.AppendHeader(table.Row{"Status", "Tests"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Tests", Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	for _, status := range servicedef.AllStatuses {
		t.AppendRow(table.Row{string(status), s.Counts.Of(status)})
	}
	t.AppendFooter(table.Row{"TOTAL", s.Total})
	t.AppendFooter(table.Row{"PASS RATE", s.PassRateText() + "%"})

	switch {
	case !useColor:
		t.SetStyle(table.StyleLight)
	case !results.OK():
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	case s.Counts.Skipped > 0:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}
	t.Render()

	if len(results.Failures) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Failed tests:")
	for _, f := range results.Failures {
		fmt.Fprintf(w, "  %s (%s)\n", f.TestID, f.Status)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
}
