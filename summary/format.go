package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultReportLink is shown in place of a report URL when none is configured. It uses the
// chat markup for a link labelled "View Report".
const DefaultReportLink = "<local-build|View Report>"

const zeroDurationText = "0.00s"

// FormatPercentage rounds value to two decimal places, dropping the fraction if it is ".00".
func FormatPercentage(value float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(value, 'f', 2, 64), ".00")
}

// FormatDuration renders a number of seconds as "5s" or "4.57s".
func FormatDuration(seconds float64) string {
	rounded := strconv.FormatFloat(seconds, 'f', 2, 64)
	if strings.HasSuffix(rounded, ".00") {
		return fmt.Sprintf("%ds", int64(math.Round(seconds)))
	}
	return rounded + "s"
}

// FormatMessage builds the chat message for a run. The field labels and emoji codes are
// matched literally by the chat integration, so the layout must not change.
func FormatMessage(s Summary, reportLink string) string {
	if reportLink == "" {
		reportLink = DefaultReportLink
	}
	lines := []string{
		":white_tick: Playwright Test Results",
		"Total Tests:",
		strconv.Itoa(s.Total),
		":white_tick: Passed:",
		strconv.Itoa(s.Passed()),
		":x: Failed:",
		strconv.Itoa(s.FailedTotal()),
		"Pass Rate:",
		s.PassRateText() + "%",
		fmt.Sprintf(":stopwatch: Duration: %s | :link: %s", s.DurationText(), reportLink),
	}
	return strings.Join(lines, "\n")
}
