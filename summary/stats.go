package summary

import (
	"time"

	"github.com/launchdarkly/test-summary-reporter/servicedef"
)

// Outcome is the terminal result of one test. Only Status takes part in aggregation.
type Outcome struct {
	TestID string
	Status servicedef.TestStatus
}

// Counts holds the number of outcomes for each recognized status.
type Counts struct {
	Passed      int
	Failed      int
	Skipped     int
	TimedOut    int
	Interrupted int
}

// FailedTotal is the number of outcomes that count as failures.
func (c Counts) FailedTotal() int {
	return c.Failed + c.TimedOut + c.Interrupted
}

// Of returns the count for one status, or 0 for an unrecognized status.
func (c Counts) Of(status servicedef.TestStatus) int {
	switch status {
	case servicedef.StatusPassed:
		return c.Passed
	case servicedef.StatusFailed:
		return c.Failed
	case servicedef.StatusSkipped:
		return c.Skipped
	case servicedef.StatusTimedOut:
		return c.TimedOut
	case servicedef.StatusInterrupted:
		return c.Interrupted
	default:
		return 0
	}
}

// CountStatuses tallies outcomes by status. Outcomes with an unrecognized status are not
// counted in any bucket.
func CountStatuses(outcomes []Outcome) Counts {
	var c Counts
	for _, o := range outcomes {
		switch o.Status {
		case servicedef.StatusPassed:
			c.Passed++
		case servicedef.StatusFailed:
			c.Failed++
		case servicedef.StatusSkipped:
			c.Skipped++
		case servicedef.StatusTimedOut:
			c.TimedOut++
		case servicedef.StatusInterrupted:
			c.Interrupted++
		}
	}
	return c
}

// Summary is the aggregate view of a run.
type Summary struct {
	Total           int
	Counts          Counts
	PassRate        float64
	DurationSeconds float64
}

// Summarize computes a Summary from outcomes. A zero startTime means the run start was never
// observed, in which case the duration is 0; so is any non-positive elapsed time.
func Summarize(outcomes []Outcome, startTime, endTime time.Time) Summary {
	counts := CountStatuses(outcomes)
	s := Summary{
		Total:  len(outcomes),
		Counts: counts,
	}
	if s.Total > 0 {
		s.PassRate = float64(counts.Passed) / float64(s.Total) * 100
	}
	if !startTime.IsZero() {
		if elapsed := endTime.Sub(startTime).Seconds(); elapsed > 0 {
			s.DurationSeconds = elapsed
		}
	}
	return s
}

// Passed is the number of passed tests.
func (s Summary) Passed() int { return s.Counts.Passed }

// FailedTotal is the number of failed, timed out, and interrupted tests.
func (s Summary) FailedTotal() int { return s.Counts.FailedTotal() }

// PassRateText is the pass rate as rendered in the message, without the percent sign.
func (s Summary) PassRateText() string {
	return FormatPercentage(s.PassRate)
}

// DurationText is the run duration as rendered in the message. A run with no measured
// duration is always shown as "0.00s", which is not what FormatDuration would produce.
func (s Summary) DurationText() string {
	if s.DurationSeconds <= 0 {
		return zeroDurationText
	}
	return FormatDuration(s.DurationSeconds)
}
