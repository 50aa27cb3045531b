package servicedef

// TestStatus is the terminal status of a single test, using the same names that test runners
// such as Playwright put on the wire.
type TestStatus string

const (
	StatusPassed      TestStatus = "passed"
	StatusFailed      TestStatus = "failed"
	StatusSkipped     TestStatus = "skipped"
	StatusTimedOut    TestStatus = "timedOut"
	StatusInterrupted TestStatus = "interrupted"
)

// AllStatuses lists every recognized status in display order.
var AllStatuses = []TestStatus{
	StatusPassed,
	StatusFailed,
	StatusSkipped,
	StatusTimedOut,
	StatusInterrupted,
}

// IsKnown returns true if s is one of the recognized statuses.
func (s TestStatus) IsKnown() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsFailure returns true for the statuses that count against the pass rate: failed, timed
// out, and interrupted.
func (s TestStatus) IsFailure() bool {
	return s == StatusFailed || s == StatusTimedOut || s == StatusInterrupted
}
