package framework

import (
	"fmt"
	"strings"
	"time"

	"github.com/launchdarkly/test-summary-reporter/servicedef"
	"github.com/launchdarkly/test-summary-reporter/summary"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID TestID
	Status servicedef.TestStatus
	Errors []error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Outcomes converts the results to the form that summary.Reporter records.
func (r Results) Outcomes() []summary.Outcome {
	ret := make([]summary.Outcome, 0, len(r.Tests))
	for _, t := range r.Tests {
		ret = append(ret, summary.Outcome{TestID: t.TestID.String(), Status: t.Status})
	}
	return ret
}

// Summary computes counts and pass rate the same way the run summary message does. It has no
// duration.
func (r Results) Summary() summary.Summary {
	return summary.Summarize(r.Outcomes(), time.Time{}, time.Time{})
}

func (r *Results) add(result TestResult) {
	r.Tests = append(r.Tests, result)
	if result.Status.IsFailure() {
		r.Failures = append(r.Failures, result)
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID with an additional path component.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
