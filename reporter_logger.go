package main

import (
	"github.com/launchdarkly/test-summary-reporter/framework"
	"github.com/launchdarkly/test-summary-reporter/servicedef"
	"github.com/launchdarkly/test-summary-reporter/summary"
)

// reporterTestLogger passes each completed test to a summary.Reporter.
type reporterTestLogger struct {
	reporter *summary.Reporter
}

func (r reporterTestLogger) TestStarted(framework.TestID)      {}
func (r reporterTestLogger) TestError(framework.TestID, error) {}

func (r reporterTestLogger) TestFinished(id framework.TestID, status servicedef.TestStatus, _ framework.CapturedOutput) {
	r.reporter.TestEnd(summary.Outcome{TestID: id.String(), Status: status})
}

func (r reporterTestLogger) TestSkipped(id framework.TestID, _ string) {
	r.reporter.TestEnd(summary.Outcome{TestID: id.String(), Status: servicedef.StatusSkipped})
}
