package framework

import "github.com/launchdarkly/test-summary-reporter/servicedef"

// TestLogger receives lifecycle notifications for each test. TestFinished is called with one
// of the non-skipped statuses; skipped tests are reported through TestSkipped instead.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, status servicedef.TestStatus, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                         {}
func (n nullTestLogger) TestError(TestID, error)                                    {}
func (n nullTestLogger) TestFinished(TestID, servicedef.TestStatus, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                                 {}

// MultiTestLogger forwards every notification to each of its loggers in order.
type MultiTestLogger []TestLogger

func (m MultiTestLogger) TestStarted(id TestID) {
	for _, l := range m {
		l.TestStarted(id)
	}
}

func (m MultiTestLogger) TestError(id TestID, err error) {
	for _, l := range m {
		l.TestError(id, err)
	}
}

func (m MultiTestLogger) TestFinished(id TestID, status servicedef.TestStatus, debugOutput CapturedOutput) {
	for _, l := range m {
		l.TestFinished(id, status, debugOutput)
	}
}

func (m MultiTestLogger) TestSkipped(id TestID, reason string) {
	for _, l := range m {
		l.TestSkipped(id, reason)
	}
}
