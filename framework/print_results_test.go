package framework

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/launchdarkly/test-summary-reporter/servicedef"
	"github.com/launchdarkly/test-summary-reporter/summary"

	"github.com/stretchr/testify/assert"
)

func TestPrintResults(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("good", func(*Context) {})
		c.Run("bad", func(c *Context) { c.Errorf("first line\nsecond line") })
		c.Run("ignored", func(c *Context) { c.Skip() })
	})

	var buf bytes.Buffer
	PrintResults(&buf, results, false)
	out := buf.String()

	assert.Contains(t, out, "Test results")
	assert.Contains(t, out, "PASS RATE")
	assert.Contains(t, out, "33.33%")
	assert.Contains(t, out, "Failed tests:\n  bad (failed)\n    first line\n    second line\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintResultsWithNoFailures(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("good", func(*Context) {})
	})

	var buf bytes.Buffer
	PrintResults(&buf, results, false)
	assert.Contains(t, buf.String(), "100%")
	assert.NotContains(t, buf.String(), "Failed tests:")
}

func TestPrintResultsAgreesWithSummaryMessage(t *testing.T) {
	results := Results{Tests: []TestResult{
		{TestID: TestID{Path: []string{"a"}}, Status: servicedef.StatusPassed},
		{TestID: TestID{Path: []string{"b"}}, Status: servicedef.StatusPassed},
		{TestID: TestID{Path: []string{"c"}}, Status: servicedef.StatusInterrupted},
		{TestID: TestID{Path: []string{"d"}}, Status: "flaky"},
	}}

	var buf bytes.Buffer
	PrintResults(&buf, results, false)
	message := summary.FormatMessage(summary.Summarize(results.Outcomes(), time.Time{}, time.Time{}), "")

	assert.Contains(t, message, "Pass Rate:\n50%\n")
	assert.Contains(t, buf.String(), "50%")
}
