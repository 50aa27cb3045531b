package main

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/test-summary-reporter/framework"
	"github.com/launchdarkly/test-summary-reporter/servicedef"
	"github.com/launchdarkly/test-summary-reporter/summary"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameworkRunFeedsReporter(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		reporter := summary.New(summary.Config{WebhookURL: server.URL, ReportLinkURL: "https://ci.example.com/9"})
		testLogger := framework.MultiTestLogger{reporterTestLogger{reporter: reporter}}

		reporter.Begin()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		results := framework.Run(ctx, nil, testLogger, func(c *framework.Context) {
			c.Run("group", func(c *framework.Context) {
				c.Run("passes", func(c *framework.Context) {})
				c.Run("fails", func(c *framework.Context) {
					c.Errorf("wrong answer")
				})
			})
			c.Run("skips", func(c *framework.Context) {
				c.SkipWithReason("not supported")
			})
			cancel()
			c.Run("never starts", func(c *framework.Context) {
				c.Errorf("should not run")
			})
		})
		assert.Len(t, results.Tests, 4)

		expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancelExpired()
		framework.Run(expired, nil, testLogger, func(c *framework.Context) {
			c.Run("too late", func(c *framework.Context) {})
		})

		reporter.End(context.Background())

		report := reporter.LastReport()
		assert.Equal(t, 5, report.Summary.Total)
		assert.Equal(t, summary.Counts{Passed: 1, Failed: 1, Skipped: 1, TimedOut: 1, Interrupted: 1},
			report.Summary.Counts)
		assert.Equal(t, "20", report.Summary.PassRateText())
		assert.Equal(t, summary.Delivered, report.Delivery.Status)

		require.Len(t, requestsCh, 1)
		text := receivedText(t, (<-requestsCh).Body)
		assert.Contains(t, text, "Total Tests:\n5\n:white_tick: Passed:\n1\n:x: Failed:\n3\nPass Rate:\n20%\n")
		assert.Contains(t, text, "| :link: https://ci.example.com/9")
	})
}

func TestReporterTestLoggerRecordsStatuses(t *testing.T) {
	reporter := summary.New(summary.Config{})
	logger := reporterTestLogger{reporter: reporter}
	id := framework.TestID{Path: []string{"p", "TestX"}}

	logger.TestStarted(id)
	logger.TestFinished(id, servicedef.StatusPassed, nil)
	logger.TestSkipped(id, "excluded")
	logger.TestFinished(id, servicedef.StatusInterrupted, nil)

	assert.Equal(t, summary.Counts{Passed: 1, Skipped: 1, Interrupted: 1}, reporter.Summary().Counts)
}
