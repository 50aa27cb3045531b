package framework

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/launchdarkly/test-summary-reporter/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "started "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}

func (r *recordingTestLogger) TestFinished(id TestID, status servicedef.TestStatus, debugOutput CapturedOutput) {
	r.events = append(r.events, fmt.Sprintf("finished %s %s %d", id, status, len(debugOutput)))
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, fmt.Sprintf("skipped %s (%s)", id, reason))
}

func statusesOf(results Results) []string {
	var ret []string
	for _, t := range results.Tests {
		ret = append(ret, fmt.Sprintf("%s=%s", t.TestID, t.Status))
	}
	return ret
}

func TestRunReportsEachTestOutcome(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(context.Background(), nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Debug("hello %d", 1)
		})
		c.Run("b", func(c *Context) {
			c.Errorf("bad value")
		})
		c.Run("c", func(c *Context) {
			c.SkipWithReason("not supported")
		})
		c.Run("d", func(c *Context) {
			c.FailNow()
		})
		c.Run("e", func(c *Context) {
			panic("oops")
		})
	})

	assert.Equal(t, []string{"a=passed", "b=failed", "c=skipped", "d=failed", "e=failed"}, statusesOf(results))
	assert.False(t, results.OK())
	require.Len(t, results.Failures, 3)
	assert.EqualError(t, results.Failures[0].Errors[0], "bad value")
	assert.EqualError(t, results.Failures[1].Errors[0], "test failed with no failure message")
	assert.Contains(t, results.Failures[2].Errors[0].Error(), "unexpected panic in test: oops")

	assert.Equal(t, []string{
		"started a",
		"finished a passed 1",
		"started b",
		"error b",
		"finished b failed 0",
		"started c",
		"skipped c (not supported)",
		"started d",
		"error d",
		"finished d failed 0",
		"started e",
		"error e",
		"finished e failed 0",
	}, logger.events)
}

func TestContextCanBeUsedWithAssert(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("equal", func(c *Context) {
			assert.Equal(c, 1, 1)
		})
		c.Run("not equal", func(c *Context) {
			require.Equal(c, 1, 2)
			c.Errorf("not reached")
		})
	})
	assert.Equal(t, []string{"equal=passed", "not equal=failed"}, statusesOf(results))
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1)
}

func TestGroupsAreRepresentedBySubtests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(context.Background(), nil, logger, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("one", func(*Context) {})
			c.Run("two", func(c *Context) { c.Errorf("no") })
		})
		c.Run("broken group", func(c *Context) {
			c.Run("three", func(*Context) {})
			c.Errorf("setup failed")
		})
	})

	assert.Equal(t, []string{
		"group/one=passed",
		"group/two=failed",
		"broken group/three=passed",
		"broken group=failed",
	}, statusesOf(results))
}

func TestFilteredTestsAreSkipped(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^slow"))
	ran := false
	logger := &recordingTestLogger{}
	results := Run(context.Background(), filters.AsFilter, logger, func(c *Context) {
		c.Run("slow thing", func(*Context) { ran = true })
		c.Run("fast thing", func(*Context) {})
	})

	assert.False(t, ran)
	assert.Equal(t, []string{"slow thing=skipped", "fast thing=passed"}, statusesOf(results))
	assert.Contains(t, logger.events, "skipped slow thing (excluded by filter parameters)")
}

func TestTestsAfterCancellationAreInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	results := Run(ctx, nil, nil, func(c *Context) {
		c.Run("first", func(*Context) { cancel() })
		c.Run("second", func(*Context) { ran = true })
	})

	assert.False(t, ran)
	assert.Equal(t, []string{"first=passed", "second=interrupted"}, statusesOf(results))
	require.Len(t, results.Failures, 1)
	assert.True(t, errors.Is(results.Failures[0].Errors[0], context.Canceled))
}

func TestTestsAfterDeadlineAreTimedOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	results := Run(ctx, nil, nil, func(c *Context) {
		c.Run("late", func(*Context) {})
	})

	assert.Equal(t, []string{"late=timedOut"}, statusesOf(results))
}

func TestResultsSummary(t *testing.T) {
	results := Run(context.Background(), nil, nil, func(c *Context) {
		c.Run("a", func(*Context) {})
		c.Run("b", func(*Context) {})
		c.Run("c", func(c *Context) { c.Skip() })
	})
	s := results.Summary()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Counts.Of(servicedef.StatusPassed))
	assert.Equal(t, 1, s.Counts.Of(servicedef.StatusSkipped))
	assert.Equal(t, 0, s.Counts.Of(servicedef.StatusFailed))
	assert.Equal(t, "66.67", s.PassRateText())
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		results.Outcomes()[0].TestID, results.Outcomes()[1].TestID, results.Outcomes()[2].TestID,
	})
}

func TestMultiTestLogger(t *testing.T) {
	l1, l2 := &recordingTestLogger{}, &recordingTestLogger{}
	Run(context.Background(), nil, MultiTestLogger{l1, l2}, func(c *Context) {
		c.Run("a", func(*Context) {})
	})
	assert.Equal(t, []string{"started a", "finished a passed 0"}, l1.events)
	assert.Equal(t, l1.events, l2.events)
}
