package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/launchdarkly/test-summary-reporter/servicedef"
)

type environment struct {
	ctx        context.Context
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the scope of one test, similar to Go's *testing.T. It can be passed to the
// assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	subtests    int
}

// Run executes action as the root of a test run and returns the results of every test that
// it starts with Context.Run.
//
// Once ctx is done, any test that has not started yet is not executed: it is reported as timed
// out if ctx reached its deadline, or as interrupted otherwise.
func Run(
	ctx context.Context,
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env := &environment{
		ctx:        ctx,
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Context returns the context of the whole test run.
func (c *Context) Context() context.Context {
	return c.env.ctx
}

// Run starts a subtest.
//
// A subtest that itself starts subtests is only reported if its own logic fails; otherwise
// its outcome is represented by those of its subtests.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)
	c.subtests++

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.add(TestResult{TestID: id, Status: servicedef.StatusSkipped})
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	if err := c.env.ctx.Err(); err != nil {
		status := servicedef.StatusInterrupted
		if errors.Is(err, context.DeadlineExceeded) {
			status = servicedef.StatusTimedOut
		}
		c.env.results.add(TestResult{TestID: id, Status: status, Errors: []error{err}})
		c.env.testLogger.TestFinished(id, status, nil)
		return
	}

	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)

	switch {
	case c1.skipped:
		c.env.results.add(TestResult{TestID: id, Status: servicedef.StatusSkipped})
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	case c1.subtests > 0 && !c1.failed:
		// represented by its subtests
	default:
		status := servicedef.StatusPassed
		if c1.failed {
			status = servicedef.StatusFailed
		}
		c.env.results.add(TestResult{TestID: id, Status: status, Errors: c1.errors})
		c.env.testLogger.TestFinished(id, status, c1.debugLogger.Output())
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
