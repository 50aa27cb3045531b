package gotest

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/launchdarkly/test-summary-reporter/framework"
	"github.com/launchdarkly/test-summary-reporter/servicedef"
)

// Options configures Feed.
type Options struct {
	// Filter selects which tests are reported. Tests it rejects are ignored, along with their
	// subtests.
	Filter framework.Filter
	// DebugLogger receives diagnostics about the stream itself, such as malformed lines.
	DebugLogger framework.Logger
	// Clock, if set, is advanced to the timestamp of each event as it is read.
	Clock *EventClock
	// RunStarted, if set, is called once when the first event is read, after Clock has been
	// advanced to that event's timestamp.
	RunStarted func()
}

type packageState struct {
	name     string
	timedOut bool
	running  map[string]*testState
	runOrder []string
}

type testState struct {
	name           string
	id             framework.TestID
	output         framework.CapturingLogger
	excluded       bool
	subtests       int
	failedSubtests int
}

type feeder struct {
	testLogger framework.TestLogger
	options    Options
	results    framework.Results
	packages   map[string]*packageState
	order      []string
	started    bool
}

type scanResult struct {
	line []byte
	err  error
}

// Feed reads "go test -json" output from r and reports each test to testLogger as it
// completes. It returns the results of all reported tests and the number of lines that could
// not be parsed.
//
// Only leaf tests are reported: a test with subtests is represented by them, unless it failed
// while none of its subtests did. Tests still running in a package when that package reports
// "panic: test timed out" are reported as timed out; tests that never complete for any other
// reason, including ctx being cancelled, are reported as interrupted.
//
// Events are stamped with the time they were produced, so options.Clock can measure a run
// from a saved stream as well as from a live one.
//
// If ctx is cancelled, Feed closes r when it implements io.Closer so that reading stops, and
// returns ctx.Err() along with the results so far.
func Feed(
	ctx context.Context,
	r io.Reader,
	testLogger framework.TestLogger,
	options Options,
) (framework.Results, int, error) {
	if options.DebugLogger == nil {
		options.DebugLogger = framework.NullLogger()
	}
	f := &feeder{
		testLogger: testLogger,
		options:    options,
		packages:   make(map[string]*packageState),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := make(chan scanResult)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- scanResult{line: line}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var malformed int
	for {
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			f.finishAll()
			return f.results, malformed, ctx.Err()
		case res, ok := <-lines:
			if !ok {
				f.finishAll()
				return f.results, malformed, nil
			}
			if res.err != nil {
				f.finishAll()
				return f.results, malformed, fmt.Errorf("reading test output: %w", res.err)
			}
			if len(res.line) == 0 {
				continue
			}
			var event Event
			if err := json.Unmarshal(res.line, &event); err != nil {
				malformed++
				f.options.DebugLogger.Printf("Ignoring malformed line in test output: %s", string(res.line))
				continue
			}
			f.processEvent(event)
		}
	}
}

func (f *feeder) getOrCreatePackage(name string) *packageState {
	if p, ok := f.packages[name]; ok {
		return p
	}
	p := &packageState{name: name, running: make(map[string]*testState)}
	f.packages[name] = p
	f.order = append(f.order, name)
	return p
}

func (f *feeder) processEvent(e Event) {
	if f.options.Clock != nil {
		f.options.Clock.observe(e.Time)
	}
	if !f.started {
		f.started = true
		if f.options.RunStarted != nil {
			f.options.RunStarted()
		}
	}

	pkg := f.getOrCreatePackage(e.Package)
	if e.Action == actionOutput && strings.Contains(e.Output, timeoutPanicText) {
		pkg.timedOut = true
	}

	if e.Test == "" {
		switch e.Action {
		case actionPass, actionFail, actionSkip:
			f.finishPackage(pkg)
		}
		return
	}

	switch e.Action {
	case actionRun:
		f.startTest(pkg, e.Test)
	case actionOutput:
		if t := pkg.running[e.Test]; t != nil {
			when := e.Time
			if when.IsZero() {
				when = time.Now()
			}
			t.output.Append(when, strings.TrimRight(e.Output, "\n"))
		}
	case actionPass:
		f.finishTest(pkg, e.Test, servicedef.StatusPassed)
	case actionFail:
		f.finishTest(pkg, e.Test, servicedef.StatusFailed)
	case actionSkip:
		f.finishTest(pkg, e.Test, servicedef.StatusSkipped)
	}
}

func parentName(test string) string {
	if i := strings.LastIndex(test, "/"); i >= 0 {
		return test[:i]
	}
	return ""
}

func (f *feeder) startTest(pkg *packageState, name string) {
	t := &testState{
		name: name,
		id:   framework.TestID{Path: append([]string{pkg.name}, strings.Split(name, "/")...)},
	}
	parent := pkg.running[parentName(name)]
	if parent != nil {
		parent.subtests++
	}
	t.excluded = (parent != nil && parent.excluded) ||
		(f.options.Filter != nil && !f.options.Filter(t.id))
	pkg.running[name] = t
	pkg.runOrder = append(pkg.runOrder, name)
	if !t.excluded {
		f.testLogger.TestStarted(t.id)
	}
}

func (f *feeder) finishTest(pkg *packageState, name string, status servicedef.TestStatus) {
	t := pkg.running[name]
	if t == nil {
		return
	}
	delete(pkg.running, name)
	if status == servicedef.StatusFailed && pkg.timedOut {
		status = servicedef.StatusTimedOut
	}
	if parent := pkg.running[parentName(name)]; parent != nil && status.IsFailure() {
		parent.failedSubtests++
	}
	if t.excluded {
		return
	}
	if t.subtests > 0 && !(status.IsFailure() && t.failedSubtests == 0) {
		return
	}

	output := t.output.Output()
	messages := failureMessages(output)
	if status == servicedef.StatusSkipped {
		f.results.Tests = append(f.results.Tests, framework.TestResult{TestID: t.id, Status: status})
		f.testLogger.TestSkipped(t.id, strings.Join(messages, "; "))
		return
	}

	result := framework.TestResult{TestID: t.id, Status: status}
	if status.IsFailure() {
		var err error
		if len(messages) > 0 {
			err = errors.New(strings.Join(messages, "\n"))
		} else {
			err = fmt.Errorf("test %s", status)
		}
		result.Errors = []error{err}
		f.results.Failures = append(f.results.Failures, result)
		f.testLogger.TestError(t.id, err)
	}
	f.results.Tests = append(f.results.Tests, result)
	f.testLogger.TestFinished(t.id, status, output)
}

// finishPackage reports any of the package's tests that never completed. Subtests are
// finished before their parents.
func (f *feeder) finishPackage(pkg *packageState) {
	status := servicedef.StatusInterrupted
	if pkg.timedOut {
		status = servicedef.StatusTimedOut
	}
	for i := len(pkg.runOrder) - 1; i >= 0; i-- {
		name := pkg.runOrder[i]
		if _, ok := pkg.running[name]; ok {
			f.finishTest(pkg, name, status)
		}
	}
	pkg.runOrder = nil
}

func (f *feeder) finishAll() {
	for _, name := range f.order {
		f.finishPackage(f.packages[name])
	}
}

var testFrameworkLinePrefixes = []string{
	"=== RUN", "=== PAUSE", "=== CONT", "=== NAME",
	"--- PASS", "--- FAIL", "--- SKIP",
}

// failureMessages returns the lines of a test's output that were written by the test itself,
// rather than the status lines that "go test" adds.
func failureMessages(output framework.CapturedOutput) []string {
	var ret []string
LineLoop:
	for _, m := range output {
		line := strings.TrimSpace(m.Message)
		if line == "" {
			continue
		}
		for _, prefix := range testFrameworkLinePrefixes {
			if strings.HasPrefix(line, prefix) {
				continue LineLoop
			}
		}
		ret = append(ret, line)
	}
	return ret
}
