package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/test-summary-reporter/framework"
	"github.com/launchdarkly/test-summary-reporter/servicedef"

	"github.com/fatih/color"
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	failedColor  *color.Color
	skippedColor *color.Color
	stoppedColor *color.Color
}

func NewConsoleTestLogger(out io.Writer, useColor bool) *ConsoleTestLogger {
	c := &ConsoleTestLogger{
		Out:          out,
		failedColor:  color.New(color.FgRed, color.Bold),
		skippedColor: color.New(color.FgYellow),
		stoppedColor: color.New(color.FgMagenta, color.Bold),
	}
	if !useColor {
		for _, cc := range []*color.Color{c.failedColor, c.skippedColor, c.stoppedColor} {
			cc.DisableColor()
		}
	}
	return c
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(
	id framework.TestID,
	status servicedef.TestStatus,
	debugOutput framework.CapturedOutput,
) {
	switch status {
	case servicedef.StatusFailed:
		c.failedColor.Fprintf(c.Out, "  FAILED: %s\n", id)
	case servicedef.StatusTimedOut:
		c.stoppedColor.Fprintf(c.Out, "  TIMED OUT: %s\n", id)
	case servicedef.StatusInterrupted:
		c.stoppedColor.Fprintf(c.Out, "  INTERRUPTED: %s\n", id)
	}
	failed := status.IsFailure()
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		c.skippedColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		c.skippedColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}
