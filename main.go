package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/launchdarkly/test-summary-reporter/framework"
	"github.com/launchdarkly/test-summary-reporter/gotest"
	"github.com/launchdarkly/test-summary-reporter/logging"
	"github.com/launchdarkly/test-summary-reporter/metrics"
	"github.com/launchdarkly/test-summary-reporter/summary"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	exitCodeTestFailures = 1
	exitCodeUsage        = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &cli.App{
		Name:                      "test-summary-reporter",
		Usage:                     `report the results of "go test -json" and post a summary to a chat webhook`,
		Flags:                     commandFlags(),
		Reader:                    stdin,
		Writer:                    stdout,
		ErrWriter:                 stderr,
		DisableSliceFlagSeparator: true,
		ExitErrHandler:            func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return runReporter(c, stdin, stdout, stderr)
		},
	}

	err := app.Run(args)
	if err == nil {
		return 0
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}
	fmt.Fprintln(stderr, err)
	return exitCodeUsage
}

func runReporter(c *cli.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	params, err := readParams(c)
	if err != nil {
		return cli.Exit(err.Error(), exitCodeUsage)
	}

	input := stdin
	if params.inputPath != stdinInput {
		f, err := os.Open(params.inputPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to open test output: %s", err), exitCodeUsage)
		}
		defer f.Close()
		input = f
	}

	runID := uuid.NewString()
	logger := logging.New(stderr, params.debugAll).With(zap.String("run_id", runID))
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := &gotest.EventClock{}
	reporter := summary.New(summary.Config{
		WebhookURL:    params.webhookURL,
		ReportLinkURL: params.reportLinkURL,
		Timeout:       params.timeout,
		Logger:        logger,
		Now:           clock.Now,
	})
	console := NewConsoleTestLogger(stdout, !params.noColor)
	console.DebugOutputOnFailure = params.debug || params.debugAll
	console.DebugOutputOnSuccess = params.debugAll

	framework.PrintFilterDescription(stdout, params.filters)

	results, malformed, feedErr := gotest.Feed(
		ctx,
		input,
		framework.MultiTestLogger{console, reporterTestLogger{reporter: reporter}},
		gotest.Options{
			Filter:      params.filters.AsFilter,
			DebugLogger: logging.Printf(logger),
			Clock:       clock,
			RunStarted:  reporter.Begin,
		},
	)
	if malformed > 0 {
		logger.Warn("ignored malformed lines in test output", zap.Int("count", malformed))
	}
	interrupted := errors.Is(feedErr, context.Canceled)
	if interrupted {
		logger.Warn("test run was interrupted")
	}

	fmt.Fprintln(stdout)
	framework.PrintResults(stdout, results, !params.noColor)
	if cmd := rerunCommand(results); cmd != "" {
		fmt.Fprintf(stdout, "\nTo run the failed tests again:\n  %s\n", cmd)
	}

	// Delivery should still be attempted if the run was interrupted.
	reporter.End(context.WithoutCancel(ctx))

	if params.metricsFile != "" {
		recorder := metrics.NewRecorder()
		recorder.RecordReport(runID, reporter.LastReport())
		if err := recorder.WriteTextfile(params.metricsFile); err != nil {
			logger.Warn("failed to write metrics", zap.Error(err))
		}
	}

	if feedErr != nil && !interrupted {
		return cli.Exit(fmt.Sprintf("failed to read test output: %s", feedErr), exitCodeUsage)
	}
	if !results.OK() {
		return cli.Exit("", exitCodeTestFailures)
	}
	return nil
}
