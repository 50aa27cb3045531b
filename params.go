package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/launchdarkly/test-summary-reporter/framework"
	"github.com/launchdarkly/test-summary-reporter/summary"

	"github.com/alessio/shellescape"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	flagWebhookURL  = "webhook-url"
	flagReportLink  = "report-link"
	flagTimeout     = "timeout"
	flagConfig      = "config"
	flagInput       = "input"
	flagRun         = "run"
	flagSkip        = "skip"
	flagDebug       = "debug"
	flagDebugAll    = "debug-all"
	flagMetricsFile = "metrics-file"
	flagNoColor     = "no-color"

	stdinInput = "-"
)

type commandParams struct {
	webhookURL    string
	reportLinkURL string
	timeout       time.Duration
	inputPath     string
	filters       framework.RegexFilters
	debug         bool
	debugAll      bool
	metricsFile   string
	noColor       bool
}

// fileConfig is the format of the optional --config file. Any value in it is overridden by
// the corresponding command-line flag or environment variable.
type fileConfig struct {
	WebhookURL    string `yaml:"webhookUrl"`
	ReportLinkURL string `yaml:"reportLinkUrl"`
	TimeoutMS     int    `yaml:"timeoutMs"`
}

func commandFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagWebhookURL,
			Usage:   "webhook URL to post the run summary to; if not set, no summary is posted",
			EnvVars: []string{"SLACK_WEBHOOK"},
		},
		&cli.StringFlag{
			Name:    flagReportLink,
			Usage:   "link to the full test report, shown in the run summary",
			EnvVars: []string{"PLAYWRIGHT_REPORT_LINK"},
		},
		&cli.DurationFlag{
			Name:  flagTimeout,
			Usage: "maximum time to wait for the webhook to respond",
			Value: summary.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:  flagConfig,
			Usage: "YAML file with webhookUrl, reportLinkUrl, and timeoutMs settings",
		},
		&cli.StringFlag{
			Name:    flagInput,
			Aliases: []string{"i"},
			Usage:   `file containing "go test -json" output, or "-" for standard input`,
			Value:   stdinInput,
		},
		&cli.StringSliceFlag{
			Name:  flagRun,
			Usage: "regex pattern(s) to select tests to report",
		},
		&cli.StringSliceFlag{
			Name:  flagSkip,
			Usage: "regex pattern(s) to select tests not to report",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "show test output for failed tests",
		},
		&cli.BoolFlag{
			Name:  flagDebugAll,
			Usage: "show test output for all tests, and enable debug logging",
		},
		&cli.StringFlag{
			Name:  flagMetricsFile,
			Usage: "write Prometheus metrics for the run to this file",
		},
		&cli.BoolFlag{
			Name:  flagNoColor,
			Usage: "disable colored output",
		},
	}
}

func readParams(c *cli.Context) (commandParams, error) {
	p := commandParams{
		webhookURL:    c.String(flagWebhookURL),
		reportLinkURL: c.String(flagReportLink),
		timeout:       c.Duration(flagTimeout),
		inputPath:     c.String(flagInput),
		debug:         c.Bool(flagDebug),
		debugAll:      c.Bool(flagDebugAll),
		metricsFile:   c.String(flagMetricsFile),
		noColor:       c.Bool(flagNoColor),
	}

	if path := c.String(flagConfig); path != "" {
		fc, err := loadFileConfig(path)
		if err != nil {
			return p, err
		}
		if !c.IsSet(flagWebhookURL) {
			p.webhookURL = fc.WebhookURL
		}
		if !c.IsSet(flagReportLink) {
			p.reportLinkURL = fc.ReportLinkURL
		}
		if !c.IsSet(flagTimeout) && fc.TimeoutMS > 0 {
			p.timeout = time.Duration(fc.TimeoutMS) * time.Millisecond
		}
	}

	for _, pattern := range c.StringSlice(flagRun) {
		if err := p.filters.MustMatch.Set(pattern); err != nil {
			return p, fmt.Errorf("--%s: %w", flagRun, err)
		}
	}
	for _, pattern := range c.StringSlice(flagSkip) {
		if err := p.filters.MustNotMatch.Set(pattern); err != nil {
			return p, fmt.Errorf("--%s: %w", flagSkip, err)
		}
	}
	return p, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	return fc, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
