package summary

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single delivery attempt when Config.Timeout is not set.
const DefaultTimeout = 10 * time.Second

// Config contains the Reporter options. The zero value is usable: it never delivers anything.
type Config struct {
	// WebhookURL is where the summary is POSTed. If empty, delivery is skipped.
	WebhookURL string
	// ReportLinkURL is shown at the end of the message. If empty, DefaultReportLink is used.
	ReportLinkURL string
	// Timeout bounds the delivery attempt. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Sender transmits the message. Defaults to a WebhookSender.
	Sender Sender
	// Logger receives delivery warnings. Defaults to a no-op logger.
	Logger *zap.Logger
	// Now is the clock used for the run duration. Defaults to time.Now.
	Now func() time.Time
}

// Report is what the Reporter produced at the end of a run.
type Report struct {
	Summary  Summary
	Message  string
	Delivery DeliveryOutcome
}

// Reporter accumulates the outcomes of one test run and sends a summary when it ends. A zero
// Reporter behaves like one created by New with an empty Config.
//
// The hooks are not safe for concurrent use; the caller is expected to serialize them, which
// every test harness in this repository does.
type Reporter struct {
	config     Config
	startTime  time.Time
	results    []Outcome
	lastReport Report
}

// New creates a Reporter.
func New(config Config) *Reporter {
	config = config.withDefaults()
	config.Logger = config.Logger.Named("summary")
	return &Reporter{config: config}
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Sender == nil {
		c.Sender = NewWebhookSender(c.Timeout)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Begin marks the start of the run. Calling it again moves the start of the run.
func (r *Reporter) Begin() {
	r.startTime = r.now()
}

// TestEnd records the outcome of one test.
func (r *Reporter) TestEnd(outcome Outcome) {
	r.results = append(r.results, outcome)
}

// Summary computes the summary of everything recorded so far, as of now.
func (r *Reporter) Summary() Summary {
	return Summarize(r.results, r.startTime, r.now())
}

func (r *Reporter) now() time.Time {
	if r.config.Now == nil {
		return time.Now()
	}
	return r.config.Now()
}

// End summarizes the run and delivers the message. It blocks until delivery has succeeded or
// failed, but it never returns an error or panics: failures are logged as warnings and kept in
// LastReport.
func (r *Reporter) End(ctx context.Context) {
	r.config = r.config.withDefaults()
	report := Report{Delivery: DeliveryOutcome{Status: DeliverySkipped}}
	defer func() {
		if p := recover(); p != nil {
			report.Delivery = DeliveryOutcome{Status: DeliveryFailed, Err: fmt.Errorf("unexpected panic: %v", p)}
			r.config.Logger.Warn("unexpected error posting run summary", zap.Error(report.Delivery.Err))
		}
		r.lastReport = report
	}()

	report.Summary = r.Summary()
	report.Message = FormatMessage(report.Summary, r.config.ReportLinkURL)
	report.Delivery = r.deliver(ctx, report.Message)
}

// LastReport returns the result of the most recent End call.
func (r *Reporter) LastReport() Report {
	return r.lastReport
}

func (r *Reporter) deliver(ctx context.Context, message string) DeliveryOutcome {
	if r.config.WebhookURL == "" || message == "" {
		r.config.Logger.Debug("no webhook configured, not posting run summary")
		return DeliveryOutcome{Status: DeliverySkipped}
	}
	if err := validateDestination(r.config.WebhookURL); err != nil {
		r.config.Logger.Warn("failed to post run summary", zap.Error(err))
		return DeliveryOutcome{Status: DeliveryFailed, Err: err}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	if err := r.config.Sender.Send(ctx, r.config.WebhookURL, EncodePayload(message)); err != nil {
		r.config.Logger.Warn("failed to post run summary", zap.Error(err))
		return DeliveryOutcome{Status: DeliveryFailed, Err: err}
	}
	r.config.Logger.Debug("posted run summary")
	return DeliveryOutcome{Status: Delivered}
}
