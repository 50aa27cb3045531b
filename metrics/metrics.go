// Package metrics records the outcome of test runs as Prometheus metrics, for runs that are
// scraped through a node exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/launchdarkly/test-summary-reporter/servicedef"
	"github.com/launchdarkly/test-summary-reporter/summary"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsNamespace = "test_summary"

// Recorder holds the metrics for test runs in its own registry.
type Recorder struct {
	registry   *prometheus.Registry
	tests      *prometheus.GaugeVec
	passRate   *prometheus.GaugeVec
	duration   *prometheus.GaugeVec
	deliveries *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		tests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "tests",
			Help:      "Number of tests in the run, by status",
		}, []string{
			"run_id",
			"status",
		}),
		passRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "pass_rate_percent",
			Help:      "Percentage of tests in the run that passed",
		}, []string{
			"run_id",
		}),
		duration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "duration_seconds",
			Help:      "Duration of the run",
		}, []string{
			"run_id",
		}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "deliveries_total",
			Help:      "Count of summary message deliveries, by outcome",
		}, []string{
			"outcome",
		}),
	}
}

// RecordReport records the summary and delivery outcome of one run.
func (r *Recorder) RecordReport(runID string, report summary.Report) {
	s := report.Summary
	counts := map[servicedef.TestStatus]int{
		servicedef.StatusPassed:      s.Counts.Passed,
		servicedef.StatusFailed:      s.Counts.Failed,
		servicedef.StatusSkipped:     s.Counts.Skipped,
		servicedef.StatusTimedOut:    s.Counts.TimedOut,
		servicedef.StatusInterrupted: s.Counts.Interrupted,
	}
	for status, n := range counts {
		r.tests.WithLabelValues(runID, string(status)).Set(float64(n))
	}
	r.tests.WithLabelValues(runID, "total").Set(float64(s.Total))
	r.passRate.WithLabelValues(runID).Set(s.PassRate)
	r.duration.WithLabelValues(runID).Set(s.DurationSeconds)
	r.deliveries.WithLabelValues(report.Delivery.Status.String()).Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
