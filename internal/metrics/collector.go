// Package metrics records what happened during a reporting run so the CLI can summarize it.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SpecMetric captures one spec completion seen by the reporter
type SpecMetric struct {
	ID        string
	Name      string
	Status    string
	Failed    bool
	Duration  time.Duration
	Timestamp time.Time
}

// ReportMetric captures one attempt to write a report
type ReportMetric struct {
	SpecID      string
	Path        string
	ConsoleLogs int
	HTTPLogs    int
	Duration    time.Duration
	Error       string // empty if written
	Timestamp   time.Time
}

// SummaryMetric provides aggregate statistics across the run
type SummaryMetric struct {
	TotalDuration  time.Duration
	TotalSpecs     int
	PassedSpecs    int
	FailedSpecs    int
	ReportsWritten int
	ReportsFailed  int
}

// Collector interface for metrics collection
type Collector interface {
	Start(ctx context.Context) error
	Stop() error
	RecordSpec(metric SpecMetric)
	RecordReport(metric *ReportMetric)
	GetSpecMetrics() []SpecMetric
	GetReportMetrics() []ReportMetric
	GetSummary() SummaryMetric
}

type collector struct {
	log           logrus.FieldLogger
	mu            sync.RWMutex
	specMetrics   []SpecMetric
	reportMetrics []ReportMetric
	startTime     time.Time
}

// NewCollector creates a new metrics collector
func NewCollector(log logrus.FieldLogger) Collector {
	return &collector{
		log:           log.WithField("component", "metrics_collector"),
		specMetrics:   make([]SpecMetric, 0, 50), // capacity hint
		reportMetrics: make([]ReportMetric, 0, 1),
	}
}

func (c *collector) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()

	c.log.Debug("metrics collector started")

	return nil
}

func (c *collector) Stop() error {
	c.log.Debug("metrics collector stopped")

	return nil
}

func (c *collector) RecordSpec(metric SpecMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specMetrics = append(c.specMetrics, metric)
}

func (c *collector) RecordReport(metric *ReportMetric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reportMetrics = append(c.reportMetrics, *metric)
}

func (c *collector) GetSpecMetrics() []SpecMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()
	// Return copy to avoid race conditions
	result := make([]SpecMetric, len(c.specMetrics))
	copy(result, c.specMetrics)
	return result
}

func (c *collector) GetReportMetrics() []ReportMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]ReportMetric, len(c.reportMetrics))
	copy(result, c.reportMetrics)
	return result
}

func (c *collector) GetSummary() SummaryMetric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary := SummaryMetric{
		TotalSpecs: len(c.specMetrics),
	}

	if !c.startTime.IsZero() {
		summary.TotalDuration = time.Since(c.startTime)
	}

	for _, sm := range c.specMetrics {
		if sm.Failed {
			summary.FailedSpecs++
		} else {
			summary.PassedSpecs++
		}
	}

	for _, rm := range c.reportMetrics {
		if rm.Error == "" {
			summary.ReportsWritten++
		} else {
			summary.ReportsFailed++
		}
	}

	return summary
}

// Compile-time interface compliance check
var _ Collector = (*collector)(nil)
