// Package reporter coordinates one reporting run: it reacts to spec and suite
// completion, gathers logs and capabilities from the driver, writes the
// report for a failed spec and settles the completion gate.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/config"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/gate"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	errNilDriver = errors.New("driver is required")
	errNilGate   = errors.New("completion gate is required")
)

// TestResult is the spec result handed over by the test framework.
type TestResult = metadata.Result

// State is the position of a run in its lifecycle.
type State int

const (
	// StateIdle means no spec has failed yet.
	StateIdle State = iota
	// StatePending means a report is being gathered.
	StatePending
	// StatePersisted means the report file has been written.
	StatePersisted
	// StateResolved means the gate was resolved.
	StateResolved
	// StateFailed means the report could not be produced and the gate was rejected.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StatePersisted:
		return "persisted"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reporter receives test framework lifecycle events.
type Reporter interface {
	// SpecDone is called once per executed spec. For the first failed spec it
	// blocks until the report is written or has failed; the error, if any,
	// has also been used to reject the gate.
	SpecDone(ctx context.Context, result TestResult) error
	// SuiteDone is called once after every spec ran.
	SuiteDone()
	State() State
}

// Option configures a reporter.
type Option func(*reporter)

// WithStore replaces the file store.
func WithStore(store Store) Option {
	return func(r *reporter) {
		r.store = store
	}
}

// WithBuilder replaces the metadata builder.
func WithBuilder(builder *metadata.Builder) Option {
	return func(r *reporter) {
		r.builder = builder
	}
}

// WithCollector records specs and report attempts into collector.
func WithCollector(collector metrics.Collector) Option {
	return func(r *reporter) {
		r.collector = collector
	}
}

type reporter struct {
	log            logrus.FieldLogger
	path           string
	enableHTTPLogs bool
	driver         driver.Driver
	gate           *gate.Gate
	store          Store
	builder        *metadata.Builder
	collector      metrics.Collector

	mu    sync.Mutex
	state State
}

// New creates a reporter writing to cfg.ReportPath(). It fails when the base
// directory is not configured.
func New(log logrus.FieldLogger, cfg *config.Config, drv driver.Driver, g *gate.Gate, opts ...Option) (Reporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("invalid reporter configuration: %w", config.ErrMissingBaseDirectory)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reporter configuration: %w", err)
	}

	if drv == nil {
		return nil, errNilDriver
	}

	if g == nil {
		return nil, errNilGate
	}

	r := &reporter{
		log:            log.WithField("component", "reporter"),
		path:           cfg.ReportPath(),
		enableHTTPLogs: cfg.EnableHTTPLogs,
		driver:         drv,
		gate:           g,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		r.store = NewFileStore(log)
	}

	if r.builder == nil {
		r.builder = metadata.NewBuilder()
	}

	return r, nil
}

func (r *reporter) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *reporter) setState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = s
}

// claim moves the run from idle to pending. Only the first failed spec of a
// run gets to write the report.
func (r *reporter) claim() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return false
	}

	r.state = StatePending

	return true
}

func (r *reporter) SpecDone(ctx context.Context, result TestResult) error {
	failed := result.Failed()

	if r.collector != nil {
		r.collector.RecordSpec(metrics.SpecMetric{
			ID:        result.ID,
			Name:      result.FullName,
			Status:    result.Status,
			Failed:    failed,
			Duration:  result.Duration,
			Timestamp: time.Now(),
		})
	}

	log := r.log.WithFields(logrus.Fields{
		"spec":   result.ID,
		"status": result.Status,
	})

	if !failed {
		log.Debug("spec passed")
		return nil
	}

	if !r.claim() {
		log.WithField("state", r.State()).Warn("report already taken by an earlier failure, skipping spec")
		return nil
	}

	log.WithField("failed_expectations", len(result.FailedExpectations)).Info("spec failed, collecting logs")

	if err := r.report(ctx, log, result); err != nil {
		r.setState(StateFailed)
		r.gate.Reject(err)
		log.WithError(err).Error("failed to write report")

		return err
	}

	r.gate.Resolve()
	r.setState(StateResolved)

	return nil
}

func (r *reporter) report(ctx context.Context, log logrus.FieldLogger, result TestResult) (err error) {
	var (
		start  = time.Now()
		metric = &metrics.ReportMetric{SpecID: result.ID, Path: r.path, Timestamp: start}
	)

	defer func() {
		if r.collector == nil {
			return
		}
		if err != nil {
			metric.Error = err.Error()
		}
		metric.Duration = time.Since(start)
		r.collector.RecordReport(metric)
	}()

	console, perf, caps, err := r.fetch(ctx)
	if err != nil {
		return fmt.Errorf("getting suite information: %w", err)
	}

	md, err := r.builder.Build(result, caps, console, perf)
	if err != nil {
		return fmt.Errorf("building metadata: %w", err)
	}

	metric.ConsoleLogs = len(md.ConsoleLogs)
	if md.HTTPLogs != nil {
		metric.HTTPLogs = len(*md.HTTPLogs)
	}

	if err := r.store.Save(r.path, md); err != nil {
		return err
	}

	r.setState(StatePersisted)

	log.WithFields(logrus.Fields{
		"path":         r.path,
		"console_logs": metric.ConsoleLogs,
		"http_logs":    metric.HTTPLogs,
	}).Info("report written")

	return nil
}

// fetch requests every source at once and waits for all of them. In-flight
// requests are not cancelled when one of them fails.
func (r *reporter) fetch(ctx context.Context) (console, perf []driver.RawLogEntry, caps driver.Capabilities, err error) {
	var g errgroup.Group

	g.Go(func() error {
		logs, err := r.driver.Logs(ctx, driver.KindBrowser)
		if err != nil {
			return fmt.Errorf("fetching %s logs: %w", driver.KindBrowser, err)
		}
		console = logs
		return nil
	})

	g.Go(func() error {
		c, err := r.driver.Capabilities(ctx)
		if err != nil {
			return fmt.Errorf("fetching capabilities: %w", err)
		}
		caps = c
		return nil
	})

	if r.enableHTTPLogs {
		g.Go(func() error {
			logs, err := r.driver.Logs(ctx, driver.KindPerformance)
			if err != nil {
				return fmt.Errorf("fetching %s logs: %w", driver.KindPerformance, err)
			}
			perf = logs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return console, perf, caps, nil
}

func (r *reporter) SuiteDone() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		r.log.WithField("state", r.state).Debug("suite done, gate settled by the failed spec")
		return
	}

	r.state = StateResolved
	r.gate.Resolve()
	r.log.Info("suite done without failures")
}

var _ Reporter = (*reporter)(nil)
