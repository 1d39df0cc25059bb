// Package actions implements the operations exposed by the CLI and the
// interactive menu.
package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/config"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver/cdp"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/gate"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/gotest"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metrics"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/output"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/reporter"
	"github.com/sirupsen/logrus"
)

// ErrNoLogSource is returned when neither a session file nor a DevTools URL is configured.
var ErrNoLogSource = errors.New("no log source configured: set a session file or a devtools url")

// ReportOptions configures a reporting run.
type ReportOptions struct {
	Config *config.Config
	// Input carries `go test -json` events.
	Input io.Reader
	// Output receives the run summary.
	Output io.Writer
	// Timeout bounds the wait for the report once input is exhausted. Zero waits forever.
	Timeout time.Duration
}

// Report feeds test events to a reporter, waits for the completion gate and
// prints a summary. The returned error is the gate's rejection, if any.
func Report(ctx context.Context, log logrus.FieldLogger, opts ReportOptions) error {
	cfg := opts.Config
	if cfg == nil {
		return config.ErrMissingBaseDirectory
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	drv, closeDriver, err := openDriver(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closeDriver()

	collector := metrics.NewCollector(log)
	if err := collector.Start(ctx); err != nil {
		return fmt.Errorf("starting metrics collector: %w", err)
	}
	defer func() {
		_ = collector.Stop()
	}()

	g := gate.New()

	rep, err := reporter.New(log, cfg, drv, g, reporter.WithCollector(collector))
	if err != nil {
		return err
	}

	if err := gotest.NewAdapter(log, rep).Run(ctx, opts.Input); err != nil {
		g.Reject(err)
	}

	waitCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	gateErr := g.Wait(waitCtx)

	formatter := output.NewFormatter(opts.Output, nil)
	formatter.PrintSpecs(collector.GetSpecMetrics())
	formatter.PrintSummary(collector.GetSummary(), collector.GetReportMetrics())

	if gateErr != nil {
		formatter.PrintError("reporting failed", gateErr)
		return gateErr
	}

	log.WithField("state", rep.State()).Debug("reporting run complete")
	formatter.PrintSuccess("reporting done")

	return nil
}

func openDriver(ctx context.Context, log logrus.FieldLogger, cfg *config.Config) (driver.Driver, func(), error) {
	switch {
	case cfg.SessionFile != "":
		session, err := driver.LoadSession(cfg.SessionFile)
		if err != nil {
			return nil, nil, err
		}

		log.WithField("session", cfg.SessionFile).Info("replaying captured session")

		return session, func() {}, nil
	case cfg.DevtoolsURL != "":
		d, err := cdp.New(ctx, log, cfg.DevtoolsURL, cfg.DevtoolsTarget)
		if err != nil {
			return nil, nil, err
		}

		return d, d.Close, nil
	default:
		return nil, nil, ErrNoLogSource
	}
}
