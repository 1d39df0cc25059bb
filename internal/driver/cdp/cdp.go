// Package cdp implements driver.Driver on top of the Chrome DevTools Protocol.
// It attaches to a running browser, records console output and network
// responses as chromedriver would log them, and hands them out on request.
package cdp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/browser"
	cdplog "github.com/chromedp/cdproto/log"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver"
	"github.com/sirupsen/logrus"
)

var errMissingURL = errors.New("devtools url is required")

// Driver collects logs from a browser over the DevTools protocol.
type Driver struct {
	log    logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	webview     string
	browser     []driver.RawLogEntry
	performance []driver.RawLogEntry
	requests    map[network.RequestID]*request
}

// New attaches to the browser listening at url. When targetID is set the
// driver attaches to that page, otherwise it opens a new one.
func New(ctx context.Context, log logrus.FieldLogger, url, targetID string) (*Driver, error) {
	if url == "" {
		return nil, errMissingURL
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, url)

	var opts []chromedp.ContextOption
	if targetID != "" {
		opts = append(opts, chromedp.WithTargetID(target.ID(targetID)))
	}

	tabCtx, tabCancel := chromedp.NewContext(allocCtx, opts...)

	d := &Driver{
		log: log.WithFields(logrus.Fields{
			"component": "cdp_driver",
			"url":       url,
		}),
		ctx: tabCtx,
		cancel: func() {
			tabCancel()
			allocCancel()
		},
		requests: make(map[network.RequestID]*request),
	}

	chromedp.ListenTarget(tabCtx, d.onEvent)

	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := cdplog.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enabling log domain: %w", err)
		}
		if err := runtime.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enabling runtime domain: %w", err)
		}
		if err := network.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enabling network domain: %w", err)
		}
		return nil
	}))
	if err != nil {
		d.cancel()
		return nil, fmt.Errorf("attaching to %s: %w", url, err)
	}

	if c := chromedp.FromContext(tabCtx); c != nil && c.Target != nil {
		d.webview = string(c.Target.TargetID)
	}

	d.log.WithField("target", d.webview).Info("attached to browser")

	return d, nil
}

// Close detaches from the browser.
func (d *Driver) Close() {
	d.cancel()
}

// Logs returns and clears the entries recorded for kind since the last call.
func (d *Driver) Logs(ctx context.Context, kind driver.LogKind) ([]driver.RawLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var entries []driver.RawLogEntry

	switch kind {
	case driver.KindBrowser:
		entries, d.browser = d.browser, nil
	case driver.KindPerformance:
		entries, d.performance = d.performance, nil
	default:
		return nil, fmt.Errorf("%w: %s", driver.ErrUnknownLogKind, kind)
	}

	if entries == nil {
		entries = []driver.RawLogEntry{}
	}

	return entries, nil
}

// Capabilities describes the attached browser.
func (d *Driver) Capabilities(ctx context.Context) (driver.Capabilities, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runCtx, cancel := linkContext(d.ctx, ctx)
	defer cancel()

	var caps driver.Capabilities

	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		protocol, product, revision, userAgent, jsVersion, err := browser.GetVersion().Do(ctx)
		if err != nil {
			return err
		}

		name, version := browserIdentity(product)
		caps = driver.Capabilities{
			"browserName":     name,
			"version":         version,
			"platform":        platformName(userAgent),
			"userAgent":       userAgent,
			"protocolVersion": protocol,
			"revision":        revision,
			"jsVersion":       jsVersion,
		}

		return nil
	}))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("getting browser version: %w", err)
	}

	return caps, nil
}

// linkContext derives a context from tab, which carries the browser
// connection, that is also cancelled when caller is done.
func linkContext(tab, caller context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(tab)
	stop := context.AfterFunc(caller, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

func (d *Driver) onEvent(ev any) {
	switch e := ev.(type) {
	case *cdplog.EventEntryAdded:
		d.onEntryAdded(e)
	case *runtime.EventConsoleAPICalled:
		d.onConsoleAPICalled(e)
	case *network.EventRequestWillBeSent:
		d.onRequestWillBeSent(e)
	case *network.EventResponseReceived:
		d.onResponseReceived(e)
	}
}

func (d *Driver) onEntryAdded(e *cdplog.EventEntryAdded) {
	entry := e.Entry
	if entry == nil {
		return
	}

	d.appendBrowser(driver.RawLogEntry{
		Level:     logLevel(string(entry.Level)),
		Timestamp: timestamp(entry.Timestamp),
		Message:   consoleLine(entry.URL, entry.LineNumber, 0, entry.Text),
	})
}

func (d *Driver) onConsoleAPICalled(e *runtime.EventConsoleAPICalled) {
	parts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		if arg == nil {
			continue
		}
		parts = append(parts, argText(arg.Value, arg.Description))
	}

	var (
		url          string
		line, column int64
	)

	if e.StackTrace != nil && len(e.StackTrace.CallFrames) > 0 {
		frame := e.StackTrace.CallFrames[0]
		url, line, column = frame.URL, frame.LineNumber+1, frame.ColumnNumber+1
	}

	d.appendBrowser(driver.RawLogEntry{
		Level:     logLevel(string(e.Type)),
		Timestamp: timestamp(e.Timestamp),
		Message:   consoleLine(url, line, column, strings.Join(parts, " ")),
	})
}

func (d *Driver) onRequestWillBeSent(e *network.EventRequestWillBeSent) {
	if e.Request == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.requests[e.RequestID] = &request{
		method:  e.Request.Method,
		headers: map[string]any(e.Request.Headers),
	}
}

func (d *Driver) onResponseReceived(e *network.EventResponseReceived) {
	if e.Response == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	req := d.requests[e.RequestID]
	delete(d.requests, e.RequestID)

	msg, err := performanceMessage(d.webview, string(e.RequestID), string(e.Type), responsePayload{
		URL:        e.Response.URL,
		Status:     e.Response.Status,
		StatusText: e.Response.StatusText,
		Headers:    map[string]any(e.Response.Headers),
		MimeType:   e.Response.MimeType,
	}, req)
	if err != nil {
		d.log.WithError(err).WithField("request_id", e.RequestID).Warn("dropping network response")
		return
	}

	d.performance = append(d.performance, driver.RawLogEntry{
		Level:     levelInfo,
		Timestamp: time.Now().UnixMilli(),
		Message:   msg,
	})
}

func (d *Driver) appendBrowser(entry driver.RawLogEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.browser = append(d.browser, entry)
}

func timestamp(ts *runtime.Timestamp) int64 {
	if ts == nil {
		return time.Now().UnixMilli()
	}

	return ts.Time().UnixMilli()
}

var _ driver.Driver = (*Driver)(nil)
