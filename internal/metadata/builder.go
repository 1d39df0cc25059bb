// Package metadata turns a spec result, the session capabilities and the raw
// driver logs into the report record written for a failed spec.
package metadata

import (
	"time"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver"
)

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// ISODate renders unix milliseconds as an ISO-8601 UTC timestamp.
func ISODate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoLayout)
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the clock used for the report generation date.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// Builder builds MetaData records.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a Builder using the wall clock unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build assembles the record for result.
//
// Console lines that do not match "<source> <line:col> <message>" are dropped.
// httpLogs is only set when perf holds at least one entry; callers that did
// not collect performance logs pass nil. The only error is a performance
// entry whose message is not valid JSON.
func (b *Builder) Build(
	result Result,
	caps driver.Capabilities,
	console []driver.RawLogEntry,
	perf []driver.RawLogEntry,
) (*MetaData, error) {
	expectations := result.FailedExpectations
	if expectations == nil {
		expectations = []Expectation{}
	}

	md := &MetaData{
		ID:          result.ID,
		Description: result.FullName,
		Status:      result.Status,
		Date:        b.now().UTC().Format(isoLayout),
		Duration:    result.Duration.Milliseconds(),
		OS:          caps.Lookup("platform", "platformName"),
		Browser: Browser{
			Name:    caps.Lookup("browserName"),
			Version: caps.Lookup("version", "browserVersion"),
		},
		FailedExpectations: expectations,
		ConsoleLogs:        parseConsole(console),
	}

	if len(perf) > 0 {
		httpLogs, err := parseHTTP(perf)
		if err != nil {
			return nil, err
		}

		md.HTTPLogs = &httpLogs
	}

	return md, nil
}
