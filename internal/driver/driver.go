// Package driver defines the browser driver contract the reporter reads
// console logs, performance logs and capabilities from.
package driver

import (
	"context"
	"errors"
	"fmt"
)

// LogKind names a WebDriver log type.
type LogKind string

const (
	// KindBrowser is the browser console log.
	KindBrowser LogKind = "browser"
	// KindPerformance is the performance (DevTools trace) log.
	KindPerformance LogKind = "performance"
)

var (
	// ErrUnknownLogKind is returned when a driver is asked for a log type it does not keep.
	ErrUnknownLogKind = errors.New("unknown log kind")
)

// RawLogEntry is a single log entry as returned by the driver.
// Timestamp is in unix milliseconds.
type RawLogEntry struct {
	Level     string `json:"level" yaml:"level"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Message   string `json:"message" yaml:"message"`
}

// Capabilities describes the browser session the tests ran in.
type Capabilities map[string]any

// Get returns the raw value stored under key.
func (c Capabilities) Get(key string) any {
	return c[key]
}

// Lookup returns the first non-empty value found under keys, rendered as a string.
func (c Capabilities) Lookup(keys ...string) string {
	for _, key := range keys {
		v, ok := c[key]
		if !ok || v == nil {
			continue
		}

		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}

		if s != "" {
			return s
		}
	}

	return ""
}

// Driver is the subset of a browser automation driver the reporter needs.
type Driver interface {
	Logs(ctx context.Context, kind LogKind) ([]RawLogEntry, error)
	Capabilities(ctx context.Context) (Capabilities, error)
}
