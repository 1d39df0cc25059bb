package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metrics"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_PrintReport(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	httpLogs := []metadata.HTTPLog{{
		Level: "INFO",
		Date:  "2024-03-01T10:00:00.000Z",
		Stack: metadata.HTTPStack{Method: "GET", URL: "http://api/items", Status: 404},
	}}

	md := &metadata.MetaData{
		ID:          "spec7",
		Description: "cart shows total",
		Status:      "failed",
		Duration:    1200,
		OS:          "Linux",
		Browser:     metadata.Browser{Name: "chrome", Version: "120.0"},
		FailedExpectations: []metadata.Expectation{
			{Message: "Expected 12 to be 10.", Stack: "at cart.spec.js:14"},
		},
		ConsoleLogs: []metadata.ConsoleLog{{
			Level: "SEVERE",
			Date:  "2024-03-01T10:00:00.000Z",
			Stack: metadata.ConsoleStack{URL: "http://app/main.js", Position: "3:7", Message: "boom"},
		}},
		HTTPLogs: &httpLogs,
	}

	var buf bytes.Buffer
	NewFormatter(&buf, nil).PrintReport(md)

	out := buf.String()
	assert.Contains(t, out, "cart shows total")
	assert.Contains(t, out, "chrome 120.0")
	assert.Contains(t, out, "Expected 12 to be 10.")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "http://api/items")
	assert.Contains(t, out, "404")
}

func TestFormatter_PrintReportWithoutHTTPLogs(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	NewFormatter(&buf, nil).PrintReport(&metadata.MetaData{ID: "x"})

	out := buf.String()
	assert.Contains(t, out, "No console logs")
	assert.NotContains(t, out, "HTTP Logs")
}

func TestFormatter_PrintSummary(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	f := NewFormatter(&buf, nil)

	f.PrintSpecs([]metrics.SpecMetric{
		{Name: "suite passes", Status: "passed", Duration: 20 * time.Millisecond},
		{Name: "suite fails", Status: "failed", Failed: true, Duration: 2 * time.Second},
	})
	f.PrintSummary(metrics.SummaryMetric{TotalSpecs: 2, PassedSpecs: 1, FailedSpecs: 1}, []metrics.ReportMetric{
		{Path: "/tmp/out/report.json", ConsoleLogs: 3, HTTPLogs: 1},
	})
	f.PrintError("run failed", errors.New("driver gone"))

	out := buf.String()
	assert.Contains(t, out, "suite fails")
	assert.Contains(t, out, "2.0s")
	assert.Contains(t, out, "/tmp/out/report.json")
	assert.Contains(t, out, "run failed: driver gone")
}

func TestFormatter_PrintSpecsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf, nil).PrintSpecs(nil)
	assert.Equal(t, "No specs executed\n", buf.String())
}

func TestDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1.5m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "first ...", Truncate("first\nsecond", 10))
}
