package metadata

import "time"

// Expectation is a failed expectation reported by the test framework.
// It is written to the report unchanged.
type Expectation struct {
	MatcherName string `json:"matcherName,omitempty"`
	Message     string `json:"message"`
	Stack       string `json:"stack,omitempty"`
	Passed      bool   `json:"passed"`
	Expected    any    `json:"expected,omitempty"`
	Actual      any    `json:"actual,omitempty"`
}

// Result identifies one executed test spec.
type Result struct {
	ID                 string
	FullName           string
	Status             string
	Duration           time.Duration
	FailedExpectations []Expectation
}

// Failed reports whether the spec has at least one failed expectation.
func (r Result) Failed() bool {
	return len(r.FailedExpectations) > 0
}

// Browser identifies the browser a spec ran in.
type Browser struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// MetaData is the record persisted for a failed spec.
//
// HTTPLogs is a pointer so that "not collected" (nil, field omitted) and
// "collected but nothing kept" (empty slice, "[]") stay distinguishable.
type MetaData struct {
	ID                 string        `json:"id"`
	Description        string        `json:"description"`
	Status             string        `json:"status"`
	Date               string        `json:"date"`
	Duration           int64         `json:"duration"`
	OS                 string        `json:"os"`
	Browser            Browser       `json:"browser"`
	FailedExpectations []Expectation `json:"failedExpectations"`
	ConsoleLogs        []ConsoleLog  `json:"consoleLogs"`
	HTTPLogs           *[]HTTPLog    `json:"httpLogs,omitempty"`
}

// ConsoleStack holds the parts of a console line.
type ConsoleStack struct {
	URL      string `json:"url"`
	Position string `json:"position"`
	Message  string `json:"message"`
}

// ConsoleLog is a normalized browser console entry.
type ConsoleLog struct {
	Level     string       `json:"level"`
	Timestamp int64        `json:"timestamp"`
	Date      string       `json:"date"`
	Stack     ConsoleStack `json:"stack"`
}

// HTTPStack describes a problematic HTTP response. Header maps are omitted
// when the response carried none and kept when they are empty.
type HTTPStack struct {
	Method         string         `json:"method"`
	URL            string         `json:"url"`
	Status         int            `json:"status"`
	StatusText     string         `json:"statusText"`
	Headers        map[string]any `json:"headers,omitzero"`
	RequestHeaders map[string]any `json:"requestHeaders,omitzero"`
}

// HTTPLog is a normalized performance log entry.
type HTTPLog struct {
	Level     string    `json:"level"`
	Timestamp int64     `json:"timestamp"`
	Date      string    `json:"date"`
	Stack     HTTPStack `json:"stack"`
}
