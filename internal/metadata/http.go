package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver"
)

const (
	// MethodResponseReceived is the DevTools event kept from performance logs.
	MethodResponseReceived = "Network.responseReceived"
	// UnknownMethod is used when the request line cannot be recovered.
	UnknownMethod = "?"

	// Responses at or below this status are not reported.
	maxQuietStatus = 200
)

var (
	// ErrMalformedPerformanceLog is returned when a performance entry is not valid JSON.
	ErrMalformedPerformanceLog = errors.New("malformed performance log")

	requestMethodPattern = regexp.MustCompile(`^\w+`)
)

// parseHTTP keeps Network.responseReceived events whose status is above 200.
// Only an entry that is not valid JSON is an error; entries of any other
// shape are skipped.
func parseHTTP(entries []driver.RawLogEntry) ([]HTTPLog, error) {
	logs := make([]HTTPLog, 0)

	for i, entry := range entries {
		var event any
		if err := json.Unmarshal([]byte(entry.Message), &event); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformedPerformanceLog, i, err)
		}

		resp, ok := responseOf(event)
		if !ok {
			continue
		}

		status, ok := number(resp["status"])
		if !ok || status <= maxQuietStatus {
			continue
		}

		headersText, _ := resp["requestHeadersText"].(string)
		url, _ := resp["url"].(string)
		statusText, _ := resp["statusText"].(string)

		logs = append(logs, HTTPLog{
			Level:     entry.Level,
			Timestamp: entry.Timestamp,
			Date:      ISODate(entry.Timestamp),
			Stack: HTTPStack{
				Method:         requestMethod(headersText),
				URL:            url,
				Status:         int(status),
				StatusText:     statusText,
				Headers:        object(resp["headers"]),
				RequestHeaders: object(resp["requestHeaders"]),
			},
		})
	}

	return logs, nil
}

// responseOf walks {"message":{"method":..,"params":{"response":{..}}}}.
func responseOf(event any) (map[string]any, bool) {
	envelope := object(event)
	message := object(envelope["message"])

	if method, _ := message["method"].(string); method != MethodResponseReceived {
		return nil, false
	}

	resp := object(object(message["params"])["response"])

	return resp, resp != nil
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// number accepts JSON numbers and numeric strings, as a loose comparison would.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func requestMethod(headersText string) string {
	if m := requestMethodPattern.FindString(headersText); m != "" {
		return m
	}

	return UnknownMethod
}
