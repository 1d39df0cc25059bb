package cdp

import (
	"encoding/json"
	"fmt"
	goruntime "runtime"
	"strings"
)

// consoleSource is used in place of a script URL for messages that do not
// come from a script, matching chromedriver.
const consoleSource = "console-api"

// chromedriver level names.
const (
	levelDebug   = "DEBUG"
	levelInfo    = "INFO"
	levelWarning = "WARNING"
	levelSevere  = "SEVERE"
)

// logLevel maps DevTools log and console levels to the names chromedriver
// reports in its browser log.
func logLevel(level string) string {
	switch strings.ToLower(level) {
	case "verbose", "debug", "trace":
		return levelDebug
	case "warning", "warn":
		return levelWarning
	case "error", "assert":
		return levelSevere
	default:
		return levelInfo
	}
}

// consoleLine renders a message the way chromedriver does:
// "<url> <line>:<column> <text>".
func consoleLine(url string, line, column int64, text string) string {
	if url == "" {
		url = consoleSource
	}

	return fmt.Sprintf("%s %d:%d %s", url, line, column, text)
}

// argText renders a console argument. String values are unquoted.
func argText(value []byte, description string) string {
	if len(value) == 0 {
		return description
	}

	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}

	return string(value)
}

// responseEvent is the envelope chromedriver writes into the performance log.
type responseEvent struct {
	Message responseMessage `json:"message"`
	Webview string          `json:"webview"`
}

type responseMessage struct {
	Method string         `json:"method"`
	Params responseParams `json:"params"`
}

type responseParams struct {
	RequestID string          `json:"requestId"`
	Type      string          `json:"type,omitempty"`
	Response  responsePayload `json:"response"`
}

type responsePayload struct {
	URL                string         `json:"url"`
	Status             int64          `json:"status"`
	StatusText         string         `json:"statusText"`
	Headers            map[string]any `json:"headers,omitempty"`
	MimeType           string         `json:"mimeType,omitempty"`
	RequestHeaders     map[string]any `json:"requestHeaders,omitempty"`
	RequestHeadersText string         `json:"requestHeadersText,omitempty"`
}

// request is what we remember about a request until its response arrives.
type request struct {
	method  string
	headers map[string]any
}

// performanceMessage encodes a received response as a performance log message.
func performanceMessage(webview, requestID, resourceType string, resp responsePayload, req *request) (string, error) {
	if req != nil {
		if resp.RequestHeaders == nil {
			resp.RequestHeaders = req.headers
		}
		if resp.RequestHeadersText == "" && req.method != "" {
			resp.RequestHeadersText = req.method + " " + resp.URL
		}
	}

	data, err := json.Marshal(responseEvent{
		Message: responseMessage{
			Method: "Network.responseReceived",
			Params: responseParams{
				RequestID: requestID,
				Type:      resourceType,
				Response:  resp,
			},
		},
		Webview: webview,
	})
	if err != nil {
		return "", fmt.Errorf("encoding response event: %w", err)
	}

	return string(data), nil
}

// browserIdentity splits a DevTools product string such as
// "HeadlessChrome/120.0.6099.109" into a name and a version.
func browserIdentity(product string) (name, version string) {
	name, version, _ = strings.Cut(product, "/")
	name = strings.ToLower(strings.TrimPrefix(name, "Headless"))

	return name, version
}

// platformName guesses the operating system from a user agent, falling back
// to the platform we run on.
func platformName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os x"), strings.Contains(ua, "macintosh"):
		return "Mac"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "linux"), strings.Contains(ua, "x11"):
		return "Linux"
	}

	switch goruntime.GOOS {
	case "darwin":
		return "Mac"
	case "windows":
		return "Windows"
	default:
		return strings.ToUpper(goruntime.GOOS[:1]) + goruntime.GOOS[1:]
	}
}
