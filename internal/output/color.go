package output

import (
	"fmt"

	"github.com/fatih/color"
)

// ColorHelper colors report output. Colors are only used on terminals.
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a new color helper
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

// Success returns green colored text
func (c *ColorHelper) Success(text string) string {
	if !c.enabled {
		return text
	}
	return color.GreenString(text)
}

// Failure returns red colored text
func (c *ColorHelper) Failure(text string) string {
	if !c.enabled {
		return text
	}
	return color.RedString(text)
}

// Warning returns yellow colored text
func (c *ColorHelper) Warning(text string) string {
	if !c.enabled {
		return text
	}
	return color.YellowString(text)
}

// Info returns cyan colored text
func (c *ColorHelper) Info(text string) string {
	if !c.enabled {
		return text
	}
	return color.CyanString(text)
}

// Muted returns gray colored text
func (c *ColorHelper) Muted(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.FgHiBlack).Sprint(text)
}

// Bold returns bold text
func (c *ColorHelper) Bold(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.Bold).Sprint(text)
}

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string {
	if !c.enabled {
		return text
	}
	return color.New(color.FgCyan, color.Bold).Sprint(text)
}

// FormatStatus colors a spec status.
func (c *ColorHelper) FormatStatus(status string, failed bool) string {
	switch {
	case failed:
		return c.Failure("✗ " + status)
	case status == "passed":
		return c.Success("✓ " + status)
	default:
		return c.Muted("- " + status)
	}
}

// FormatLevel colors a browser log level.
func (c *ColorHelper) FormatLevel(level string) string {
	switch level {
	case "SEVERE":
		return c.Failure(level)
	case "WARNING":
		return c.Warning(level)
	case "DEBUG":
		return c.Muted(level)
	default:
		return c.Info(level)
	}
}

// FormatHTTPStatus colors a response status: 5xx red, 4xx yellow.
func (c *ColorHelper) FormatHTTPStatus(status int) string {
	text := fmt.Sprintf("%d", status)

	switch {
	case status >= 500:
		return c.Failure(text)
	case status >= 400:
		return c.Warning(text)
	default:
		return c.Muted(text)
	}
}
