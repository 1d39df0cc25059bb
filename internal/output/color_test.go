package output

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestColorHelper_FormatStatus(t *testing.T) {
	// Disable colors for consistent testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()

	tests := []struct {
		name     string
		status   string
		failed   bool
		expected string
	}{
		{name: "passed", status: "passed", expected: "✓ passed"},
		{name: "failed", status: "failed", failed: true, expected: "✗ failed"},
		{name: "skipped", status: "skipped", expected: "- skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, helper.FormatStatus(tt.status, tt.failed))
		})
	}
}

func TestColorHelper_FormatHTTPStatus(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()

	assert.Equal(t, "404", helper.FormatHTTPStatus(404))
	assert.Equal(t, "503", helper.FormatHTTPStatus(503))
	assert.Equal(t, "301", helper.FormatHTTPStatus(301))
}

func TestColorHelper_ColorsDisabledWhenNoColor(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	helper := NewColorHelper()
	assert.False(t, helper.enabled)

	assert.Equal(t, "test", helper.Success("test"))
	assert.Equal(t, "test", helper.Failure("test"))
	assert.Equal(t, "test", helper.Warning("test"))
	assert.Equal(t, "SEVERE", helper.FormatLevel("SEVERE"))
}
