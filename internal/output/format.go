package output

import (
	"fmt"
	"strings"
	"time"
)

// Duration formats a duration for human-readable output.
func Duration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.0fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Milliseconds()))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	return fmt.Sprintf("%.1fm", d.Minutes())
}

// Truncate shortens s to max runes on a single line.
func Truncate(s string, limit int) string {
	s, _, multiline := strings.Cut(s, "\n")
	r := []rune(s)

	if len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	if multiline {
		return s + " ..."
	}

	return s
}
