package metadata

import (
	"regexp"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/driver"
)

// consolePattern splits "<source> <line:col> <message>"; the message may span
// lines. The source excludes Unicode whitespace and the message excludes \r,
// U+2028 and U+2029, following ECMAScript's \S and "." semantics.
var consolePattern = regexp.MustCompile(
	`^([^\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+) ` +
		`(\d+:\d+) ` +
		`([^\r\x{2028}\x{2029}]+)$`,
)

// parseConsole keeps input order and drops lines that do not match consolePattern.
func parseConsole(entries []driver.RawLogEntry) []ConsoleLog {
	logs := make([]ConsoleLog, 0, len(entries))

	for _, entry := range entries {
		m := consolePattern.FindStringSubmatch(entry.Message)
		if m == nil {
			continue
		}

		logs = append(logs, ConsoleLog{
			Level:     entry.Level,
			Timestamp: entry.Timestamp,
			Date:      ISODate(entry.Timestamp),
			Stack: ConsoleStack{
				URL:      m[1],
				Position: m[2],
				Message:  m[3],
			},
		})
	}

	return logs
}
