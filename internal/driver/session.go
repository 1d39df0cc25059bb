package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Session is a captured browser session replayed as a Driver. Sessions are
// written by CI jobs that export the WebDriver logs next to the test output.
type Session struct {
	Caps        Capabilities  `json:"capabilities" yaml:"capabilities"`
	Browser     []RawLogEntry `json:"browser" yaml:"browser"`
	Performance []RawLogEntry `json:"performance" yaml:"performance"`
}

// LoadSession reads a session file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var s Session

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing yaml session %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing json session %s: %w", path, err)
		}
	}

	if s.Caps == nil {
		s.Caps = Capabilities{}
	}

	return &s, nil
}

// Logs returns a copy of the captured entries of the given kind.
func (s *Session) Logs(ctx context.Context, kind LogKind) ([]RawLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var src []RawLogEntry

	switch kind {
	case KindBrowser:
		src = s.Browser
	case KindPerformance:
		src = s.Performance
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogKind, kind)
	}

	out := make([]RawLogEntry, len(src))
	copy(out, src)

	return out, nil
}

// Capabilities returns the captured capabilities.
func (s *Session) Capabilities(ctx context.Context) (Capabilities, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.Caps, nil
}

var _ Driver = (*Session)(nil)
