package actions

import (
	"fmt"
	"io"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/config"
)

// LoadConfig reads the YAML file at path when one is given and the
// environment otherwise.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	return config.Load()
}

// ShowConfig displays the current configuration
func ShowConfig(w io.Writer, path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(w, cfg.String())
	return nil
}
