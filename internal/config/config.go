// Package config handles reporter option loading and validation
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingBaseDirectory is returned when no report directory is configured.
	ErrMissingBaseDirectory = errors.New("please pass a valid base directory to store the report into")
)

// Config holds the reporter options
type Config struct {
	BaseDirectory  string `yaml:"base_directory"`
	FileName       string `yaml:"file_name"`
	EnableHTTPLogs bool   `yaml:"enable_http_logs"`
	DevtoolsURL    string `yaml:"devtools_url"`
	DevtoolsTarget string `yaml:"devtools_target"`
	SessionFile    string `yaml:"session_file"`
}

// Default returns a Config with only the defaults set.
func Default() *Config {
	return &Config{FileName: DefaultFileName}
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads a YAML config file; environment variables override its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.BaseDirectory = getEnv(EnvBaseDirectory, c.BaseDirectory)
	c.FileName = getEnv(EnvFileName, c.FileName)
	c.DevtoolsURL = getEnv(EnvDevtoolsURL, c.DevtoolsURL)
	c.DevtoolsTarget = getEnv(EnvDevtoolsTarget, c.DevtoolsTarget)
	c.SessionFile = getEnv(EnvSessionFile, c.SessionFile)

	if v := os.Getenv(EnvEnableHTTPLogs); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvEnableHTTPLogs, err)
		}
		c.EnableHTTPLogs = enabled
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks the options needed to build a reporter.
func (c *Config) Validate() error {
	if c.BaseDirectory == "" {
		return ErrMissingBaseDirectory
	}

	return nil
}

// ReportPath is the file the report is written to.
func (c *Config) ReportPath() string {
	name := c.FileName
	if name == "" {
		name = DefaultFileName
	}

	return filepath.Join(c.BaseDirectory, name)
}

func (c *Config) String() string {
	baseDisplay := c.BaseDirectory
	if baseDisplay == "" {
		baseDisplay = "(not set)"
	}

	sourceDisplay := "(not set)"
	switch {
	case c.SessionFile != "":
		sourceDisplay = "session " + c.SessionFile
	case c.DevtoolsURL != "":
		sourceDisplay = "devtools " + c.DevtoolsURL
		if c.DevtoolsTarget != "" {
			sourceDisplay += " (target " + c.DevtoolsTarget + ")"
		}
	}

	return fmt.Sprintf(`Current Configuration:
======================
Base Directory:    %s
File Name:         %s
Report Path:       %s
HTTP Logs:         %t
Log Source:        %s`,
		baseDisplay,
		c.FileName,
		c.ReportPath(),
		c.EnableHTTPLogs,
		sourceDisplay,
	)
}
