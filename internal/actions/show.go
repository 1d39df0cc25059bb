package actions

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/output"
)

// LoadReport decodes a report file.
func LoadReport(path string) (*metadata.MetaData, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}

	var md metadata.MetaData
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}

	return &md, nil
}

// ShowReport prints the report stored at path.
func ShowReport(w io.Writer, path string) error {
	md, err := LoadReport(path)
	if err != nil {
		return err
	}

	output.NewFormatter(w, nil).PrintReport(md)

	return nil
}

// ListReports returns the JSON files found directly under dir, sorted.
func ListReports(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing reports in %s: %w", dir, err)
	}

	sort.Strings(matches)

	return matches, nil
}
