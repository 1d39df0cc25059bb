package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/sirupsen/logrus"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store persists a report.
type Store interface {
	Save(path string, md *metadata.MetaData) error
}

type fileStore struct {
	log logrus.FieldLogger
}

// NewFileStore creates a Store writing tab-indented JSON files.
func NewFileStore(log logrus.FieldLogger) Store {
	return &fileStore{
		log: log.WithField("component", "file_store"),
	}
}

// Save creates the parent directories of path and writes md to it.
func (s *fileStore) Save(path string, md *metadata.MetaData) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating report directory %s: %w", dir, err)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")

	if err := enc.Encode(md); err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil { //nolint:gosec // report files are meant to be world readable
		return fmt.Errorf("writing metadata file %s: %w", path, err)
	}

	s.log.WithFields(logrus.Fields{
		"path":  path,
		"bytes": buf.Len(),
	}).Debug("report written")

	return nil
}

var _ Store = (*fileStore)(nil)
