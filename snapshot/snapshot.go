// Package snapshot writes one timestamped JSON file per extraction task.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// NewStore returns a Store rooted at dir, creating dir if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating snapshot dir '%s': %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

type Store struct {
	dir string
}

// Write serializes records as pretty-printed JSON to
// <dir>/<label>_<YYYYMMDD_HHMMSS>.json and returns the file's path.
func (st *Store) Write(label string, at time.Time, records any) (string, error) {
	filename := filepath.Join(st.dir, fmt.Sprintf("%s_%s.json", label, at.Format("20060102_150405")))

	bs, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return "", fmt.Errorf("error serializing snapshot '%s': %w", label, err)
	}
	if err := os.WriteFile(filename, bs, 0644); err != nil {
		return "", fmt.Errorf("error writing snapshot '%s': %w", filename, err)
	}

	return filename, nil
}
