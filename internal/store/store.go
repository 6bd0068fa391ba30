// Package store reads and writes the item file: a YAML list of flat maps
// keyed by the one-letter field codes (see internal/model fields.go). The
// engine itself never touches storage; this package is the adapter between
// the stored field-code maps and the typed records.
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the item file into raw field-code maps. A missing file is an
// empty store, not an error.
func Load(path string) ([]map[string]any, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save writes raw field-code maps back to the item file.
//
//   - Ensures the parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Final file permissions are 0600.
func Save(path string, items []map[string]any) error {
	if path == "" {
		return errors.New("store path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(items)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".planner-items-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
