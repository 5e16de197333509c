// Package record provides durable, corruption-resistant persistence of one
// JSON-serializable record per file. Writes are all-or-nothing: data is
// written to a sibling temporary file and renamed into place, so concurrent
// readers never observe a half-written record. Rename is assumed atomic at
// the filesystem level for same-directory moves.
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/cohort/internal/errors"
)

// Write serializes v as indented JSON and atomically replaces path.
// On any failure the temporary file is removed and path is left untouched.
// Parent directories are created as needed.
func Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// Read parses the record at path into v. It returns (false, nil) if the file
// does not exist, and a distinct corrupt-record error if the file exists but
// cannot be parsed. It never yields partial data: on a parse failure v is
// left unmodified.
func Read(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read record: %w", err)
	}

	// Validate before unmarshaling into v so a corrupt file cannot leave
	// v partially populated.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, errors.NewCorruptError(path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.NewCorruptError(path, err)
	}
	return true, nil
}

// Delete removes the record at path if present; it is a no-op otherwise.
func Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Exists reports whether a record file exists at path without reading it.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
