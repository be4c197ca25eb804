package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// create opens path for writing, creating its parent directories
func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	return os.Create(path)
}

// SaveJson writes data to path as indented JSON
func SaveJson(path string, data interface{}) error {
	file, err := create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

// SaveJsonLines writes one JSON document per line. Nothing is written
// when rows is empty.
func SaveJsonLines(path string, rows []interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	file, err := create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(file)
	for i, row := range rows {
		if err := enc.Encode(row); err != nil {
			file.Close()
			return fmt.Errorf("encoding line %d of %s: %w", i, path, err)
		}
	}
	return file.Close()
}
