package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/medtrade/signals/internal/model"
)

// FileSource is a Collector that reads a JSON array of records from disk.
// Useful for replaying captured batches and for local development without
// live collectors.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Collect loads and decodes the record file.
func (f *FileSource) Collect(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records file %s: %w", f.path, err)
	}

	return records, nil
}
