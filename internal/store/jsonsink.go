package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/medtrade/signals/internal/pipeline"
)

// JSONSink writes each run result to a timestamped JSON file and refreshes
// latest.json so downstream consumers always have a stable path to poll.
type JSONSink struct {
	dir    string
	logger *slog.Logger
}

// NewJSONSink creates a JSONSink writing into dir.
func NewJSONSink(dir string, logger *slog.Logger) *JSONSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONSink{dir: dir, logger: logger}
}

// WriteRun persists the run result.
func (s *JSONSink) WriteRun(_ context.Context, res *pipeline.Result) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run result: %w", err)
	}

	name := "signals_" + res.StartedAt.Format("20060102_150405") + ".json"
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	latest := filepath.Join(s.dir, "latest.json")
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", latest, err)
	}

	s.logger.Info("run result written", "path", path, "signals", len(res.Signals))
	return nil
}
