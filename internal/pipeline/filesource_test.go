package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		data := `[
			{"title": "FDA approves drug", "source": "fda.gov", "ticker": "MRNA", "sentiment": "positive"},
			{"title": "Trial update", "source": "pubmed.ncbi.nlm.nih.gov", "ticker": "BNTX"}
		]`
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		records, err := NewFileSource(path).Collect(context.Background())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2", len(records))
		}
		if records[0].Ticker != "MRNA" {
			t.Errorf("records[0].Ticker = %q, want MRNA", records[0].Ticker)
		}
		if records[1].Source != "pubmed.ncbi.nlm.nih.gov" {
			t.Errorf("records[1].Source = %q", records[1].Source)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).Collect(context.Background())
		if err == nil {
			t.Errorf("Collect() error = nil, want read failure")
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		_, err := NewFileSource(path).Collect(context.Background())
		if err == nil {
			t.Errorf("Collect() error = nil, want parse failure")
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFileSource("unused.json").Collect(ctx)
		if err == nil {
			t.Errorf("Collect() error = nil, want context error")
		}
	})
}
