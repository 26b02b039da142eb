package dedup

import (
	"sync"
	"testing"

	"github.com/medtrade/signals/internal/model"
)

func sig(id string, confidence int) model.Signal {
	return model.Signal{
		ID:          id,
		Type:        model.FDAApproval,
		Ticker:      "MRNA",
		Headline:    "FDA approves Moderna's COVID-19 vaccine",
		Confidence:  confidence,
		CollectedAt: "2026-02-06T08:00:00Z",
	}
}

func TestDeduplicator_Admit(t *testing.T) {
	t.Run("FirstSeenAccepted", func(t *testing.T) {
		d := New()
		if !d.Admit(sig("a", 70)) {
			t.Errorf("first signal should be admitted")
		}
		if d.Len() != 1 {
			t.Errorf("Len() = %d, want 1", d.Len())
		}
	})

	t.Run("HigherConfidenceReplaces", func(t *testing.T) {
		d := New()
		d.Admit(sig("low", 60))
		if d.Admit(sig("high", 90)) {
			t.Errorf("duplicate should report false even when it replaces")
		}

		kept := d.Signals()
		if len(kept) != 1 {
			t.Fatalf("len(Signals()) = %d, want 1", len(kept))
		}
		if kept[0].ID != "high" {
			t.Errorf("kept %q, want the higher-confidence copy", kept[0].ID)
		}
	})

	t.Run("LowerConfidenceDropped", func(t *testing.T) {
		d := New()
		d.Admit(sig("high", 90))
		d.Admit(sig("low", 60))

		if kept := d.Signals(); kept[0].ID != "high" {
			t.Errorf("kept %q, want the higher-confidence copy", kept[0].ID)
		}
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		// Same pair admitted in either order must retain the same winner.
		for _, order := range [][]model.Signal{
			{sig("low", 60), sig("high", 90)},
			{sig("high", 90), sig("low", 60)},
		} {
			d := New()
			for _, s := range order {
				d.Admit(s)
			}
			if kept := d.Signals(); kept[0].ID != "high" {
				t.Errorf("kept %q, want high regardless of arrival order", kept[0].ID)
			}
		}
	})

	t.Run("TieKeepsIncumbent", func(t *testing.T) {
		d := New()
		d.Admit(sig("first", 75))
		d.Admit(sig("second", 75))

		if kept := d.Signals(); kept[0].ID != "first" {
			t.Errorf("kept %q, want the incumbent on ties", kept[0].ID)
		}
	})

	t.Run("DistinctEventsCoexist", func(t *testing.T) {
		d := New()
		d.Admit(sig("a", 70))

		other := sig("b", 70)
		other.Ticker = "BNTX"
		if !d.Admit(other) {
			t.Errorf("different ticker should be a distinct event")
		}
		if d.Len() != 2 {
			t.Errorf("Len() = %d, want 2", d.Len())
		}
	})
}

func TestDeduplicator_Stats(t *testing.T) {
	d := New()
	d.Admit(sig("a", 60))
	d.Admit(sig("b", 90)) // replaces
	d.Admit(sig("c", 50)) // discarded

	stats := d.Stats()
	if stats.Admitted != 1 {
		t.Errorf("Admitted = %d, want 1", stats.Admitted)
	}
	if stats.Replaced != 1 {
		t.Errorf("Replaced = %d, want 1", stats.Replaced)
	}
	if stats.Discarded != 1 {
		t.Errorf("Discarded = %d, want 1", stats.Discarded)
	}
}

func TestDeduplicator_Reset(t *testing.T) {
	d := New()
	d.Admit(sig("a", 70))
	d.Reset()

	if d.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", d.Len())
	}
	if !d.Admit(sig("a", 70)) {
		t.Errorf("signal should be new again after Reset")
	}
}

func TestDeduplicator_ConcurrentAdmit(t *testing.T) {
	d := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(confidence int) {
			defer wg.Done()
			d.Admit(sig("s", confidence))
		}(i)
	}
	wg.Wait()

	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	if kept := d.Signals(); kept[0].Confidence != 49 {
		t.Errorf("kept confidence %d, want 49", kept[0].Confidence)
	}
}
