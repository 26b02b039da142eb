package dedup

import (
	"sync"

	"github.com/medtrade/signals/internal/model"
)

// Deduplicator keeps the highest-confidence copy of each distinct event seen
// during one pipeline run. Safe for concurrent admission.
type Deduplicator struct {
	mu      sync.Mutex
	entries map[string]model.Signal
	order   []string // fingerprints in first-seen order

	admitted  int64
	replaced  int64
	discarded int64
}

// Stats summarizes the deduplicator's activity for one run.
type Stats struct {
	Admitted  int64 // distinct events accepted
	Replaced  int64 // duplicates that displaced a lower-confidence incumbent
	Discarded int64 // duplicates dropped outright
}

// New creates an empty Deduplicator.
func New() *Deduplicator {
	return &Deduplicator{entries: make(map[string]model.Signal)}
}

// Admit offers a signal to the working set. It returns true when the signal
// is a new distinct event; false when it was a duplicate (dropped, or it
// replaced a lower-confidence incumbent). Ties keep the incumbent.
func (d *Deduplicator) Admit(sig model.Signal) bool {
	key := sig.Fingerprint()

	d.mu.Lock()
	defer d.mu.Unlock()

	incumbent, exists := d.entries[key]
	if !exists {
		d.entries[key] = sig
		d.order = append(d.order, key)
		d.admitted++
		return true
	}

	if sig.Confidence > incumbent.Confidence {
		d.entries[key] = sig
		d.replaced++
	} else {
		d.discarded++
	}
	return false
}

// Signals returns the retained working set in first-seen order.
func (d *Deduplicator) Signals() []model.Signal {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Signal, 0, len(d.order))
	for _, key := range d.order {
		out = append(out, d.entries[key])
	}
	return out
}

// Len returns the number of distinct events retained.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Stats returns admission counters.
func (d *Deduplicator) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{Admitted: d.admitted, Replaced: d.replaced, Discarded: d.discarded}
}

// Reset clears the table for a new run.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = make(map[string]model.Signal)
	d.order = nil
	d.admitted, d.replaced, d.discarded = 0, 0, 0
}
