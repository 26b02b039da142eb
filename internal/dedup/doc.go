// Package dedup implements within-run duplicate suppression for signals.
//
// Signals are keyed by their content fingerprint (ticker, signal type,
// headline prefix, collection date). When a duplicate arrives the
// higher-confidence copy wins; ties keep the incumbent. The table lives for
// one pipeline run and is discarded afterwards — there is no cross-run state.
//
// Admission is serialized behind a mutex so collectors may feed the
// deduplicator concurrently; the coarser one-signal-per-(ticker,type) cap is
// a separate ranking step in the pipeline, not part of this table.
package dedup
