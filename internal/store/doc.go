// Package store persists finished pipeline runs.
//
// Sinks:
//   - SignalWriter: batched inserts of signals plus their validation verdicts
//     into Postgres (append-only, ON CONFLICT DO NOTHING)
//   - JSONSink: timestamped JSON dump of the full run result, plus latest.json
//
// A growable Buffer decouples run completion from database flushing so a slow
// insert never blocks the pipeline.
package store
