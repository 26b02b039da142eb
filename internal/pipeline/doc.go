// Package pipeline orchestrates one signal run: collect records, generate
// candidate signals, rescore confidence, deduplicate within the run, validate
// the surviving batch, then rank accepted signals and cap them to one per
// ticker and type. A Runner wraps the pipeline in an interval loop for
// continuous operation.
package pipeline
