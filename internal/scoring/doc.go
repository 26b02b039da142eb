// Package scoring implements the confidence scorer.
//
// The scorer is a pure function of its inputs plus the reference tables: it
// combines seven factor sub-scores (source reliability, recency, entity
// quality, sentiment strength, market impact, confirmation count, historical
// accuracy) into a weighted 0-100 confidence score. The final score is
// clamped to [5,95] so the pipeline never reports absolute certainty or
// absolute worthlessness.
package scoring
