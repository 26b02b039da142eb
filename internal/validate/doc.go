// Package validate implements the signal validator.
//
// Validation runs seven independent checks over a signal: ticker validity,
// spam phrasing, source reliability, recency, historical cross-reference,
// hype-cycle detection, and a per-platform confidence ceiling. Checks never
// short-circuit — every check runs so the full diagnostic detail is always
// available. Each flag subtracts a fixed penalty from a 100-point validity
// score and each warning subtracts 3 more; a signal passes when the score
// stays at or above the threshold and the ticker check did not veto it.
package validate
