// Package model defines shared data types used across the signal pipeline.
//
// Conventions:
//   - Confidence and validity scores: integer 0-100
//   - Factor sub-scores: float64 in [0,1]
//   - Timestamps: ISO-8601 strings as received from collectors; malformed
//     values are handled by consumers, never rejected at the model layer
//   - IDs: short source prefix + uuid hex (e.g. "fda_1a2b3c4d")
package model
