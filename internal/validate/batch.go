package validate

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/medtrade/signals/internal/model"
)

// ValidateBatch validates every signal against its same-ticker siblings from
// the same batch. Results are positionally aligned with the input. Signals
// are grouped by ticker first so each hype-cycle check sees its true siblings
// (excluding the signal itself); individual validations then run in parallel
// since they share no mutable state.
func (v *Validator) ValidateBatch(signals []model.Signal) []model.ValidationResult {
	byTicker := make(map[string][]int)
	for i, sig := range signals {
		key := strings.ToUpper(sig.Ticker)
		byTicker[key] = append(byTicker[key], i)
	}

	results := make([]model.ValidationResult, len(signals))

	var g errgroup.Group
	g.SetLimit(v.cfg.Concurrency)
	for i := range signals {
		i := i
		g.Go(func() error {
			sig := signals[i]

			indexes := byTicker[strings.ToUpper(sig.Ticker)]
			siblings := make([]model.Signal, 0, len(indexes)-1)
			for _, j := range indexes {
				if j != i {
					siblings = append(siblings, signals[j])
				}
			}

			results[i] = v.Validate(sig, siblings)
			return nil
		})
	}
	// Validations never return errors; Wait only synchronizes.
	_ = g.Wait()

	return results
}

// BatchSummary aggregates a batch of validation results.
type BatchSummary struct {
	Total        int                          `json:"total"`
	Valid        int                          `json:"valid"`
	Invalid      int                          `json:"invalid"`
	ValidityRate float64                      `json:"validity_rate"` // percent, one decimal
	FlagCounts   map[model.ValidationFlag]int `json:"flag_counts"`
	AvgScore     float64                      `json:"avg_score"`
}

// Summarize computes pass/fail counts, per-flag frequency, and mean score.
func Summarize(results []model.ValidationResult) BatchSummary {
	summary := BatchSummary{
		Total:      len(results),
		FlagCounts: make(map[model.ValidationFlag]int),
	}
	if len(results) == 0 {
		return summary
	}

	var scoreSum int
	for _, r := range results {
		if r.IsValid {
			summary.Valid++
		}
		scoreSum += r.Score
		for _, flag := range r.Flags {
			summary.FlagCounts[flag]++
		}
	}

	summary.Invalid = summary.Total - summary.Valid
	summary.ValidityRate = float64(int(float64(summary.Valid)/float64(summary.Total)*1000+0.5)) / 10
	summary.AvgScore = float64(scoreSum) / float64(summary.Total)

	return summary
}
