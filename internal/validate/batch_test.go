package validate

import (
	"testing"

	"github.com/medtrade/signals/internal/model"
)

func TestValidateBatch(t *testing.T) {
	v := New(Config{}, nil)

	t.Run("PositionalAlignment", func(t *testing.T) {
		good := cleanSignal()
		bad := cleanSignal()
		bad.Ticker = ""

		results := v.ValidateBatch([]model.Signal{good, bad})
		if len(results) != 2 {
			t.Fatalf("len(results) = %d, want 2", len(results))
		}
		if !results[0].IsValid {
			t.Errorf("results[0] invalid, want valid")
		}
		if results[1].IsValid {
			t.Errorf("results[1] valid, want invalid")
		}
	})

	t.Run("HypeAcrossBatch", func(t *testing.T) {
		// Five individually clean same-ticker, same-type signals: every
		// entry trips the hype-cycle flag.
		var batch []model.Signal
		for i := 0; i < 5; i++ {
			batch = append(batch, cleanSignal())
		}

		results := v.ValidateBatch(batch)
		for i, r := range results {
			if !r.HasFlag(model.FlagHypeCycle) {
				t.Errorf("results[%d]: hype flag missing", i)
			}
		}
	})

	t.Run("HypeAtExactlyFour", func(t *testing.T) {
		// Four same-ticker, same-type signals are the smallest burst that
		// flags: each entry counts itself plus three siblings.
		var batch []model.Signal
		for i := 0; i < 4; i++ {
			batch = append(batch, cleanSignal())
		}

		results := v.ValidateBatch(batch)
		for i, r := range results {
			if !r.HasFlag(model.FlagHypeCycle) {
				t.Errorf("results[%d]: hype flag missing in a four-signal burst", i)
			}
		}
	})

	t.Run("ThreeStaysQuiet", func(t *testing.T) {
		var batch []model.Signal
		for i := 0; i < 3; i++ {
			batch = append(batch, cleanSignal())
		}

		results := v.ValidateBatch(batch)
		for i, r := range results {
			if r.HasFlag(model.FlagHypeCycle) {
				t.Errorf("results[%d]: hype flagged below the four-signal threshold", i)
			}
		}
	})

	t.Run("TickersIsolated", func(t *testing.T) {
		mrna := cleanSignal()
		bntx := cleanSignal()
		bntx.Ticker = "BNTX"

		results := v.ValidateBatch([]model.Signal{mrna, bntx, mrna, bntx})
		for i, r := range results {
			if r.HasFlag(model.FlagHypeCycle) {
				t.Errorf("results[%d]: cross-ticker signals must not count as siblings", i)
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if results := v.ValidateBatch(nil); len(results) != 0 {
			t.Errorf("len(results) = %d, want 0", len(results))
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		s := Summarize(nil)
		if s.Total != 0 || s.Valid != 0 || s.Invalid != 0 {
			t.Errorf("empty summary = %+v, want zeros", s)
		}
	})

	t.Run("Counts", func(t *testing.T) {
		results := []model.ValidationResult{
			{IsValid: true, Score: 100},
			{IsValid: true, Score: 80, Flags: []model.ValidationFlag{model.FlagSourceUnreliable}},
			{IsValid: false, Score: 30, Flags: []model.ValidationFlag{model.FlagSpamPattern, model.FlagSourceUnreliable}},
		}

		s := Summarize(results)
		if s.Total != 3 || s.Valid != 2 || s.Invalid != 1 {
			t.Errorf("counts = %d/%d/%d, want 3/2/1", s.Total, s.Valid, s.Invalid)
		}
		if s.ValidityRate != 66.7 {
			t.Errorf("ValidityRate = %v, want 66.7", s.ValidityRate)
		}
		if s.FlagCounts[model.FlagSourceUnreliable] != 2 {
			t.Errorf("source-unreliable count = %d, want 2", s.FlagCounts[model.FlagSourceUnreliable])
		}
		if s.AvgScore != 70 {
			t.Errorf("AvgScore = %v, want 70", s.AvgScore)
		}
	})
}
