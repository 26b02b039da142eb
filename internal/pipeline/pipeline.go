package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/medtrade/signals/internal/dedup"
	"github.com/medtrade/signals/internal/generator"
	"github.com/medtrade/signals/internal/model"
	"github.com/medtrade/signals/internal/scoring"
	"github.com/medtrade/signals/internal/validate"
)

// Collector supplies annotated records for one run.
type Collector interface {
	Collect(ctx context.Context) ([]model.Record, error)
}

// Sink receives the finished result of a run.
type Sink interface {
	WriteRun(ctx context.Context, res *Result) error
}

// SinkFunc is a function adapter for Sink.
type SinkFunc func(ctx context.Context, res *Result) error

func (f SinkFunc) WriteRun(ctx context.Context, res *Result) error {
	return f(ctx, res)
}

// topSignalsLogged bounds how many accepted signals the run summary logs.
const topSignalsLogged = 5

// Rejected pairs a rejected signal with the validation result that rejected it.
type Rejected struct {
	Signal model.Signal           `json:"signal"`
	Result model.ValidationResult `json:"result"`
}

// Analysis is the reader-facing interpretation of one accepted signal: its
// confidence band, a trading recommendation, and the per-factor breakdown
// behind the score.
type Analysis struct {
	Level          model.ConfidenceLevel           `json:"confidence_level"`
	Recommendation string                          `json:"recommendation"`
	Factors        map[string]scoring.FactorDetail `json:"factors"`
}

// Result is the complete outcome of one pipeline run.
type Result struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	Records   int `json:"records"`   // records collected
	Generated int `json:"generated"` // candidate signals before dedup

	Signals  []model.Signal `json:"signals"` // accepted, ranked, capped
	Rejected []Rejected     `json:"rejected"`

	// Validation keeps every signal's full validation result, keyed by
	// signal ID, accepted and rejected alike.
	Validation map[string]model.ValidationResult `json:"validation"`

	// Analysis carries the scoring breakdown and recommendation for each
	// accepted signal, keyed by signal ID.
	Analysis map[string]Analysis `json:"analysis"`

	Dedup   dedup.Stats           `json:"dedup"`
	Summary validate.BatchSummary `json:"validation_summary"`
}

// Pipeline wires the stages of a signal run together.
type Pipeline struct {
	collectors []Collector
	gen        *generator.Generator
	scorer     *scoring.Scorer
	validator  *validate.Validator
	sinks      []Sink
	logger     *slog.Logger
}

// New creates a Pipeline. All stages must be non-nil except sinks, which may
// be empty for dry runs.
func New(collectors []Collector, gen *generator.Generator, scorer *scoring.Scorer, validator *validate.Validator, sinks []Sink, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		collectors: collectors,
		gen:        gen,
		scorer:     scorer,
		validator:  validator,
		sinks:      sinks,
		logger:     logger,
	}
}

// Run executes one full pass: collect, generate, score, dedup, validate,
// rank, cap, and hand the result to every sink. A collector failure skips
// that collector; a sink failure fails the run after all sinks were tried.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	records := p.collect(ctx)

	candidates := p.gen.FromRecords(records)
	factorsByID := make(map[string]model.ConfidenceFactors, len(candidates))
	for i := range candidates {
		confidence, factors := p.scorer.ScoreSignal(candidates[i])
		candidates[i].Confidence = confidence
		factorsByID[candidates[i].ID] = factors
	}

	// Per-run dedup: higher confidence wins, the rest is discarded.
	d := dedup.New()
	for _, sig := range candidates {
		d.Admit(sig)
	}
	unique := d.Signals()

	results := p.validator.ValidateBatch(unique)

	res := &Result{
		StartedAt:  start.UTC(),
		Records:    len(records),
		Generated:  len(candidates),
		Dedup:      d.Stats(),
		Summary:    validate.Summarize(results),
		Validation: make(map[string]model.ValidationResult, len(unique)),
	}
	for i, sig := range unique {
		res.Validation[sig.ID] = results[i]
		if results[i].IsValid {
			res.Signals = append(res.Signals, sig)
		} else {
			res.Rejected = append(res.Rejected, Rejected{Signal: sig, Result: results[i]})
		}
	}

	res.Signals = rankAndCap(res.Signals)

	res.Analysis = make(map[string]Analysis, len(res.Signals))
	for _, sig := range res.Signals {
		res.Analysis[sig.ID] = Analysis{
			Level:          sig.Level(),
			Recommendation: scoring.Recommendation(sig.Confidence, sig.Sentiment),
			Factors:        scoring.Breakdown(factorsByID[sig.ID]),
		}
	}

	res.Duration = time.Since(start)

	p.logSummary(res)

	var sinkErr error
	for _, sink := range p.sinks {
		if err := sink.WriteRun(ctx, res); err != nil {
			p.logger.Error("sink write failed", "err", err)
			if sinkErr == nil {
				sinkErr = fmt.Errorf("writing run result: %w", err)
			}
		}
	}

	return res, sinkErr
}

// collect gathers records from every collector, skipping the ones that fail.
func (p *Pipeline) collect(ctx context.Context) []model.Record {
	var records []model.Record
	for _, c := range p.collectors {
		recs, err := c.Collect(ctx)
		if err != nil {
			p.logger.Warn("collector failed", "err", err)
			continue
		}
		records = append(records, recs...)
	}
	return records
}

// rankAndCap sorts by confidence descending and keeps one signal per ticker
// and type pair, so a single event cannot crowd the ranked output. Ties break
// by signal ID for determinism.
func rankAndCap(signals []model.Signal) []model.Signal {
	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Confidence != signals[j].Confidence {
			return signals[i].Confidence > signals[j].Confidence
		}
		return signals[i].ID < signals[j].ID
	})

	seen := make(map[string]bool, len(signals))
	capped := signals[:0]
	for _, sig := range signals {
		key := sig.Ticker + "|" + string(sig.Type)
		if seen[key] {
			continue
		}
		seen[key] = true
		capped = append(capped, sig)
	}
	return capped
}

func (p *Pipeline) logSummary(res *Result) {
	byType := make(map[model.SignalType]int)
	bySentiment := make(map[model.Sentiment]int)
	for _, sig := range res.Signals {
		byType[sig.Type]++
		bySentiment[sig.Sentiment]++
	}

	p.logger.Info("run complete",
		"records", res.Records,
		"generated", res.Generated,
		"unique", res.Dedup.Admitted,
		"accepted", len(res.Signals),
		"rejected", len(res.Rejected),
		"validity_rate", res.Summary.ValidityRate,
		"duration", res.Duration,
	)

	for signalType, n := range byType {
		p.logger.Debug("accepted by type", "type", signalType, "count", n)
	}
	for sentiment, n := range bySentiment {
		p.logger.Debug("accepted by sentiment", "sentiment", sentiment, "count", n)
	}

	top := res.Signals
	if len(top) > topSignalsLogged {
		top = top[:topSignalsLogged]
	}
	for _, sig := range top {
		p.logger.Info("top signal",
			"type", sig.Type,
			"ticker", sig.Ticker,
			"confidence", sig.Confidence,
			"level", sig.Level(),
			"recommendation", res.Analysis[sig.ID].Recommendation,
			"headline", sig.Headline,
		)
	}
}
