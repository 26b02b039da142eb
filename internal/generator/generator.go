package generator

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/medtrade/signals/internal/model"
)

// Truncation bounds for text carried onto signals.
const (
	headlineMaxLen      = 100
	summaryMaxLen       = 300
	socialSummaryMaxLen = 200
)

// socialConfidenceCeiling caps confidence for sentiment-only social signals.
const socialConfidenceCeiling = 70

// socialTargetMove is the default expected move for social-sentiment signals,
// signed by the extracted sentiment.
const socialTargetMove = 5.0

// socialPlatforms marks sources whose records fall back to sentiment-only
// generation when no event keyword matches.
var socialPlatforms = []string{"reddit", "twitter", "stocktwits"}

// Extractor recovers ticker and sentiment annotations from raw text. The
// generator only consults it for records that arrive unannotated; collectors
// normally annotate upstream.
type Extractor interface {
	ExtractTicker(text string) (ticker, company string)
	ExtractSentiment(text string) (sentiment model.Sentiment, confidence float64)
}

// Generator turns annotated records into typed signals.
type Generator struct {
	rules  map[model.SignalType]Rule
	order  []model.SignalType
	ext    Extractor
	logger *slog.Logger
}

// New creates a Generator. A nil rules map uses DefaultRules; ext may be nil
// when records are always pre-annotated.
func New(rules map[model.SignalType]Rule, ext Extractor, logger *slog.Logger) *Generator {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Fixed rule order so a record matching several rules yields signals
	// deterministically.
	order := make([]model.SignalType, 0, len(rules))
	for st := range rules {
		order = append(order, st)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	return &Generator{
		rules:  rules,
		order:  order,
		ext:    ext,
		logger: logger,
	}
}

// FromRecords generates signals for every record in order. Records without a
// resolvable ticker produce nothing.
func (g *Generator) FromRecords(records []model.Record) []model.Signal {
	var signals []model.Signal
	for _, rec := range records {
		signals = append(signals, g.FromRecord(rec)...)
	}
	return signals
}

// FromRecord generates zero or more signals from one record: one per matching
// generation rule, plus a sentiment-only fallback for social platforms when no
// rule matched and the sentiment is strong.
func (g *Generator) FromRecord(rec model.Record) []model.Signal {
	text := strings.ToLower(rec.Title + " " + rec.Body)

	ticker, company := g.resolveEntity(rec, text)
	if ticker == "" {
		g.logger.Debug("record skipped, no ticker resolved", "source", rec.Source, "title", truncate(rec.Title, 60))
		return nil
	}
	sentiment, sentimentConfidence := g.resolveSentiment(rec, text)

	var signals []model.Signal
	for _, signalType := range g.order {
		rule := g.rules[signalType]
		if !matchesAny(text, rule.Keywords) {
			continue
		}

		confidence := rule.BaseConfidence
		if sentiment == rule.Sentiment {
			confidence += sentimentAgreementBonus
		}
		confidence = clamp(confidence, ruleConfidenceFloor, ruleConfidenceCeiling)

		upside := rule.TargetUpside
		downside := rule.TargetDownside
		signals = append(signals, model.Signal{
			ID:             model.NewSignalID(idPrefix(rec.Source)),
			Type:           signalType,
			Ticker:         ticker,
			CompanyName:    company,
			Headline:       truncate(rec.Title, headlineMaxLen),
			Summary:        truncate(rec.Body, summaryMaxLen),
			Confidence:     confidence,
			Sentiment:      sentiment,
			TargetUpside:   &upside,
			TargetDownside: &downside,
			Sources:        []string{rec.Source},
			CollectedAt:    rec.CollectedAt,
			CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		})
		g.logger.Info("signal generated", "type", signalType, "ticker", ticker, "confidence", confidence)
	}

	if len(signals) == 0 {
		if sig, ok := g.socialFallback(rec, ticker, company, sentiment, sentimentConfidence); ok {
			signals = append(signals, sig)
		}
	}

	return signals
}

// socialFallback builds a SOCIAL_SENTIMENT signal for records from social
// platforms that matched no event rule. Neutral sentiment generates nothing.
func (g *Generator) socialFallback(rec model.Record, ticker, company string, sentiment model.Sentiment, sentimentConfidence float64) (model.Signal, bool) {
	if !isSocialSource(rec.Source) {
		return model.Signal{}, false
	}
	if sentiment != model.Positive && sentiment != model.Negative {
		return model.Signal{}, false
	}

	confidence := int(sentimentConfidence * 100)
	if confidence > socialConfidenceCeiling {
		confidence = socialConfidenceCeiling
	}

	upside := socialTargetMove
	downside := -socialTargetMove
	if sentiment == model.Negative {
		upside, downside = downside, upside
	}

	sig := model.Signal{
		ID:             model.NewSignalID(idPrefix(rec.Source)),
		Type:           model.SocialSentiment,
		Ticker:         ticker,
		CompanyName:    company,
		Headline:       truncate(rec.Title, headlineMaxLen),
		Summary:        truncate(rec.Body, socialSummaryMaxLen),
		Confidence:     confidence,
		Sentiment:      sentiment,
		TargetUpside:   &upside,
		TargetDownside: &downside,
		Sources:        []string{rec.Source},
		CollectedAt:    rec.CollectedAt,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	g.logger.Info("signal generated", "type", sig.Type, "ticker", ticker, "confidence", confidence)
	return sig, true
}

// resolveEntity prefers the record's annotations and falls back to the
// extractor. A missing company name falls back to the ticker.
func (g *Generator) resolveEntity(rec model.Record, text string) (ticker, company string) {
	ticker = strings.ToUpper(strings.TrimSpace(rec.Ticker))
	company = strings.TrimSpace(rec.CompanyName)

	if ticker == "" && g.ext != nil {
		t, c := g.ext.ExtractTicker(text)
		ticker = strings.ToUpper(strings.TrimSpace(t))
		if company == "" {
			company = strings.TrimSpace(c)
		}
	}

	if ticker == "" {
		return "", ""
	}
	if company == "" {
		company = ticker
	}
	return ticker, company
}

// resolveSentiment prefers annotations, falls back to the extractor, and
// degrades to low-confidence neutral when neither yields a valid sentiment.
func (g *Generator) resolveSentiment(rec model.Record, text string) (model.Sentiment, float64) {
	s := model.Sentiment(strings.ToLower(strings.TrimSpace(rec.Sentiment)))
	if s.Valid() {
		return s, rec.SentimentConfidence
	}

	if g.ext != nil {
		if s, confidence := g.ext.ExtractSentiment(text); s.Valid() {
			return s, confidence
		}
	}

	return model.Neutral, 0.1
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isSocialSource(source string) bool {
	s := strings.ToLower(source)
	for _, platform := range socialPlatforms {
		if strings.Contains(s, platform) {
			return true
		}
	}
	return false
}

// idPrefix derives the signal-ID prefix from the source identifier, e.g.
// "fda.gov" -> "fda", "reddit.com/r/biotech" -> "reddit".
func idPrefix(source string) string {
	s := strings.ToLower(source)
	if i := strings.IndexAny(s, "./"); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return "sig"
	}
	if len(s) > 6 {
		s = s[:6]
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
