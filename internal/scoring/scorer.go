package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/medtrade/signals/internal/model"
	"github.com/medtrade/signals/internal/refdata"
)

// Factor weights for the final combination. Fixed; they sum to 1.0.
const (
	weightSourceReliability  = 0.25
	weightRecency            = 0.20
	weightEntityQuality      = 0.15
	weightSentimentStrength  = 0.15
	weightMarketImpact       = 0.10
	weightConfirmationCount  = 0.10
	weightHistoricalAccuracy = 0.05
)

// Recency decay parameters.
const (
	recencyHalfLifeHours = 24.0
	maxAgeHours          = 168.0 // 1 week
	recencyFloor         = 0.1
)

// defaultHistoricalAccuracy is used when the caller supplies no track record.
const defaultHistoricalAccuracy = 0.6

// Input carries everything the scorer needs for one signal.
type Input struct {
	Sources             []string
	Sentiment           model.Sentiment
	SentimentConfidence float64 // 0-1
	CollectedAt         string  // ISO-8601, may be empty or malformed
	Ticker              string
	CompanyName         string
	SignalType          model.SignalType

	// HistoricalAccuracy overrides the default track record when non-nil.
	HistoricalAccuracy *float64

	// SourceCount overrides len(Sources) when non-nil (collectors sometimes
	// report confirmations they did not hand over as identifiers).
	SourceCount *int

	// SourceDiversity in [0,1]; how different the sources are.
	SourceDiversity float64
}

// Scorer computes confidence scores against a fixed reference table set.
type Scorer struct {
	tables *refdata.Set
}

// New creates a Scorer. A nil table set falls back to the built-in defaults.
func New(tables *refdata.Set) *Scorer {
	if tables == nil {
		tables = refdata.Default()
	}
	return &Scorer{tables: tables}
}

// Score computes the 0-100 confidence score and its factor breakdown.
func (s *Scorer) Score(in Input) (int, model.ConfidenceFactors) {
	factors := model.ConfidenceFactors{
		SourceReliability: s.sourceReliabilityMulti(in.Sources),
		RecencyScore:      s.recencyScore(in.CollectedAt),
		EntityQuality:     s.entityQuality(in.Ticker, in.CompanyName),
		SentimentStrength: s.sentimentStrength(in.Sentiment, in.SentimentConfidence),
		MarketImpact:      s.marketImpact(in.SignalType),
	}

	count := len(in.Sources)
	if in.SourceCount != nil {
		count = *in.SourceCount
	}
	factors.ConfirmationCount = s.confirmationScore(count, in.SourceDiversity)

	factors.HistoricalAccuracy = defaultHistoricalAccuracy
	if in.HistoricalAccuracy != nil {
		factors.HistoricalAccuracy = *in.HistoricalAccuracy
	}

	raw := factors.SourceReliability*weightSourceReliability +
		factors.RecencyScore*weightRecency +
		factors.EntityQuality*weightEntityQuality +
		factors.SentimentStrength*weightSentimentStrength +
		factors.MarketImpact*weightMarketImpact +
		factors.ConfirmationCount*weightConfirmationCount +
		factors.HistoricalAccuracy*weightHistoricalAccuracy

	confidence := int(raw * 100)
	if confidence > 95 {
		confidence = 95
	}
	if confidence < 5 {
		confidence = 5
	}

	return confidence, factors
}

// ScoreSignal re-scores an assembled signal, mapping its fields back onto the
// scorer's inputs. The signal's stored confidence is reinterpreted as the
// sentiment confidence.
func (s *Scorer) ScoreSignal(sig model.Signal) (int, model.ConfidenceFactors) {
	return s.Score(Input{
		Sources:             sig.Sources,
		Sentiment:           sig.Sentiment,
		SentimentConfidence: float64(sig.Confidence) / 100,
		CollectedAt:         sig.CollectedAt,
		Ticker:              sig.Ticker,
		CompanyName:         sig.CompanyName,
		SignalType:          sig.Type,
		SourceDiversity:     0.5,
	})
}

// sourceReliability looks up one source identifier by substring match.
func (s *Scorer) sourceReliability(source string) float64 {
	lower := strings.ToLower(source)
	for domain, score := range s.tables.SourceReliability {
		if strings.Contains(lower, domain) {
			return score
		}
	}
	return s.tables.DefaultReliability
}

// sourceReliabilityMulti averages reliability across sources with a bonus of
// up to +0.1 for multiple confirmations.
func (s *Scorer) sourceReliabilityMulti(sources []string) float64 {
	if len(sources) == 0 {
		return 0.3
	}

	var sum float64
	for _, src := range sources {
		sum += s.sourceReliability(src)
	}
	avg := sum / float64(len(sources))

	if len(sources) > 1 {
		bonus := math.Min(0.1, float64(len(sources)-1)*0.05)
		avg += bonus
	}

	return math.Min(1.0, avg)
}

// recencyScore applies exponential half-life decay to the signal's age.
// Empty or unparsable timestamps assume a 24h-old signal rather than a fresh
// one, so bad data never outranks good data.
func (s *Scorer) recencyScore(collectedAt string) float64 {
	ageHours := recencyHalfLifeHours
	if t, err := model.ParseTime(collectedAt); err == nil {
		ageHours = time.Since(t).Hours()
	}

	if ageHours < 0 {
		return 1.0 // future timestamp; the validator flags it separately
	}
	if ageHours > maxAgeHours {
		return recencyFloor
	}

	decay := math.Exp(-math.Ln2 * ageHours / recencyHalfLifeHours)
	return math.Max(recencyFloor, decay)
}

// entityQuality scores the plausibility of the extracted ticker and company.
func (s *Scorer) entityQuality(ticker, companyName string) float64 {
	score := 0.5

	if n := len(ticker); n >= 1 && n <= 5 {
		score += 0.2
	}
	if n := len(companyName); n > 2 && n < 100 {
		score += 0.2
	}
	if ticker != "" && ticker == strings.ToUpper(ticker) {
		score += 0.1
	}

	return math.Min(1.0, score)
}

// sentimentStrength is the extractor's confidence, nudged for directionality.
func (s *Scorer) sentimentStrength(sentiment model.Sentiment, confidence float64) float64 {
	base := confidence
	if sentiment == model.Positive || sentiment == model.Negative {
		base += 0.1
	} else {
		base -= 0.1
	}
	return math.Max(0.0, math.Min(1.0, base))
}

// marketImpact looks up the expected impact for a signal type.
func (s *Scorer) marketImpact(signalType model.SignalType) float64 {
	if w, ok := s.tables.ImpactWeights[signalType]; ok {
		return w
	}
	return s.tables.DefaultImpact
}

// confirmationScore rewards independent corroboration.
func (s *Scorer) confirmationScore(sourceCount int, diversity float64) float64 {
	switch {
	case sourceCount <= 0:
		return 0.2
	case sourceCount == 1:
		return 0.5
	case sourceCount == 2:
		return 0.7 + diversity*0.1
	default: // 3+
		return 0.9 + diversity*0.1
	}
}
