package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Enumerations
// -----------------------------------------------------------------------------

// SignalType classifies the market event a signal describes.
type SignalType string

const (
	FDAApproval       SignalType = "FDA_APPROVAL"
	FDARejection      SignalType = "FDA_REJECTION"
	FDAWarning        SignalType = "FDA_WARNING"
	TrialSuccess      SignalType = "TRIAL_SUCCESS"
	TrialFailure      SignalType = "TRIAL_FAILURE"
	TrialPhaseAdvance SignalType = "TRIAL_PHASE_ADVANCE"
	SECFiling         SignalType = "SEC_FILING"
	PriceTargetChange SignalType = "PRICE_TARGET_CHANGE"
	UpgradeDowngrade  SignalType = "UPGRADE_DOWNGRADE"
	InsiderBuying     SignalType = "INSIDER_BUYING"
	SocialSentiment   SignalType = "SOCIAL_SENTIMENT"
)

// Sentiment is the direction a signal leans.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the three enumerated sentiments.
func (s Sentiment) Valid() bool {
	return s == Positive || s == Negative || s == Neutral
}

// ConfidenceLevel bands a 0-100 confidence score into coarse tiers.
type ConfidenceLevel string

const (
	VeryHigh ConfidenceLevel = "VERY_HIGH" // >= 90
	High     ConfidenceLevel = "HIGH"      // >= 75
	Medium   ConfidenceLevel = "MEDIUM"    // >= 60
	Low      ConfidenceLevel = "LOW"       // >= 40
	VeryLow  ConfidenceLevel = "VERY_LOW"  // < 40
)

// -----------------------------------------------------------------------------
// Signal
// -----------------------------------------------------------------------------

// Signal is a scored, typed claim about a ticker derived from one text record.
type Signal struct {
	ID          string     `json:"signal_id"`
	Type        SignalType `json:"signal_type"`
	Ticker      string     `json:"ticker"`
	CompanyName string     `json:"company_name"`
	Headline    string     `json:"headline"`
	Summary     string     `json:"summary"`
	Confidence  int        `json:"confidence"` // 0-100
	Sentiment   Sentiment  `json:"sentiment"`

	// Price targets (percent moves, nil when not implied by the signal type)
	TargetUpside   *float64 `json:"target_upside"`
	TargetDownside *float64 `json:"target_downside"`

	Sources []string `json:"sources"` // source identifiers, e.g. domain names

	// Timestamps (ISO-8601 strings; CollectedAt comes from the collector and
	// may be empty or malformed)
	CollectedAt string `json:"collected_at"`
	CreatedAt   string `json:"created_at"`
}

// fingerprintHeadlineLen bounds the headline prefix used in fingerprints so
// minor trailing edits don't defeat duplicate detection.
const fingerprintHeadlineLen = 50

// Fingerprint derives the deduplication key: two signals with the same ticker,
// type, headline prefix, and collection date describe the same event.
func (s Signal) Fingerprint() string {
	headline := strings.ToLower(strings.TrimSpace(s.Headline))
	if len(headline) > fingerprintHeadlineLen {
		headline = headline[:fingerprintHeadlineLen]
	}

	day := s.CollectedAt
	if len(day) > 10 {
		day = day[:10]
	}

	h := sha256.Sum256([]byte(strings.ToUpper(s.Ticker) + "|" + string(s.Type) + "|" + headline + "|" + day))
	return hex.EncodeToString(h[:16])
}

// Level bands the signal's confidence score.
func (s Signal) Level() ConfidenceLevel {
	switch {
	case s.Confidence >= 90:
		return VeryHigh
	case s.Confidence >= 75:
		return High
	case s.Confidence >= 60:
		return Medium
	case s.Confidence >= 40:
		return Low
	default:
		return VeryLow
	}
}

// NewSignalID builds a prefixed signal ID, e.g. "fda_1a2b3c4d".
func NewSignalID(prefix string) string {
	hexID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	if prefix == "" {
		return hexID
	}
	return prefix + "_" + hexID
}

// -----------------------------------------------------------------------------
// Scoring types
// -----------------------------------------------------------------------------

// ConfidenceFactors is the per-factor breakdown behind a confidence score.
// All sub-scores are in [0,1]. Created fresh per scoring call.
type ConfidenceFactors struct {
	SourceReliability  float64 `json:"source_reliability"`
	EntityQuality      float64 `json:"entity_quality"`
	SentimentStrength  float64 `json:"sentiment_strength"`
	RecencyScore       float64 `json:"recency_score"`
	MarketImpact       float64 `json:"market_impact"`
	ConfirmationCount  float64 `json:"confirmation_count"`
	HistoricalAccuracy float64 `json:"historical_accuracy"`
}

// -----------------------------------------------------------------------------
// Validation types
// -----------------------------------------------------------------------------

// ValidationFlag marks a specific failure mode found during validation.
type ValidationFlag string

const (
	FlagTickerInvalid     ValidationFlag = "ticker_invalid"
	FlagSpamPattern       ValidationFlag = "spam_pattern"
	FlagSourceUnreliable  ValidationFlag = "source_unreliable"
	FlagOldInformation    ValidationFlag = "old_information"
	FlagSuspiciousPattern ValidationFlag = "suspicious_pattern"
	FlagHypeCycle         ValidationFlag = "hype_cycle"

	// Reserved for downstream consumers; the validator reports low
	// confirmation and inflated confidence as warnings and maps inflation
	// onto the suspicious-pattern penalty.
	FlagConfirmationLow    ValidationFlag = "confirmation_low"
	FlagConfidenceInflated ValidationFlag = "confidence_inflated"
)

// ValidationResult is the immutable outcome of validating one signal.
type ValidationResult struct {
	IsValid  bool             `json:"is_valid"`
	Flags    []ValidationFlag `json:"flags"`
	Warnings []string         `json:"warnings"`
	Score    int              `json:"score"` // 0-100 validity score
	Details  map[string]any   `json:"details"`
}

// HasFlag reports whether flag was raised.
func (r ValidationResult) HasFlag(flag ValidationFlag) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Reference data
// -----------------------------------------------------------------------------

// HistoricalPattern is the fixed historical reference for one signal type.
// Loaded at process start; never mutated by the core.
type HistoricalPattern struct {
	SignalType      SignalType `json:"signal_type" yaml:"signal_type"`
	AvgMove         float64    `json:"avg_move" yaml:"avg_move"`                   // average historical price move, percent
	SuccessRate     float64    `json:"success_rate" yaml:"success_rate"`           // 0-1
	AvgDurationDays float64    `json:"avg_duration_days" yaml:"avg_duration_days"` // typical resolution time
	SampleSize      int        `json:"sample_size" yaml:"sample_size"`
}

// -----------------------------------------------------------------------------
// Collector input
// -----------------------------------------------------------------------------

// Record is one text record handed to the core by an upstream collector,
// already annotated with whatever the extraction stage could recover.
// An empty Ticker means extraction found none; the generator skips it.
type Record struct {
	Title               string  `json:"title"`
	Body                string  `json:"body"`
	Source              string  `json:"source"`       // source identifier, e.g. "fda.gov"
	CollectedAt         string  `json:"collected_at"` // ISO-8601 or empty
	Ticker              string  `json:"ticker"`
	CompanyName         string  `json:"company_name"`
	Sentiment           string  `json:"sentiment"`            // positive/negative/neutral, may be empty
	SentimentConfidence float64 `json:"sentiment_confidence"` // 0-1
}
