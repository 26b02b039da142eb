package validate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/medtrade/signals/internal/model"
	"github.com/medtrade/signals/internal/refdata"
)

// tickerPattern is the accepted exchange ticker shape.
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// penaltyWeights are the per-flag score deductions.
var penaltyWeights = map[model.ValidationFlag]int{
	model.FlagTickerInvalid:     30,
	model.FlagSpamPattern:       50,
	model.FlagSourceUnreliable:  15,
	model.FlagOldInformation:    20,
	model.FlagHypeCycle:         25,
	model.FlagSuspiciousPattern: 15,
}

// warningPenalty is subtracted per warning string on top of flag penalties.
const warningPenalty = 3

// Hype-cycle thresholds: same-type signal volume and sentiment whiplash.
const (
	hypeVolumeThreshold   = 3 // flag when more than this many same-type signals, counting this one
	hypeSentimentMinimum  = 4 // sibling sentiments needed before whiplash applies
	hypeSentimentSwitches = 3 // adjacent-pair sentiment changes that flag hype
	inflationMarginPoints = 20
	unrealisticMoveFactor = 1.5
)

// Config holds validator tunables.
type Config struct {
	MaxAgeHours int // recency ceiling; older signals are flagged stale
	MinScore    int // acceptance threshold for the validity score
	Concurrency int // parallel workers for batch validation
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAgeHours: 72,
		MinScore:    60,
		Concurrency: 8,
	}
}

// Validator runs the check battery against a fixed reference table set.
type Validator struct {
	cfg    Config
	tables *refdata.Set

	spamPatterns []*regexp.Regexp
	ceilingKeys  []string // sorted for deterministic substring matching
}

// New creates a Validator. A nil table set falls back to the built-in
// defaults; zero config fields take their default values.
func New(cfg Config, tables *refdata.Set) *Validator {
	if tables == nil {
		tables = refdata.Default()
	}
	def := DefaultConfig()
	if cfg.MaxAgeHours <= 0 {
		cfg.MaxAgeHours = def.MaxAgeHours
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = def.MinScore
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}

	spam := make([]*regexp.Regexp, 0, len(tables.SpamPatterns))
	for _, p := range tables.SpamPatterns {
		spam = append(spam, regexp.MustCompile(`(?i)`+p))
	}

	keys := make([]string, 0, len(tables.ConfidenceCeilings))
	for k := range tables.ConfidenceCeilings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Validator{
		cfg:          cfg,
		tables:       tables,
		spamPatterns: spam,
		ceilingKeys:  keys,
	}
}

// Validate runs every check against one signal. recent holds sibling signals
// from the same batch (same ticker, current signal excluded) for the
// hype-cycle check; nil skips that check.
func (v *Validator) Validate(sig model.Signal, recent []model.Signal) model.ValidationResult {
	var flags []model.ValidationFlag
	var warnings []string
	details := make(map[string]any)

	// 1. Ticker validity — the only check whose failure vetoes acceptance.
	tickerValid, tickerMsg := v.checkTicker(sig.Ticker)
	if !tickerValid {
		flags = append(flags, model.FlagTickerInvalid)
		warnings = append(warnings, tickerMsg)
	}
	details["ticker"] = tickerMsg

	// 2. Spam / pump-and-dump phrasing.
	isSpam, matched := v.checkSpam(sig.Headline, sig.Summary)
	if isSpam {
		flags = append(flags, model.FlagSpamPattern)
		warnings = append(warnings, fmt.Sprintf("Spam patterns detected: %v", matched))
	}
	details["spam_check"] = map[string]any{
		"is_spam":          isSpam,
		"matched_patterns": matched,
	}

	// 3. Source reliability (advisory; warnings only plus a soft flag).
	sourceWarnings := v.checkSources(sig.Sources)
	if len(sourceWarnings) > 0 {
		warnings = append(warnings, sourceWarnings...)
		flags = append(flags, model.FlagSourceUnreliable)
	}
	details["sources"] = map[string]any{"warnings": sourceWarnings}

	// 4. Recency.
	isRecent, recencyMsg := v.checkRecency(sig.CollectedAt)
	if !isRecent {
		flags = append(flags, model.FlagOldInformation)
		warnings = append(warnings, recencyMsg)
	}
	details["recency"] = recencyMsg

	// 5. Historical cross-reference.
	matchesHistory, historyDetails := v.checkHistorical(sig)
	if !matchesHistory {
		flags = append(flags, model.FlagSuspiciousPattern)
		if w, ok := historyDetails["warning"].(string); ok {
			warnings = append(warnings, w)
		}
	}
	details["historical"] = historyDetails

	// 6. Hype cycle, against same-batch siblings.
	if len(recent) > 0 {
		isHype, hypeMsg := v.checkHype(sig, recent)
		if isHype {
			flags = append(flags, model.FlagHypeCycle)
			warnings = append(warnings, hypeMsg)
		}
		details["hype_check"] = hypeMsg
	}

	// 7. Confidence ceiling by primary source platform.
	ceiling := v.confidenceCeiling(sig.Sources)
	if sig.Confidence > ceiling {
		warnings = append(warnings, fmt.Sprintf("Confidence %d%% may be inflated for this source type", sig.Confidence))
		details["confidence_warning"] = fmt.Sprintf("Max expected: %d%%", ceiling)
	}

	score := 100
	for _, flag := range flags {
		score -= penaltyWeights[flag]
	}
	score -= len(warnings) * warningPenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	tickerVeto := false
	for _, f := range flags {
		if f == model.FlagTickerInvalid {
			tickerVeto = true
		}
	}

	return model.ValidationResult{
		IsValid:  score >= v.cfg.MinScore && !tickerVeto,
		Flags:    flags,
		Warnings: warnings,
		Score:    score,
		Details:  details,
	}
}

// checkTicker validates the ticker's shape and screens the common-word
// stoplist. Known-ticker membership is informational only.
func (v *Validator) checkTicker(ticker string) (bool, string) {
	if ticker == "" {
		return false, "Empty ticker"
	}
	if !tickerPattern.MatchString(ticker) {
		return false, fmt.Sprintf("Invalid ticker format: %s", ticker)
	}

	upper := strings.ToUpper(ticker)
	if v.tables.KnownTickers[upper] {
		return true, fmt.Sprintf("Valid biotech ticker: %s", ticker)
	}
	if v.tables.CommonWords[upper] {
		return false, fmt.Sprintf("Common word used as ticker: %s", ticker)
	}

	return true, fmt.Sprintf("Unknown ticker: %s (company enrichment recommended)", ticker)
}

// checkSpam scans headline+summary against the manipulative-phrasing list.
func (v *Validator) checkSpam(headline, summary string) (bool, []string) {
	text := headline + " " + summary

	var matched []string
	for _, pattern := range v.spamPatterns {
		if pattern.MatchString(text) {
			matched = append(matched, pattern.String())
		}
	}
	return len(matched) > 0, matched
}

// checkSources warns on sources outside the reliable-domain allowlist.
// Warnings are advisory; they never invalidate on their own.
func (v *Validator) checkSources(sources []string) []string {
	var warnings []string
	for _, source := range sources {
		lower := strings.ToLower(source)

		reliable := false
		for _, r := range v.tables.ReliableSources {
			if strings.Contains(lower, r) {
				reliable = true
				break
			}
		}
		if reliable {
			continue
		}

		warnings = append(warnings, fmt.Sprintf("Unreliable source: %s", source))
		if strings.Contains(lower, "reddit") || strings.Contains(lower, "twitter") {
			warnings = append(warnings, "Social media source requires additional verification")
		}
	}
	return warnings
}

// checkRecency rejects future timestamps as suspicious and flags signals
// older than the configured ceiling as stale.
func (v *Validator) checkRecency(collectedAt string) (bool, string) {
	if strings.TrimSpace(collectedAt) == "" {
		return false, "No timestamp provided"
	}

	collected, err := model.ParseTime(collectedAt)
	if err != nil {
		return false, "Invalid timestamp format"
	}

	ageHours := time.Since(collected).Hours()
	maxAge := float64(v.cfg.MaxAgeHours)

	switch {
	case ageHours < 0:
		return false, "Future timestamp (suspicious)"
	case ageHours > maxAge:
		return false, fmt.Sprintf("Signal is %.0f hours old (> %d)", ageHours, v.cfg.MaxAgeHours)
	case ageHours > 24:
		return true, fmt.Sprintf("Signal is %.1f hours old", ageHours)
	default:
		return true, "Signal is fresh"
	}
}

// checkHistorical compares the signal's confidence and target move against
// the historical record for its type. Types without history pass.
func (v *Validator) checkHistorical(sig model.Signal) (bool, map[string]any) {
	pattern, ok := v.tables.HistoricalPatterns[sig.Type]
	if !ok {
		return true, map[string]any{"message": "No historical data for this signal type"}
	}

	expectedConfidence := int(pattern.SuccessRate * 100)
	if sig.Confidence > expectedConfidence+inflationMarginPoints {
		return false, map[string]any{
			"warning":                 "Confidence may be inflated",
			"expected_confidence":     expectedConfidence,
			"actual_confidence":       sig.Confidence,
			"historical_success_rate": pattern.SuccessRate,
		}
	}

	var targetUpside float64
	if sig.TargetUpside != nil {
		targetUpside = *sig.TargetUpside
	}
	if math.Abs(targetUpside) > math.Abs(pattern.AvgMove)*unrealisticMoveFactor {
		return false, map[string]any{
			"warning":       "Target move may be unrealistic",
			"expected_move": pattern.AvgMove,
			"actual_target": targetUpside,
		}
	}

	return true, map[string]any{
		"message":                 "Signal aligns with historical patterns",
		"historical_success_rate": pattern.SuccessRate,
		"avg_move":                pattern.AvgMove,
		"sample_size":             pattern.SampleSize,
	}
}

// checkHype flags bursts of same-type signals and whiplash sentiment swings
// among same-ticker siblings from the current batch.
func (v *Validator) checkHype(sig model.Signal, recent []model.Signal) (bool, string) {
	ticker := strings.ToUpper(sig.Ticker)

	sameType := 1 // the signal under validation counts toward the burst
	var sentiments []model.Sentiment
	for _, r := range recent {
		if strings.ToUpper(r.Ticker) != ticker {
			continue
		}
		if r.Type == sig.Type {
			sameType++
		}
		sentiments = append(sentiments, r.Sentiment)
	}

	if sameType > hypeVolumeThreshold {
		return true, fmt.Sprintf("Hype cycle detected: %d same-type signals for %s in one batch", sameType, ticker)
	}

	if len(sentiments) >= hypeSentimentMinimum {
		changes := 0
		for i := 1; i < len(sentiments); i++ {
			if sentiments[i] != sentiments[i-1] {
				changes++
			}
		}
		if changes >= hypeSentimentSwitches {
			return true, fmt.Sprintf("Rapid sentiment changes detected for %s", ticker)
		}
	}

	return false, ""
}

// confidenceCeiling resolves the plausible-confidence cap from the primary
// (first) source. The first source is the signal's provenance; picking the
// most reliable of several would let a wire pickup launder a social rumor
// past its platform ceiling.
func (v *Validator) confidenceCeiling(sources []string) int {
	if len(sources) == 0 {
		return v.tables.DefaultCeiling
	}

	primary := strings.ToLower(sources[0])
	for _, key := range v.ceilingKeys {
		if strings.Contains(primary, key) {
			return v.tables.ConfidenceCeilings[key]
		}
	}
	return v.tables.DefaultCeiling
}
