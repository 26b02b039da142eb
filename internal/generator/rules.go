package generator

import "github.com/medtrade/signals/internal/model"

// Rule describes how one signal type is generated from record text.
type Rule struct {
	Keywords       []string        // any-match triggers, compared lowercase
	Sentiment      model.Sentiment // sentiment the event type implies
	TargetUpside   float64         // default expected move, percent
	TargetDownside float64
	BaseConfidence int // starting confidence before sentiment agreement
}

// sentimentAgreementBonus is added when the extracted sentiment matches the
// rule's implied sentiment.
const sentimentAgreementBonus = 10

// Rule confidence bounds.
const (
	ruleConfidenceFloor   = 50
	ruleConfidenceCeiling = 95
)

// DefaultRules returns the built-in generation rules.
func DefaultRules() map[model.SignalType]Rule {
	return map[model.SignalType]Rule{
		model.FDAApproval: {
			Keywords:       []string{"fda approves", "fda approved", "approval"},
			Sentiment:      model.Positive,
			TargetUpside:   15.0,
			TargetDownside: -5.0,
			BaseConfidence: 85,
		},
		model.FDARejection: {
			Keywords:       []string{"fda rejects", "fda rejected", "rejection"},
			Sentiment:      model.Negative,
			TargetUpside:   -20.0,
			TargetDownside: -30.0,
			BaseConfidence: 90,
		},
		model.TrialSuccess: {
			Keywords:       []string{"primary endpoint met", "met primary endpoint", "successful trial"},
			Sentiment:      model.Positive,
			TargetUpside:   12.0,
			TargetDownside: -3.0,
			BaseConfidence: 75,
		},
		model.TrialFailure: {
			Keywords:       []string{"primary endpoint not met", "failed trial", "study failed"},
			Sentiment:      model.Negative,
			TargetUpside:   -15.0,
			TargetDownside: -25.0,
			BaseConfidence: 80,
		},
		model.PriceTargetChange: {
			Keywords:       []string{"price target raised", "upgraded", "bullish"},
			Sentiment:      model.Positive,
			TargetUpside:   8.0,
			TargetDownside: -2.0,
			BaseConfidence: 70,
		},
	}
}
