package scoring

import "github.com/medtrade/signals/internal/model"

// FactorDetail is one row of a human-readable confidence breakdown.
type FactorDetail struct {
	Score  float64 `json:"score"`
	Rating string  `json:"rating"`
	Weight float64 `json:"weight"`
}

// Breakdown expands a factor set into per-factor details with ratings.
func Breakdown(factors model.ConfidenceFactors) map[string]FactorDetail {
	return map[string]FactorDetail{
		"source_reliability": {
			Score:  factors.SourceReliability,
			Rating: rating(factors.SourceReliability),
			Weight: weightSourceReliability,
		},
		"recency_score": {
			Score:  factors.RecencyScore,
			Rating: rating(factors.RecencyScore),
			Weight: weightRecency,
		},
		"entity_quality": {
			Score:  factors.EntityQuality,
			Rating: rating(factors.EntityQuality),
			Weight: weightEntityQuality,
		},
		"sentiment_strength": {
			Score:  factors.SentimentStrength,
			Rating: rating(factors.SentimentStrength),
			Weight: weightSentimentStrength,
		},
		"market_impact": {
			Score:  factors.MarketImpact,
			Rating: rating(factors.MarketImpact),
			Weight: weightMarketImpact,
		},
		"confirmation_count": {
			Score:  factors.ConfirmationCount,
			Rating: rating(factors.ConfirmationCount),
			Weight: weightConfirmationCount,
		},
		"historical_accuracy": {
			Score:  factors.HistoricalAccuracy,
			Rating: rating(factors.HistoricalAccuracy),
			Weight: weightHistoricalAccuracy,
		},
	}
}

// rating converts a [0,1] sub-score to a coarse label.
func rating(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.75:
		return "Very Good"
	case score >= 0.6:
		return "Good"
	case score >= 0.4:
		return "Fair"
	case score >= 0.25:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// Recommendation renders a trading recommendation from confidence and
// sentiment, e.g. "Strong Bullish Signal".
func Recommendation(confidence int, sentiment model.Sentiment) string {
	var strength string
	switch {
	case confidence >= 80:
		strength = "Strong"
	case confidence >= 60:
		strength = "Moderate"
	case confidence >= 40:
		strength = "Weak"
	default:
		return "LOW CONFIDENCE - Monitor only"
	}

	direction := "Neutral"
	switch sentiment {
	case model.Positive:
		direction = "Bullish"
	case model.Negative:
		direction = "Bearish"
	}

	return strength + " " + direction + " Signal"
}
