package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSignal_Fingerprint(t *testing.T) {
	base := Signal{
		Type:        FDAApproval,
		Ticker:      "MRNA",
		Headline:    "FDA approves Moderna's COVID-19 vaccine",
		CollectedAt: "2026-02-06T08:00:00Z",
	}

	t.Run("SameEventSameFingerprint", func(t *testing.T) {
		other := base
		other.ID = "different-id"
		other.Confidence = 90
		other.CollectedAt = "2026-02-06T17:30:00Z" // same day, different time

		if base.Fingerprint() != other.Fingerprint() {
			t.Errorf("fingerprints differ for the same event")
		}
	})

	t.Run("HeadlinePrefixOnly", func(t *testing.T) {
		other := base
		other.Headline = base.Headline + " after priority review"

		// Both headlines share the first 50 characters.
		if base.Fingerprint() != other.Fingerprint() {
			t.Errorf("trailing headline edits should not change the fingerprint")
		}
	})

	t.Run("DifferentDayDifferentFingerprint", func(t *testing.T) {
		other := base
		other.CollectedAt = "2026-02-07T08:00:00Z"

		if base.Fingerprint() == other.Fingerprint() {
			t.Errorf("different collection dates must produce different fingerprints")
		}
	})

	t.Run("TickerCaseInsensitive", func(t *testing.T) {
		other := base
		other.Ticker = "mrna"

		if base.Fingerprint() != other.Fingerprint() {
			t.Errorf("ticker case should not change the fingerprint")
		}
	})
}

func TestSignal_Level(t *testing.T) {
	cases := []struct {
		confidence int
		want       ConfidenceLevel
	}{
		{95, VeryHigh},
		{90, VeryHigh},
		{80, High},
		{75, High},
		{65, Medium},
		{60, Medium},
		{45, Low},
		{40, Low},
		{20, VeryLow},
		{0, VeryLow},
	}

	for _, tc := range cases {
		s := Signal{Confidence: tc.confidence}
		if got := s.Level(); got != tc.want {
			t.Errorf("Level(%d) = %s, want %s", tc.confidence, got, tc.want)
		}
	}
}

func TestNewSignalID(t *testing.T) {
	id := NewSignalID("fda")
	if !strings.HasPrefix(id, "fda_") {
		t.Errorf("ID = %q, want fda_ prefix", id)
	}
	if len(id) != len("fda_")+8 {
		t.Errorf("ID = %q, want 8 hex chars after prefix", id)
	}

	if NewSignalID("fda") == id {
		t.Errorf("consecutive IDs must differ")
	}

	bare := NewSignalID("")
	if strings.Contains(bare, "_") {
		t.Errorf("bare ID = %q, want no separator", bare)
	}
}

func TestSentiment_Valid(t *testing.T) {
	for _, s := range []Sentiment{Positive, Negative, Neutral} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Sentiment("bullish").Valid() {
		t.Errorf("unknown sentiment should be invalid")
	}
}

func TestSignal_SerializesFlat(t *testing.T) {
	upside := 15.0
	s := Signal{
		ID:           "fda_1a2b3c4d",
		Type:         FDAApproval,
		Ticker:       "MRNA",
		CompanyName:  "Moderna Inc",
		Headline:     "FDA approves vaccine",
		Summary:      "Full approval granted.",
		Confidence:   85,
		Sentiment:    Positive,
		TargetUpside: &upside,
		Sources:      []string{"fda.gov", "reuters.com"},
		CollectedAt:  "2026-02-06T08:00:00Z",
		CreatedAt:    "2026-02-06T08:05:00Z",
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if flat["signal_type"] != "FDA_APPROVAL" {
		t.Errorf("signal_type = %v, want FDA_APPROVAL", flat["signal_type"])
	}
	if flat["target_downside"] != nil {
		t.Errorf("target_downside = %v, want null", flat["target_downside"])
	}
}

func TestValidationResult_HasFlag(t *testing.T) {
	r := ValidationResult{Flags: []ValidationFlag{FlagSpamPattern, FlagHypeCycle}}

	if !r.HasFlag(FlagSpamPattern) {
		t.Errorf("expected spam flag present")
	}
	if r.HasFlag(FlagTickerInvalid) {
		t.Errorf("ticker flag should be absent")
	}

	// Downstream-reserved flags round-trip like any other.
	reserved := ValidationResult{Flags: []ValidationFlag{FlagConfirmationLow, FlagConfidenceInflated}}
	if !reserved.HasFlag(FlagConfirmationLow) || !reserved.HasFlag(FlagConfidenceInflated) {
		t.Errorf("reserved flags should be reportable")
	}
}
