package generator

import (
	"strings"
	"testing"

	"github.com/medtrade/signals/internal/model"
)

type stubExtractor struct {
	ticker    string
	company   string
	sentiment model.Sentiment
	conf      float64
}

func (s stubExtractor) ExtractTicker(string) (string, string) { return s.ticker, s.company }
func (s stubExtractor) ExtractSentiment(string) (model.Sentiment, float64) {
	return s.sentiment, s.conf
}

func annotatedRecord() model.Record {
	return model.Record{
		Title:               "FDA approves new oncology drug from Moderna",
		Body:                "The agency granted full approval following strong phase 3 data.",
		Source:              "fda.gov",
		CollectedAt:         "2026-08-28T10:00:00Z",
		Ticker:              "MRNA",
		CompanyName:         "Moderna Inc",
		Sentiment:           "positive",
		SentimentConfidence: 0.9,
	}
}

func TestGenerator_KeywordRule(t *testing.T) {
	g := New(nil, nil, nil)

	signals := g.FromRecord(annotatedRecord())
	if len(signals) != 1 {
		t.Fatalf("len(signals) = %d, want 1", len(signals))
	}

	sig := signals[0]
	if sig.Type != model.FDAApproval {
		t.Errorf("Type = %s, want %s", sig.Type, model.FDAApproval)
	}
	if sig.Ticker != "MRNA" {
		t.Errorf("Ticker = %q, want MRNA", sig.Ticker)
	}
	if sig.CompanyName != "Moderna Inc" {
		t.Errorf("CompanyName = %q, want Moderna Inc", sig.CompanyName)
	}
	// Base 85 plus the sentiment-agreement bonus, clamped at 95.
	if sig.Confidence != 95 {
		t.Errorf("Confidence = %d, want 95", sig.Confidence)
	}
	if sig.TargetUpside == nil || *sig.TargetUpside != 15.0 {
		t.Errorf("TargetUpside = %v, want 15.0", sig.TargetUpside)
	}
	if sig.TargetDownside == nil || *sig.TargetDownside != -5.0 {
		t.Errorf("TargetDownside = %v, want -5.0", sig.TargetDownside)
	}
	if !strings.HasPrefix(sig.ID, "fda_") {
		t.Errorf("ID = %q, want fda_ prefix", sig.ID)
	}
	if sig.CollectedAt != "2026-08-28T10:00:00Z" {
		t.Errorf("CollectedAt = %q, want the record's timestamp", sig.CollectedAt)
	}
	if sig.CreatedAt == "" {
		t.Errorf("CreatedAt must be set")
	}
}

func TestGenerator_SentimentAgreement(t *testing.T) {
	g := New(nil, nil, nil)

	t.Run("Disagreement", func(t *testing.T) {
		rec := annotatedRecord()
		rec.Sentiment = "negative"

		signals := g.FromRecord(rec)
		if len(signals) != 1 {
			t.Fatalf("len(signals) = %d, want 1", len(signals))
		}
		if signals[0].Confidence != 85 {
			t.Errorf("Confidence = %d, want base 85 without the bonus", signals[0].Confidence)
		}
	})

	t.Run("InvalidAnnotationDegradesToNeutral", func(t *testing.T) {
		rec := annotatedRecord()
		rec.Sentiment = "bogus"

		signals := g.FromRecord(rec)
		if len(signals) != 1 {
			t.Fatalf("len(signals) = %d, want 1", len(signals))
		}
		if signals[0].Sentiment != model.Neutral {
			t.Errorf("Sentiment = %s, want neutral fallback", signals[0].Sentiment)
		}
		if signals[0].Confidence != 85 {
			t.Errorf("Confidence = %d, want base 85", signals[0].Confidence)
		}
	})
}

func TestGenerator_MissingTickerSkips(t *testing.T) {
	g := New(nil, nil, nil)

	rec := annotatedRecord()
	rec.Ticker = ""

	if signals := g.FromRecord(rec); len(signals) != 0 {
		t.Errorf("len(signals) = %d, want 0 for a record without a ticker", len(signals))
	}
}

func TestGenerator_ExtractorFallback(t *testing.T) {
	ext := stubExtractor{ticker: "bntx", company: "BioNTech SE", sentiment: model.Positive, conf: 0.8}
	g := New(nil, ext, nil)

	rec := annotatedRecord()
	rec.Ticker = ""
	rec.CompanyName = ""
	rec.Sentiment = ""

	signals := g.FromRecord(rec)
	if len(signals) != 1 {
		t.Fatalf("len(signals) = %d, want 1", len(signals))
	}
	if signals[0].Ticker != "BNTX" {
		t.Errorf("Ticker = %q, want uppercased BNTX from the extractor", signals[0].Ticker)
	}
	if signals[0].CompanyName != "BioNTech SE" {
		t.Errorf("CompanyName = %q, want BioNTech SE", signals[0].CompanyName)
	}

	t.Run("AnnotationWins", func(t *testing.T) {
		rec := annotatedRecord()
		signals := g.FromRecord(rec)
		if len(signals) != 1 || signals[0].Ticker != "MRNA" {
			t.Errorf("annotated ticker must take precedence over the extractor")
		}
	})
}

func TestGenerator_SocialFallback(t *testing.T) {
	g := New(nil, nil, nil)

	social := func(sentiment string, conf float64) model.Record {
		return model.Record{
			Title:               "MRNA looking strong into the readout",
			Body:                "Position sized up after the latest data.",
			Source:              "reddit.com/r/biotech",
			CollectedAt:         "2026-08-28T10:00:00Z",
			Ticker:              "MRNA",
			Sentiment:           sentiment,
			SentimentConfidence: conf,
		}
	}

	t.Run("PositiveSentiment", func(t *testing.T) {
		signals := g.FromRecord(social("positive", 0.9))
		if len(signals) != 1 {
			t.Fatalf("len(signals) = %d, want 1", len(signals))
		}
		sig := signals[0]
		if sig.Type != model.SocialSentiment {
			t.Errorf("Type = %s, want %s", sig.Type, model.SocialSentiment)
		}
		// 0.9 * 100 capped at the social ceiling.
		if sig.Confidence != 70 {
			t.Errorf("Confidence = %d, want 70", sig.Confidence)
		}
		if sig.TargetUpside == nil || *sig.TargetUpside != 5.0 {
			t.Errorf("TargetUpside = %v, want 5.0", sig.TargetUpside)
		}
		if sig.TargetDownside == nil || *sig.TargetDownside != -5.0 {
			t.Errorf("TargetDownside = %v, want -5.0", sig.TargetDownside)
		}
	})

	t.Run("NegativeFlipsTargets", func(t *testing.T) {
		signals := g.FromRecord(social("negative", 0.5))
		if len(signals) != 1 {
			t.Fatalf("len(signals) = %d, want 1", len(signals))
		}
		sig := signals[0]
		if sig.Confidence != 50 {
			t.Errorf("Confidence = %d, want 50", sig.Confidence)
		}
		if sig.TargetUpside == nil || *sig.TargetUpside != -5.0 {
			t.Errorf("TargetUpside = %v, want -5.0", sig.TargetUpside)
		}
	})

	t.Run("NeutralGeneratesNothing", func(t *testing.T) {
		if signals := g.FromRecord(social("neutral", 0.9)); len(signals) != 0 {
			t.Errorf("neutral social sentiment must not generate a signal")
		}
	})

	t.Run("NonSocialSourceGeneratesNothing", func(t *testing.T) {
		rec := social("positive", 0.9)
		rec.Source = "reuters.com"
		if signals := g.FromRecord(rec); len(signals) != 0 {
			t.Errorf("keyword miss on a non-social source must not generate a signal")
		}
	})

	t.Run("KeywordRuleTakesPrecedence", func(t *testing.T) {
		rec := social("positive", 0.9)
		rec.Title = "FDA approves MRNA booster"
		signals := g.FromRecord(rec)
		if len(signals) != 1 || signals[0].Type != model.FDAApproval {
			t.Errorf("keyword match must preempt the social fallback; got %+v", signals)
		}
	})
}

func TestGenerator_MultipleRuleMatches(t *testing.T) {
	g := New(nil, nil, nil)

	rec := annotatedRecord()
	rec.Title = "FDA approval for one program, rejection for another"

	signals := g.FromRecord(rec)
	if len(signals) != 2 {
		t.Fatalf("len(signals) = %d, want 2", len(signals))
	}
	// Rule order is sorted by type name, so the sequence is stable.
	if signals[0].Type != model.FDAApproval || signals[1].Type != model.FDARejection {
		t.Errorf("types = %s, %s; want FDA_APPROVAL then FDA_REJECTION", signals[0].Type, signals[1].Type)
	}
}

func TestGenerator_Truncation(t *testing.T) {
	g := New(nil, nil, nil)

	rec := annotatedRecord()
	rec.Title = "FDA approves " + strings.Repeat("x", 200)
	rec.Body = strings.Repeat("y", 500)

	signals := g.FromRecord(rec)
	if len(signals) != 1 {
		t.Fatalf("len(signals) = %d, want 1", len(signals))
	}
	if len(signals[0].Headline) != headlineMaxLen {
		t.Errorf("len(Headline) = %d, want %d", len(signals[0].Headline), headlineMaxLen)
	}
	if len(signals[0].Summary) != summaryMaxLen {
		t.Errorf("len(Summary) = %d, want %d", len(signals[0].Summary), summaryMaxLen)
	}
}

func TestGenerator_FromRecords(t *testing.T) {
	g := New(nil, nil, nil)

	noTicker := annotatedRecord()
	noTicker.Ticker = ""

	signals := g.FromRecords([]model.Record{annotatedRecord(), noTicker, annotatedRecord()})
	if len(signals) != 2 {
		t.Errorf("len(signals) = %d, want 2", len(signals))
	}
}

func TestIDPrefix(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"fda.gov", "fda"},
		{"reddit.com/r/biotech", "reddit"},
		{"pubmed.ncbi.nlm.nih.gov", "pubmed"},
		{"stocktwits.com", "stockt"},
		{"", "sig"},
	}
	for _, tc := range cases {
		if got := idPrefix(tc.source); got != tc.want {
			t.Errorf("idPrefix(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}
