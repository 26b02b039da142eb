package refdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/medtrade/signals/internal/model"
)

// Set bundles every reference table the core components need.
type Set struct {
	// SourceReliability maps known domains to reliability weights in [0,1].
	// Matching is by substring against the lowercased source identifier.
	SourceReliability  map[string]float64
	DefaultReliability float64

	// ImpactWeights maps signal types to expected market impact in [0,1].
	ImpactWeights map[model.SignalType]float64
	DefaultImpact float64

	// HistoricalPatterns holds the per-type historical reference records.
	// Types absent from the map skip the historical cross-reference.
	HistoricalPatterns map[model.SignalType]model.HistoricalPattern

	// KnownTickers is the curated biotech ticker universe. Membership is
	// informational only; unknown tickers remain valid.
	KnownTickers map[string]bool

	// CommonWords are uppercase words that look like tickers but aren't.
	CommonWords map[string]bool

	// SpamPatterns are regex fragments matched against headline+summary.
	SpamPatterns []string

	// ReliableSources is the allowlist used by the validator's source check.
	ReliableSources []string

	// ConfidenceCeilings caps plausible confidence per source platform,
	// matched by substring against the primary source.
	ConfidenceCeilings map[string]int
	DefaultCeiling     int
}

// Default returns the built-in reference tables.
func Default() *Set {
	return &Set{
		SourceReliability: map[string]float64{
			// Government/regulatory
			"fda.gov": 1.0,
			"sec.gov": 1.0,
			"nih.gov": 0.95,
			"cdc.gov": 0.95,

			// Academic/medical
			"pubmed.ncbi.nlm.nih.gov": 0.95,
			"nejm.org":                0.95,
			"lancet.com":              0.95,
			"nature.com":              0.9,
			"jama.org":                0.9,
			"biomedcentral.com":       0.85,

			// Financial press
			"reuters.com":        0.9,
			"bloomberg.com":      0.85,
			"wsj.com":            0.85,
			"financialtimes.com": 0.85,
			"marketwatch.com":    0.75,

			// General news
			"cnn.com":            0.7,
			"bbc.com":            0.7,
			"nytimes.com":        0.7,
			"washingtonpost.com": 0.7,

			// Social platforms
			"reddit.com":     0.4,
			"twitter.com":    0.3,
			"stocktwits.com": 0.25,
			"investorhub":    0.25,
		},
		DefaultReliability: 0.5,

		ImpactWeights: map[model.SignalType]float64{
			model.FDAApproval:       0.9,
			model.FDARejection:      0.95,
			model.FDAWarning:        0.7,
			model.TrialSuccess:      0.85,
			model.TrialFailure:      0.9,
			model.TrialPhaseAdvance: 0.6,
			model.SECFiling:         0.4,
			model.PriceTargetChange: 0.5,
			model.UpgradeDowngrade:  0.55,
			model.InsiderBuying:     0.5,
		},
		DefaultImpact: 0.5,

		HistoricalPatterns: map[model.SignalType]model.HistoricalPattern{
			model.FDAApproval: {
				SignalType:      model.FDAApproval,
				AvgMove:         15.0,
				SuccessRate:     0.75,
				AvgDurationDays: 5,
				SampleSize:      150,
			},
			model.FDARejection: {
				SignalType:      model.FDARejection,
				AvgMove:         -25.0,
				SuccessRate:     0.85,
				AvgDurationDays: 3,
				SampleSize:      80,
			},
			model.TrialSuccess: {
				SignalType:      model.TrialSuccess,
				AvgMove:         12.0,
				SuccessRate:     0.70,
				AvgDurationDays: 10,
				SampleSize:      200,
			},
			model.TrialFailure: {
				SignalType:      model.TrialFailure,
				AvgMove:         -20.0,
				SuccessRate:     0.80,
				AvgDurationDays: 5,
				SampleSize:      120,
			},
			model.PriceTargetChange: {
				SignalType:      model.PriceTargetChange,
				AvgMove:         5.0,
				SuccessRate:     0.60,
				AvgDurationDays: 2,
				SampleSize:      500,
			},
		},

		KnownTickers: tickerSet(
			"MRNA", "BNTX", "NVAX", "INO", "ARVN", "REGN", "VRTX", "GILD",
			"AMGN", "GENE", "EXAS", "INCY", "BIIB", "ALXN", "IOVA", "CRSP",
			"EDIT", "NTLA", "BEAM", "PACK", "FATE", "BLUE", "AGEN", "ARVA",
			"AXSM", "BCRX", "BMRN", "BPMC", "CARA", "CLOX", "DNLI", "DTX",
			"EIDX", "ENTA", "EPZM", "EQRX", "ESPR", "EVH", "FREQ", "GERN",
			"GLYC", "HALO", "HIMS", "HOOK", "HZNP", "IDRA", "IMMU", "IMRN",
			"INSM", "IOBT", "ITCI", "KURA", "KYMR", "LEGN", "LGND", "LUMO",
			"MARK", "MDGL", "MEIP", "MIST", "MNKD", "MRTX", "MYOV", "NEOG",
			"NMRK", "NTRT", "OBSV", "OLMA", "OPCH", "OPK", "OPNT", "ORIC",
			"ORTX", "PBLA", "PCYC", "PHRM", "PLX", "PNT", "PRAX", "PRTK",
			"PTCT", "PYPD", "QURE", "RDUS", "RENE", "RMTI", "RNA", "RXDX",
			"RYTM", "SAGE", "SNDX", "SNY", "SRNE", "STOK", "SURF", "SVRA",
			"SYRS", "TCMD", "TCON", "TGTX", "TK", "TNDM", "TRVI", "TSRO",
			"TTNP", "TURX", "TYRA", "UBX", "VACC", "VIR", "VIVO", "VKTX",
			"XBIT", "XENT", "XERS", "YMAB", "ZYNE",
		),

		CommonWords: tickerSet("THE", "AND", "FOR", "CEO", "FDA", "INC", "CORP", "CO"),

		SpamPatterns: []string{
			`guaranteed.*return`,
			`100.*percent.*gain`,
			`this.*stock.*will.*moon`,
			`don'?t.*miss.*out`,
			`pump.*and.*dump`,
			`buy.*the.*dip.*now`,
			`hot.*stock.*tip`,
			`exclusive.*insider`,
			`ceo.*of.*company.*here`,
			`turn.*\$.*into.*\$`,
			`get.*rich.*quick`,
		},

		ReliableSources: []string{
			"fda.gov", "sec.gov", "reuters.com", "bloomberg.com",
			"wsj.com", "pubmed.ncbi.nlm.nih.gov", "nejm.org",
		},

		ConfidenceCeilings: map[string]int{
			"reddit":  80,
			"twitter": 85,
		},
		DefaultCeiling: 95,
	}
}

// overrides is the YAML shape accepted by Load. Every section is optional;
// present sections replace the corresponding default table wholesale.
type overrides struct {
	SourceReliability  map[string]float64           `yaml:"source_reliability"`
	DefaultReliability *float64                     `yaml:"default_reliability"`
	ImpactWeights      map[model.SignalType]float64 `yaml:"impact_weights"`
	HistoricalPatterns []model.HistoricalPattern    `yaml:"historical_patterns"`
	KnownTickers       []string                     `yaml:"known_tickers"`
	CommonWords        []string                     `yaml:"common_words"`
	SpamPatterns       []string                     `yaml:"spam_patterns"`
	ReliableSources    []string                     `yaml:"reliable_sources"`
	ConfidenceCeilings map[string]int               `yaml:"confidence_ceilings"`
	DefaultCeiling     *int                         `yaml:"default_ceiling"`
}

// Load returns the default tables with overrides from a YAML file applied.
// An empty path returns the defaults unchanged.
func Load(path string) (*Set, error) {
	set := Default()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read refdata file: %w", err)
	}

	var ov overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse refdata yaml: %w", err)
	}

	if len(ov.SourceReliability) > 0 {
		set.SourceReliability = ov.SourceReliability
	}
	if ov.DefaultReliability != nil {
		set.DefaultReliability = *ov.DefaultReliability
	}
	if len(ov.ImpactWeights) > 0 {
		set.ImpactWeights = ov.ImpactWeights
	}
	if len(ov.HistoricalPatterns) > 0 {
		patterns := make(map[model.SignalType]model.HistoricalPattern, len(ov.HistoricalPatterns))
		for _, p := range ov.HistoricalPatterns {
			patterns[p.SignalType] = p
		}
		set.HistoricalPatterns = patterns
	}
	if len(ov.KnownTickers) > 0 {
		set.KnownTickers = tickerSet(ov.KnownTickers...)
	}
	if len(ov.CommonWords) > 0 {
		set.CommonWords = tickerSet(ov.CommonWords...)
	}
	if len(ov.SpamPatterns) > 0 {
		set.SpamPatterns = ov.SpamPatterns
	}
	if len(ov.ReliableSources) > 0 {
		set.ReliableSources = ov.ReliableSources
	}
	if len(ov.ConfidenceCeilings) > 0 {
		set.ConfidenceCeilings = ov.ConfidenceCeilings
	}
	if ov.DefaultCeiling != nil {
		set.DefaultCeiling = *ov.DefaultCeiling
	}

	return set, nil
}

func tickerSet(tickers ...string) map[string]bool {
	set := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		set[t] = true
	}
	return set
}
