package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "reference-resolver/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BackendConfig holds settings for the search backend client.
type BackendConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the backend query endpoint. Empty selects the built-in default.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Token is the API token sent as a Bearer credential.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// MaxRows is the number of result rows requested per query (default 100).
	MaxRows int `json:"max_rows" yaml:"max_rows"`

	// OverflowRows is the total-hit count above which a result set is
	// considered unworkably large (default 1000).
	OverflowRows int `json:"overflow_rows" yaml:"overflow_rows"`

	// RateLimit is the maximum number of requests per second (default 5).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ScoringConfig holds the evidence-scoring knobs consumed by the chooser and
// the scoring strategies.
type ScoringConfig struct {
	// MinScoreFirstRound is the per-evidence minimum used by the chooser's
	// first-round filter: a candidate survives when its aggregate score is at
	// least MinScoreFirstRound times its evidence count.
	MinScoreFirstRound float64 `json:"min_score_first_round" yaml:"min_score_first_round"`

	// EvidenceScoreLow and EvidenceScoreHigh bound the weight of a single
	// evidence entry. An entry at exactly EvidenceScoreLow is a veto.
	EvidenceScoreLow  float64 `json:"evidence_score_low" yaml:"evidence_score_low"`
	EvidenceScoreHigh float64 `json:"evidence_score_high" yaml:"evidence_score_high"`

	// ThesisIndicatorWords are tokens whose presence in the raw reference
	// text marks it as a likely thesis. They double as the disjunctive
	// publication hint of the thesis hypothesis.
	ThesisIndicatorWords []string `json:"thesis_indicator_words" yaml:"thesis_indicator_words"`
}

// DefaultScoringConfig returns the scoring defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MinScoreFirstRound: 0.5,
		EvidenceScoreLow:   -1,
		EvidenceScoreHigh:  1,
		ThesisIndicatorWords: []string{
			"thesis", "dissertation", "phd", "ph.d", "masters",
		},
	}
}

// ResolverConfig groups the configuration for one resolver instance.
type ResolverConfig struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`

	// JournalDB is the path of an optional SQLite journal-abbreviation
	// database. Empty means the built-in table only.
	JournalDB string `json:"journal_db,omitempty" yaml:"journal_db,omitempty"`
}
