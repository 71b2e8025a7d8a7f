// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hypothesis

import (
	"github.com/pdiddy/reference-resolver/internal/evidence"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// Scorer evaluates one backend candidate against a hypothesis and returns
// the accumulated evidence. Scoring strategies are pluggable; the resolver
// only relies on the ledger contract.
type Scorer func(cand types.Candidate, h *Hypothesis) *evidence.Ledger

// ScorerSet holds one scoring strategy per hypothesis family.
type ScorerSet struct {
	// Identifier scores doi, arxiv, and constructed-bibcode matches.
	Identifier Scorer
	// Serial scores journal-article hypotheses on author/year/volume/page/bibstem.
	Serial Scorer
	// Book scores book hypotheses on author/title/year.
	Book Scorer
	// Thesis scores thesis hypotheses on author/year.
	Thesis Scorer
	// Basic scores on author/year/page only, for venues whose volume
	// numbering cannot be trusted.
	Basic Scorer
}

// Details carries the auxiliary context a scorer needs beyond the hints.
type Details struct {
	// InputFields is the digested record the hypothesis was generated from.
	InputFields *Record

	// NormalizedAuthors is the full normalized author list, empty when the
	// hypothesis deliberately ignores all but the first author.
	NormalizedAuthors string

	// PageQualifier is the bibcode page qualifier of the input, if known.
	PageQualifier string

	// HasEtal records whether the raw reference carried an "et al." token:
	// a truncated author list softens the penalty for missing exact author
	// evidence.
	HasEtal bool

	// ExpectedBibstem is the journal-code segment a special-rule candidate
	// bibcode must carry, or empty.
	ExpectedBibstem string
}

// Hypothesis is one named query strategy: the hints become a backend query,
// the scorer judges what comes back.
type Hypothesis struct {
	Name    string
	Hints   map[string]string
	Score   Scorer
	Details Details
}
