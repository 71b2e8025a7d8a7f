// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring provides the default evidence-scoring strategies, one per
// hypothesis family. The strategies are deliberately pluggable: anything
// that fills an evidence ledger per the documented contract can replace
// them. The aggregate here is the plain sum of entry weights.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/authors"
	"github.com/pdiddy/reference-resolver/internal/evidence"
	"github.com/pdiddy/reference-resolver/internal/hypothesis"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// Default returns the default scorer set for the given scoring config.
func Default(cfg types.ScoringConfig) hypothesis.ScorerSet {
	s := scorers{cfg: cfg}
	return hypothesis.ScorerSet{
		Identifier: s.identifier,
		Serial:     s.serial,
		Book:       s.book,
		Thesis:     s.thesis,
		Basic:      s.basic,
	}
}

type scorers struct {
	cfg types.ScoringConfig
}

func (s scorers) newLedger() *evidence.Ledger {
	return evidence.NewLedger(s.cfg.EvidenceScoreLow)
}

// identifier scores doi/arxiv/bibcode hypotheses: the candidate either
// carries the hinted identifier or it does not.
func (s scorers) identifier(cand types.Candidate, h *hypothesis.Hypothesis) *evidence.Ledger {
	l := s.newLedger()
	if doi, ok := h.Hints["doi"]; ok {
		l.AddBool(strings.EqualFold(cand.DOI, doi) || hasIdentifier(cand, doi), s.cfg.EvidenceScoreHigh, "doi")
		return l
	}
	if arxiv, ok := h.Hints["arxiv"]; ok {
		l.AddBool(hasIdentifier(cand, "arxiv:"+arxiv) || hasIdentifier(cand, "ascl:"+arxiv) || hasIdentifier(cand, arxiv),
			s.cfg.EvidenceScoreHigh, "arxiv")
		return l
	}
	if bibcode, ok := h.Hints["bibcode"]; ok {
		l.AddBool(cand.Bibcode == bibcode, s.cfg.EvidenceScoreHigh, "bibcode")
		return l
	}
	l.Add(s.cfg.EvidenceScoreLow, "no identifier hint")
	return l
}

// serial scores journal-article hypotheses on whatever input fields exist.
func (s scorers) serial(cand types.Candidate, h *hypothesis.Hypothesis) *evidence.Ledger {
	l := s.newLedger()
	in := h.Details.InputFields
	if in == nil {
		l.Add(s.cfg.EvidenceScoreLow, "no input fields")
		return l
	}

	s.addAuthor(l, cand, h)
	s.addYear(l, cand, in.Year)

	if in.Volume != "" && cand.Volume != "" {
		l.AddBool(in.Volume == cand.Volume, s.cfg.EvidenceScoreHigh, "volume")
	}
	if in.Page != "" {
		s.addPage(l, cand, in.Page)
	}
	if stem, ok := h.Hints["bibstem"]; ok && stem != "" {
		s.addBibstem(l, cand, stem)
	}
	if in.Title != "" && cand.Title != "" {
		s.addTitle(l, cand.Title, in.Title)
	}
	return l
}

// book scores author, cleaned pub-as-title, and year.
func (s scorers) book(cand types.Candidate, h *hypothesis.Hypothesis) *evidence.Ledger {
	l := s.newLedger()
	in := h.Details.InputFields
	if in == nil {
		l.Add(s.cfg.EvidenceScoreLow, "no input fields")
		return l
	}
	s.addAuthor(l, cand, h)
	s.addYear(l, cand, in.Year)
	if title, ok := h.Hints["title"]; ok && cand.Title != "" {
		s.addTitle(l, cand.Title, title)
	}
	return l
}

// thesis scores author and year only; there is no structured venue to match.
func (s scorers) thesis(cand types.Candidate, h *hypothesis.Hypothesis) *evidence.Ledger {
	l := s.newLedger()
	in := h.Details.InputFields
	if in == nil {
		l.Add(s.cfg.EvidenceScoreLow, "no input fields")
		return l
	}
	s.addAuthor(l, cand, h)
	s.addYear(l, cand, in.Year)
	return l
}

// basic scores author, year, and page but deliberately ignores volume, for
// venues whose volume numbering cannot be trusted.
func (s scorers) basic(cand types.Candidate, h *hypothesis.Hypothesis) *evidence.Ledger {
	l := s.newLedger()
	in := h.Details.InputFields
	if in == nil {
		l.Add(s.cfg.EvidenceScoreLow, "no input fields")
		return l
	}
	s.addAuthor(l, cand, h)
	s.addYear(l, cand, in.Year)
	if in.Page != "" {
		s.addPage(l, cand, in.Page)
	}
	return l
}

// addAuthor adds author-overlap evidence. Hypotheses that keep only the
// first author compare just that; with a truncated ("et al.") input list the
// overlap fraction naturally covers only the authors actually cited.
func (s scorers) addAuthor(l *evidence.Ledger, cand types.Candidate, h *hypothesis.Hypothesis) {
	in := h.Details.InputFields
	norm := h.Details.NormalizedAuthors
	if norm == "" {
		norm = in.NormalizedAuthors
	}
	if norm == "" {
		return
	}
	if _, firstOnly := h.Hints["first_author_norm"]; firstOnly {
		first := authors.FirstLastName(norm)
		candFirst := strings.TrimSpace(strings.SplitN(cand.FirstAuthorNorm, ",", 2)[0])
		l.AddBool(strings.EqualFold(first, candFirst), s.cfg.EvidenceScoreHigh, "author")
		return
	}
	authors.AddEvidence(l, norm, cand.AuthorNorm, cand.FirstAuthorNorm,
		s.cfg.EvidenceScoreLow, s.cfg.EvidenceScoreHigh)
}

// addYear adds year evidence: exact match scores high, one year off is
// neutral (print vs. preprint years drift), anything further vetoes.
func (s scorers) addYear(l *evidence.Ledger, cand types.Candidate, year string) {
	if year == "" || cand.Year == "" {
		return
	}
	a, errA := strconv.Atoi(year)
	b, errB := strconv.Atoi(cand.Year)
	if errA != nil || errB != nil {
		l.AddBool(year == cand.Year, s.cfg.EvidenceScoreHigh, "year")
		return
	}
	switch d := math.Abs(float64(a - b)); {
	case d == 0:
		l.Add(s.cfg.EvidenceScoreHigh, "year")
	case d == 1:
		l.Add(neutral(s.cfg), "year")
	default:
		l.Add(s.cfg.EvidenceScoreLow, "year")
	}
}

// addPage compares range starts; a first-character mismatch with matching
// remainder is neutral, covering the common OCR corruption the query
// wildcarding targets.
func (s scorers) addPage(l *evidence.Ledger, cand types.Candidate, page string) {
	candPage := strings.SplitN(cand.Page, "-", 2)[0]
	if candPage == "" {
		l.Add(s.cfg.EvidenceScoreLow, "page")
		return
	}
	switch {
	case candPage == page:
		l.Add(s.cfg.EvidenceScoreHigh, "page")
	case len(candPage) == len(page) && len(page) > 1 && candPage[1:] == page[1:]:
		l.Add(neutral(s.cfg), "page")
	default:
		l.Add(s.cfg.EvidenceScoreLow, "page")
	}
}

// addBibstem compares the hinted stem against the candidate bibcode's
// journal-code segment.
func (s scorers) addBibstem(l *evidence.Ledger, cand types.Candidate, stem string) {
	if len(cand.Bibcode) < 9 {
		l.Add(s.cfg.EvidenceScoreLow, "bibstem")
		return
	}
	seg := strings.Trim(cand.Bibcode[4:9], ".")
	l.AddBool(strings.EqualFold(seg, stem), s.cfg.EvidenceScoreHigh, "bibstem")
}

// addTitle adds word-overlap evidence between the input and candidate titles,
// scaled into the evidence range. Titles never veto on their own: overlap
// zero sits just above the veto weight.
func (s scorers) addTitle(l *evidence.Ledger, candTitle, title string) {
	want := titleWords(title)
	if len(want) == 0 {
		return
	}
	got := map[string]bool{}
	for _, w := range titleWords(candTitle) {
		got[w] = true
	}
	matched := 0
	for _, w := range want {
		if got[w] {
			matched++
		}
	}
	frac := float64(matched) / float64(len(want))
	lo, hi := s.cfg.EvidenceScoreLow, s.cfg.EvidenceScoreHigh
	weight := lo + (hi-lo)*frac
	if weight == lo {
		weight = math.Nextafter(lo, hi)
	}
	l.Add(weight, "title")
}

func neutral(cfg types.ScoringConfig) float64 {
	return (cfg.EvidenceScoreLow + cfg.EvidenceScoreHigh) / 2
}

func titleWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, `.,:;!?"'()[]`)
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func hasIdentifier(cand types.Candidate, id string) bool {
	for _, v := range cand.Identifier {
		if strings.EqualFold(v, id) {
			return true
		}
	}
	return false
}
