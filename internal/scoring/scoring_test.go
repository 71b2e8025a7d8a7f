// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reference-resolver/internal/hypothesis"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

func defaultSet() hypothesis.ScorerSet {
	return Default(types.DefaultScoringConfig())
}

func TestIdentifierScorer(t *testing.T) {
	s := defaultSet()

	h := &hypothesis.Hypothesis{
		Name:  "fielded-DOI",
		Hints: map[string]string{"doi": "10.1086/123456"},
	}

	match := s.Identifier(types.Candidate{DOI: "10.1086/123456"}, h)
	assert.False(t, match.HasVeto())
	assert.Equal(t, 1, match.Count())
	assert.InDelta(t, 1.0, match.Sum(), 1e-9)

	miss := s.Identifier(types.Candidate{DOI: "10.1086/999999"}, h)
	assert.True(t, miss.HasVeto())

	// A DOI buried in the identifier list still counts.
	viaList := s.Identifier(types.Candidate{Identifier: []string{"10.1086/123456"}}, h)
	assert.False(t, viaList.HasVeto())
}

func TestIdentifierScorer_Arxiv(t *testing.T) {
	s := defaultSet()
	h := &hypothesis.Hypothesis{
		Name:  "fielded-arxiv",
		Hints: map[string]string{"arxiv": "1110.1234"},
	}

	match := s.Identifier(types.Candidate{Identifier: []string{"arXiv:1110.1234"}}, h)
	assert.False(t, match.HasVeto())

	ascl := s.Identifier(types.Candidate{Identifier: []string{"ascl:1110.1234"}}, h)
	assert.False(t, ascl.HasVeto())
}

func serialHypothesis(rec *hypothesis.Record, hints map[string]string) *hypothesis.Hypothesis {
	return &hypothesis.Hypothesis{
		Name:  "fielded-auth/year/volume/page",
		Hints: hints,
		Details: hypothesis.Details{
			InputFields:       rec,
			NormalizedAuthors: rec.NormalizedAuthors,
		},
	}
}

func TestSerialScorer_FullMatch(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{
		NormalizedAuthors: "Smith, J.",
		Year:              "2001",
		Volume:            "550",
		Page:              "97",
	}
	h := serialHypothesis(rec, map[string]string{"author": rec.NormalizedAuthors})

	l := s.Serial(types.Candidate{
		Bibcode:         "2001ApJ...550...97S",
		AuthorNorm:      []string{"Smith, J"},
		FirstAuthorNorm: "Smith, J",
		Year:            "2001",
		Volume:          "550",
		Page:            "97",
	}, h)

	assert.False(t, l.HasVeto())
	// author, year, volume, page
	assert.Equal(t, 4, l.Count())
	assert.InDelta(t, 4.0, l.Sum(), 1e-9)
}

func TestSerialScorer_YearRules(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{NormalizedAuthors: "Smith, J.", Year: "2001"}
	h := serialHypothesis(rec, nil)

	cand := types.Candidate{
		AuthorNorm:      []string{"Smith, J"},
		FirstAuthorNorm: "Smith, J",
	}

	cand.Year = "2002"
	offByOne := s.Serial(cand, h)
	assert.False(t, offByOne.HasVeto(), "preprint year drift is tolerated")

	cand.Year = "2004"
	offByThree := s.Serial(cand, h)
	assert.True(t, offByThree.HasVeto())
}

func TestSerialScorer_PageTailMatch(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{NormalizedAuthors: "Smith, J.", Page: "1023"}
	h := serialHypothesis(rec, nil)

	cand := types.Candidate{
		AuthorNorm:      []string{"Smith, J"},
		FirstAuthorNorm: "Smith, J",
	}

	cand.Page = "L023"
	tail := s.Serial(cand, h)
	assert.False(t, tail.HasVeto(), "first-character damage is neutral, not a veto")

	cand.Page = "1055"
	wrong := s.Serial(cand, h)
	assert.True(t, wrong.HasVeto())

	cand.Page = "1023-1040"
	rangeStart := s.Serial(cand, h)
	assert.False(t, rangeStart.HasVeto())
}

func TestSerialScorer_Bibstem(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{NormalizedAuthors: "Smith, J.", Year: "2001"}
	h := serialHypothesis(rec, map[string]string{"bibstem": "ApJ"})

	cand := types.Candidate{
		Bibcode:         "2001ApJ...550...97S",
		AuthorNorm:      []string{"Smith, J"},
		FirstAuthorNorm: "Smith, J",
		Year:            "2001",
	}
	l := s.Serial(cand, h)
	assert.False(t, l.HasVeto())

	cand.Bibcode = "2001MNRAS.550...97S"
	l = s.Serial(cand, h)
	assert.True(t, l.HasVeto())
}

func TestSerialScorer_FirstAuthorOnly(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{NormalizedAuthors: "Smith, J.", Year: "2001"}
	h := &hypothesis.Hypothesis{
		Name:  "fielded-first-author-norm/year",
		Hints: map[string]string{"first_author_norm": "Smith, J"},
		Details: hypothesis.Details{
			InputFields:       rec,
			NormalizedAuthors: rec.NormalizedAuthors,
		},
	}

	l := s.Serial(types.Candidate{
		AuthorNorm:      []string{"Smith, J", "Jones, A"},
		FirstAuthorNorm: "Smith, J",
		Year:            "2001",
	}, h)
	assert.False(t, l.HasVeto())

	l = s.Serial(types.Candidate{
		AuthorNorm:      []string{"Jones, A"},
		FirstAuthorNorm: "Jones, A",
		Year:            "2001",
	}, h)
	assert.True(t, l.HasVeto())
}

func TestBookScorer_TitleOverlapNeverVetoes(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{NormalizedAuthors: "Binney, J.", Year: "1987"}
	h := &hypothesis.Hypothesis{
		Name:  "fielded-book",
		Hints: map[string]string{"title": "Galactic Dynamics"},
		Details: hypothesis.Details{
			InputFields:       rec,
			NormalizedAuthors: rec.NormalizedAuthors,
		},
	}

	l := s.Book(types.Candidate{
		AuthorNorm:      []string{"Binney, J"},
		FirstAuthorNorm: "Binney, J",
		Year:            "1987",
		Title:           "Completely Unrelated Work",
	}, h)

	// The zero-overlap title entry sits just above the veto weight.
	assert.False(t, l.HasVeto())
	require.Equal(t, 3, l.Count())
}

func TestThesisScorer(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{NormalizedAuthors: "Payne, C.", Year: "1925"}
	h := &hypothesis.Hypothesis{
		Name: "fielded-thesis",
		Details: hypothesis.Details{
			InputFields:       rec,
			NormalizedAuthors: rec.NormalizedAuthors,
		},
	}

	l := s.Thesis(types.Candidate{
		AuthorNorm:      []string{"Payne, C"},
		FirstAuthorNorm: "Payne, C",
		Year:            "1925",
	}, h)
	assert.False(t, l.HasVeto())
	assert.Equal(t, 2, l.Count())
}

func TestBasicScorer_IgnoresVolume(t *testing.T) {
	s := defaultSet()
	rec := &hypothesis.Record{
		NormalizedAuthors: "Head, J.",
		Year:              "1976",
		Volume:            "7",
		Page:              "2913",
	}
	h := &hypothesis.Hypothesis{
		Name: "LPSC-ignore-volume",
		Details: hypothesis.Details{
			InputFields:       rec,
			NormalizedAuthors: rec.NormalizedAuthors,
		},
	}

	// Candidate volume disagrees wildly; the basic scorer must not care.
	l := s.Basic(types.Candidate{
		AuthorNorm:      []string{"Head, J"},
		FirstAuthorNorm: "Head, J",
		Year:            "1976",
		Volume:          "1976",
		Page:            "2913",
	}, h)

	assert.False(t, l.HasVeto())
	assert.Equal(t, 3, l.Count())
}
