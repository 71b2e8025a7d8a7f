// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hypothesis

import (
	"strings"

	"github.com/pdiddy/reference-resolver/internal/journals"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// BibstemLookup resolves a free-text publication name to its best-matching
// bibstem. *journals.Index implements it.
type BibstemLookup interface {
	BestBibstem(pub string) string
}

// Generator produces the priority-ordered hypothesis cascade for one
// reference. Hypotheses are built on demand: the driver stops consuming as
// soon as one yields an accepted solution, so later steps are often never
// evaluated. A Generator is single-use and not safe for concurrent use; each
// resolution gets its own.
type Generator struct {
	rec     *Record
	cfg     types.ScoringConfig
	stems   BibstemLookup
	scorers ScorerSet
	hasEtal bool

	steps []func() []*Hypothesis
	buf   []*Hypothesis
}

// NewGenerator digests the reference and prepares the cascade. It fails only
// when digestion does (e.g. an unparseable year).
func NewGenerator(ref types.Reference, cfg types.ScoringConfig, stems BibstemLookup, scorers ScorerSet) (*Generator, error) {
	rec, err := Digest(ref)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		rec:     rec,
		cfg:     cfg,
		stems:   stems,
		scorers: scorers,
		// Detected once against the whole raw reference and threaded into
		// every weaker hypothesis.
		hasEtal: etalPattern.MatchString(ref.String()),
	}
	g.steps = g.cascade()
	return g, nil
}

// Record exposes the digested record, mainly for logging.
func (g *Generator) Record() *Record {
	return g.rec
}

// Next returns the next hypothesis in priority order. The second return is
// false once the cascade is exhausted.
func (g *Generator) Next() (*Hypothesis, bool) {
	for len(g.buf) == 0 && len(g.steps) > 0 {
		step := g.steps[0]
		g.steps = g.steps[1:]
		g.buf = append(g.buf, step()...)
	}
	if len(g.buf) == 0 {
		return nil, false
	}
	h := g.buf[0]
	g.buf = g.buf[1:]
	return h, true
}

// serialDetails is the detail block shared by the serial-family hypotheses.
func (g *Generator) serialDetails() Details {
	return Details{
		InputFields:       g.rec,
		NormalizedAuthors: g.rec.NormalizedAuthors,
		PageQualifier:     g.rec.Qualifier,
		HasEtal:           g.hasEtal,
	}
}

// cascade lists the hypothesis steps, most specific first. Each step checks
// its own required fields; missing fields skip the step silently.
func (g *Generator) cascade() []func() []*Hypothesis {
	r := g.rec
	one := func(h *Hypothesis) []*Hypothesis { return []*Hypothesis{h} }

	return []func() []*Hypothesis{
		// An identifier is as good as it gets.
		func() []*Hypothesis {
			if !has(r.DOI) {
				return nil
			}
			return one(&Hypothesis{
				Name:    "fielded-DOI",
				Hints:   map[string]string{"doi": r.DOI},
				Score:   g.scorers.Identifier,
				Details: Details{InputFields: r},
			})
		},
		func() []*Hypothesis {
			if !has(r.Arxiv) {
				return nil
			}
			return one(&Hypothesis{
				Name:    "fielded-arxiv",
				Hints:   map[string]string{"arxiv": r.Arxiv},
				Score:   g.scorers.Identifier,
				Details: Details{InputFields: r},
			})
		},
		// The old way: construct the canonical bibcode.
		func() []*Hypothesis {
			if !has(r.Author, r.Year, r.Pub) {
				return nil
			}
			r.ConstructBibcode(g.stems.BestBibstem(r.Pub))
			return one(&Hypothesis{
				Name:    "fielded-bibcode",
				Hints:   map[string]string{"bibcode": r.Bibcode},
				Score:   g.scorers.Identifier,
				Details: Details{InputFields: r},
			})
		},
		func() []*Hypothesis {
			if !has(r.Author, r.Year, r.Volume, r.Page) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-auth/year/volume/page",
				Hints: map[string]string{
					"author": r.NormalizedAuthors,
					"year":   r.Year,
					"volume": r.Volume,
					"page":   r.Page,
				},
				Score:   g.scorers.Serial,
				Details: g.serialDetails(),
			})
		},
		func() []*Hypothesis {
			if !has(r.Author, r.Pub, r.Year) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-auth/pub/year",
				Hints: map[string]string{
					"author":  r.NormalizedAuthors,
					"bibstem": g.stems.BestBibstem(r.Pub),
					"year":    r.Year,
				},
				Score:   g.scorers.Serial,
				Details: g.serialDetails(),
			})
		},
		func() []*Hypothesis {
			if !has(r.Author, r.Year, r.Title) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-title",
				Hints: map[string]string{
					"first_author_norm": r.NormalizedFirstAuthor,
					"year":              r.Year,
					"title":             r.Title,
				},
				Score:   g.scorers.Serial,
				Details: Details{InputFields: r},
			})
		},
		// A book citation often carries its title in the pub field.
		func() []*Hypothesis {
			if !has(r.Author, r.Pub, r.Year) || !lacks(r.Title) {
				return nil
			}
			cleaned := journals.CookTitle(r.Pub)
			if len(cleaned) < 15 {
				// Cleanup left too little; revert to the raw pub.
				cleaned = r.Pub
			}
			return one(&Hypothesis{
				Name: "fielded-book",
				Hints: map[string]string{
					"author": r.NormalizedAuthors,
					"title":  cleaned,
					"year":   r.Year,
				},
				Score: g.scorers.Book,
				Details: Details{
					InputFields:       r,
					NormalizedAuthors: r.NormalizedAuthors,
					PageQualifier:     r.Qualifier,
				},
			})
		},
		// Could this be a thesis? The configured indicator words double as
		// the publication hint: the reference's own thesis words may have
		// nothing to do with how the catalog spells them, and oring raw pub
		// words would drag stopwords into the disjunction.
		func() []*Hypothesis {
			if !has(r.Author, r.Year, r.Refstr) || !lacks(r.Volume, r.Page) {
				return nil
			}
			if !journals.HasThesisIndicators(r.Refstr, g.cfg.ThesisIndicatorWords) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-thesis",
				Hints: map[string]string{
					"author":      r.NormalizedAuthors,
					"pub_escaped": "(" + strings.Join(g.cfg.ThesisIndicatorWords, " or ") + ")",
					"year":        r.Year,
				},
				Score: g.scorers.Thesis,
				Details: Details{
					InputFields:       r,
					NormalizedAuthors: r.NormalizedAuthors,
				},
			})
		},
		// Venue-specific extra hypotheses.
		func() []*Hypothesis {
			if !has(r.Pub) || lacks(r.Author, r.Year) {
				return nil
			}
			r.Bibstem = g.stems.BestBibstem(r.Pub)
			return g.journalSpecific()
		},
		// A long page number carries enough entropy on its own.
		func() []*Hypothesis {
			if !has(r.Author) || len(r.Page) <= 2 {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-author/page",
				Hints: map[string]string{
					"author": r.NormalizedAuthors,
					"page":   r.Page,
				},
				Score:   g.scorers.Serial,
				Details: Details{InputFields: r},
			})
		},
		func() []*Hypothesis {
			if !has(r.Author, r.Year) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-first-author-norm/year",
				Hints: map[string]string{
					"first_author_norm": r.NormalizedFirstAuthor,
					"year":              r.Year,
				},
				Score:   g.scorers.Serial,
				Details: g.serialDetails(),
			})
		},
		func() []*Hypothesis {
			if !has(r.Author, r.Year) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-first-author-norm~/year",
				Hints: map[string]string{
					"first_author_norm~": r.NormalizedFirstAuthor,
					"year":               r.Year,
				},
				Score:   g.scorers.Serial,
				Details: g.serialDetails(),
			})
		},
		func() []*Hypothesis {
			if !has(r.Author, r.Year) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-author-norm/year~",
				Hints: map[string]string{
					"author": r.NormalizedAuthors,
					"year~":  r.Year,
				},
				Score:   g.scorers.Serial,
				Details: g.serialDetails(),
			})
		},
		// No author.
		func() []*Hypothesis {
			if !has(r.Year, r.Pub, r.Volume, r.Page) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-no-author",
				Hints: map[string]string{
					"bibstem": g.stems.BestBibstem(r.Pub),
					"year":    r.Year,
					"volume":  r.Volume,
					"page":    r.Qualifier + r.Page,
				},
				Score:   g.scorers.Serial,
				Details: Details{InputFields: r},
			})
		},
		// No year.
		func() []*Hypothesis {
			if !has(r.Author, r.Pub, r.Volume, r.Page) {
				return nil
			}
			return one(&Hypothesis{
				Name: "fielded-no-year",
				Hints: map[string]string{
					"author":  r.NormalizedAuthors,
					"bibstem": g.stems.BestBibstem(r.Pub),
					"volume":  r.Volume,
					"page":    r.Page,
				},
				Score:   g.scorers.Serial,
				Details: g.serialDetails(),
			})
		},
	}
}
