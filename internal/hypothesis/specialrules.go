// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hypothesis

import (
	"regexp"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/authors"
	"github.com/pdiddy/reference-resolver/internal/evidence"
	"github.com/pdiddy/reference-resolver/internal/journals"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// confSeriesIndicator recognizes a conference series from the free-text
// journal string, OCR noise included.
type confSeriesIndicator struct {
	stem    string
	pattern *regexp.Regexp
}

// confSeriesIndicators lists the known conference-series name patterns in a
// fixed order so generation stays deterministic.
var confSeriesIndicators = []confSeriesIndicator{
	{"IAUS", regexp.MustCompile(`['Il]( |\.)? ?A( |\.)? ?U( |\. )? ?Sym`)},
	{"IAUCo", regexp.MustCompile(`['I] ?A ?U ?Co[li1]{2}`)},
	{"AIPC", regexp.MustCompile(`A(m)?\s*[lIi](nst)?\s*P(hys)?\s+(Co[on]f|Proc)`)},
	{"ASPC", regexp.MustCompile(`A(stro?n?)?\s*S(oc)?\s*P(ac)?\s*C(o[on]f)?`)},
	{"SPIE", regexp.MustCompile(`SPIE`)},
	{"BSRSL", regexp.MustCompile(`BSRSL`)},
	{"LPSC", regexp.MustCompile(`Lun(ar)?\.?\s+(Planet(ary)?\.?)?\s+(Sci(ence)?\.?)?\s+Conf|LPSC?\s+[IVXLCDM0-9]+`)},
	{"LPI", regexp.MustCompile(`Lunar\s+(Planet(ary)?\.?)?\s+(Sci(ence)?\.?)?\s+[iIvVxXlLcCdDmM]+`)},
	{"LPICo", regexp.MustCompile(`LPI\s+Contrib`)},
	{"ESASP", regexp.MustCompile(`ESA\sS(pec(ial)?)?\.?\s*P(ubl(ication)?s?)?\.?`)},
	{"LNP", regexp.MustCompile(`Lect(ure)?\.?\s+Not(es)?\.?\s+(in)?\s*Phys(ics)?\.?`)},
	{"SAAS", regexp.MustCompile(`Saas[\s-]?Fee`)},
	{"ASSL", regexp.MustCompile(`Astrophys(ics|\.)?\s+(and\s+)?Space\s+Sci(ence|\.)?\s+Lib(rary|\.)?`)},
}

// baasTargets are the sub-society stems BAAS abstracts were actually filed
// under. Volume and page for these live inside the free-text pub_raw field
// rather than the structured columns.
var baasTargets = []string{"DDA", "AAS", "DPS"}

// journalSpecific yields extra hypotheses for known irregular venues, keyed
// off the detected bibstem and the raw journal string. These must stay
// narrow: for noisy text references a loose rule fires on everything.
func (g *Generator) journalSpecific() []*Hypothesis {
	r := g.rec
	var out []*Hypothesis

	if r.Bibstem == "BAAS" {
		for _, target := range baasTargets {
			out = append(out, &Hypothesis{
				Name:  "extra-BAAS->" + target,
				Hints: g.baseHints(map[string]string{"bibstem": target}, "volume", "page", "pub"),
				Score: g.pubRawScorer(target),
				Details: Details{
					InputFields:       r,
					NormalizedAuthors: r.NormalizedAuthors,
					ExpectedBibstem:   target,
				},
			})
		}
	}

	if r.Bibstem == "LPSC" {
		// LPSC was published in per-conference 'volumes'; the field can mean
		// essentially anything, so drop it.
		out = append(out, &Hypothesis{
			Name:  "LPSC-ignore-volume",
			Hints: g.baseHints(nil, "volume", "pub"),
			Score: g.scorers.Basic,
			Details: Details{
				InputFields:       r,
				NormalizedAuthors: r.NormalizedAuthors,
				ExpectedBibstem:   "LPSC",
			},
		})
	}

	if sub := journals.LetterSubSeries(r.Bibstem); sub != "" {
		out = append(out, &Hypothesis{
			Name:  "extra-" + r.Bibstem + "->" + sub,
			Hints: g.baseHints(map[string]string{"bibstem": sub}, "pub"),
			Score: g.scorers.Serial,
			Details: Details{
				InputFields:       r,
				NormalizedAuthors: r.NormalizedAuthors,
				PageQualifier:     r.Qualifier,
				HasEtal:           g.hasEtal,
			},
		})
	}

	for _, ind := range confSeriesIndicators {
		if ind.pattern.MatchString(r.Pub) {
			// Volume is rarely parsed out properly for these.
			out = append(out, &Hypothesis{
				Name:  "fielded-confser-" + ind.stem,
				Hints: g.baseHints(map[string]string{"bibstem": ind.stem}, "pub"),
				Score: g.scorers.Basic,
				Details: Details{
					InputFields:       r,
					NormalizedAuthors: r.NormalizedAuthors,
					ExpectedBibstem:   ind.stem,
				},
			})
		}
	}

	return out
}

// baseHints builds the standard hint set from the record, drops the named
// keys, and overlays extra.
func (g *Generator) baseHints(extra map[string]string, drop ...string) map[string]string {
	r := g.rec
	hints := map[string]string{}
	for key, val := range map[string]string{
		"author":  r.NormalizedAuthors,
		"bibstem": r.Bibstem,
		"volume":  r.Volume,
		"year":    r.Year,
		"page":    r.Page,
		"pub":     r.Pub,
	} {
		if val != "" {
			hints[key] = val
		}
	}
	for _, key := range drop {
		delete(hints, key)
	}
	for key, val := range extra {
		hints[key] = val
	}
	return hints
}

// pubRawScorer scores candidates whose volume and page are buried in the
// free-text pub_raw field. A candidate whose bibcode is not filed under the
// expected stem is vetoed outright, with no further evidence checked.
func (g *Generator) pubRawScorer(expectedStem string) Scorer {
	cfg := g.cfg
	return func(cand types.Candidate, h *Hypothesis) *evidence.Ledger {
		l := evidence.NewLedger(cfg.EvidenceScoreLow)

		stemPat := regexp.MustCompile(`^....` + regexp.QuoteMeta(expectedStem))
		if !stemPat.MatchString(cand.Bibcode) {
			l.Add(cfg.EvidenceScoreLow, "no "+expectedStem+" bibcode")
			return l
		}

		in := h.Details.InputFields
		authors.AddEvidence(l, in.NormalizedAuthors, cand.AuthorNorm, cand.FirstAuthorNorm,
			cfg.EvidenceScoreLow, cfg.EvidenceScoreHigh)

		if in.Volume != "" {
			l.AddBool(strings.Contains(cand.PubRaw, "Vol. "+in.Volume), cfg.EvidenceScoreHigh, "vol in pub_raw?")
		}
		if in.Page != "" {
			pagePat := regexp.MustCompile(`p\.\s*` + regexp.QuoteMeta(in.Page) + `\b`)
			l.AddBool(pagePat.MatchString(cand.PubRaw), cfg.EvidenceScoreHigh, "page in pub_raw?")
		}
		return l
	}
}
