// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hypothesis turns a raw reference into a digested working record
// and generates the ordered cascade of query hypotheses the resolver tries
// against the search backend.
package hypothesis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/authors"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

var (
	// etalPattern matches "et al." tokens in author lists and raw citations.
	etalPattern = regexp.MustCompile(`(?i)[\s,]*et\.?\s*al\.?`)

	// yearRun matches a plausible 4-digit publication year: 1 or 2, then
	// 0, 8 or 9, then two digits.
	yearRun = regexp.MustCompile(`[12][089]\d\d`)

	// letterVolume matches a volume with a sub-journal letter attached,
	// e.g. "D81" for "Phys. Rev." volume "D81" (really Phys. Rev. D, 81).
	letterVolume = regexp.MustCompile(`^([ABCDEFGIT])\d+$`)
)

// Record is the digested working record derived from one Reference. All
// fields are canonical: year is 4 digits, page is a range start, author has
// no "et al." tokens, lettered volumes are repaired onto Pub.
type Record struct {
	Author string
	Pub    string
	Volume string
	Issue  string
	Page   string
	Year   string
	Title  string
	Refstr string
	DOI    string
	Arxiv  string

	// Qualifier is the 1-character bibcode page qualifier, empty unless known.
	Qualifier string

	// Bibstem and Bibcode are filled in later, once a journal abbreviation
	// is resolved or a canonical identifier is constructed.
	Bibstem string
	Bibcode string

	// NormalizedAuthors is the "Last, F.; Last, F." form of Author;
	// NormalizedFirstAuthor is the first author with initial dots stripped.
	NormalizedAuthors     string
	NormalizedFirstAuthor string
}

// Digest normalizes a raw reference into a Record. It is a pure function of
// its input. A year field longer than 4 characters that contains no
// plausible 4-digit run is an error: silently passing garbage downstream
// would poison every year-bearing hypothesis.
func Digest(ref types.Reference) (*Record, error) {
	rec := &Record{
		Author: ref.Authors,
		Pub:    ref.Journal,
		Volume: ref.Volume,
		Issue:  ref.Issue,
		Page:   ref.Page,
		Year:   ref.Year,
		Title:  ref.Title,
		Refstr: ref.Refstr,
		DOI:    ref.DOI,
		Arxiv:  ref.Arxiv,
	}
	// A book field wins over a journal field for the publication slot.
	if ref.Book != "" {
		rec.Pub = ref.Book
	}

	if rec.Author != "" {
		rec.Author = strings.TrimSpace(etalPattern.ReplaceAllString(rec.Author, ""))
		rec.NormalizedAuthors = authors.Normalize(rec.Author, true)
		rec.NormalizedFirstAuthor = authors.FirstAuthor(rec.NormalizedAuthors)
	}

	if len(rec.Year) > 4 {
		run := yearRun.FindString(rec.Year)
		if run == "" {
			return nil, fmt.Errorf("digesting year %q: no 4-digit year run", rec.Year)
		}
		rec.Year = run
	}

	if i := strings.Index(rec.Page, "-"); i >= 0 {
		// Queries go against the page start; drop the range end.
		rec.Page = rec.Page[:i]
	}

	if rec.Volume != "" && rec.Pub != "" {
		if m := letterVolume.FindStringSubmatch(rec.Volume); m != nil {
			rec.Pub = rec.Pub + " " + m[1]
			rec.Volume = rec.Volume[1:]
		}
	}

	return rec, nil
}

// has reports whether every given field value is non-empty.
func has(vals ...string) bool {
	for _, v := range vals {
		if v == "" {
			return false
		}
	}
	return true
}

// lacks reports whether every given field value is empty.
func lacks(vals ...string) bool {
	for _, v := range vals {
		if v != "" {
			return false
		}
	}
	return true
}
