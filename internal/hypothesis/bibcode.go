// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hypothesis

import "strings"

// Bibcode layout: 4-char year, 5-char journal code (left-justified), 4-char
// volume (right-justified), 1-char page qualifier, 4-char page
// (right-justified), 1-char first-author initial. Filler is ".".
const (
	bibcodeLen   = 19
	stemWidth    = 5
	volumeWidth  = 4
	pageWidth    = 4
	bibcodeTrunc = "." // filler character
)

// ConstructBibcode builds the canonical 19-character identifier from the
// record and the given journal abbreviation, stores it on the record, and
// returns it. Year and Pub must already be confirmed present; every other
// position falls back to dot filler.
func (r *Record) ConstructBibcode(stem string) string {
	var b strings.Builder
	b.Grow(bibcodeLen)

	b.WriteString(padLeft(r.Year, 4))
	b.WriteString(padRight(stem, stemWidth))
	b.WriteString(padLeft(r.Volume, volumeWidth))

	qualifier := r.Qualifier
	if qualifier == "" {
		qualifier = bibcodeTrunc
	}
	b.WriteString(qualifier[:1])

	page := r.Page
	if len(page) > pageWidth {
		page = page[:pageWidth]
	}
	b.WriteString(padLeft(page, pageWidth))

	initial := bibcodeTrunc
	if r.NormalizedAuthors != "" {
		initial = r.NormalizedAuthors[:1]
	}
	b.WriteString(initial)

	r.Bibcode = b.String()
	return r.Bibcode
}

// padLeft right-justifies s in width columns, dot-padded; overlong values
// keep their trailing characters.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(bibcodeTrunc, width-len(s)) + s
}

// padRight left-justifies s in width columns, dot-padded; overlong values
// keep their leading characters.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(bibcodeTrunc, width-len(s))
}
