// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package authors normalizes free-text author lists into the canonical
// "Last, F." semicolon-separated form used by query hints and scoring.
package authors

import (
	"regexp"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/evidence"
)

var (
	// initialsRun matches a run of initials such as "J.", "J. R." or "J.R.".
	initialsRun = regexp.MustCompile(`^(?:[A-Z]\.?[\s-]*)+$`)

	// hyphenInitial matches "silly double initials" attached by hyphen, e.g. "-P.".
	hyphenInitial = regexp.MustCompile(`-[A-Z]\.`)

	// trailingInitials matches the initials tail of a normalized name, e.g.
	// ". J." or ". J. R.".
	trailingInitials = regexp.MustCompile(`\.( ?[A-Z]\.)*`)

	andSeparator = regexp.MustCompile(`(?i)\s+and\s+|\s*&\s*`)
)

// Normalize converts a raw author list into "Last, F.; Last, F." form. When
// keepInitials is false only last names are kept. The input may be separated
// by semicolons, "and", ampersands, or commas; "Given Last" entries are
// flipped to "Last, G.".
func Normalize(raw string, keepInitials bool) string {
	raw = strings.TrimSpace(andSeparator.ReplaceAllString(raw, ";"))
	if raw == "" {
		return ""
	}

	var chunks []string
	if strings.Contains(raw, ";") {
		chunks = strings.Split(raw, ";")
	} else {
		chunks = regroupCommaList(strings.Split(raw, ","))
	}

	var out []string
	for _, chunk := range chunks {
		name := normalizeOne(strings.TrimSpace(chunk), keepInitials)
		if name != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, "; ")
}

// regroupCommaList rejoins "Last, I." pairs that a plain comma split tore
// apart. A piece consisting only of initials belongs to the preceding piece.
func regroupCommaList(pieces []string) []string {
	var authors []string
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(authors) > 0 && initialsRun.MatchString(p) {
			authors[len(authors)-1] += ", " + p
			continue
		}
		authors = append(authors, p)
	}
	return authors
}

// normalizeOne formats a single author as "Last, F." or "Last".
func normalizeOne(name string, keepInitials bool) string {
	if name == "" {
		return ""
	}

	var last, given string
	if i := strings.Index(name, ","); i >= 0 {
		last = strings.TrimSpace(name[:i])
		given = strings.TrimSpace(name[i+1:])
	} else if i := strings.LastIndex(name, " "); i >= 0 {
		given = strings.TrimSpace(name[:i])
		last = strings.TrimSpace(name[i+1:])
	} else {
		last = name
	}

	if !keepInitials || given == "" {
		return last
	}

	var initials []string
	for _, g := range strings.FieldsFunc(given, func(r rune) bool {
		return r == ' ' || r == '.'
	}) {
		initials = append(initials, strings.ToUpper(g[:1])+".")
	}
	return last + ", " + strings.Join(initials, " ")
}

// StripInitials removes hyphenated double initials and initial dots from a
// normalized author list. "Smith, J. R.; Jones, B." becomes
// "Smith, J; Jones, B": the first initial survives without its dot, the
// trailing run of further initials is dropped.
func StripInitials(normalized string) string {
	return trailingInitials.ReplaceAllString(hyphenInitial.ReplaceAllString(normalized, ""), "")
}

// FirstAuthor returns the first author of a normalized list with initial
// dots stripped, e.g. "Smith, J".
func FirstAuthor(normalized string) string {
	return strings.TrimSpace(strings.SplitN(StripInitials(normalized), ";", 2)[0])
}

// FirstLastName returns the last name of the first author in a normalized list.
func FirstLastName(normalized string) string {
	return strings.TrimSpace(strings.SplitN(FirstAuthor(normalized), ",", 2)[0])
}

// lastNames returns the lowercased last names of a normalized author list.
func lastNames(normalized string) []string {
	var names []string
	for _, a := range strings.Split(StripInitials(normalized), ";") {
		a = strings.TrimSpace(strings.SplitN(a, ",", 2)[0])
		if a != "" {
			names = append(names, strings.ToLower(a))
		}
	}
	return names
}

// AddEvidence appends one author-overlap evidence entry to the ledger: the
// fraction of input last names found among the candidate's normalized
// authors, scaled into [low, high]. An input author list with no overlap at
// all vetoes the candidate. A candidate whose first author matches the input
// first author is never vetoed even when the rest of the list disagrees
// (truncated author lists are routine).
func AddEvidence(l *evidence.Ledger, inputNormalized string, candAuthorNorm []string, candFirstAuthorNorm string, low, high float64) {
	input := lastNames(inputNormalized)
	if len(input) == 0 {
		return
	}

	cand := make(map[string]bool, len(candAuthorNorm))
	for _, a := range candAuthorNorm {
		name := strings.TrimSpace(strings.SplitN(strings.ToLower(a), ",", 2)[0])
		if name != "" {
			cand[name] = true
		}
	}

	matched := 0
	for _, name := range input {
		if cand[name] {
			matched++
		}
	}

	firstMatches := candFirstAuthorNorm != "" &&
		strings.EqualFold(input[0], strings.TrimSpace(strings.SplitN(candFirstAuthorNorm, ",", 2)[0]))

	if matched == 0 && !firstMatches {
		l.Add(low, "author")
		return
	}
	frac := float64(matched) / float64(len(input))
	if firstMatches && frac < 1 {
		// Count the first author even if the candidate spells the list
		// differently from author_norm.
		if !cand[input[0]] {
			frac = (float64(matched) + 1) / float64(len(input))
		}
	}
	l.Add(low+(high-low)*frac, "author")
}
