// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query translates hypothesis hints into backend boolean-query
// fragments. The output format is the bit-exact contract with the search
// backend: per-field syntax, the metacharacter escape table, and the page
// wildcarding must not drift.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/authors"
)

// escapable matches the backend query parser's metacharacters and reserved
// words, case-insensitively. Each occurrence is backslash-escaped in place.
var escapable = regexp.MustCompile(`(?i)([()\[\]:\\*?"+~^,=#'-]|\bto\b|\band\b|\bor\b|\bnot\b|\bnear\b)`)

func escape(s string) string {
	return escapable.ReplaceAllString(s, `\$1`)
}

// pageFirstChars are the characters substituted into position 0 of a page
// hint: page numbers suffer first-character OCR damage more than anywhere
// else, and the catalog uses lowercase letters and digits there.
const pageFirstChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// Build joins the conditions for all hints with AND, skipping hints that
// translate to nothing. Keys are ordered so the same hints always produce
// the same query string.
func Build(hints map[string]string) string {
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var conds []string
	for _, k := range keys {
		if c := Condition(k, hints[k]); c != "" {
			conds = append(conds, c)
		}
	}
	return strings.Join(conds, " AND ")
}

// Condition returns the query fragment for one hint, or "" for blank values.
func Condition(key, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}

	switch {
	case key == "first_author_norm~":
		// Fuzzy matching runs against the unnormalized first_author index.
		return fmt.Sprintf(`first_author:"%s"~`, strings.ReplaceAll(value, ".", ""))

	case strings.Contains(key, "author"):
		return fmt.Sprintf("%s:(%s)", key, authorCondition(value))

	case key == "identifier":
		return fmt.Sprintf(`identifier:"%s"`, urlQuote(value))

	case key == "arxiv":
		// Both arXiv and ASCL ids live in the identifier index under their
		// respective prefixes.
		v := urlQuote(value)
		return fmt.Sprintf(`identifier:("arxiv:%s" OR "ascl:%s")`, v, v)

	case key == "doi":
		return fmt.Sprintf(`doi:"%s"`, url.QueryEscape(value))

	case key == "page":
		return pageCondition(value)

	case key == "title":
		return fmt.Sprintf("title:(%s)", strings.Join(strings.Fields(escape(value)), " AND "))

	case key == "title~":
		return fmt.Sprintf(`title:"%s"~`, escape(value))

	case key == "bibstem":
		// Parenthesized: one stem can alias multiple sub-series.
		return fmt.Sprintf("bibstem:(%s)", value)

	case key == "year~":
		y, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Sprintf(`year:"%s"`, escape(value))
		}
		return fmt.Sprintf("year:[%d TO %d]", y-5, y+5)

	case strings.HasSuffix(key, "_escaped"):
		// Pre-built fragment values, e.g. the thesis-word disjunction.
		return fmt.Sprintf("%s:%s", strings.TrimSuffix(key, "_escaped"), value)

	default:
		return fmt.Sprintf(`%s:"%s"`, key, escape(value))
	}
}

// authorCondition serializes an author list: initials and double-initial
// noise stripped, each author quoted, AND-joined, all dots removed.
func authorCondition(value string) string {
	normalized := authors.Normalize(value, strings.Contains(value, "."))
	stripped := authors.StripInitials(normalized)

	var quoted []string
	for _, name := range strings.Split(stripped, ";") {
		name = strings.TrimSpace(name)
		if name != "" {
			quoted = append(quoted, `"`+name+`"`)
		}
	}
	return strings.ReplaceAll(strings.Join(quoted, " AND "), ".", "")
}

// pageCondition expands a multi-character page into a disjunction covering
// every possible first character plus every single-position wildcard.
func pageCondition(value string) string {
	if len(value) == 1 {
		return fmt.Sprintf("page:(%s)", value)
	}

	var subs []string
	for _, c := range pageFirstChars {
		subs = append(subs, `"`+string(c)+value[1:]+`"`)
	}

	var wilds []string
	for i := 1; i < len(value); i++ {
		wilds = append(wilds, `"`+value[:i]+"?"+value[i+1:]+`"`)
	}

	return fmt.Sprintf("page:(%s or %s)", strings.Join(subs, " or "), strings.Join(wilds, " or "))
}

// urlQuote percent-encodes value the way a path segment is, keeping slashes.
func urlQuote(value string) string {
	return strings.ReplaceAll(url.PathEscape(value), "%2F", "/")
}
