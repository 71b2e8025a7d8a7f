// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journals maps free-text publication names to bibstems, the short
// canonical venue abbreviations used as the journal-code segment of a
// bibcode. Lookups consult an optional SQLite abbreviation database first
// and fall back to a built-in table.
package journals

import (
	"regexp"
	"strings"
)

// builtinStems maps normalized publication names to bibstems. Keys are
// lowercased with all non-alphanumerics removed.
var builtinStems = map[string]string{
	"apj":                        "ApJ",
	"astrophysj":                 "ApJ",
	"astrophysicaljournal":       "ApJ",
	"theastrophysicaljournal":    "ApJ",
	"apjl":                       "ApJL",
	"apjlett":                    "ApJL",
	"astrophysjlett":             "ApJL",
	"apjs":                       "ApJS",
	"aj":                         "AJ",
	"astronj":                    "AJ",
	"astronomicaljournal":        "AJ",
	"aa":                         "A&A",
	"astronastrophys":            "A&A",
	"astronomyandastrophysics":   "A&A",
	"mnras":                      "MNRAS",
	"monnotroyastronsoc":         "MNRAS",
	"nature":                     "Natur",
	"natur":                      "Natur",
	"science":                    "Sci",
	"sci":                        "Sci",
	"physrev":                    "PhRv",
	"physicalreview":             "PhRv",
	"physreva":                   "PhRvA",
	"physrevb":                   "PhRvB",
	"physrevc":                   "PhRvC",
	"physrevd":                   "PhRvD",
	"physicalreviewd":            "PhRvD",
	"physreve":                   "PhRvE",
	"physrevlett":                "PhRvL",
	"physicalreviewletters":      "PhRvL",
	"physlettb":                  "PhLB",
	"nuclphysb":                  "NuPhB",
	"baas":                       "BAAS",
	"bullamastronsoc":            "BAAS",
	"bulletinoftheaas":           "BAAS",
	"lunarplanetsciconf":         "LPSC",
	"lpsc":                       "LPSC",
	"icarus":                     "Icar",
	"icar":                       "Icar",
	"pasp":                       "PASP",
	"publastronsocpac":           "PASP",
	"pasj":                       "PASJ",
	"jgeophysres":                "JGR",
	"jgr":                        "JGR",
	"geophysreslett":             "GeoRL",
	"georl":                      "GeoRL",
	"solphys":                    "SoPh",
	"solarphysics":               "SoPh",
	"apss":                       "Ap&SS",
	"astrophysspacesci":          "Ap&SS",
	"araa":                       "ARA&A",
	"annrevastronastrophys":      "ARA&A",
	"ibvs":                       "IBVS",
	"infbullvarstars":            "IBVS",
	"iaus":                       "IAUS",
	"iausymp":                    "IAUS",
	"aipc":                       "AIPC",
	"aipconfproc":                "AIPC",
	"aspc":                       "ASPC",
	"aspconfser":                 "ASPC",
	"spie":                       "SPIE",
	"procspie":                   "SPIE",
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeKey lowercases a publication name and strips everything but
// letters and digits.
func normalizeKey(pub string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(pub), "")
}

// stemFromWords derives a fallback stem from the capitalized words of an
// unknown publication name: the first letter of up to five significant words.
func stemFromWords(pub string) string {
	skip := map[string]bool{
		"the": true, "of": true, "and": true, "in": true, "on": true,
		"for": true, "a": true, "an": true, "de": true, "der": true,
	}
	var b strings.Builder
	for _, w := range strings.FieldsFunc(pub, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	}) {
		if skip[strings.ToLower(w)] {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		if b.Len() >= 5 {
			break
		}
	}
	return b.String()
}

// LetterSubSeries returns the letter sub-series stem for stems known to
// split, e.g. "ApJ" → "ApJL". Empty when the stem has no letter sub-series.
func LetterSubSeries(stem string) string {
	if stem == "ApJ" {
		return "ApJL"
	}
	return ""
}

// CookTitle cleans a publication string into something usable as a
// title-phrase query: parenthesized chunks, volume and edition markers, and
// series numbering are removed, whitespace collapsed.
var (
	parenChunk  = regexp.MustCompile(`\([^)]*\)`)
	volMarker   = regexp.MustCompile(`(?i)\b(vol(ume|s)?\.?|no\.?|part|ed(ition|s)?\.?|ser(ies)?\.?)\s*[0-9ivxlcdm]*\b`)
	trailingNum = regexp.MustCompile(`[\s,:;]*\d+\s*$`)
	multiSpace  = regexp.MustCompile(`\s{2,}`)
)

func CookTitle(pub string) string {
	s := parenChunk.ReplaceAllString(pub, " ")
	s = volMarker.ReplaceAllString(s, " ")
	s = trailingNum.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,.:;")
}

// HasThesisIndicators reports whether the raw reference text contains any of
// the configured thesis-indicator words.
func HasThesisIndicators(refstr string, words []string) bool {
	low := strings.ToLower(refstr)
	for _, w := range words {
		if w == "" {
			continue
		}
		if containsWord(low, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// containsWord reports whether s contains w bounded by non-letters.
func containsWord(s, w string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], w)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isLetter(s[i-1])
		afterIdx := i + len(w)
		after := afterIdx == len(s) || !isLetter(s[afterIdx])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
