// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{
			name: "blank value yields nothing",
			key:  "year", value: "   ",
			want: "",
		},
		{
			name: "default field quoted and escaped",
			key:  "year", value: "2001",
			want: `year:"2001"`,
		},
		{
			name: "metacharacters escaped in default field",
			key:  "pub", value: "A&A (Letters)",
			want: `pub:"A&A \(Letters\)"`,
		},
		{
			name: "author list stripped quoted and joined",
			key:  "author", value: "Smith, J.; Jones, A. B.",
			want: `author:("Smith, J" AND "Jones, A")`,
		},
		{
			name: "fuzzy first author drops dots",
			key:  "first_author_norm~", value: "Smith, J",
			want: `first_author:"Smith, J"~`,
		},
		{
			name: "identifier quoted with slashes kept",
			key:  "identifier", value: "2001ApJ...550...97S",
			want: `identifier:"2001ApJ...550...97S"`,
		},
		{
			name: "arxiv covers ascl too",
			key:  "arxiv", value: "1110.1234",
			want: `identifier:("arxiv:1110.1234" OR "ascl:1110.1234")`,
		},
		{
			name: "doi percent-encoded",
			key:  "doi", value: "10.1086/123456",
			want: `doi:"10.1086%2F123456"`,
		},
		{
			name: "single-char page plain",
			key:  "page", value: "7",
			want: "page:(7)",
		},
		{
			name: "title words AND-joined",
			key:  "title", value: "Galactic Dynamics",
			want: "title:(Galactic AND Dynamics)",
		},
		{
			name: "fuzzy title quoted whole",
			key:  "title~", value: "Galactic Dynamics",
			want: `title:"Galactic Dynamics"~`,
		},
		{
			name: "bibstem parenthesized",
			key:  "bibstem", value: "ApJ",
			want: "bibstem:(ApJ)",
		},
		{
			name: "fuzzy year becomes a range",
			key:  "year~", value: "2001",
			want: "year:[1996 TO 2006]",
		},
		{
			name: "escaped hint passed through raw",
			key:  "pub_escaped", value: "(thesis or dissertation)",
			want: "pub:(thesis or dissertation)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Condition(tt.key, tt.value))
		})
	}
}

func TestCondition_PageExpansion(t *testing.T) {
	got := Condition("page", "1023")

	assert.True(t, strings.HasPrefix(got, "page:("))
	// Every lowercase letter and digit substituted into position 0.
	assert.Contains(t, got, `"a023"`)
	assert.Contains(t, got, `"z023"`)
	assert.Contains(t, got, `"9023"`)
	// Single-position wildcards for every later position, none for position 0.
	assert.Contains(t, got, `"1?23"`)
	assert.Contains(t, got, `"10?3"`)
	assert.Contains(t, got, `"102?"`)
	assert.NotContains(t, got, `"?023"`)
	// 36 substitutions + 3 wildcards.
	assert.Equal(t, 39, strings.Count(got, `"`)/2)
}

func TestBuild(t *testing.T) {
	got := Build(map[string]string{
		"year":   "2001",
		"author": "Smith, J.",
		"volume": "550",
		"issue":  "",
	})

	// Keys are sorted so the query is deterministic; blanks are skipped.
	assert.Equal(t, `author:("Smith, J") AND volume:"550" AND year:"2001"`, got)
}

func TestBuild_Empty(t *testing.T) {
	assert.Equal(t, "", Build(nil))
	assert.Equal(t, "", Build(map[string]string{"year": " "}))
}
