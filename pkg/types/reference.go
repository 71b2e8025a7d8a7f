// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data and configuration types shared across the
// resolver stages.
package types

// Reference is a raw bibliographic reference as delivered by an upstream
// parser. All fields are optional; empty means the parser did not find the
// field. The resolver never mutates a Reference.
type Reference struct {
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Book    string `json:"book,omitempty" yaml:"book,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue   string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Page    string `json:"page,omitempty" yaml:"page,omitempty"`
	Year    string `json:"year,omitempty" yaml:"year,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Refstr  string `json:"refstr,omitempty" yaml:"refstr,omitempty"`
	DOI     string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Arxiv   string `json:"arxiv,omitempty" yaml:"arxiv,omitempty"`
}

// String renders the reference roughly the way a citation would read. It is
// used for log lines and for "et al." detection against the whole input.
func (r Reference) String() string {
	parts := make([]string, 0, 8)
	for _, s := range []string{r.Authors, r.Year, r.Journal, r.Book, r.Title, r.Volume, r.Page, r.Refstr} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// Candidate is one record returned by the search backend for a query. Only
// the fields the scoring strategies inspect are carried.
type Candidate struct {
	Bibcode         string   `json:"bibcode" yaml:"bibcode"`
	AuthorNorm      []string `json:"author_norm,omitempty" yaml:"author_norm,omitempty"`
	FirstAuthorNorm string   `json:"first_author_norm,omitempty" yaml:"first_author_norm,omitempty"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	Pub             string   `json:"pub,omitempty" yaml:"pub,omitempty"`
	PubRaw          string   `json:"pub_raw,omitempty" yaml:"pub_raw,omitempty"`
	Year            string   `json:"year,omitempty" yaml:"year,omitempty"`
	Volume          string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Page            string   `json:"page,omitempty" yaml:"page,omitempty"`
	DOI             string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Identifier      []string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
}
