// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reference-resolver/pkg/types"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name string
		ref  types.Reference
		want Record
	}{
		{
			name: "strips et al and normalizes authors",
			ref:  types.Reference{Authors: "Smith, J. et al.", Year: "2001"},
			want: Record{
				Author:                "Smith, J.",
				Year:                  "2001",
				NormalizedAuthors:     "Smith, J.",
				NormalizedFirstAuthor: "Smith, J",
			},
		},
		{
			name: "book wins over journal for pub",
			ref:  types.Reference{Journal: "ApJ", Book: "Galactic Dynamics"},
			want: Record{Pub: "Galactic Dynamics"},
		},
		{
			name: "overlong year reduced to plausible run",
			ref:  types.Reference{Year: "2001a"},
			want: Record{Year: "2001"},
		},
		{
			name: "page range reduced to start",
			ref:  types.Reference{Page: "123-145"},
			want: Record{Page: "123"},
		},
		{
			name: "lettered volume repaired onto pub",
			ref:  types.Reference{Journal: "Phys. Rev.", Volume: "D81"},
			want: Record{Pub: "Phys. Rev. D", Volume: "81"},
		},
		{
			name: "plain volume untouched",
			ref:  types.Reference{Journal: "ApJ", Volume: "550"},
			want: Record{Pub: "ApJ", Volume: "550"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Digest(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDigest_BadYear(t *testing.T) {
	_, err := Digest(types.Reference{Year: "about 200"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestDigest_Idempotent(t *testing.T) {
	first, err := Digest(types.Reference{
		Authors: "Smith, J. et al.",
		Journal: "Phys. Rev.",
		Volume:  "D81",
		Page:    "123530-123540",
		Year:    "2010a",
	})
	require.NoError(t, err)

	again, err := Digest(types.Reference{
		Authors: first.Author,
		Journal: first.Pub,
		Volume:  first.Volume,
		Page:    first.Page,
		Year:    first.Year,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Year, again.Year)
	assert.Equal(t, first.Page, again.Page)
	assert.Equal(t, first.Volume, again.Volume)
	assert.Equal(t, first.Pub, again.Pub)
}

func TestConstructBibcode(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		stem string
		want string
	}{
		{
			name: "typical serial",
			rec: Record{
				Year:              "2001",
				Volume:            "550",
				Page:              "97",
				NormalizedAuthors: "Smith, J.",
			},
			stem: "ApJ",
			want: "2001ApJ...550...97S",
		},
		{
			name: "missing volume and page filled with dots",
			rec: Record{
				Year:              "1987",
				NormalizedAuthors: "Kurucz, R.",
			},
			stem: "abcde",
			want: "1987abcde.........K",
		},
		{
			name: "qualifier and no author",
			rec: Record{
				Year:      "1999",
				Volume:    "511",
				Qualifier: "L",
				Page:      "34",
			},
			stem: "ApJ",
			want: "1999ApJ...511L..34.",
		},
		{
			name: "overlong page truncated",
			rec: Record{
				Year:              "2015",
				Volume:            "12345",
				Page:              "123456",
				NormalizedAuthors: "Li, W.",
			},
			stem: "JCAP",
			want: "2015JCAP.2345.1234L",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rec.ConstructBibcode(tt.stem)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 19)
			assert.Equal(t, got, tt.rec.Bibcode)
		})
	}
}
