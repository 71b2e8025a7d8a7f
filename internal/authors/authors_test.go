// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"testing"

	"github.com/pdiddy/reference-resolver/internal/evidence"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
	}{
		{"last comma initial", "Smith, J.", "Smith, J."},
		{"given last", "John Smith", "Smith, J."},
		{"two with and", "Smith, J. and Jones, B.", "Smith, J.; Jones, B."},
		{"semicolons", "Smith, J.; Jones, B.", "Smith, J.; Jones, B."},
		{"comma list regrouped", "Smith, J., Jones, B.", "Smith, J.; Jones, B."},
		{"ampersand", "Smith, J. & Jones, B.", "Smith, J.; Jones, B."},
		{"bare last name", "Smith", "Smith"},
		{"multiple initials", "Smith, J. R.", "Smith, J. R."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, true); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeWithoutInitials(t *testing.T) {
	if got := Normalize("Smith, J. and Jones, B.", false); got != "Smith; Jones" {
		t.Errorf("Normalize without initials = %q, want %q", got, "Smith; Jones")
	}
}

func TestStripInitials(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Smith, J.", "Smith, J"},
		{"Smith, J. R.", "Smith, J"},
		{"March-Russell, J.", "March-Russell, J"},
		{"Dubovsky-P., S.", "Dubovsky, S"},
		{"Smith, J.; Jones, B.", "Smith, J; Jones, B"},
	}
	for _, tt := range tests {
		if got := StripInitials(tt.in); got != tt.want {
			t.Errorf("StripInitials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstAuthor(t *testing.T) {
	if got := FirstAuthor("Smith, J. R.; Jones, B."); got != "Smith, J" {
		t.Errorf("FirstAuthor = %q, want %q", got, "Smith, J")
	}
}

func TestFirstLastName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Smith, J.; Jones, B.", "Smith"},
		{"Smith, J. R.", "Smith"},
		{"Smith", "Smith"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FirstLastName(tt.in); got != tt.want {
			t.Errorf("FirstLastName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddEvidenceFullMatch(t *testing.T) {
	l := evidence.NewLedger(-1)
	AddEvidence(l, "Smith, J.; Jones, B.", []string{"smith, j", "jones, b"}, "smith, j", -1, 1)

	if l.Count() != 1 {
		t.Fatalf("Count = %d, want 1", l.Count())
	}
	if got := l.Sum(); got != 1 {
		t.Errorf("full overlap score = %f, want 1", got)
	}
}

func TestAddEvidenceNoMatchVetoes(t *testing.T) {
	l := evidence.NewLedger(-1)
	AddEvidence(l, "Smith, J.", []string{"brown, c"}, "brown, c", -1, 1)

	if !l.HasVeto() {
		t.Error("zero author overlap should veto")
	}
}

func TestAddEvidencePartialMatch(t *testing.T) {
	l := evidence.NewLedger(-1)
	AddEvidence(l, "Smith, J.; Jones, B.", []string{"smith, j", "brown, c"}, "smith, j", -1, 1)

	if l.HasVeto() {
		t.Error("partial overlap must not veto")
	}
	if got := l.Sum(); got != 0 {
		t.Errorf("half overlap score = %f, want 0", got)
	}
}

func TestAddEvidenceFirstAuthorRescue(t *testing.T) {
	// author_norm spells names differently, but first_author_norm agrees.
	l := evidence.NewLedger(-1)
	AddEvidence(l, "Smith, J.", []string{"smyth, j"}, "Smith, J", -1, 1)

	if l.HasVeto() {
		t.Error("matching first author must not veto")
	}
}

func TestAddEvidenceEmptyInputAddsNothing(t *testing.T) {
	l := evidence.NewLedger(-1)
	AddEvidence(l, "", []string{"smith, j"}, "smith, j", -1, 1)
	if l.Count() != 0 {
		t.Errorf("Count = %d, want 0 for empty input", l.Count())
	}
}
