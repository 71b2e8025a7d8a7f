// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import "testing"

func TestSumAndCount(t *testing.T) {
	l := NewLedger(-1)
	l.Add(1, "author")
	l.Add(0.5, "year")
	l.Add(-0.25, "page")

	if got := l.Sum(); got != 1.25 {
		t.Errorf("Sum() = %f, want 1.25", got)
	}
	if got := l.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestHasVeto(t *testing.T) {
	l := NewLedger(-1)
	l.Add(1, "author")
	if l.HasVeto() {
		t.Error("ledger without minimum-weight entry should have no veto")
	}
	l.Add(-1, "page")
	if !l.HasVeto() {
		t.Error("entry at the low bound should count as veto")
	}
}

func TestNearMinimumIsNotVeto(t *testing.T) {
	l := NewLedger(-1)
	l.Add(-0.999, "page")
	if l.HasVeto() {
		t.Error("only an entry at exactly the low bound is a veto")
	}
}

func TestSingleVetoFrom(t *testing.T) {
	tests := []struct {
		name    string
		weights []Entry
		token   string
		want    bool
	}{
		{"one page veto", []Entry{{1, "author"}, {-1, "page"}}, "page", true},
		{"veto with other reason", []Entry{{-1, "volume"}}, "page", false},
		{"two vetoes", []Entry{{-1, "page"}, {-1, "volume"}}, "page", false},
		{"no veto", []Entry{{1, "page"}}, "page", false},
		{"substring match", []Entry{{-1, "page in pub_raw?"}}, "page", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(-1)
			for _, e := range tt.weights {
				l.Add(e.Weight, e.Reason)
			}
			if got := l.SingleVetoFrom(tt.token); got != tt.want {
				t.Errorf("SingleVetoFrom(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestAddBool(t *testing.T) {
	l := NewLedger(-1)
	l.AddBool(true, 1, "vol in pub_raw?")
	l.AddBool(false, 1, "page in pub_raw?")

	entries := l.Entries()
	if entries[0].Weight != 1 {
		t.Errorf("true case weight = %f, want 1", entries[0].Weight)
	}
	if entries[1].Weight != -1 {
		t.Errorf("false case weight = %f, want -1 (veto)", entries[1].Weight)
	}
	if !l.HasVeto() {
		t.Error("false AddBool should veto")
	}
}

func TestLess(t *testing.T) {
	a := NewLedger(-1)
	a.Add(0.5, "author")
	b := NewLedger(-1)
	b.Add(1, "author")

	if !Less(a, b) {
		t.Error("Less should order by aggregate score")
	}
	if Less(b, a) {
		t.Error("Less(b, a) should be false")
	}
}
