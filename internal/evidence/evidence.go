// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence holds the weighted, labeled signals accumulated while
// scoring one backend candidate against one hypothesis.
package evidence

import (
	"fmt"
	"strings"
)

// Entry is a single weighted, labeled signal.
type Entry struct {
	Weight float64
	Reason string
}

// Ledger is an ordered collection of evidence entries. Each ledger carries
// the low bound of the configured evidence score range so it can recognize
// its own vetoes. The aggregate score is the plain sum of entry weights; the
// chooser compares it against count-weighted thresholds.
type Ledger struct {
	entries []Entry
	vetoAt  float64
}

// NewLedger returns an empty ledger whose veto weight is low.
func NewLedger(low float64) *Ledger {
	return &Ledger{vetoAt: low}
}

// Add appends one evidence entry.
func (l *Ledger) Add(weight float64, reason string) {
	l.entries = append(l.entries, Entry{Weight: weight, Reason: reason})
}

// AddBool appends high-weight evidence for reason when ok is true, and a
// veto otherwise.
func (l *Ledger) AddBool(ok bool, high float64, reason string) {
	if ok {
		l.Add(high, reason)
	} else {
		l.Add(l.vetoAt, reason)
	}
}

// Sum returns the aggregate score.
func (l *Ledger) Sum() float64 {
	var s float64
	for _, e := range l.entries {
		s += e.Weight
	}
	return s
}

// Count returns the number of entries.
func (l *Ledger) Count() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasVeto reports whether any entry sits at the veto weight.
func (l *Ledger) HasVeto() bool {
	for _, e := range l.entries {
		if e.Weight == l.vetoAt {
			return true
		}
	}
	return false
}

// SingleVetoFrom reports whether the ledger holds exactly one veto and that
// veto's reason contains token.
func (l *Ledger) SingleVetoFrom(token string) bool {
	count := 0
	matched := false
	for _, e := range l.entries {
		if e.Weight == l.vetoAt {
			count++
			matched = strings.Contains(e.Reason, token)
		}
	}
	return count == 1 && matched
}

// Less orders ledgers by aggregate score. Entry count is exposed separately
// through Count; it is a chooser-side signal, not a ledger-internal tie-break.
func Less(a, b *Ledger) bool {
	return a.Sum() < b.Sum()
}

// String renders the ledger for debug logs.
func (l *Ledger) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("score=%.2f n=%d [", l.Sum(), len(l.entries)))
	for i, e := range l.entries {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s:%.2f", e.Reason, e.Weight)
	}
	b.WriteString("]")
	return b.String()
}
