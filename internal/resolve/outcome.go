// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve drives the hypothesis cascade for one reference: build a
// query per hypothesis, call the backend, score candidates, and either
// accept a solution, defer the candidates, or move on to the next
// hypothesis.
package resolve

import (
	"fmt"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/evidence"
)

// Solution is the terminal output of a successful resolution.
type Solution struct {
	// Bibcode is the canonical 19-character record identifier.
	Bibcode string
	// Evidence is the winning candidate's ledger.
	Evidence *evidence.Ledger
	// Hypothesis names the strategy that produced the match, for audit.
	Hypothesis string
}

func (s Solution) String() string {
	return fmt.Sprintf("%s (via %s, score %.2f)", s.Bibcode, s.Hypothesis, s.Evidence.Sum())
}

// ScoredBibcode is a deferred candidate: a bibcode and the aggregate score
// it reached under some hypothesis. These are stashed across hypotheses and
// reconciled when the cascade is exhausted.
type ScoredBibcode struct {
	Score   float64
	Bibcode string
}

// NoSolutionError means a hypothesis, or the whole resolution, yielded
// nothing usable.
type NoSolutionError struct {
	Reason string
	Ref    string
}

func (e *NoSolutionError) Error() string {
	if e.Ref == "" {
		return "no solution: " + e.Reason
	}
	return fmt.Sprintf("no solution: %s (%s)", e.Reason, e.Ref)
}

// UndecidableError means real candidates exist but an automatic choice is
// unsafe. The considered candidates are stashed by the driver for
// end-of-resolution reconciliation.
type UndecidableError struct {
	Message    string
	Considered []ScoredBibcode
}

func (e *UndecidableError) Error() string {
	if len(e.Considered) == 0 {
		return "undecidable: " + e.Message
	}
	parts := make([]string, len(e.Considered))
	for i, c := range e.Considered {
		parts[i] = fmt.Sprintf("%s=%.2f", c.Bibcode, c.Score)
	}
	return fmt.Sprintf("undecidable: %s [%s]", e.Message, strings.Join(parts, " "))
}
