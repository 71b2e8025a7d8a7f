// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"strings"

	"github.com/pdiddy/reference-resolver/internal/evidence"
	"github.com/pdiddy/reference-resolver/internal/hypothesis"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// scoredCandidate pairs one backend candidate with its evidence ledger.
type scoredCandidate struct {
	Evidence *evidence.Ledger
	Cand     types.Candidate
}

// chooser applies the veto/threshold/tie-break logic to the scored
// candidates of a single hypothesis.
type chooser struct {
	cfg types.ScoringConfig
}

// choose returns the preferred candidate, or an *UndecidableError carrying
// candidates worth a second look, or a *NoSolutionError. scored must be
// sorted ascending by aggregate score.
func (c chooser) choose(scored []scoredCandidate, queryString string, h *hypothesis.Hypothesis) (scoredCandidate, error) {
	// First round: a candidate survives when its aggregate score averages at
	// least the configured minimum per evidence entry.
	var filtered []scoredCandidate
	for _, sc := range scored {
		if sc.Evidence.Sum() >= c.cfg.MinScoreFirstRound*float64(sc.Evidence.Count()) {
			filtered = append(filtered, sc)
		}
	}

	switch len(filtered) {
	case 0:
		if len(scored) > 0 {
			return c.inspectDoubtful(scored, queryString, h)
		}
		return scoredCandidate{}, &NoSolutionError{Reason: "not even a doubtful solution"}
	case 1:
		return filtered[0], nil
	}

	// Multiple survivors. A unique best score wins outright.
	best := filtered[len(filtered)-1].Evidence.Sum()
	atBest := 0
	for _, sc := range filtered {
		if sc.Evidence.Sum() == best {
			atBest++
		}
	}
	if atBest == 1 {
		return filtered[len(filtered)-1], nil
	}
	return c.inspectAmbiguous(filtered, queryString, h)
}

// inspectDoubtful handles the case where nothing cleared the threshold.
// Nothing here is ever accepted directly: a halfway credible candidate is
// deferred so the end-of-resolution pass can pick it up out of desperation.
func (c chooser) inspectDoubtful(scored []scoredCandidate, queryString string, h *hypothesis.Hypothesis) (scoredCandidate, error) {
	var nonVetoed []scoredCandidate
	for _, sc := range scored {
		if !sc.Evidence.HasVeto() {
			nonVetoed = append(nonVetoed, sc)
		}
	}
	if len(nonVetoed) == 1 {
		sc := nonVetoed[0]
		return scoredCandidate{}, &UndecidableError{
			Message:    "try again if desperate",
			Considered: []ScoredBibcode{{Score: sc.Evidence.Sum(), Bibcode: sc.Cand.Bibcode}},
		}
	}

	// Some venues file everything on page 1, so citations omit the page. A
	// candidate whose only veto is its page should not die on a page the
	// input never had.
	if in := h.Details.InputFields; in != nil && in.Page == "" {
		for _, sc := range scored {
			if sc.Evidence.SingleVetoFrom("page") {
				return scoredCandidate{}, &UndecidableError{
					Message:    "try again if desperate",
					Considered: []ScoredBibcode{{Score: sc.Evidence.Sum(), Bibcode: sc.Cand.Bibcode}},
				}
			}
		}
	}

	return scoredCandidate{}, &NoSolutionError{
		Reason: "no unique non-vetoed doubtful solution",
		Ref:    queryString,
	}
}

// inspectAmbiguous tries to break a tie among several candidates that all
// cleared the threshold. scored must be sorted ascending by aggregate score.
func (c chooser) inspectAmbiguous(scored []scoredCandidate, queryString string, h *hypothesis.Hypothesis) (scoredCandidate, error) {
	var nonVetoed []scoredCandidate
	for _, sc := range scored {
		if !sc.Evidence.HasVeto() {
			nonVetoed = append(nonVetoed, sc)
		}
	}

	switch len(nonVetoed) {
	case 0:
		return c.inspectDoubtful(scored, queryString, h)
	case 1:
		return nonVetoed[0], nil
	}

	leader := nonVetoed[len(nonVetoed)-1]
	runnerUp := nonVetoed[len(nonVetoed)-2]

	// A leader with strictly more evidence entries than the runner-up is
	// better-supported even at an equal aggregate.
	if leader.Evidence.Count() > runnerUp.Evidence.Count() {
		return leader, nil
	}

	// Books frequently have duplicate catalog entries. When the two best
	// titles stand in a prefix relationship, they are the same work.
	t1 := strings.ToLower(strings.TrimSpace(leader.Cand.Title))
	t2 := strings.ToLower(strings.TrimSpace(runnerUp.Cand.Title))
	if t1 != "" && t2 != "" && (strings.HasPrefix(t1, t2) || strings.HasPrefix(t2, t1)) {
		return leader, nil
	}

	var stash []ScoredBibcode
	for _, sc := range nonVetoed {
		if sc.Evidence.Sum() > c.cfg.EvidenceScoreLow {
			stash = append(stash, ScoredBibcode{Score: sc.Evidence.Sum(), Bibcode: sc.Cand.Bibcode})
		}
	}
	return scoredCandidate{}, &UndecidableError{
		Message:    fmt.Sprintf("ambiguous %s", queryString),
		Considered: stash,
	}
}
