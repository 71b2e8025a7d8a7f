// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/reference-resolver/internal/evidence"
	"github.com/pdiddy/reference-resolver/internal/hypothesis"
	"github.com/pdiddy/reference-resolver/internal/query"
	"github.com/pdiddy/reference-resolver/internal/scoring"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// Backend is the search service a resolution queries. *solr.Client
// implements it; tests substitute fakes. Implementations must be safe for
// concurrent use: one Backend is shared across resolutions.
type Backend interface {
	Query(ctx context.Context, q string) ([]types.Candidate, error)
}

// Resolver runs the hypothesis cascade for references against one backend.
// The zero value is not usable; construct with New. A Resolver is safe for
// concurrent use: all per-resolution state lives on the stack of Resolve.
type Resolver struct {
	backend Backend
	stems   hypothesis.BibstemLookup
	scorers hypothesis.ScorerSet
	cfg     types.ScoringConfig
	debug   io.Writer
}

// New builds a resolver with the default scoring strategies.
func New(backend Backend, stems hypothesis.BibstemLookup, cfg types.ScoringConfig) *Resolver {
	return &Resolver{
		backend: backend,
		stems:   stems,
		scorers: scoring.Default(cfg),
		cfg:     cfg,
		debug:   io.Discard,
	}
}

// SetDebug directs per-hypothesis progress output to w.
func (r *Resolver) SetDebug(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	r.debug = w
}

func (r *Resolver) debugf(format string, args ...any) {
	fmt.Fprintf(r.debug, format+"\n", args...)
}

// Resolve returns the record presumably meant by ref. Hypotheses are tried
// strictly in priority order and the first accepted solution wins; weaker
// hypotheses are never consulted after that. Failures inside one hypothesis
// never abort the resolution — only a cancelled context does. When the
// cascade is exhausted, candidates deferred along the way get one last
// reconciliation pass.
func (r *Resolver) Resolve(ctx context.Context, ref types.Reference) (Solution, error) {
	gen, err := hypothesis.NewGenerator(ref, r.cfg, r.stems, r.scorers)
	if err != nil {
		return Solution{}, &NoSolutionError{Reason: "digesting reference: " + err.Error(), Ref: ref.String()}
	}

	ch := chooser{cfg: r.cfg}
	var stash []ScoredBibcode

	for {
		h, ok := gen.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}

		sol, err := r.evalHypothesis(ctx, ch, h)
		if err == nil {
			return sol, nil
		}

		var und *UndecidableError
		switch {
		case errors.As(err, &und):
			r.debugf("%s: %v", h.Name, und)
			stash = append(stash, und.Considered...)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Solution{}, err
		default:
			// NoSolution, Overflow, backend trouble, or a defect inside one
			// strategy: this hypothesis produced nothing.
			r.debugf("%s: %v", h.Name, err)
		}
	}

	if len(stash) > 0 {
		if sol, ok := reconcileStash(stash); ok {
			return sol, nil
		}
		r.debugf("remaining ties, giving up")
	}
	return Solution{}, &NoSolutionError{Reason: "hypotheses exhausted", Ref: ref.String()}
}

// evalHypothesis builds and runs the query for one hypothesis and chooses
// among the results. A panic in scoring or translation is converted to an
// error so the driver's per-hypothesis isolation holds.
func (r *Resolver) evalHypothesis(ctx context.Context, ch chooser, h *hypothesis.Hypothesis) (sol Solution, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("hypothesis %s: internal failure: %v", h.Name, p)
		}
	}()

	q := query.Build(h.Hints)
	if q == "" {
		return Solution{}, &NoSolutionError{Reason: "empty query", Ref: h.Name}
	}
	r.debugf("%s: %s", h.Name, q)

	candidates, err := r.backend.Query(ctx, q)
	if err != nil {
		return Solution{}, err
	}
	if len(candidates) == 0 {
		return Solution{}, &NoSolutionError{Reason: "no matches", Ref: q}
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, cand := range candidates {
		scored = append(scored, scoredCandidate{Evidence: h.Score(cand, h), Cand: cand})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return evidence.Less(scored[i].Evidence, scored[j].Evidence)
	})
	for _, sc := range scored {
		r.debugf("  %s %s", sc.Cand.Bibcode, sc.Evidence)
	}

	winner, err := ch.choose(scored, q, h)
	if err != nil {
		return Solution{}, err
	}
	return Solution{Bibcode: winner.Cand.Bibcode, Evidence: winner.Evidence, Hypothesis: h.Name}, nil
}

// reconcileStash looks at candidates deferred across the whole cascade. Each
// bibcode keeps its best score; a lone survivor, or a strict leader, is
// accepted out of desperation.
func reconcileStash(stash []ScoredBibcode) (Solution, bool) {
	best := map[string]float64{}
	for _, sb := range stash {
		if cur, ok := best[sb.Bibcode]; !ok || sb.Score > cur {
			best[sb.Bibcode] = sb.Score
		}
	}

	grouped := make([]ScoredBibcode, 0, len(best))
	for bibcode, score := range best {
		grouped = append(grouped, ScoredBibcode{Score: score, Bibcode: bibcode})
	}
	sort.Slice(grouped, func(i, j int) bool {
		if grouped[i].Score != grouped[j].Score {
			return grouped[i].Score < grouped[j].Score
		}
		return grouped[i].Bibcode < grouped[j].Bibcode
	})

	top := grouped[len(grouped)-1]
	ledger := evidence.NewLedger(top.Score - 1)
	ledger.Add(top.Score, "stashed")

	if len(grouped) == 1 {
		return Solution{Bibcode: top.Bibcode, Evidence: ledger, Hypothesis: "only remaining of tied solutions"}, true
	}
	if top.Score > grouped[len(grouped)-2].Score {
		return Solution{Bibcode: top.Bibcode, Evidence: ledger, Hypothesis: "best tied solution"}, true
	}
	return Solution{}, false
}
