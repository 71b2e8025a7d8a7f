// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reference-resolver/pkg/types"
)

// BatchFile is the on-disk representation of a batch of references and, once
// resolved, their outcomes. A batch can be resolved, saved, and re-examined
// later without re-querying the backend.
type BatchFile struct {
	References []types.Reference `yaml:"references"`
	Results    []BatchResult     `yaml:"results,omitempty"`
	Summary    BatchSummary      `yaml:"summary,omitempty"`
}

// BatchResult records the outcome for one reference, by position.
type BatchResult struct {
	Refstr     string  `yaml:"refstr,omitempty"`
	Bibcode    string  `yaml:"bibcode,omitempty"`
	Score      float64 `yaml:"score,omitempty"`
	Hypothesis string  `yaml:"hypothesis,omitempty"`
	Error      string  `yaml:"error,omitempty"`
}

// BatchSummary holds batch statistics and a timestamp.
type BatchSummary struct {
	Total     int       `yaml:"total"`
	Resolved  int       `yaml:"resolved"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ReadBatchFile loads a batch file from disk.
func ReadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	return &bf, nil
}

// WriteBatchFile saves the batch, results included, to a YAML file.
func WriteBatchFile(path string, bf *BatchFile) error {
	data, err := yaml.Marshal(bf)
	if err != nil {
		return fmt.Errorf("marshaling batch file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ResolveBatch resolves every reference in bf sequentially and fills in
// Results and Summary. Per-reference failures are recorded in place; only a
// cancelled context aborts the batch.
func (r *Resolver) ResolveBatch(ctx context.Context, bf *BatchFile) error {
	bf.Results = make([]BatchResult, 0, len(bf.References))
	summary := BatchSummary{Total: len(bf.References)}

	for _, ref := range bf.References {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := BatchResult{Refstr: ref.String()}
		sol, err := r.Resolve(ctx, ref)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			res.Error = err.Error()
			summary.Failed++
		} else {
			res.Bibcode = sol.Bibcode
			res.Score = sol.Evidence.Sum()
			res.Hypothesis = sol.Hypothesis
			summary.Resolved++
		}
		bf.Results = append(bf.Results, res)
	}

	summary.Timestamp = time.Now()
	bf.Summary = summary
	return nil
}
