// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reference-resolver/internal/resolve"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Resolve a YAML batch of references",
	Long: `Batch reads a YAML file with a list of references, resolves each one
sequentially, and writes the same file back (or a separate output file) with
per-reference results and a summary appended. Failures are recorded in place;
one unresolvable reference does not abort the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	bf, err := resolve.ReadBatchFile(args[0])
	if err != nil {
		return err
	}
	if len(bf.References) == 0 {
		return fmt.Errorf("batch file %s contains no references", args[0])
	}

	r, cleanup, err := buildResolver(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := r.ResolveBatch(context.Background(), bf); err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = args[0]
	}
	if err := resolve.WriteBatchFile(out, bf); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d references: %d resolved, %d failed\n",
		bf.Summary.Total, bf.Summary.Resolved, bf.Summary.Failed)
	if bf.Summary.Failed > 0 {
		return fmt.Errorf("%d reference(s) failed to resolve", bf.Summary.Failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("out", "", "output file (default: overwrite the input file)")
	batchCmd.Flags().String("token", "", "ADS API token (default: .secrets/ads-api-token)")
	batchCmd.Flags().Bool("verbose", false, "print per-hypothesis progress to stderr")

	rootCmd.AddCommand(batchCmd)
}
