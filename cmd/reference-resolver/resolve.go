// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reference-resolver/internal/resolve"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single reference to a bibcode",
	Long: `Resolve matches one parsed reference against the search backend and prints
the winning bibcode with its evidence. Provide whichever fields the upstream
parser produced; missing fields simply disable the hypotheses that need them.

An identifier field (--doi or --arxiv) usually resolves in a single query.`,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	ref := referenceFromFlags(cmd)
	if ref == (types.Reference{}) {
		return fmt.Errorf("no reference fields given: provide at least one of --authors, --journal, --doi, ...")
	}

	r, cleanup, err := buildResolver(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sol, err := r.Resolve(context.Background(), ref)
	if err != nil {
		var und *resolve.UndecidableError
		if errors.As(err, &und) {
			return fmt.Errorf("ambiguous reference: %w", und)
		}
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"bibcode":    sol.Bibcode,
			"score":      sol.Evidence.Sum(),
			"hypothesis": sol.Hypothesis,
		})
	}

	fmt.Println(sol.Bibcode)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fmt.Fprintf(os.Stderr, "%s\n", sol.Evidence)
	}
	return nil
}

func referenceFromFlags(cmd *cobra.Command) types.Reference {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return types.Reference{
		Authors: get("authors"),
		Journal: get("journal"),
		Book:    get("book"),
		Volume:  get("volume"),
		Issue:   get("issue"),
		Page:    get("page"),
		Year:    get("year"),
		Title:   get("title"),
		Refstr:  get("refstr"),
		DOI:     get("doi"),
		Arxiv:   get("arxiv"),
	}
}

func init() {
	resolveCmd.Flags().String("authors", "", "author list, e.g. \"Smith, J. and Jones, A.\"")
	resolveCmd.Flags().String("journal", "", "journal name or abbreviation")
	resolveCmd.Flags().String("book", "", "book or proceedings title")
	resolveCmd.Flags().String("volume", "", "volume")
	resolveCmd.Flags().String("issue", "", "issue")
	resolveCmd.Flags().String("page", "", "page or page range start")
	resolveCmd.Flags().String("year", "", "publication year")
	resolveCmd.Flags().String("title", "", "article title")
	resolveCmd.Flags().String("refstr", "", "raw citation text")
	resolveCmd.Flags().String("doi", "", "DOI")
	resolveCmd.Flags().String("arxiv", "", "arXiv or ASCL identifier")

	resolveCmd.Flags().String("token", "", "ADS API token (default: .secrets/ads-api-token)")
	resolveCmd.Flags().Bool("verbose", false, "print per-hypothesis progress to stderr")
	resolveCmd.Flags().Bool("json", false, "output the solution as JSON")

	rootCmd.AddCommand(resolveCmd)
}
