// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reference-resolver/internal/journals"
	"github.com/pdiddy/reference-resolver/internal/resolve"
	"github.com/pdiddy/reference-resolver/internal/solr"
	"github.com/pdiddy/reference-resolver/pkg/types"
)

// resolverConfig assembles the resolver configuration from the config file,
// environment, and the .secrets/ directory. The API token resolution order
// is: --token flag, config/env, secret file.
func resolverConfig(cmd *cobra.Command) types.ResolverConfig {
	token, _ := cmd.Flags().GetString("token")

	cfg := types.ResolverConfig{
		Backend: types.BackendConfig{
			URL:          viper.GetString("backend.url"),
			Token:        secretDefault("ads-api-token", token),
			MaxRows:      viper.GetInt("backend.max_rows"),
			OverflowRows: viper.GetInt("backend.overflow_rows"),
			RateLimit:    viper.GetFloat64("backend.rate_limit"),
			MaxRetries:   viper.GetInt("backend.max_retries"),
		},
		Scoring:   types.DefaultScoringConfig(),
		JournalDB: viper.GetString("journal_db"),
	}
	if cfg.Backend.Token == "" {
		cfg.Backend.Token = viper.GetString("backend.token")
	}

	if v := viper.GetFloat64("scoring.min_score_first_round"); v != 0 {
		cfg.Scoring.MinScoreFirstRound = v
	}
	if words := viper.GetStringSlice("scoring.thesis_indicator_words"); len(words) > 0 {
		cfg.Scoring.ThesisIndicatorWords = words
	}
	return cfg
}

// buildResolver wires a resolver from the configuration. The returned
// cleanup closes the journal database.
func buildResolver(cmd *cobra.Command) (*resolve.Resolver, func(), error) {
	cfg := resolverConfig(cmd)

	idx, err := journals.Open(cfg.JournalDB)
	if err != nil {
		return nil, nil, err
	}

	backend := solr.NewClient(cfg.Backend)
	r := resolve.New(backend, idx, cfg.Scoring)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		r.SetDebug(os.Stderr)
	}

	cleanup := func() {
		if err := idx.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing journal database: %v\n", err)
		}
	}
	return r, cleanup, nil
}
