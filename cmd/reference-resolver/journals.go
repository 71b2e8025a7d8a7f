// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reference-resolver/internal/journals"
)

var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "Manage the journal-abbreviation database",
	Long: `Journals manages the local SQLite database that maps free-text journal
names to bibstems. Database entries take precedence over the built-in table;
unknown names fall back to a stem derived from word initials.`,
}

var journalsAddCmd = &cobra.Command{
	Use:   "add <publication> <bibstem>",
	Short: "Record a journal-name-to-bibstem mapping",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := openJournalDB()
		if err != nil {
			return err
		}
		defer idx.Close()

		if err := idx.Add(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[0], args[1])
		return nil
	},
}

var journalsLookupCmd = &cobra.Command{
	Use:   "lookup <publication>",
	Short: "Show the bibstem a publication name resolves to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := openJournalDB()
		if err != nil {
			return err
		}
		defer idx.Close()

		stem := idx.BestBibstem(args[0])
		if stem == "" {
			return fmt.Errorf("no bibstem for %q", args[0])
		}
		fmt.Println(stem)
		return nil
	},
}

func openJournalDB() (*journals.Index, error) {
	path := viper.GetString("journal_db")
	if path == "" {
		path = "journals.db"
	}
	return journals.Open(path)
}

func init() {
	journalsCmd.AddCommand(journalsAddCmd)
	journalsCmd.AddCommand(journalsLookupCmd)
	rootCmd.AddCommand(journalsCmd)
}
