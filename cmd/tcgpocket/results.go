package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/tcgpocket/internal/config"
	"github.com/peterkuimelis/tcgpocket/internal/store"
)

var (
	resultsDB    string
	resultsBatch string
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show per-deck standings from a results database",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(resultsDB)
		if err != nil {
			return err
		}
		defer st.Close()
		standings, err := st.Standings(cmd.Context(), resultsBatch)
		if err != nil {
			return err
		}
		if len(standings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no results")
			return nil
		}
		return printStandings(cmd.OutOrStdout(), standings)
	},
}

func init() {
	var cfg config.Simulate
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("results: %v", err)
	}
	resultsCmd.Flags().StringVar(&resultsDB, "db", cfg.DBPath, "SQLite results file")
	resultsCmd.Flags().StringVar(&resultsBatch, "batch", "", "restrict to one batch ID")
	rootCmd.AddCommand(resultsCmd)
}
