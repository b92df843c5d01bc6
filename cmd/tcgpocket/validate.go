package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/tcgpocket/internal/config"
	"github.com/peterkuimelis/tcgpocket/internal/game"
)

var validateSources config.Sources

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the card catalog and decks for errors",
	Long: `Parse and validate the card catalog, resolve every deck, and confirm that each effect
kind used by the catalog has an engine handler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, decks, err := validateSources.Load()
		if err != nil {
			return err
		}
		if missing := game.CheckHandlers(c); len(missing) > 0 {
			for _, m := range missing {
				fmt.Fprintln(cmd.ErrOrStderr(), m)
			}
			return fmt.Errorf("%d effect(s) without a handler", len(missing))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d cards, %d decks\n", len(c.Cards()), len(decks))
		return nil
	},
}

func init() {
	if err := config.ParseEnv(&validateSources); err != nil {
		config.Exitf("validate: %v", err)
	}
	addSourceFlags(validateCmd, &validateSources)
	rootCmd.AddCommand(validateCmd)
}

func addSourceFlags(cmd *cobra.Command, s *config.Sources) {
	cmd.Flags().StringVar(&s.CardsPath, "cards", s.CardsPath, "card catalog YAML (default: built-in)")
	cmd.Flags().StringVar(&s.DecksPath, "decks", s.DecksPath, "decks YAML (default: built-in)")
}
