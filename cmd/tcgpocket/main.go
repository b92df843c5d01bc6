// Command tcgpocket validates card data, simulates bot-vs-bot batches, and serves the
// spectator UI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "tcgpocket",
	Short:        "Pocket-style trading card game battle simulator",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
