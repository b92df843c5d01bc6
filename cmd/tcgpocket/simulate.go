package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/config"
	"github.com/peterkuimelis/tcgpocket/internal/log"
	"github.com/peterkuimelis/tcgpocket/internal/sim"
	"github.com/peterkuimelis/tcgpocket/internal/store"
)

var (
	simCfg   config.Simulate
	simDeck0 string
	simDeck1 string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play batches of bot-vs-bot matches",
	Long: `Play --matches matches for each deck pairing and print per-deck standings.
Without --deck0/--deck1 every ordered pair of decks plays. With --db the results are
stored under a new batch ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runSimulate(ctx, cmd.OutOrStdout(), simCfg, simDeck0, simDeck1)
	},
}

func init() {
	if err := config.ParseEnv(&simCfg); err != nil {
		config.Exitf("simulate: %v", err)
	}
	f := simulateCmd.Flags()
	addSourceFlags(simulateCmd, &simCfg.Sources)
	f.IntVarP(&simCfg.Matches, "matches", "n", simCfg.Matches, "matches per deck pairing")
	f.IntVarP(&simCfg.Workers, "workers", "w", simCfg.Workers, "matches played in parallel")
	f.StringVar(&simCfg.Agent0, "agent0", simCfg.Agent0, "agent for player 1: random or first")
	f.StringVar(&simCfg.Agent1, "agent1", simCfg.Agent1, "agent for player 2: random or first")
	f.Int64Var(&simCfg.Seed, "seed", simCfg.Seed, "seed of the first match; match i uses seed+i")
	f.StringVar(&simCfg.DBPath, "db", simCfg.DBPath, "SQLite file to record results in")
	f.BoolVarP(&simCfg.Verbose, "verbose", "v", simCfg.Verbose, "print every match event (forces one worker)")
	f.StringVar(&simDeck0, "deck0", "", "deck for player 1, by name or number")
	f.StringVar(&simDeck1, "deck1", "", "deck for player 2, by name or number")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(ctx context.Context, out io.Writer, cfg config.Simulate, deck0, deck1 string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, decks, err := cfg.Sources.Load()
	if err != nil {
		return err
	}
	pairings, err := selectPairings(decks, deck0, deck1)
	if err != nil {
		return err
	}

	batch := sim.Batch{
		ID:       uuid.NewString(),
		Pairings: pairings,
		Matches:  cfg.Matches,
		Agents:   [2]string{cfg.Agent0, cfg.Agent1},
		Seed:     cfg.Seed,
		Workers:  cfg.Workers,
	}
	if cfg.Verbose {
		batch.Workers = 1
		batch.NewLogger = func(i int) log.EventLogger {
			fmt.Fprintf(out, "--- match %d ---\n", i+1)
			return log.NewTextLogger(out)
		}
	}
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		batch.OnResult = func(ctx context.Context, rec store.MatchRecord) error {
			_, err := st.SaveResult(ctx, rec)
			return err
		}
	}

	records, err := sim.Run(ctx, batch)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "batch %s: %d matches\n", batch.ID, len(records))
	return printStandings(out, store.Tally(records))
}

func selectPairings(decks []catalog.Deck, deck0, deck1 string) ([]sim.Pairing, error) {
	if deck0 == "" && deck1 == "" {
		return sim.Pairings(decks), nil
	}
	var p sim.Pairing
	for i, name := range []string{deck0, deck1} {
		if name == "" {
			name = "1"
		}
		d, err := catalog.FindDeck(decks, name)
		if err != nil {
			return nil, err
		}
		p.Decks[i] = d
	}
	return []sim.Pairing{p}, nil
}

func printStandings(out io.Writer, standings []store.DeckStanding) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DECK\tPLAYED\tWINS\tLOSSES\tTIES\tWIN%")
	for _, s := range standings {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f\n", s.Deck, s.Played, s.Wins, s.Losses, s.Ties, 100*s.WinRate())
	}
	return tw.Flush()
}
