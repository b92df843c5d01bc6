// Command tcgpocket-mcp serves a match against a built-in opponent to an MCP client over stdio.
package main

import (
	"flag"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/tcgpocket/internal/config"
	tcgmcp "github.com/peterkuimelis/tcgpocket/internal/mcp"
	"github.com/peterkuimelis/tcgpocket/internal/store"
)

func main() {
	var cfg config.MCP
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("Error: %v", err)
	}
	flag.StringVar(&cfg.CardsPath, "cards", cfg.CardsPath, "card catalog YAML (default: built-in)")
	flag.StringVar(&cfg.DecksPath, "decks", cfg.DecksPath, "decks YAML (default: built-in)")
	flag.StringVar(&cfg.Deck, "deck", cfg.Deck, "default deck for the MCP client")
	flag.StringVar(&cfg.OpponentDeck, "opponent-deck", cfg.OpponentDeck, "default opponent deck")
	flag.StringVar(&cfg.Opponent, "opponent", cfg.Opponent, "default opponent agent: random or first")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "match seed (0 = random)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file to record finished matches in")
	flag.Parse()

	c, decks, err := cfg.Sources.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	tools := &tcgmcp.Tools{
		Catalog:         c,
		Decks:           decks,
		DefaultDeck:     cfg.Deck,
		OpponentDeck:    cfg.OpponentDeck,
		DefaultOpponent: cfg.Opponent,
		Seed:            cfg.Seed,
	}
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			config.Exitf("Error: %v", err)
		}
		defer st.Close()
		tools.Store = st
	}

	s := server.NewMCPServer("tcgpocket", "1.0.0")
	tools.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		config.Exitf("Error: %v", err)
	}
}
