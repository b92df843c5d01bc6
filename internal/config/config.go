// Package config holds the environment-driven settings of the tcgpocket commands.
package config

import (
	"fmt"
	"time"

	"github.com/peterkuimelis/tcgpocket/data"
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
)

// Sources locates the card catalog and deck list. Empty paths select the embedded defaults.
type Sources struct {
	CardsPath string `env:"TCGPOCKET_CARDS"`
	DecksPath string `env:"TCGPOCKET_DECKS"`
}

// Load parses and validates the catalog, then resolves every deck against it.
func (s Sources) Load() (*catalog.Catalog, []catalog.Deck, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	if s.CardsPath != "" {
		c, err = catalog.Load(s.CardsPath)
	} else {
		c, err = catalog.Parse(data.Cards)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load cards: %w", err)
	}
	if err := catalog.Validate(c); err != nil {
		return nil, nil, fmt.Errorf("validate cards: %w", err)
	}

	var decks []catalog.Deck
	if s.DecksPath != "" {
		decks, err = catalog.LoadDecks(c, s.DecksPath)
	} else {
		decks, err = c.ParseDecks(data.Decks)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load decks: %w", err)
	}
	if len(decks) == 0 {
		return nil, nil, fmt.Errorf("load decks: no decks defined")
	}
	return c, decks, nil
}

// Simulate configures batch bot-vs-bot simulation.
type Simulate struct {
	Sources
	Matches int    `env:"TCGPOCKET_MATCHES"  envDefault:"10"`
	Workers int    `env:"TCGPOCKET_WORKERS"  envDefault:"4"`
	Agent0  string `env:"TCGPOCKET_AGENT0"   envDefault:"random"`
	Agent1  string `env:"TCGPOCKET_AGENT1"   envDefault:"random"`
	Seed    int64  `env:"TCGPOCKET_SEED"     envDefault:"1"`
	DBPath  string `env:"TCGPOCKET_DB_PATH"`
	Verbose bool   `env:"TCGPOCKET_VERBOSE"`
}

// Validate rejects batch sizes that cannot run.
func (c *Simulate) Validate() error {
	if c.Matches < 1 {
		return fmt.Errorf("TCGPOCKET_MATCHES must be at least 1, got %d", c.Matches)
	}
	if c.Workers < 1 {
		return fmt.Errorf("TCGPOCKET_WORKERS must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Spectate configures the spectator web server.
type Spectate struct {
	Sources
	Addr   string        `env:"TCGPOCKET_WEB_ADDR" envDefault:":8080"`
	Delay  time.Duration `env:"TCGPOCKET_WEB_DELAY" envDefault:"600ms"`
	DBPath string        `env:"TCGPOCKET_DB_PATH"`
}

func (c *Spectate) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("TCGPOCKET_WEB_ADDR is required")
	}
	if c.Delay < 0 {
		return fmt.Errorf("TCGPOCKET_WEB_DELAY must not be negative, got %s", c.Delay)
	}
	return nil
}

// MCP configures the MCP server.
type MCP struct {
	Sources
	Deck         string `env:"TCGPOCKET_MCP_DECK"          envDefault:"1"`
	OpponentDeck string `env:"TCGPOCKET_MCP_OPPONENT_DECK" envDefault:"2"`
	Opponent     string `env:"TCGPOCKET_MCP_OPPONENT"      envDefault:"random"`
	Seed         int64  `env:"TCGPOCKET_SEED"`
	DBPath       string `env:"TCGPOCKET_DB_PATH"`
}
