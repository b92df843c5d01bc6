// Package sim runs batches of bot-vs-bot matches on a bounded worker pool.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/tcgpocket/internal/agent"
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/log"
	"github.com/peterkuimelis/tcgpocket/internal/store"
)

// Pairing is one deck matchup; Decks[0] moves first when the opening coin flip says so.
type Pairing struct {
	Decks [2]catalog.Deck
}

// Pairings returns every ordered pair of decks, mirrors included.
func Pairings(decks []catalog.Deck) []Pairing {
	out := make([]Pairing, 0, len(decks)*len(decks))
	for _, a := range decks {
		for _, b := range decks {
			out = append(out, Pairing{Decks: [2]catalog.Deck{a, b}})
		}
	}
	return out
}

// Batch describes a simulation run.
type Batch struct {
	ID       string // generated when empty
	Pairings []Pairing
	Matches  int // per pairing
	Agents   [2]string
	Seed     int64 // match i uses Seed+i
	Workers  int

	// NewLogger, when set, supplies the event logger of match i.
	NewLogger func(i int) log.EventLogger
	// OnResult, when set, is called once per finished match, never concurrently.
	OnResult func(ctx context.Context, rec store.MatchRecord) error
}

// Run plays every match of b and returns the records in match order. The first match or
// callback error cancels the rest of the batch.
func Run(ctx context.Context, b Batch) ([]store.MatchRecord, error) {
	if b.Matches < 1 {
		return nil, fmt.Errorf("matches must be positive, got %d", b.Matches)
	}
	if len(b.Pairings) == 0 {
		return nil, fmt.Errorf("no deck pairings")
	}
	for _, name := range b.Agents {
		if _, ok := agent.ByName(name, 0); !ok {
			return nil, fmt.Errorf("unknown agent %q", name)
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	total := len(b.Pairings) * b.Matches
	records := make([]store.MatchRecord, total)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < total; i++ {
		g.Go(func() error {
			rec, err := b.play(gctx, i)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			records[i] = rec
			if b.OnResult != nil {
				return b.OnResult(gctx, rec)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (b Batch) play(ctx context.Context, i int) (store.MatchRecord, error) {
	p := b.Pairings[i/b.Matches]
	seed := b.Seed + int64(i)

	a0, _ := agent.ByName(b.Agents[0], seed*2+1)
	a1, _ := agent.ByName(b.Agents[1], seed*2+2)
	var logger log.EventLogger
	if b.NewLogger != nil {
		logger = b.NewLogger(i)
	}

	res, err := game.RunMatch(ctx, game.MatchConfig{
		Deck0:  p.Decks[0].Cards,
		Deck1:  p.Decks[1].Cards,
		Logger: logger,
		Seed:   seed,
	}, a0, a1)
	if err != nil {
		return store.MatchRecord{}, fmt.Errorf("match %d (%s vs %s): %w", i, p.Decks[0].Name, p.Decks[1].Name, err)
	}
	return store.MatchRecord{
		ID:        uuid.NewString(),
		BatchID:   b.ID,
		Deck0:     p.Decks[0].Name,
		Deck1:     p.Decks[1].Name,
		Agent0:    b.Agents[0],
		Agent1:    b.Agents[1],
		Seed:      seed,
		Result:    res,
		CreatedAt: time.Now(),
	}, nil
}
