package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgpocket/internal/config"
	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/log"
	"github.com/peterkuimelis/tcgpocket/internal/store"
)

func defaultPairings(t *testing.T) []Pairing {
	t.Helper()
	_, decks, err := config.Sources{}.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(decks), 2)
	return Pairings(decks[:2])
}

func TestPairings(t *testing.T) {
	pairs := defaultPairings(t)
	require.Len(t, pairs, 4)
	assert.Equal(t, pairs[0].Decks[0].Name, pairs[0].Decks[1].Name)
	assert.Equal(t, pairs[1].Decks[0].Name, pairs[2].Decks[1].Name)
}

func TestRunBatch(t *testing.T) {
	var seen int
	batch := Batch{
		ID:       "batch-1",
		Pairings: defaultPairings(t),
		Matches:  3,
		Agents:   [2]string{"random", "first"},
		Seed:     100,
		Workers:  4,
		OnResult: func(ctx context.Context, rec store.MatchRecord) error {
			seen++
			return nil
		},
	}

	records, err := Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, records, 12)
	assert.Equal(t, 12, seen)

	for i, rec := range records {
		assert.Equal(t, "batch-1", rec.BatchID)
		assert.Equal(t, int64(100+i), rec.Seed)
		assert.Equal(t, batch.Pairings[i/3].Decks[0].Name, rec.Deck0)
		assert.Contains(t, []int{0, 1, game.Tie}, rec.Result.Winner)
		assert.LessOrEqual(t, rec.Result.Turns, game.DefaultMaxTurns)
	}

	// Same seeds, different worker count: identical outcomes.
	batch.Workers = 1
	batch.OnResult = nil
	again, err := Run(context.Background(), batch)
	require.NoError(t, err)
	for i := range records {
		assert.Equal(t, records[i].Result, again[i].Result, "match %d", i)
	}
}

func TestRunUsesLoggerFactory(t *testing.T) {
	loggers := make([]*log.MemoryLogger, 2)
	_, err := Run(context.Background(), Batch{
		Pairings: defaultPairings(t)[:1],
		Matches:  2,
		Agents:   [2]string{"first", "first"},
		Seed:     1,
		Workers:  2,
		NewLogger: func(i int) log.EventLogger {
			loggers[i] = log.NewMemoryLogger()
			return loggers[i]
		},
	})
	require.NoError(t, err)
	for _, l := range loggers {
		require.NotNil(t, l)
		assert.Equal(t, 1, len(l.EventsOfType(log.EventWin))+len(l.EventsOfType(log.EventTie)))
	}
}

func TestRunValidates(t *testing.T) {
	ctx := context.Background()
	pairs := defaultPairings(t)

	_, err := Run(ctx, Batch{Pairings: pairs, Matches: 0, Agents: [2]string{"random", "random"}})
	assert.ErrorContains(t, err, "matches must be positive")

	_, err = Run(ctx, Batch{Matches: 1, Agents: [2]string{"random", "random"}})
	assert.ErrorContains(t, err, "no deck pairings")

	_, err = Run(ctx, Batch{Pairings: pairs, Matches: 1, Agents: [2]string{"random", "minimax"}})
	assert.ErrorContains(t, err, `unknown agent "minimax"`)
}

func TestRunStopsOnCallbackError(t *testing.T) {
	boom := errors.New("disk full")
	_, err := Run(context.Background(), Batch{
		Pairings: defaultPairings(t),
		Matches:  2,
		Agents:   [2]string{"random", "random"},
		Seed:     3,
		Workers:  2,
		OnResult: func(ctx context.Context, rec store.MatchRecord) error { return boom },
	})
	assert.ErrorIs(t, err, boom)
}
