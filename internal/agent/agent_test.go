package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgpocket/data"
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

func defaultDecks(t *testing.T) []catalog.Deck {
	t.Helper()
	c, err := catalog.Parse(data.Cards)
	require.NoError(t, err)
	require.Empty(t, game.CheckHandlers(c))
	decks, err := c.ParseDecks(data.Decks)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(decks), 2)
	return decks
}

func TestRandomMatchesTerminate(t *testing.T) {
	decks := defaultDecks(t)

	seed := int64(1)
	for i := range decks {
		for j := range decks {
			seed++
			logger := log.NewMemoryLogger()
			res, err := game.RunMatch(context.Background(), game.MatchConfig{
				Deck0:  decks[i].Cards,
				Deck1:  decks[j].Cards,
				Logger: logger,
				Seed:   seed,
			}, NewRandomAgent(seed*7), NewRandomAgent(seed*13))
			require.NoError(t, err, "%s vs %s", decks[i].Name, decks[j].Name)

			assert.Contains(t, []int{0, 1, game.Tie}, res.Winner)
			assert.LessOrEqual(t, res.Turns, game.DefaultMaxTurns)
			assert.LessOrEqual(t, res.Points[0], game.WinPoints)
			assert.LessOrEqual(t, res.Points[1], game.WinPoints)
			assert.Empty(t, logger.EventsOfType(log.EventDiagnostic), "%s vs %s", decks[i].Name, decks[j].Name)
		}
	}
}

func TestFirstAgentIsDeterministic(t *testing.T) {
	decks := defaultDecks(t)

	run := func() (game.Result, int) {
		logger := log.NewMemoryLogger()
		res, err := game.RunMatch(context.Background(), game.MatchConfig{
			Deck0:  decks[0].Cards,
			Deck1:  decks[1].Cards,
			Logger: logger,
			Seed:   99,
		}, FirstAgent{}, FirstAgent{})
		require.NoError(t, err)
		return res, len(logger.Events())
	}

	res1, n1 := run()
	res2, n2 := run()
	assert.Equal(t, res1, res2)
	assert.Equal(t, n1, n2)
	assert.NotEqual(t, game.NoWinner, res1.Winner)
}

func TestRandomAgentDeclinesOnlyOptionalChoices(t *testing.T) {
	a := NewRandomAgent(3)
	options := make([]game.Card, 2)

	sawDecline := false
	for i := 0; i < 200; i++ {
		idx, err := a.ChooseCard(context.Background(), nil, options, game.DecisionBench)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, -1)
		require.Less(t, idx, 2)
		sawDecline = sawDecline || idx == -1

		idx, err = a.ChooseCard(context.Background(), nil, options, game.DecisionActive)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 2)
	}
	assert.True(t, sawDecline)
}

func TestRandomAgentHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRandomAgent(1).ChooseAction(ctx, nil, []game.Action{{Type: game.ActionEndTurn}}, game.DecisionTurnAction)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestByName(t *testing.T) {
	a, ok := ByName("random", 1)
	require.True(t, ok)
	assert.IsType(t, &RandomAgent{}, a)

	a, ok = ByName("first", 1)
	require.True(t, ok)
	assert.IsType(t, FirstAgent{}, a)

	_, ok = ByName("minimax", 1)
	assert.False(t, ok)
}
