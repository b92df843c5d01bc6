// Package agent holds the built-in reference strategies.
package agent

import (
	"context"
	"math/rand"
	"sync"

	"github.com/peterkuimelis/tcgpocket/internal/game"
)

// declinable lists the decisions where a built-in agent may pass.
var declinable = map[game.Decision]bool{
	game.DecisionBench:   true,
	game.DecisionRetreat: true,
}

// RandomAgent picks uniformly among the legal options, End Turn included, and sometimes
// passes on optional choices. Safe for concurrent use.
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a RandomAgent seeded with seed.
func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) intn(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Intn(n)
}

func (a *RandomAgent) ChooseAction(ctx context.Context, m *game.Match, actions []game.Action, decision game.Decision) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	return actions[a.intn(len(actions))], nil
}

func (a *RandomAgent) ChooseCard(ctx context.Context, m *game.Match, options []game.Card, decision game.Decision) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if declinable[decision] {
		return a.intn(len(options)+1) - 1, nil
	}
	return a.intn(len(options)), nil
}

// FirstAgent always takes the first option and prefers attacking over everything else, so
// a match between two FirstAgents is fully determined by the match seed.
type FirstAgent struct{}

func (FirstAgent) ChooseAction(ctx context.Context, m *game.Match, actions []game.Action, decision game.Decision) (game.Action, error) {
	if decision == game.DecisionPreciseAction {
		for _, a := range actions {
			if a.Type == game.ActionAttack {
				return a, nil
			}
		}
		return actions[0], nil
	}
	for _, want := range []game.ActionType{
		game.ActionEvolve,
		game.ActionAttachEnergy,
		game.ActionPlayCard,
		game.ActionPokemonAction,
	} {
		for _, a := range actions {
			if a.Type == want {
				return a, nil
			}
		}
	}
	return actions[0], nil
}

func (FirstAgent) ChooseCard(ctx context.Context, m *game.Match, options []game.Card, decision game.Decision) (int, error) {
	return 0, nil
}

// ByName returns a built-in agent: "random" (seeded) or "first".
func ByName(name string, seed int64) (game.Agent, bool) {
	switch name {
	case "random":
		return NewRandomAgent(seed), true
	case "first":
		return FirstAgent{}, true
	}
	return nil, false
}
