package game

import (
	"context"

	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// Agent is the decision strategy behind one player. Built-in bots, the MCP bridge, and test
// scripts all implement it. Calls block until a decision is made; any timeout policy belongs
// to the implementation.
type Agent interface {
	// ChooseAction picks one of the legal actions. The decision is DecisionTurnAction for the
	// turn-level menu and DecisionPreciseAction for one Pokémon's attacks, ability, and retreat.
	ChooseAction(ctx context.Context, m *Match, actions []Action, decision Decision) (Action, error)

	// ChooseCard picks one of options by index, or returns -1 to decline where declining is
	// permitted (e.g. bench placement, retreat replacement).
	ChooseCard(ctx context.Context, m *Match, options []Card, decision Decision) (int, error)
}

// Notifier is implemented by agents that want to observe match events as they happen.
type Notifier interface {
	Notify(ctx context.Context, event log.GameEvent) error
}
