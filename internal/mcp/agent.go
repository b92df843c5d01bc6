package mcp

import (
	"context"

	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/log"
	"github.com/peterkuimelis/tcgpocket/internal/view"
)

// Agent implements game.Agent by publishing each decision to the session's pending channel
// and blocking until an MCP tool call answers it.
type Agent struct {
	player     int
	session    *GameSession
	responseCh chan int
}

// NewAgent creates the agent for the given seat.
func NewAgent(player int, session *GameSession) *Agent {
	return &Agent{
		player:     player,
		session:    session,
		responseCh: make(chan int),
	}
}

func (a *Agent) await(ctx context.Context, pending *PendingDecision) (int, error) {
	select {
	case a.session.pendingCh <- pending:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case idx := <-a.responseCh:
		return idx, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ChooseAction implements game.Agent. The state view is built here, on the match goroutine,
// while the engine is paused.
func (a *Agent) ChooseAction(ctx context.Context, m *game.Match, actions []game.Action, decision game.Decision) (game.Action, error) {
	idx, err := a.await(ctx, &PendingDecision{
		Type:     DecisionChooseAction,
		Decision: decision,
		Player:   a.player,
		State:    view.BuildStateView(m, a.player),
		Actions:  view.Actions(actions),
	})
	if err != nil {
		return game.Action{}, err
	}
	if idx < 0 || idx >= len(actions) {
		return actions[0], nil
	}
	return actions[idx], nil
}

// ChooseCard implements game.Agent. An index of -1 is passed through as a decline.
func (a *Agent) ChooseCard(ctx context.Context, m *game.Match, options []game.Card, decision game.Decision) (int, error) {
	return a.await(ctx, &PendingDecision{
		Type:       DecisionChooseCard,
		Decision:   decision,
		Player:     a.player,
		State:      view.BuildStateView(m, a.player),
		Candidates: view.Cards(options),
	})
}

// Notify implements game.Notifier.
func (a *Agent) Notify(ctx context.Context, event log.GameEvent) error {
	a.session.appendEvent(view.Event(event))
	return nil
}
