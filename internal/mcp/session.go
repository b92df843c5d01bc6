package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/log"
	"github.com/peterkuimelis/tcgpocket/internal/view"
)

// DecisionType identifies which tool answers the pending decision.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionChooseCard   DecisionType = "choose_card"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision is a decision the engine is blocked on.
type PendingDecision struct {
	Type       DecisionType
	Decision   game.Decision
	Player     int
	State      *view.StateView
	Actions    []view.ActionView
	Candidates []view.CardView
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string           `json:"session_id"`
	Events    []view.EventView `json:"events"`
	State     *view.StateView  `json:"state,omitempty"`
	Pending   *PendingView     `json:"pending,omitempty"`
	GameOver  bool             `json:"game_over"`
	Winner    int              `json:"winner"`
	Result    string           `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType      `json:"type"`
	Decision   string            `json:"decision"`
	Actions    []view.ActionView `json:"actions,omitempty"`
	Candidates []view.CardView   `json:"candidates,omitempty"`
}

// MatchSetup selects the decks and agents of a new session.
type MatchSetup struct {
	Deck         catalog.Deck
	OpponentDeck catalog.Deck
	Player       int // seat of the MCP client: 0 moves first
	Opponent     game.Agent
	Seed         int64
}

// GameSession runs one match between the MCP client and a built-in opponent.
type GameSession struct {
	ID     string
	setup  MatchSetup
	match  *game.Match
	agent  *Agent
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []view.EventView
	seq      int
	gameOver bool
	result   game.Result
	runErr   error
}

// NewGameSession builds the match and starts it on its own goroutine. The engine runs until
// the first decision of the MCP client.
func NewGameSession(setup MatchSetup) (*GameSession, error) {
	if setup.Player != 0 && setup.Player != 1 {
		return nil, fmt.Errorf("player must be 0 or 1, got %d", setup.Player)
	}
	if setup.Opponent == nil {
		return nil, fmt.Errorf("opponent agent is required")
	}

	sess := &GameSession{
		ID:        uuid.NewString(),
		setup:     setup,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.agent = NewAgent(setup.Player, sess)

	deck0, deck1 := setup.Deck.Cards, setup.OpponentDeck.Cards
	var a0, a1 game.Agent = sess.agent, setup.Opponent
	if setup.Player == 1 {
		deck0, deck1 = deck1, deck0
		a0, a1 = a1, a0
	}

	m, err := game.NewMatch(game.MatchConfig{
		Deck0:  deck0,
		Deck1:  deck1,
		Logger: log.NewMemoryLogger(),
		Seed:   setup.Seed,
	}, a0, a1)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	sess.match = m

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)
	return sess, nil
}

func (s *GameSession) run(ctx context.Context) {
	res, err := s.match.Run(ctx)

	s.mu.Lock()
	s.gameOver = true
	s.result = res
	s.runErr = err
	s.mu.Unlock()

	select {
	case s.pendingCh <- &PendingDecision{
		Type:   DecisionGameOver,
		Player: res.Winner,
		State:  view.BuildStateView(s.match, s.setup.Player),
	}:
	case <-ctx.Done():
	}
}

// Close stops the match goroutine.
func (s *GameSession) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Result returns the match outcome. over is false while the match is still running.
func (s *GameSession) Result() (res game.Result, over bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.gameOver, s.runErr
}

func (s *GameSession) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	ev.Seq = s.seq
	s.events = append(s.events, ev)
}

func (s *GameSession) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []view.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision for the MCP client (or the end of the match),
// then builds a ToolResponse with the events accumulated since the previous call.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	select {
	case pending := <-s.pendingCh:
		s.currentPending = pending
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.snapshot(), nil
}

// respond delivers the client's answer to the blocked agent.
func (s *GameSession) respond(ctx context.Context, index int) error {
	s.currentPending = nil
	select {
	case s.agent.responseCh <- index:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// snapshot reports the current pending decision without waiting.
func (s *GameSession) snapshot() *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
	}
	pending := s.currentPending
	if pending == nil {
		return resp
	}
	resp.State = pending.State

	if pending.Type == DecisionGameOver {
		res, _, err := s.Result()
		resp.GameOver = true
		resp.Winner = res.Winner
		resp.Result = res.Reason
		if err != nil {
			resp.Result = fmt.Sprintf("error: %v", err)
		}
		return resp
	}
	resp.Pending = &PendingView{
		Type:       pending.Type,
		Decision:   string(pending.Decision),
		Actions:    pending.Actions,
		Candidates: pending.Candidates,
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
