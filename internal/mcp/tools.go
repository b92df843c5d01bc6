package mcp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/tcgpocket/internal/agent"
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/store"
)

// resultBatch tags results of MCP matches in the results store.
const resultBatch = "mcp"

// Tools serves one match at a time to an MCP client (one per stdio process).
type Tools struct {
	Catalog         *catalog.Catalog
	Decks           []catalog.Deck
	DefaultDeck     string
	DefaultOpponent string // built-in agent name
	OpponentDeck    string
	Seed            int64        // 0 picks a seed from the clock
	Store           *store.Store // optional; finished matches are recorded when set

	mu     sync.Mutex
	active *GameSession
	agents [2]string
}

// RegisterTools adds all match tools to the MCP server.
func (t *Tools) RegisterTools(s *server.MCPServer) {
	s.AddTool(startMatchTool(), t.handleStartMatch)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(chooseCardTool(), t.handleChooseCard)
	s.AddTool(getMatchStateTool(), t.handleGetMatchState)
	s.AddTool(listDecksTool(), t.handleListDecks)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new match against a built-in opponent. Returns the initial state and "+
			"your first pending decision. Any running match is abandoned."),
		mcp.WithString("deck", mcp.Description("Your deck, by name or 1-indexed number (see list_decks)")),
		mcp.WithString("opponent_deck", mcp.Description("Opponent deck, by name or number")),
		mcp.WithString("opponent", mcp.Description("Opponent strategy: 'random' or 'first'")),
		mcp.WithNumber("player", mcp.Description("Your seat: 0 = goes first, 1 = goes second")),
		mcp.WithNumber("seed", mcp.Description("Match seed for shuffles and coin flips (0 = random)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Use this when the pending decision type is 'choose_action'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func chooseCardTool() mcp.Tool {
	return mcp.NewTool("choose_card",
		mcp.WithDescription("Choose one card from the pending candidates. Use this when the pending decision type is 'choose_card'. "+
			"Pass -1 to decline an optional choice such as benching a Basic or playing a card; a decline on a "+
			"mandatory choice takes the first candidate."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into candidates, or -1 to decline")),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the available decks and their cards."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	deck, err := catalog.FindDeck(t.Decks, request.GetString("deck", t.DefaultDeck))
	if err != nil {
		return mcp.NewToolResultErrorf("Unknown deck: %v", err), nil
	}
	oppDeck, err := catalog.FindDeck(t.Decks, request.GetString("opponent_deck", t.OpponentDeck))
	if err != nil {
		return mcp.NewToolResultErrorf("Unknown opponent deck: %v", err), nil
	}
	player := request.GetInt("player", 0)
	if player != 0 && player != 1 {
		return mcp.NewToolResultError("player must be 0 or 1"), nil
	}
	seed := int64(request.GetInt("seed", int(t.Seed)))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	oppName := request.GetString("opponent", t.DefaultOpponent)
	opponent, ok := agent.ByName(oppName, seed+1)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown opponent %q: use 'random' or 'first'.", oppName), nil
	}

	if t.active != nil {
		t.active.Close()
		t.active = nil
	}
	sess, err := NewGameSession(MatchSetup{
		Deck:         deck,
		OpponentDeck: oppDeck,
		Player:       player,
		Opponent:     opponent,
		Seed:         seed,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	t.active = sess
	t.agents[player], t.agents[1-player] = "mcp", oppName

	return t.next(ctx, sess)
}

func (t *Tools) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, errResult := t.pending(DecisionChooseAction)
	if errResult != nil {
		return errResult, nil
	}
	index := request.GetInt("index", -1)
	if n := len(sess.currentPending.Actions); index < 0 || index >= n {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, n-1), nil
	}
	if err := sess.respond(ctx, index); err != nil {
		return mcp.NewToolResultErrorf("Failed to submit action: %v", err), nil
	}
	return t.next(ctx, sess)
}

func (t *Tools) handleChooseCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, errResult := t.pending(DecisionChooseCard)
	if errResult != nil {
		return errResult, nil
	}
	index := request.GetInt("index", -2)
	if n := len(sess.currentPending.Candidates); index < -1 || index >= n {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be -1 to %d.", index, n-1), nil
	}
	if err := sess.respond(ctx, index); err != nil {
		return mcp.NewToolResultErrorf("Failed to submit choice: %v", err), nil
	}
	return t.next(ctx, sess)
}

func (t *Tools) handleGetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.active.snapshot())), nil
}

func (t *Tools) handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type deckView struct {
		Number int      `json:"number"`
		Name   string   `json:"name"`
		Cards  []string `json:"cards"`
	}
	out := make([]deckView, 0, len(t.Decks))
	for i, d := range t.Decks {
		dv := deckView{Number: i + 1, Name: d.Name}
		for _, c := range d.Cards {
			dv.Cards = append(dv.Cards, c.CardName())
		}
		out = append(out, dv)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal decks: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pending returns the active session when it is waiting on a decision of type want.
func (t *Tools) pending(want DecisionType) (*GameSession, *mcp.CallToolResult) {
	sess := t.active
	if sess == nil {
		return nil, mcp.NewToolResultError("No match is running. Use start_match first.")
	}
	p := sess.currentPending
	if p == nil {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if p.Type != want {
		return nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", p.Type, want)
	}
	return sess, nil
}

// next waits for the following decision and ends the session when the match is over.
func (t *Tools) next(ctx context.Context, sess *GameSession) (*mcp.CallToolResult, error) {
	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		t.record(ctx, sess)
		t.active = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) record(ctx context.Context, sess *GameSession) {
	if t.Store == nil {
		return
	}
	res, _, err := sess.Result()
	if err != nil {
		return
	}
	decks := [2]string{sess.setup.Deck.Name, sess.setup.OpponentDeck.Name}
	if sess.setup.Player == 1 {
		decks[0], decks[1] = decks[1], decks[0]
	}
	_, _ = t.Store.SaveResult(ctx, store.MatchRecord{
		ID:      sess.ID,
		BatchID: resultBatch,
		Deck0:   decks[0],
		Deck1:   decks[1],
		Agent0:  t.agents[0],
		Agent1:  t.agents[1],
		Seed:    sess.setup.Seed,
		Result:  res,
	})
}
