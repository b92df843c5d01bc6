// Package web serves a read-only spectator UI: catalog and results endpoints plus a
// WebSocket feed of live bot-vs-bot matches.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/peterkuimelis/tcgpocket/internal/agent"
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/game"
	tlog "github.com/peterkuimelis/tcgpocket/internal/log"
	"github.com/peterkuimelis/tcgpocket/internal/store"
	"github.com/peterkuimelis/tcgpocket/internal/view"
)

//go:embed static
var staticFiles embed.FS

// spectateBatch tags results of spectated matches in the results store.
const spectateBatch = "spectate"

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

// FeedMessage is one WebSocket frame of a spectated match.
type FeedMessage struct {
	Type    string          `json:"type"` // "start", "event", "result" or "error"
	MatchID string          `json:"match_id,omitempty"`
	Decks   []string        `json:"decks,omitempty"`
	Event   *view.EventView `json:"event,omitempty"`
	State   *view.StateView `json:"state,omitempty"`
	Result  *game.Result    `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Options configures a Server.
type Options struct {
	Catalog *catalog.Catalog
	Decks   []catalog.Deck
	Store   *store.Store  // optional; enables /api/results and /api/standings
	Delay   time.Duration // pause after each streamed event
}

// Server is the spectator web server.
type Server struct {
	opts Options
	mux  *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	s := &Server{
		opts: opts,
		mux:  http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/results", s.handleResults)
	s.mux.HandleFunc("GET /api/standings", s.handleStandings)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, view.Catalog(s.opts.Catalog))
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := make([]DeckInfo, 0, len(s.opts.Decks))
	for i, d := range s.opts.Decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			if !seen[c.CardName()] {
				di.Cards = append(di.Cards, c.CardName())
				seen[c.CardName()] = true
			}
		}
		decks = append(decks, di)
	}
	writeJSON(w, decks)
}

// resultView is the JSON shape of a stored match result.
type resultView struct {
	ID        string    `json:"id"`
	BatchID   string    `json:"batch_id"`
	Decks     [2]string `json:"decks"`
	Agents    [2]string `json:"agents"`
	Seed      int64     `json:"seed"`
	Winner    int       `json:"winner"`
	Turns     int       `json:"turns"`
	Points    [2]int    `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		http.Error(w, "results store is not configured", http.StatusNotFound)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	records, err := s.opts.Store.ListResults(r.Context(), r.URL.Query().Get("batch"), limit)
	if err != nil {
		log.Printf("list results: %v", err)
		http.Error(w, "could not list results", http.StatusInternalServerError)
		return
	}
	out := make([]resultView, 0, len(records))
	for _, rec := range records {
		out = append(out, resultView{
			ID:        rec.ID,
			BatchID:   rec.BatchID,
			Decks:     [2]string{rec.Deck0, rec.Deck1},
			Agents:    [2]string{rec.Agent0, rec.Agent1},
			Seed:      rec.Seed,
			Winner:    rec.Result.Winner,
			Turns:     rec.Result.Turns,
			Points:    rec.Result.Points,
			Reason:    rec.Result.Reason,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		http.Error(w, "results store is not configured", http.StatusNotFound)
		return
	}
	standings, err := s.opts.Store.Standings(r.Context(), r.URL.Query().Get("batch"))
	if err != nil {
		log.Printf("standings: %v", err)
		http.Error(w, "could not compute standings", http.StatusInternalServerError)
		return
	}
	type standingView struct {
		store.DeckStanding
		WinRate float64 `json:"win_rate"`
	}
	out := make([]standingView, 0, len(standings))
	for _, st := range standings {
		out = append(out, standingView{DeckStanding: st, WinRate: st.WinRate()})
	}
	writeJSON(w, out)
}

// matchParams reads the match selection from the /ws query string.
type matchParams struct {
	decks  [2]catalog.Deck
	agents [2]string
	seed   int64
}

func (s *Server) parseMatchParams(r *http.Request) (matchParams, error) {
	q := r.URL.Query()
	var p matchParams
	for i, key := range []string{"deck0", "deck1"} {
		name := q.Get(key)
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		d, err := catalog.FindDeck(s.opts.Decks, name)
		if err != nil {
			return p, err
		}
		p.decks[i] = d
	}
	for i, key := range []string{"agent0", "agent1"} {
		p.agents[i] = q.Get(key)
		if p.agents[i] == "" {
			p.agents[i] = "random"
		}
	}
	p.seed = time.Now().UnixNano()
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return p, fmt.Errorf("seed must be an integer")
		}
		p.seed = seed
	}
	return p, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseMatchParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var agents [2]game.Agent
	for i, name := range params.agents {
		a, ok := agent.ByName(name, params.seed+int64(i)+1)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown agent %q", name), http.StatusBadRequest)
			return
		}
		agents[i] = a
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	// Spectators only read; CloseRead cancels ctx once the browser goes away.
	ctx, cancel := context.WithCancel(wsConn.CloseRead(r.Context()))
	defer cancel()

	feed := &spectator{Agent: agents[0], conn: wsConn, delay: s.opts.Delay, cancel: cancel}
	m, err := game.NewMatch(game.MatchConfig{
		Deck0:  params.decks[0].Cards,
		Deck1:  params.decks[1].Cards,
		Logger: tlog.NewMemoryLogger(),
		Seed:   params.seed,
	}, feed, agents[1])
	if err != nil {
		wsjson.Write(ctx, wsConn, FeedMessage{Type: "error", Error: err.Error()})
		wsConn.Close(websocket.StatusPolicyViolation, "invalid match")
		return
	}
	feed.match = m

	matchID := uuid.NewString()
	if err := wsjson.Write(ctx, wsConn, FeedMessage{
		Type:    "start",
		MatchID: matchID,
		Decks:   []string{params.decks[0].Name, params.decks[1].Name},
	}); err != nil {
		return
	}

	res, err := m.Run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			wsjson.Write(ctx, wsConn, FeedMessage{Type: "error", Error: err.Error()})
		}
		return
	}

	if s.opts.Store != nil {
		if _, err := s.opts.Store.SaveResult(ctx, store.MatchRecord{
			ID:      matchID,
			BatchID: spectateBatch,
			Deck0:   params.decks[0].Name,
			Deck1:   params.decks[1].Name,
			Agent0:  params.agents[0],
			Agent1:  params.agents[1],
			Seed:    params.seed,
			Result:  res,
		}); err != nil {
			log.Printf("save spectated match: %v", err)
		}
	}

	if err := wsjson.Write(ctx, wsConn, FeedMessage{
		Type:    "result",
		MatchID: matchID,
		State:   view.BuildStateView(m, 0),
		Result:  &res,
	}); err != nil {
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "match ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// spectator wraps seat 0's agent and streams every match event, with a board snapshot, to
// the WebSocket. It runs on the match goroutine, so the snapshot is consistent.
type spectator struct {
	game.Agent
	match  *game.Match
	conn   *websocket.Conn
	delay  time.Duration
	cancel context.CancelFunc
	seq    int
}

func (f *spectator) Notify(ctx context.Context, event tlog.GameEvent) error {
	if n, ok := f.Agent.(game.Notifier); ok {
		_ = n.Notify(ctx, event)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	f.seq++
	ev := view.Event(event)
	ev.Seq = f.seq
	msg := FeedMessage{Type: "event", Event: &ev}
	if f.match != nil {
		msg.State = view.BuildStateView(f.match, 0)
	}
	if err := wsjson.Write(ctx, f.conn, msg); err != nil {
		// The engine ignores Notify errors; cancelling stops the match.
		f.cancel()
		return err
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	return nil
}
