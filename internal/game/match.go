package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

var (
	ErrDeckSize = errors.New("deck must contain exactly 20 cards")
	ErrNoBasic  = errors.New("no Basic Pokémon")
)

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Deck0     []catalog.Card // Player 0's deck (card definitions)
	Deck1     []catalog.Card // Player 1's deck (card definitions)
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for time-based)
	NoShuffle bool  // skip deck shuffles (for deterministic tests)
	MaxTurns  int   // turn cap (0 = DefaultMaxTurns)
}

// Result summarizes a finished match.
type Result struct {
	Winner int // 0, 1, Tie, or NoWinner if the match was aborted
	Turns  int
	Points [2]int
	Reason string
}

// Match orchestrates an entire match between two agents and owns all of its state.
type Match struct {
	Players [2]*Player
	Turn    int // 1-based turn counter
	Current int // whose turn it is
	First   int // who moved first
	Winner  int // 0, 1, Tie, or NoWinner
	Reason  string
	Phase   Phase

	TurnState TurnState

	// Turn-scoped global slots; nil when unset.
	AttackPrevention    *GlobalEffect
	SupporterPrevention *GlobalEffect
	Shield              *GlobalEffect
	DamageReduction     *GlobalEffect

	Agents   [2]Agent
	Logger   log.EventLogger
	MaxTurns int

	rng       *rand.Rand
	flip      func() bool
	ctx       context.Context
	err       error // first agent failure; aborts the match
	nextID    int
	noShuffle bool

	damageDepth int // nesting of ApplyDamage; the win check runs when it returns to zero
}

// NewMatch validates both decks and builds a match ready to Run.
func NewMatch(cfg MatchConfig, a0, a1 Agent) (*Match, error) {
	for i, deck := range [2][]catalog.Card{cfg.Deck0, cfg.Deck1} {
		if len(deck) != DeckSize {
			return nil, fmt.Errorf("player %d: %w (got %d)", i+1, ErrDeckSize, len(deck))
		}
		if !hasBasic(deck) {
			return nil, fmt.Errorf("player %d deck: %w", i+1, ErrNoBasic)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}

	m := &Match{
		Winner:    NoWinner,
		TurnState: newTurnState(),
		Agents:    [2]Agent{a0, a1},
		Logger:    logger,
		MaxTurns:  maxTurns,
		rng:       rand.New(rand.NewSource(seed)),
		ctx:       context.Background(),
		noShuffle: cfg.NoShuffle,
	}
	m.flip = func() bool { return m.rng.Intn(2) == 0 }
	m.Players[0] = m.newPlayer(0, cfg.Deck0)
	m.Players[1] = m.newPlayer(1, cfg.Deck1)
	return m, nil
}

// RunMatch plays a complete match synchronously.
func RunMatch(ctx context.Context, cfg MatchConfig, a0, a1 Agent) (Result, error) {
	m, err := NewMatch(cfg, a0, a1)
	if err != nil {
		return Result{Winner: NoWinner}, err
	}
	return m.Run(ctx)
}

func hasBasic(deck []catalog.Card) bool {
	for _, c := range deck {
		if pc, ok := c.(*catalog.PokemonCard); ok && pc.Stage.IsBasic() {
			return true
		}
	}
	return false
}

func (m *Match) newPlayer(index int, deck []catalog.Card) *Player {
	p := &Player{Index: index}
	seen := make(map[catalog.EnergyType]bool)
	for _, def := range deck {
		p.Deck = append(p.Deck, m.newCard(index, def))
		if pc, ok := def.(*catalog.PokemonCard); ok && pc.Type != catalog.EnergyColorless && !seen[pc.Type] {
			seen[pc.Type] = true
			p.EnergyTypes = append(p.EnergyTypes, pc.Type)
		}
	}
	if len(p.EnergyTypes) == 0 {
		p.EnergyTypes = []catalog.EnergyType{catalog.EnergyColorless}
	}
	return p
}

// newCard creates the runtime entity for a catalog card.
func (m *Match) newCard(owner int, def catalog.Card) Card {
	m.nextID++
	if pc, ok := def.(*catalog.PokemonCard); ok {
		return &Pokemon{ID: m.nextID, Card: pc, Owner: owner}
	}
	return &CardInstance{ID: m.nextID, Owner: owner, Card: def}
}

// CurrentPlayer returns the Player whose turn it is.
func (m *Match) CurrentPlayer() *Player {
	return m.Players[m.Current]
}

// OpponentPlayer returns the Player waiting for their turn.
func (m *Match) OpponentPlayer() *Player {
	return m.Players[1-m.Current]
}

// Opponent returns the other player of p.
func (m *Match) Opponent(p *Player) *Player {
	return m.Players[1-p.Index]
}

// Over reports whether a winner or tie has been decided.
func (m *Match) Over() bool {
	return m.Winner != NoWinner
}

// Result returns the current outcome summary.
func (m *Match) Result() Result {
	return Result{
		Winner: m.Winner,
		Turns:  m.Turn,
		Points: [2]int{m.Players[0].Points, m.Players[1].Points},
		Reason: m.Reason,
	}
}

// Run executes the entire match loop.
func (m *Match) Run(ctx context.Context) (Result, error) {
	m.ctx = ctx

	if err := m.setup(); err != nil {
		return m.Result(), err
	}

	for !m.Over() {
		if m.Turn >= m.MaxTurns {
			m.endByTurnCap()
			break
		}
		if err := m.runTurn(); err != nil {
			return m.Result(), err
		}
		if err := ctx.Err(); err != nil {
			return m.Result(), err
		}
	}

	m.Phase = PhaseMatchOver
	return m.Result(), nil
}

// --- Setup ---

func (m *Match) setup() error {
	m.Phase = PhaseSetup
	m.log(log.NewPhaseChangeEvent(m.Turn, m.Phase.String()))

	for _, p := range m.Players {
		if err := m.drawOpeningHand(p); err != nil {
			return err
		}
	}

	if m.FlipCoin(0, "first turn") {
		m.First = 0
	} else {
		m.First = 1
	}
	m.Current = m.First

	for i := 0; i < 2; i++ {
		m.placeStartingPokemon(m.Players[(m.First+i)%2])
		if m.err != nil {
			return m.err
		}
	}
	return nil
}

// drawOpeningHand shuffles and draws five, mulliganing until the hand holds a Basic Pokémon.
func (m *Match) drawOpeningHand(p *Player) error {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if attempt > MaxMulligans {
				return fmt.Errorf("player %d: %w in opening hand after %d mulligans", p.Index+1, ErrNoBasic, MaxMulligans)
			}
			m.log(log.NewMulliganEvent(m.Turn, m.Phase.String(), p.Index, attempt))
			p.Deck = append(p.Deck, p.Hand...)
			p.Hand = nil
		}
		m.shuffle(p)
		for i := 0; i < InitialHandSize; i++ {
			p.DrawCard()
		}
		if len(p.basicsInHand()) > 0 {
			return nil
		}
	}
}

// placeStartingPokemon asks for the active Pokémon, then offers each bench placement in turn.
func (m *Match) placeStartingPokemon(p *Player) {
	basics := p.basicsInHand()
	c := m.mustChooseCard(p, basics, DecisionActive)
	if c == nil {
		return
	}
	pk := c.(*Pokemon)
	p.RemoveFromHand(pk)
	p.Active = pk
	m.log(log.NewPlaceActiveEvent(m.Turn, m.Phase.String(), p.Index, pk.Name()))

	for !p.BenchFull() {
		basics = p.basicsInHand()
		c := m.chooseCard(p, basics, DecisionBench)
		if c == nil {
			return
		}
		m.putOnBench(p, c.(*Pokemon))
	}
}

func (m *Match) putOnBench(p *Player, pk *Pokemon) {
	p.RemoveFromHand(pk)
	p.Bench = append(p.Bench, pk)
	m.log(log.NewPlaceBenchEvent(m.Turn, m.Phase.String(), p.Index, pk.Name(), len(p.Bench)-1))
}

// --- Turn loop ---

// runTurn executes a single turn for the current player.
func (m *Match) runTurn() error {
	m.turnStart()

	if err := m.actionLoop(); err != nil {
		return err
	}
	if m.Over() {
		return nil
	}

	m.turnEnd()
	return m.err
}

func (m *Match) turnStart() {
	m.Turn++
	m.Phase = PhaseTurnStart
	m.TurnState = newTurnState()
	p := m.CurrentPlayer()
	m.log(log.NewTurnEvent(m.Turn, m.Current))

	for _, pk := range p.InPlay() {
		pk.TurnsInPlay++
		pk.Hiding = false
		pk.DamageNerf = 0
		pk.AbilityUsed = false
	}

	// The very first turn of the match gets no energy.
	if m.Turn > 1 {
		m.generateEnergy(p)
	}

	m.drawCards(p, 1)
}

// actionLoop asks the current player for actions until they end the turn, an attack resolves,
// an ability ends the turn, or the safety cap is hit.
func (m *Match) actionLoop() error {
	m.Phase = PhaseAction
	p := m.CurrentPlayer()

	for n := 0; n < MaxActionsPerTurn; n++ {
		if m.Over() || m.TurnState.HasAttacked || m.TurnState.Ended {
			return nil
		}

		actions := m.LegalActions()
		chosen, err := m.Agents[p.Index].ChooseAction(m.ctx, m, actions, DecisionTurnAction)
		if err != nil {
			return fmt.Errorf("player %d action: %w", p.Index+1, err)
		}
		if !containsAction(actions, chosen) {
			m.diagnostic(p.Index, "illegal action %q ignored", chosen.String())
			continue
		}
		if chosen.Type == ActionEndTurn {
			return nil
		}

		m.execute(p, chosen)
		if m.err != nil {
			return m.err
		}
	}

	if !m.Over() && !m.TurnState.HasAttacked && !m.TurnState.Ended {
		m.diagnostic(p.Index, "action limit (%d) reached, ending turn", MaxActionsPerTurn)
	}
	return nil
}

func (m *Match) turnEnd() {
	m.Phase = PhaseTurnEnd
	p := m.CurrentPlayer()
	m.log(log.NewPhaseChangeEvent(m.Turn, m.Phase.String()))

	p.EnergyPool = catalog.Energy{}

	for _, slot := range []**GlobalEffect{&m.AttackPrevention, &m.SupporterPrevention, &m.Shield, &m.DamageReduction} {
		if *slot != nil && (*slot).Player == m.Current {
			*slot = nil
		}
	}
	for _, pk := range p.InPlay() {
		pk.RetreatBlocked = false
	}

	m.checkupEffects(p)
	if m.Over() {
		return
	}
	m.statusCheckup(p)
	if m.Over() {
		return
	}
	m.sweepKnockouts()
	if m.Over() {
		return
	}

	m.Current = 1 - m.Current
}

// statusCheckup ticks the status conditions of the mover's active Pokémon.
func (m *Match) statusCheckup(p *Player) {
	pk := p.Active
	if pk == nil {
		return
	}

	if pk.HasStatus(catalog.StatusPoisoned) {
		m.ApplyDamage(pk, 10, nil)
	}
	if pk.State == InPlay && pk.HasStatus(catalog.StatusSuperPoisoned) {
		m.ApplyDamage(pk, 20, nil)
	}
	if pk.State == InPlay && pk.HasStatus(catalog.StatusBurned) {
		m.ApplyDamage(pk, 20, nil)
		if pk.State == InPlay && m.FlipCoin(p.Index, "burn") {
			m.cureStatus(pk, catalog.StatusBurned)
		}
	}
	if pk.State != InPlay || m.Over() {
		return
	}
	if pk.HasStatus(catalog.StatusAsleep) && m.FlipCoin(p.Index, "sleep") {
		m.cureStatus(pk, catalog.StatusAsleep)
	}
	if pk.HasStatus(catalog.StatusParalyzed) {
		m.cureStatus(pk, catalog.StatusParalyzed)
	}
}

// endByTurnCap resolves a match that hit the turn cap: higher score wins, a level score is
// settled by a coin flip.
func (m *Match) endByTurnCap() {
	reason := fmt.Sprintf("turn limit reached (%d turns)", m.MaxTurns)
	s0, s1 := m.Players[0].Points, m.Players[1].Points
	switch {
	case s0 > s1:
		m.declareWinner(0, reason)
	case s1 > s0:
		m.declareWinner(1, reason)
	case m.FlipCoin(0, "turn limit tie-break"):
		m.declareWinner(0, reason+", coin flip")
	default:
		m.declareWinner(1, reason+", coin flip")
	}
}

func (m *Match) declareWinner(winner int, reason string) {
	if m.Over() {
		return
	}
	m.Winner = winner
	m.Reason = fmt.Sprintf("%s wins: %s", log.PlayerName(winner), reason)
	m.log(log.NewWinEvent(m.Turn, m.Phase.String(), winner, reason))
}

func (m *Match) declareTie(reason string) {
	if m.Over() {
		return
	}
	m.Winner = Tie
	m.Reason = "tie: " + reason
	m.log(log.NewTieEvent(m.Turn, m.Phase.String(), reason))
}

// --- Helpers ---

// FlipCoin flips a coin for player and logs the result.
func (m *Match) FlipCoin(player int, reason string) bool {
	heads := m.flip()
	m.log(log.NewCoinFlipEvent(m.Turn, m.Phase.String(), player, heads, reason))
	return heads
}

// flipUntilTails returns the number of heads before the first tails.
func (m *Match) flipUntilTails(player int, reason string) int {
	heads := 0
	for m.FlipCoin(player, reason) {
		heads++
	}
	return heads
}

func (m *Match) shuffle(p *Player) {
	if m.noShuffle {
		return
	}
	m.rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
	m.log(log.NewShuffleEvent(m.Turn, m.Phase.String(), p.Index))
}

// drawCards draws up to n cards, stopping early on an empty deck or a full hand.
func (m *Match) drawCards(p *Player, n int) {
	for i := 0; i < n; i++ {
		c := p.DrawCard()
		if c == nil {
			if len(p.Deck) == 0 {
				m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), p.Index, "", log.PlayerName(p.Index)+" has no cards left to draw"))
			} else {
				m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), p.Index, "", log.PlayerName(p.Index)+"'s hand is full"))
			}
			return
		}
		m.log(log.NewDrawEvent(m.Turn, m.Phase.String(), p.Index, c.Name()))
	}
}

func (m *Match) generateEnergy(p *Player) {
	t := p.EnergyTypes[m.rng.Intn(len(p.EnergyTypes))]
	p.EnergyPool[t]++
	m.log(log.NewEnergyGeneratedEvent(m.Turn, m.Phase.String(), p.Index, t.String()))
}

// log emits a match event through the logger and notifies agents that observe events.
func (m *Match) log(event log.GameEvent) {
	m.Logger.Log(event)
	for i := 0; i < 2; i++ {
		if n, ok := m.Agents[i].(Notifier); ok {
			_ = n.Notify(m.ctx, event)
		}
	}
}

func (m *Match) diagnostic(player int, format string, args ...any) {
	m.log(log.NewDiagnosticEvent(m.Turn, m.Phase.String(), player, fmt.Sprintf(format, args...)))
}

// chooseCard asks p's agent to pick one of options. It returns nil on decline, on an
// out-of-range answer, or when the agent fails; a failure is kept in m.err and aborts the match.
func (m *Match) chooseCard(p *Player, options []Card, d Decision) Card {
	if len(options) == 0 || m.err != nil {
		return nil
	}
	idx, err := m.Agents[p.Index].ChooseCard(m.ctx, m, options, d)
	if err != nil {
		m.err = fmt.Errorf("player %d %s choice: %w", p.Index+1, d, err)
		return nil
	}
	if idx == -1 {
		return nil
	}
	if idx < 0 || idx >= len(options) {
		m.diagnostic(p.Index, "%s choice %d out of range (%d options)", d, idx, len(options))
		return nil
	}
	return options[idx]
}

// mustChooseCard is chooseCard for decisions that cannot be declined; a decline or an invalid
// answer falls back to the first option.
func (m *Match) mustChooseCard(p *Player, options []Card, d Decision) Card {
	c := m.chooseCard(p, options, d)
	if c == nil && m.err == nil && len(options) > 0 {
		return options[0]
	}
	return c
}

func (m *Match) choosePokemon(p *Player, options []*Pokemon, d Decision) *Pokemon {
	c := m.chooseCard(p, pokemonCards(options), d)
	if c == nil {
		return nil
	}
	return c.(*Pokemon)
}

func (m *Match) mustChoosePokemon(p *Player, options []*Pokemon, d Decision) *Pokemon {
	c := m.mustChooseCard(p, pokemonCards(options), d)
	if c == nil {
		return nil
	}
	return c.(*Pokemon)
}

func pokemonCards(pks []*Pokemon) []Card {
	cards := make([]Card, len(pks))
	for i, pk := range pks {
		cards[i] = pk
	}
	return cards
}

func containsAction(actions []Action, a Action) bool {
	for _, legal := range actions {
		if legal == a {
			return true
		}
	}
	return false
}
