package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// ScriptedAgent is an Agent that follows a predefined script of actions.
// Used in tests to deterministically drive the match.
type ScriptedAgent struct {
	t     *testing.T
	name  string
	steps []ScriptedStep
	pos   int

	// Names picked for ChooseCard prompts, consumed in order when they match an option.
	cardChoices []string

	pendingCard   string
	pendingTarget string
}

// ScriptedStep is one scripted action. A precise step (attack, ability, retreat) is reached
// through ActionPokemonAction automatically.
type ScriptedStep struct {
	Type ActionType
	// Card played or evolved, or attack name for ActionAttack.
	Name string
	// Pokémon targeted by the card, receiving energy, or acting.
	Target string
}

func NewScriptedAgent(t *testing.T, name string) *ScriptedAgent {
	return &ScriptedAgent{t: t, name: name}
}

func (sa *ScriptedAgent) AddAction(t ActionType, name string) *ScriptedAgent {
	sa.steps = append(sa.steps, ScriptedStep{Type: t, Name: name})
	return sa
}

func (sa *ScriptedAgent) AddAttach(target string) *ScriptedAgent {
	sa.steps = append(sa.steps, ScriptedStep{Type: ActionAttachEnergy, Target: target})
	return sa
}

func (sa *ScriptedAgent) AddPlay(card, target string) *ScriptedAgent {
	sa.steps = append(sa.steps, ScriptedStep{Type: ActionPlayCard, Name: card, Target: target})
	return sa
}

func (sa *ScriptedAgent) AddEvolve(card, target string) *ScriptedAgent {
	sa.steps = append(sa.steps, ScriptedStep{Type: ActionEvolve, Name: card, Target: target})
	return sa
}

func (sa *ScriptedAgent) AddAttack(attack string) *ScriptedAgent {
	sa.steps = append(sa.steps, ScriptedStep{Type: ActionAttack, Name: attack})
	return sa
}

func (sa *ScriptedAgent) AddAbility(pokemon string) *ScriptedAgent {
	sa.steps = append(sa.steps, ScriptedStep{Type: ActionAbility, Target: pokemon})
	return sa
}

func (sa *ScriptedAgent) AddCardChoice(names ...string) *ScriptedAgent {
	sa.cardChoices = append(sa.cardChoices, names...)
	return sa
}

func isPrecise(t ActionType) bool {
	return t == ActionAttack || t == ActionAbility || t == ActionRetreat
}

func (sa *ScriptedAgent) ChooseAction(ctx context.Context, m *Match, actions []Action, decision Decision) (Action, error) {
	switch decision {
	case DecisionTurnAction:
		if sa.pos < len(sa.steps) {
			step := sa.steps[sa.pos]
			want := step.Type
			if isPrecise(want) {
				want = ActionPokemonAction
			}
			for _, a := range actions {
				if a.Type != want {
					continue
				}
				// Precise steps are consumed once the Pokémon's menu is offered.
				if !isPrecise(step.Type) {
					sa.pos++
				}
				sa.pendingCard = step.Name
				sa.pendingTarget = step.Target
				return a, nil
			}
		}
		// Scripted action not yet available (probably a future turn): end the turn.
		for _, a := range actions {
			if a.Type == ActionEndTurn {
				return a, nil
			}
		}

	case DecisionPreciseAction:
		if sa.pos < len(sa.steps) && isPrecise(sa.steps[sa.pos].Type) {
			step := sa.steps[sa.pos]
			for _, a := range actions {
				if a.Type != step.Type {
					continue
				}
				if step.Type == ActionAttack && step.Name != "" && a.Attack.Name != step.Name {
					continue
				}
				sa.pos++
				return a, nil
			}
			sa.t.Logf("[%s] scripted %s %q not offered", sa.name, step.Type, step.Name)
		}
	}
	return actions[0], nil
}

func (sa *ScriptedAgent) ChooseCard(ctx context.Context, m *Match, options []Card, decision Decision) (int, error) {
	switch decision {
	case DecisionPlayCard, DecisionEvolveCard:
		name := sa.pendingCard
		sa.pendingCard = ""
		if i := indexByName(options, name); i >= 0 {
			return i, nil
		}
	case DecisionAttachEnergy, DecisionEvolveTarget, DecisionPokemonAction, DecisionTarget:
		if sa.pendingTarget != "" {
			name := sa.pendingTarget
			sa.pendingTarget = ""
			if i := indexByName(options, name); i >= 0 {
				return i, nil
			}
		}
		if active := m.CurrentPlayer().Active; decision == DecisionPokemonAction && active != nil {
			if i := indexByName(options, active.Name()); i >= 0 {
				return i, nil
			}
		}
	}

	if len(sa.cardChoices) > 0 {
		if i := indexByName(options, sa.cardChoices[0]); i >= 0 {
			sa.cardChoices = sa.cardChoices[1:]
			return i, nil
		}
	}
	if decision == DecisionBench {
		return -1, nil
	}
	return 0, nil
}

func (sa *ScriptedAgent) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

func indexByName(options []Card, name string) int {
	if name == "" {
		return -1
	}
	for i, c := range options {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// --- Test card helpers ---

func energy(pairs ...any) catalog.Energy {
	var e catalog.Energy
	for i := 0; i+1 < len(pairs); i += 2 {
		e[pairs[i].(catalog.EnergyType)] += pairs[i+1].(int)
	}
	return e
}

func fx(kind catalog.EffectKind, args ...string) catalog.Effect {
	return catalog.Effect{Kind: kind, Args: args}
}

func attack(name string, dmg int, cost catalog.Energy, eff catalog.Effect) *catalog.Attack {
	return &catalog.Attack{ID: name, Name: name, Damage: dmg, Cost: cost, Effect: eff}
}

// basicPokemon builds a Basic with no weakness and retreat cost 1.
func basicPokemon(name string, hp int, typ catalog.EnergyType, attacks ...*catalog.Attack) *catalog.PokemonCard {
	stage := catalog.StageBasic
	if len(name) > 3 && name[len(name)-3:] == " ex" {
		stage = catalog.StageBasicEX
	}
	return &catalog.PokemonCard{
		ID:       name,
		Name:     name,
		Stage:    stage,
		HP:       hp,
		Type:     typ,
		Weakness: catalog.EnergyNone,
		Retreat:  1,
		Attacks:  attacks,
	}
}

func stage1Pokemon(name, from string, hp int, typ catalog.EnergyType, attacks ...*catalog.Attack) *catalog.PokemonCard {
	pc := basicPokemon(name, hp, typ, attacks...)
	pc.Stage = catalog.StageStage1
	pc.EvolvesFrom = from
	return pc
}

func withAbility(pc *catalog.PokemonCard, name string, usage catalog.Usage, eff catalog.Effect) *catalog.PokemonCard {
	pc.Ability = &catalog.Ability{ID: name, Name: name, Usage: usage, Effect: eff}
	return pc
}

func withWeakness(pc *catalog.PokemonCard, t catalog.EnergyType) *catalog.PokemonCard {
	pc.Weakness = t
	return pc
}

func supporter(name string, eff catalog.Effect) *catalog.TrainerCard {
	return &catalog.TrainerCard{ID: name, Name: name, Supporter: true, Effect: eff}
}

func item(name string, eff catalog.Effect) *catalog.ItemCard {
	return &catalog.ItemCard{ID: name, Name: name, Effect: eff}
}

func tool(name string, eff catalog.Effect) *catalog.ToolCard {
	return &catalog.ToolCard{ID: name, Name: name, Effect: eff}
}

var fillerPokemon = basicPokemon("Filler", 50, catalog.EnergyColorless,
	attack("Tackle", 10, energy(catalog.EnergyColorless, 1), catalog.Effect{}))

// makePaddedDeck creates a 20-card deck with topCards drawn first and filler below.
// topCards are ordered so that index 0 is drawn first.
func makePaddedDeck(topCards ...catalog.Card) []catalog.Card {
	deck := make([]catalog.Card, 0, DeckSize)

	// Filler goes at bottom (drawn last)
	for i := 0; i < DeckSize-len(topCards); i++ {
		deck = append(deck, fillerPokemon)
	}

	// Top cards go at end of slice (drawn first)
	for i := len(topCards) - 1; i >= 0; i-- {
		deck = append(deck, topCards[i])
	}
	return deck
}

// runMatchToCompletion runs a match and returns it with its logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 Agent) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true // deterministic tests
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	m, err := NewMatch(cfg, p0, p1)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	// Player 1 always goes first and every coin comes up heads unless a test overrides it.
	m.flip = func() bool { return true }

	if _, err := m.Run(context.Background()); err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", m.Winner, m.Reason)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
	return m, logger
}

// --- Board fixtures ---

// newBoard returns a match between two scripted agents with no cards in play, ready for
// pieces to be placed by hand. Turn is 3 so that evolution is open.
func newBoard(t *testing.T) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	m, err := NewMatch(MatchConfig{
		Deck0:     makePaddedDeck(),
		Deck1:     makePaddedDeck(),
		Logger:    logger,
		Seed:      1,
		NoShuffle: true,
	}, NewScriptedAgent(t, "P1"), NewScriptedAgent(t, "P2"))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	m.Turn = 3
	m.Phase = PhaseAction
	m.flip = func() bool { return true }
	return m, logger
}

// coins makes the match's coin flips follow results, then heads forever.
func coins(m *Match, results ...bool) {
	m.flip = func() bool {
		if len(results) == 0 {
			return true
		}
		r := results[0]
		results = results[1:]
		return r
	}
}

// setActive puts a fresh Pokémon in p's active slot.
func setActive(m *Match, player int, pc *catalog.PokemonCard) *Pokemon {
	pk := m.newCard(player, pc).(*Pokemon)
	pk.TurnsInPlay = 1
	m.Players[player].Active = pk
	return pk
}

// addBench puts a fresh Pokémon on p's bench.
func addBench(m *Match, player int, pc *catalog.PokemonCard) *Pokemon {
	pk := m.newCard(player, pc).(*Pokemon)
	pk.TurnsInPlay = 1
	m.Players[player].Bench = append(m.Players[player].Bench, pk)
	return pk
}

// addHand puts a fresh card in p's hand.
func addHand(m *Match, player int, def catalog.Card) Card {
	c := m.newCard(player, def)
	m.Players[player].Hand = append(m.Players[player].Hand, c)
	return c
}

func hasAction(actions []Action, t ActionType) bool {
	for _, a := range actions {
		if a.Type == t {
			return true
		}
	}
	return false
}
