package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// TestScriptedKnockoutWins: P1 powers up Charmander and knocks out P2's only Pokémon.
func TestScriptedKnockoutWins(t *testing.T) {
	deck0 := makePaddedDeck(charm)
	deck1 := makePaddedDeck()

	p0 := NewScriptedAgent(t, "P1")
	p1 := NewScriptedAgent(t, "P2")

	// Turn 1 (P1): no energy on the very first turn, nothing to do
	// Turn 3 (P1): attach fire, Ember for 30
	p0.AddAttach("Charmander").AddAttack("Ember")
	// Turn 5 (P1): attach fire, Ember again, knocking out the 50 HP filler
	p0.AddAttach("Charmander").AddAttack("Ember")

	m, logger := runMatchToCompletion(t, MatchConfig{Deck0: deck0, Deck1: deck1}, p0, p1)

	if m.Winner != 0 {
		t.Fatalf("expected P1 to win, got winner=%d (%s)", m.Winner, m.Reason)
	}
	if m.Turn != 5 {
		t.Errorf("expected the match to end on turn 5, got %d", m.Turn)
	}
	kos := logger.EventsOfType(log.EventKnockout)
	if len(kos) != 1 || kos[0].Card != "Filler" || kos[0].Player != 1 {
		t.Errorf("expected P2's Filler knocked out, got %+v", kos)
	}
	for _, e := range logger.EventsOfType(log.EventEnergyGenerated) {
		if e.Turn == 1 {
			t.Error("no energy is generated on the first turn of the match")
		}
	}
	if got := len(logger.EventsOfType(log.EventAttack)); got != 2 {
		t.Errorf("expected 2 attacks, got %d", got)
	}
}

func TestEveryTurnDraws(t *testing.T) {
	_, logger := runMatchToCompletion(t, MatchConfig{
		Deck0:    makePaddedDeck(),
		Deck1:    makePaddedDeck(),
		MaxTurns: 4,
	}, NewScriptedAgent(t, "P1"), NewScriptedAgent(t, "P2"))

	draws := make(map[int]int)
	for _, e := range logger.EventsOfType(log.EventDraw) {
		draws[e.Turn]++
	}
	for turn := 1; turn <= 4; turn++ {
		if draws[turn] != 1 {
			t.Errorf("turn %d: expected one draw, got %d", turn, draws[turn])
		}
	}
}

func TestTurnCapEndsMatch(t *testing.T) {
	m, logger := runMatchToCompletion(t, MatchConfig{
		Deck0:    makePaddedDeck(),
		Deck1:    makePaddedDeck(),
		MaxTurns: 6,
	}, NewScriptedAgent(t, "P1"), NewScriptedAgent(t, "P2"))

	if m.Turn != 6 {
		t.Errorf("expected 6 turns, got %d", m.Turn)
	}
	// Scores are level, so the tie-break flip (always heads here) goes to P1.
	if m.Winner != 0 {
		t.Errorf("expected P1 to win the tie-break, got %d", m.Winner)
	}
	if len(logger.EventsOfType(log.EventWin)) != 1 {
		t.Error("expected exactly one win event")
	}
}

func TestNewMatchRejectsBadDecks(t *testing.T) {
	short := makePaddedDeck()[:19]
	if _, err := NewMatch(MatchConfig{Deck0: short, Deck1: makePaddedDeck()}, nil, nil); !errors.Is(err, ErrDeckSize) {
		t.Errorf("expected ErrDeckSize, got %v", err)
	}

	trainers := make([]catalog.Card, DeckSize)
	for i := range trainers {
		trainers[i] = item("Potion", fx(catalog.EffectItemHeal, "20"))
	}
	if _, err := NewMatch(MatchConfig{Deck0: makePaddedDeck(), Deck1: trainers}, nil, nil); !errors.Is(err, ErrNoBasic) {
		t.Errorf("expected ErrNoBasic, got %v", err)
	}
}

func TestMulliganUntilBasic(t *testing.T) {
	potion := item("Potion", fx(catalog.EffectItemHeal, "20"))
	deck := make([]catalog.Card, 0, DeckSize)
	deck = append(deck, fillerPokemon)
	for len(deck) < DeckSize {
		deck = append(deck, potion)
	}

	logger := log.NewMemoryLogger()
	m, err := NewMatch(MatchConfig{Deck0: deck, Deck1: makePaddedDeck(), Logger: logger, Seed: 7, MaxTurns: 1},
		NewScriptedAgent(t, "P1"), NewScriptedAgent(t, "P2"))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m.Players[0].Active == nil {
		t.Fatal("expected P1 to have an active Pokémon after mulligans")
	}
	if m.Players[0].Active.Name() != "Filler" {
		t.Errorf("expected the only Basic active, got %s", m.Players[0].Active.Name())
	}
}

// greedyAgent takes the first useful action it sees and always prefers attacking.
type greedyAgent struct{}

func (greedyAgent) ChooseAction(ctx context.Context, m *Match, actions []Action, decision Decision) (Action, error) {
	if decision == DecisionPreciseAction {
		for _, a := range actions {
			if a.Type == ActionAttack {
				return a, nil
			}
		}
		return actions[0], nil
	}
	for _, want := range []ActionType{ActionAttachEnergy, ActionEvolve, ActionPlayCard, ActionPokemonAction} {
		for _, a := range actions {
			if a.Type == want {
				return a, nil
			}
		}
	}
	return actions[0], nil
}

func (greedyAgent) ChooseCard(ctx context.Context, m *Match, options []Card, decision Decision) (int, error) {
	return 0, nil
}

func TestGreedyMatchCompletes(t *testing.T) {
	growlithe := basicPokemon("Growlithe", 70, catalog.EnergyFire,
		attack("Bite", 20, energy(catalog.EnergyColorless, 1), catalog.Effect{}),
		attack("Flare", 50, energy(catalog.EnergyFire, 2), fx(catalog.EffectCoinBonus, "20")))
	arcanine := stage1Pokemon("Arcanine ex", "Growlithe", 150, catalog.EnergyFire,
		attack("Inferno Onrush", 120, energy(catalog.EnergyFire, 3), fx(catalog.EffectSelfDamage, "20")))
	staryu := withWeakness(basicPokemon("Staryu", 60, catalog.EnergyWater,
		attack("Splash", 20, energy(catalog.EnergyWater, 1), fx(catalog.EffectDraw, "1"))), catalog.EnergyLightning)
	starmie := stage1Pokemon("Starmie", "Staryu", 90, catalog.EnergyWater,
		attack("Hydro Splash", 60, energy(catalog.EnergyWater, 2), fx(catalog.EffectInflictStatus, "confused")))
	potion := item("Potion", fx(catalog.EffectItemHeal, "20"))
	research := supporter("Professor's Research", fx(catalog.EffectTrainerDraw, "2"))

	var deck0, deck1 []catalog.Card
	for i := 0; i < 4; i++ {
		deck0 = append(deck0, growlithe, arcanine, potion, research, fillerPokemon)
		deck1 = append(deck1, staryu, starmie, potion, research, fillerPokemon)
	}

	for _, seed := range []int64{1, 2, 3, 42} {
		logger := log.NewMemoryLogger()
		res, err := RunMatch(context.Background(), MatchConfig{
			Deck0:  deck0,
			Deck1:  deck1,
			Logger: logger,
			Seed:   seed,
		}, greedyAgent{}, greedyAgent{})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if res.Winner != 0 && res.Winner != 1 && res.Winner != Tie {
			t.Errorf("seed %d: no result, winner=%d", seed, res.Winner)
		}
		if res.Turns > DefaultMaxTurns {
			t.Errorf("seed %d: %d turns exceeds the cap", seed, res.Turns)
		}
		for i, pts := range res.Points {
			if pts > WinPoints {
				t.Errorf("seed %d: P%d has %d points", seed, i+1, pts)
			}
		}
		for _, e := range logger.EventsOfType(log.EventDiagnostic) {
			t.Errorf("seed %d: unexpected diagnostic: %s", seed, e.Details)
		}
		t.Logf("seed %d: %s after %d turns (%d-%d)", seed, res.Reason, res.Turns, res.Points[0], res.Points[1])
	}
}

type failingAgent struct {
	greedyAgent
}

var errUnplugged = errors.New("unplugged")

func (failingAgent) ChooseAction(ctx context.Context, m *Match, actions []Action, decision Decision) (Action, error) {
	return Action{}, errUnplugged
}

func TestAgentErrorAbortsMatch(t *testing.T) {
	res, err := RunMatch(context.Background(), MatchConfig{
		Deck0:     makePaddedDeck(),
		Deck1:     makePaddedDeck(),
		NoShuffle: true,
		Seed:      1,
	}, failingAgent{}, failingAgent{})

	if !errors.Is(err, errUnplugged) {
		t.Fatalf("expected the agent error, got %v", err)
	}
	if res.Winner != NoWinner {
		t.Errorf("aborted match must have no winner, got %d", res.Winner)
	}
}

// offscriptAgent answers every turn prompt with an action that is never legal.
type offscriptAgent struct {
	greedyAgent
}

func (offscriptAgent) ChooseAction(ctx context.Context, m *Match, actions []Action, decision Decision) (Action, error) {
	return Action{Type: ActionAttack, Desc: "bogus"}, nil
}

// ditherAgent opens the Pokémon menu every time and then declines to pick a Pokémon.
type ditherAgent struct {
	greedyAgent
}

func (ditherAgent) ChooseAction(ctx context.Context, m *Match, actions []Action, decision Decision) (Action, error) {
	for _, a := range actions {
		if a.Type == ActionPokemonAction {
			return a, nil
		}
	}
	return actions[0], nil
}

func (ditherAgent) ChooseCard(ctx context.Context, m *Match, options []Card, decision Decision) (int, error) {
	return -1, nil
}

func TestIllegalActionIgnored(t *testing.T) {
	m, logger := newBoard(t)
	m.ctx = context.Background()
	setActive(m, 0, charm)
	def := setActive(m, 1, bulba)
	m.Agents[0] = offscriptAgent{}

	if err := m.actionLoop(); err != nil {
		t.Fatalf("actionLoop: %v", err)
	}
	if m.TurnState.HasAttacked || def.Damage != 0 {
		t.Error("an illegal action must not be executed")
	}
	diags := logger.EventsOfType(log.EventDiagnostic)
	if len(diags) != MaxActionsPerTurn+1 {
		t.Fatalf("expected %d diagnostics, got %d", MaxActionsPerTurn+1, len(diags))
	}
	if diags[0].Player != 0 {
		t.Errorf("diagnostic should name the offending player, got %d", diags[0].Player)
	}
}

func TestActionCapEndsTurn(t *testing.T) {
	m, logger := newBoard(t)
	m.ctx = context.Background()
	setActive(m, 0, basicPokemon("Rattata", 40, catalog.EnergyColorless,
		attack("Gnaw", 10, catalog.Energy{}, catalog.Effect{})))
	def := setActive(m, 1, bulba)
	m.Agents[0] = ditherAgent{}

	if err := m.actionLoop(); err != nil {
		t.Fatalf("actionLoop: %v", err)
	}
	if m.TurnState.HasAttacked || def.Damage != 0 {
		t.Error("declined menus must not attack")
	}
	diags := logger.EventsOfType(log.EventDiagnostic)
	if len(diags) != 1 {
		t.Fatalf("expected only the action limit diagnostic, got %d", len(diags))
	}
}

func TestTurnEndEmptiesEnergyPool(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	setActive(m, 1, bulba)
	m.Current = 0
	m.Players[0].EnergyPool = energy(catalog.EnergyFire, 1)

	m.turnEnd()
	if n := m.Players[0].EnergyPool.Total(); n != 0 {
		t.Errorf("expected an empty pool after the turn, got %d", n)
	}
	if m.Current != 1 {
		t.Errorf("expected the turn to pass to P2, got %d", m.Current)
	}
}

func TestUnhandledEffectsAreNoOps(t *testing.T) {
	unknown := fx(catalog.EffectKind(9999))

	t.Run("attack", func(t *testing.T) {
		m, logger := newBoard(t)
		setActive(m, 0, charm)
		def := setActive(m, 1, bulba)

		hit(m, 10, unknown)
		if def.Damage != 10 {
			t.Errorf("expected base damage to land, got %d", def.Damage)
		}
		if n := len(logger.EventsOfType(log.EventDiagnostic)); n != 1 {
			t.Errorf("expected one diagnostic, got %d", n)
		}
	})

	t.Run("ability", func(t *testing.T) {
		m, logger := newBoard(t)
		pk := setActive(m, 0, withAbility(basicPokemon("Oddity", 60, catalog.EnergyPsychic), "Glitch",
			catalog.UsageOncePerTurn, unknown))
		setActive(m, 1, bulba)
		p := m.Players[0]
		hand := len(p.Hand)

		m.UseAbility(p, pk)
		if !pk.AbilityUsed {
			t.Error("expected the ability marked used")
		}
		if len(p.Hand) != hand || m.TurnState.Ended {
			t.Error("an unhandled ability must not change the board")
		}
		if n := len(logger.EventsOfType(log.EventDiagnostic)); n != 1 {
			t.Errorf("expected one diagnostic, got %d", n)
		}
	})

	t.Run("item", func(t *testing.T) {
		m, logger := newBoard(t)
		setActive(m, 0, charm)
		setActive(m, 1, bulba)
		p := m.Players[0]

		m.playCard(p, addHand(m, 0, item("Broken", unknown)))
		if len(p.Hand) != 0 || len(p.Discard) != 1 {
			t.Errorf("expected the item discarded, hand = %d discard = %d", len(p.Hand), len(p.Discard))
		}
		if n := len(logger.EventsOfType(log.EventDiagnostic)); n != 1 {
			t.Errorf("expected one diagnostic, got %d", n)
		}
	})
}
