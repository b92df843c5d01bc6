package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseSetup
	PhaseTurnStart
	PhaseAction
	PhaseTurnEnd
	PhaseMatchOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseTurnStart:
		return "Turn Start"
	case PhaseAction:
		return "Action"
	case PhaseTurnEnd:
		return "Turn End"
	case PhaseMatchOver:
		return "Match Over"
	default:
		return "None"
	}
}

// Lifecycle tracks whether a Pokémon can still be knocked out. A knockout is the only
// InPlay → KnockedOut transition and happens at most once per entity.
type Lifecycle int

const (
	InPlay Lifecycle = iota
	KnockedOut
)

func (l Lifecycle) String() string {
	if l == KnockedOut {
		return "knocked out"
	}
	return "in play"
}

// Winner values beyond the player indices 0 and 1.
const (
	NoWinner = -1
	Tie      = 2
)

// --- Decisions ---

// Decision tags the semantics of a choice the engine asks an Agent to make.
type Decision string

const (
	DecisionTurnAction    Decision = "turn_action"
	DecisionPreciseAction Decision = "precise_action"
	DecisionActive        Decision = "active"
	DecisionBench         Decision = "bench"
	DecisionEvolveCard    Decision = "evolve_card"
	DecisionEvolveTarget  Decision = "evolve_target"
	DecisionAttachEnergy  Decision = "attach_energy"
	DecisionPlayCard      Decision = "play_card"
	DecisionPokemonAction Decision = "pokemon_action"
	DecisionRetreat       Decision = "retreat"
	DecisionReplaceActive Decision = "replace_active"
	DecisionTarget        Decision = "target"
	DecisionHealTarget    Decision = "heal_target"
	DecisionCopyAttack    Decision = "copy_attack"
	DecisionSwitchSelf    Decision = "switch_self"
	DecisionSwitchOpp     Decision = "switch_opp"
)

// --- Action types ---

type ActionType int

const (
	// Turn-level actions, offered with DecisionTurnAction.
	ActionEndTurn ActionType = iota
	ActionAttachEnergy
	ActionPlayCard
	ActionPokemonAction
	ActionEvolve

	// Per-Pokémon actions, offered with DecisionPreciseAction.
	ActionAttack
	ActionAbility
	ActionRetreat
)

func (a ActionType) String() string {
	switch a {
	case ActionEndTurn:
		return "End Turn"
	case ActionAttachEnergy:
		return "Attach Energy"
	case ActionPlayCard:
		return "Play Card"
	case ActionPokemonAction:
		return "Pokémon Action"
	case ActionEvolve:
		return "Evolve"
	case ActionAttack:
		return "Attack"
	case ActionAbility:
		return "Ability"
	case ActionRetreat:
		return "Retreat"
	default:
		return "Unknown"
	}
}

// Action represents a player action with all necessary details. Turn-level actions carry only
// Type and Player; precise actions name the Pokémon and, for attacks, the attack.
type Action struct {
	Type    ActionType
	Player  int
	Pokemon *Pokemon        // acting Pokémon (precise actions)
	Attack  *catalog.Attack // ActionAttack only
	Desc    string          // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

func turnAction(t ActionType, player int) Action {
	return Action{Type: t, Player: player, Desc: t.String()}
}

func attackAction(player int, pk *Pokemon, atk *catalog.Attack) Action {
	return Action{
		Type:    ActionAttack,
		Player:  player,
		Pokemon: pk,
		Attack:  atk,
		Desc:    fmt.Sprintf("%s: %s (%d)", pk.Name(), atk.Name, atk.Damage),
	}
}

func abilityAction(player int, pk *Pokemon) Action {
	return Action{
		Type:    ActionAbility,
		Player:  player,
		Pokemon: pk,
		Desc:    fmt.Sprintf("%s: ability %s", pk.Name(), pk.Card.Ability.Name),
	}
}

func retreatAction(player int, pk *Pokemon, cost int) Action {
	return Action{
		Type:    ActionRetreat,
		Player:  player,
		Pokemon: pk,
		Desc:    fmt.Sprintf("%s: retreat (cost %d)", pk.Name(), cost),
	}
}
