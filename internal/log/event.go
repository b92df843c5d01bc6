package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventShuffle
	EventMulligan
	EventCoinFlip
	EventEnergyGenerated
	EventAttachEnergy
	EventDiscardEnergy
	EventPlaceActive
	EventPlaceBench
	EventEvolve
	EventPlayCard
	EventAttack
	EventAttackFailed
	EventDamage
	EventHeal
	EventStatus
	EventStatusCured
	EventAbility
	EventRetreat
	EventSwitch
	EventToolAttached
	EventToolDiscarded
	EventKnockout
	EventPrize
	EventAddToHand
	EventDiscard
	EventEffect
	EventDiagnostic // engine notice: missing handler, illegal agent choice
	EventWin
	EventTie
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventMulligan:
		return "Mulligan"
	case EventCoinFlip:
		return "CoinFlip"
	case EventEnergyGenerated:
		return "EnergyGenerated"
	case EventAttachEnergy:
		return "AttachEnergy"
	case EventDiscardEnergy:
		return "DiscardEnergy"
	case EventPlaceActive:
		return "PlaceActive"
	case EventPlaceBench:
		return "PlaceBench"
	case EventEvolve:
		return "Evolve"
	case EventPlayCard:
		return "PlayCard"
	case EventAttack:
		return "Attack"
	case EventAttackFailed:
		return "AttackFailed"
	case EventDamage:
		return "Damage"
	case EventHeal:
		return "Heal"
	case EventStatus:
		return "Status"
	case EventStatusCured:
		return "StatusCured"
	case EventAbility:
		return "Ability"
	case EventRetreat:
		return "Retreat"
	case EventSwitch:
		return "Switch"
	case EventToolAttached:
		return "ToolAttached"
	case EventToolDiscarded:
		return "ToolDiscarded"
	case EventKnockout:
		return "Knockout"
	case EventPrize:
		return "Prize"
	case EventAddToHand:
		return "AddToHand"
	case EventDiscard:
		return "Discard"
	case EventEffect:
		return "Effect"
	case EventDiagnostic:
		return "Diagnostic"
	case EventWin:
		return "Win"
	case EventTie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 during setup)
	Phase   string    // current phase name (e.g. "Action")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Target  string    // affected card name (damage, heal, status)
	Amount  int       // damage, heal, energy count, or points
	Details string    // human-readable detail string
}
