package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 11 chars for alignment
	for len(phase) < 11 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Turn Start",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, PlayerName(player)),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", PlayerName(player), cardName),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their deck", PlayerName(player)),
	}
}

func NewMulliganEvent(turn int, phase string, player int, attempt int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventMulligan,
		Amount:  attempt,
		Details: fmt.Sprintf("%s has no Basic Pokémon in hand, mulligan #%d", PlayerName(player), attempt),
	}
}

func NewCoinFlipEvent(turn int, phase string, player int, heads bool, reason string) GameEvent {
	result := "tails"
	if heads {
		result = "heads"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCoinFlip,
		Details: fmt.Sprintf("%s flips a coin for %s: %s", PlayerName(player), reason, result),
	}
}

func NewEnergyGeneratedEvent(turn int, phase string, player int, energy string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEnergyGenerated,
		Amount:  1,
		Details: fmt.Sprintf("%s generates %s energy", PlayerName(player), energy),
	}
}

func NewAttachEnergyEvent(turn int, phase string, player int, energy string, amount int, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttachEnergy,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s attaches %d %s energy to %s", PlayerName(player), amount, energy, target),
	}
}

func NewDiscardEnergyEvent(turn int, phase string, player int, energy string, amount int, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscardEnergy,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%d %s energy is discarded from %s", amount, energy, target),
	}
}

func NewPlaceActiveEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlaceActive,
		Card:    cardName,
		Details: fmt.Sprintf("%s places %s as Active Pokémon", PlayerName(player), cardName),
	}
}

func NewPlaceBenchEvent(turn int, phase string, player int, cardName string, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlaceBench,
		Card:    cardName,
		Amount:  slot,
		Details: fmt.Sprintf("%s places %s on Bench %d", PlayerName(player), cardName, slot+1),
	}
}

func NewEvolveEvent(turn int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEvolve,
		Card:    to,
		Target:  from,
		Details: fmt.Sprintf("%s evolves %s into %s", PlayerName(player), from, to),
	}
}

func NewPlayCardEvent(turn int, phase string, player int, cardName string, kind string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayCard,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s %s", PlayerName(player), kind, cardName),
	}
}

func NewAttackEvent(turn int, player int, attacker, attack, defender string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventAttack,
		Card:    attacker,
		Target:  defender,
		Details: fmt.Sprintf("%s's %s uses %s → %s", PlayerName(player), attacker, attack, defender),
	}
}

func NewAttackFailedEvent(turn int, player int, attacker, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Action",
		Player:  player,
		Type:    EventAttackFailed,
		Card:    attacker,
		Details: fmt.Sprintf("%s's attack fails (%s)", attacker, reason),
	}
}

func NewDamageEvent(turn int, phase string, player int, target string, amount, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDamage,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s takes %d damage (%d HP left)", target, amount, remaining),
	}
}

func NewHealEvent(turn int, phase string, player int, target string, amount, hp int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHeal,
		Target:  target,
		Amount:  amount,
		Details: fmt.Sprintf("%s heals %d (%d HP)", target, amount, hp),
	}
}

func NewStatusEvent(turn int, phase string, player int, target, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatus,
		Target:  target,
		Details: fmt.Sprintf("%s is now %s", target, status),
	}
}

func NewStatusCuredEvent(turn int, phase string, player int, target, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatusCured,
		Target:  target,
		Details: fmt.Sprintf("%s is no longer %s", target, status),
	}
}

func NewAbilityEvent(turn int, phase string, player int, cardName, ability string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAbility,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s uses ability %s", PlayerName(player), cardName, ability),
	}
}

func NewRetreatEvent(turn int, phase string, player int, from, to string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRetreat,
		Card:    from,
		Target:  to,
		Amount:  cost,
		Details: fmt.Sprintf("%s retreats %s for %d energy, %s is now Active", PlayerName(player), from, cost, to),
	}
}

func NewSwitchEvent(turn int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSwitch,
		Card:    from,
		Target:  to,
		Details: fmt.Sprintf("%s switches %s with %s", PlayerName(player), from, to),
	}
}

func NewToolAttachedEvent(turn int, phase string, player int, tool, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventToolAttached,
		Card:    tool,
		Target:  target,
		Details: fmt.Sprintf("%s attaches %s to %s", PlayerName(player), tool, target),
	}
}

func NewToolDiscardedEvent(turn int, phase string, player int, tool, target string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventToolDiscarded,
		Card:    tool,
		Target:  target,
		Details: fmt.Sprintf("%s is discarded from %s", tool, target),
	}
}

func NewKnockoutEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventKnockout,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is knocked out", PlayerName(player), cardName),
	}
}

func NewPrizeEvent(turn int, phase string, player int, points, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPrize,
		Amount:  points,
		Details: fmt.Sprintf("%s takes %d point(s) (%d total)", PlayerName(player), points, total),
	}
}

func NewAddToHandEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAddToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s is added to %s's hand (%s)", cardName, PlayerName(player), reason),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", PlayerName(player), cardName),
	}
}

func NewEffectEvent(turn int, phase string, player int, cardName string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffect,
		Card:    cardName,
		Details: details,
	}
}

func NewDiagnosticEvent(turn int, phase string, player int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiagnostic,
		Details: "[diagnostic] " + details,
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", PlayerName(winner), reason),
	}
}

func NewTieEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventTie,
		Details: fmt.Sprintf("Match ends in a tie (%s)", reason),
	}
}
