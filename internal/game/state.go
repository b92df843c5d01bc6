package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
)

const (
	DeckSize          = 20
	InitialHandSize   = 5
	MaxHandSize       = 10
	MaxBench          = 3
	WinPoints         = 3
	WeaknessBonus     = 20
	MaxMulligans      = 100
	MaxActionsPerTurn = 100
	DefaultMaxTurns   = 50
)

// Card is a runtime card: either a *Pokemon or a *CardInstance wrapping a trainer, item, or tool.
type Card interface {
	InstanceID() int
	Def() catalog.Card
	Name() string
}

// CardInstance is a non-Pokémon card in a hand, deck, or discard pile, or a tool attached to a Pokémon.
type CardInstance struct {
	ID    int
	Owner int
	Card  catalog.Card
}

func (ci *CardInstance) InstanceID() int   { return ci.ID }
func (ci *CardInstance) Def() catalog.Card { return ci.Card }
func (ci *CardInstance) Name() string      { return ci.Card.CardName() }

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(none)"
	}
	return ci.Card.CardName()
}

// effect returns the catalog effect carried by a trainer, item, or tool.
func (ci *CardInstance) effect() catalog.Effect {
	switch c := ci.Card.(type) {
	case *catalog.TrainerCard:
		return c.Effect
	case *catalog.ItemCard:
		return c.Effect
	case *catalog.ToolCard:
		return c.Effect
	}
	return catalog.Effect{}
}

// --- Pokémon ---

// Pokemon is the mutable combatant built from a catalog PokemonCard. HP is never stored:
// it is always derived from MaxHP and Damage.
type Pokemon struct {
	ID    int
	Card  *catalog.PokemonCard
	Owner int

	Damage int
	Energy catalog.Energy
	Status []catalog.Status // ordered; asleep and paralyzed never coexist
	Tool   *CardInstance

	Hiding           bool // untargetable until the owner's next turn starts
	DamageNerf       int  // incoming attack damage reduction until the owner's next turn starts
	RetreatBlocked   bool // cleared at the end of the owner's turn
	AbilityUsed      bool
	TurnsInPlay      int
	AttackLockedTurn int // cannot attack during any turn ≤ this
	LastAttack       *catalog.Attack

	State Lifecycle
}

func (pk *Pokemon) InstanceID() int   { return pk.ID }
func (pk *Pokemon) Def() catalog.Card { return pk.Card }
func (pk *Pokemon) Name() string      { return pk.Card.Name }

func (pk *Pokemon) String() string {
	if pk == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (%d/%d HP)", pk.Card.Name, pk.HP(), pk.MaxHP())
}

// MaxHP is the card's HP plus any tool bonus.
func (pk *Pokemon) MaxHP() int {
	hp := pk.Card.HP
	if n, ok := pk.toolEffect(catalog.EffectToolHP); ok {
		hp += n
	}
	return hp
}

// HP returns the remaining hit points, max(0, MaxHP-Damage).
func (pk *Pokemon) HP() int {
	return max(0, pk.MaxHP()-pk.Damage)
}

// IsEX reports whether knocking this Pokémon out is worth two points.
func (pk *Pokemon) IsEX() bool {
	return pk.Card.IsEX()
}

func (pk *Pokemon) HasStatus(s catalog.Status) bool {
	for _, st := range pk.Status {
		if st == s {
			return true
		}
	}
	return false
}

// IsPoisoned covers both poison strengths.
func (pk *Pokemon) IsPoisoned() bool {
	return pk.HasStatus(catalog.StatusPoisoned) || pk.HasStatus(catalog.StatusSuperPoisoned)
}

func (pk *Pokemon) removeStatus(s catalog.Status) bool {
	for i, st := range pk.Status {
		if st == s {
			pk.Status = append(pk.Status[:i], pk.Status[i+1:]...)
			return true
		}
	}
	return false
}

// toolEffect returns the first operand of the attached tool's effect if it has the given kind.
func (pk *Pokemon) toolEffect(kind catalog.EffectKind) (int, bool) {
	if pk.Tool == nil {
		return 0, false
	}
	eff := pk.Tool.effect()
	if eff.Kind != kind {
		return 0, false
	}
	return eff.Args.Int(0), true
}

// abilityEffect returns the Pokémon's ability effect if it has the given kind.
func (pk *Pokemon) abilityEffect(kind catalog.EffectKind) (catalog.Effect, bool) {
	if pk.Card.Ability == nil || pk.Card.Ability.Effect.Kind != kind {
		return catalog.Effect{}, false
	}
	return pk.Card.Ability.Effect, true
}

// CanAfford reports whether the attached energy pays for the attack.
func (pk *Pokemon) CanAfford(a *catalog.Attack) bool {
	return pk.Energy.Covers(a.Cost)
}

// reset returns the entity to its catalog state before it goes back into a deck.
func (pk *Pokemon) reset() {
	*pk = Pokemon{ID: pk.ID, Card: pk.Card, Owner: pk.Owner}
}

// --- Player ---

// Player represents one player's entire state.
type Player struct {
	Index       int
	Hand        []Card
	Deck        []Card // top of deck is last element (pop from end)
	Discard     []Card
	Active      *Pokemon
	Bench       []*Pokemon
	Points      int
	EnergyPool  catalog.Energy
	EnergyTypes []catalog.EnergyType // producible types derived from the deck
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DrawCard moves the top card of the deck into the hand. It returns nil when the deck is empty
// or the hand is full; in the latter case the card stays on the deck.
func (p *Player) DrawCard() Card {
	if len(p.Deck) == 0 || len(p.Hand) >= MaxHandSize {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, card)
	return card
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card Card) bool {
	for i, c := range p.Hand {
		if c.InstanceID() == card.InstanceID() {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFromDeck removes a card from the deck by instance ID.
func (p *Player) RemoveFromDeck(card Card) bool {
	for i, c := range p.Deck {
		if c.InstanceID() == card.InstanceID() {
			p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)
			return true
		}
	}
	return false
}

// InPlay returns the active Pokémon (if any) followed by the bench.
func (p *Player) InPlay() []*Pokemon {
	result := make([]*Pokemon, 0, 1+len(p.Bench))
	if p.Active != nil {
		result = append(result, p.Active)
	}
	return append(result, p.Bench...)
}

// HasPokemonInPlay reports whether the active slot or the bench is occupied.
func (p *Player) HasPokemonInPlay() bool {
	return p.Active != nil || len(p.Bench) > 0
}

func (p *Player) BenchFull() bool {
	return len(p.Bench) >= MaxBench
}

// benchIndex returns the bench slot holding pk, or -1.
func (p *Player) benchIndex(pk *Pokemon) int {
	for i, b := range p.Bench {
		if b.ID == pk.ID {
			return i
		}
	}
	return -1
}

// removeFromPlay takes pk out of the active slot or the bench and reports whether it was active.
func (p *Player) removeFromPlay(pk *Pokemon) bool {
	if p.Active != nil && p.Active.ID == pk.ID {
		p.Active = nil
		return true
	}
	if i := p.benchIndex(pk); i >= 0 {
		p.Bench = append(p.Bench[:i], p.Bench[i+1:]...)
	}
	return false
}

// replaceInPlay puts next into old's slot.
func (p *Player) replaceInPlay(old, next *Pokemon) {
	if p.Active != nil && p.Active.ID == old.ID {
		p.Active = next
		return
	}
	if i := p.benchIndex(old); i >= 0 {
		p.Bench[i] = next
	}
}

// basicsInHand returns hand Pokémon that can be put into play directly.
func (p *Player) basicsInHand() []Card {
	var result []Card
	for _, c := range p.Hand {
		if pk, ok := c.(*Pokemon); ok && pk.Card.Stage.IsBasic() {
			result = append(result, c)
		}
	}
	return result
}

// --- Turn state ---

// DamageBonus is a turn-scoped attack damage bonus. A Type of catalog.EnergyNone and empty
// Names apply to every attacker.
type DamageBonus struct {
	Amount int
	Type   catalog.EnergyType
	Names  []string
}

func (b DamageBonus) appliesTo(pk *Pokemon) bool {
	if b.Type != catalog.EnergyNone && pk.Card.Type != b.Type {
		return false
	}
	if len(b.Names) == 0 {
		return true
	}
	for _, n := range b.Names {
		if n == pk.Card.Name {
			return true
		}
	}
	return false
}

// TurnState holds the per-turn flags, reset at the start of every turn.
type TurnState struct {
	HasAttachedEnergy  bool
	HasPlayedSupporter bool
	HasAttacked        bool
	HasRetreated       bool
	Ended              bool // an ability ended the action loop
	RetreatReduction   int
	BonusDamage        []DamageBonus
	Evolved            map[int]bool // Pokémon IDs that evolved or were evolved this turn
}

func newTurnState() TurnState {
	return TurnState{Evolved: make(map[int]bool)}
}

// GlobalEffect is a turn-scoped slot naming the affected player. It expires at the end of that
// player's turn.
type GlobalEffect struct {
	Amount int
	Player int
}

// slotAmount returns the slot's magnitude if it is set and affects player.
func slotAmount(s *GlobalEffect, player int) int {
	if s == nil || s.Player != player {
		return 0
	}
	return s.Amount
}
