package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// attackHandler resolves an attack effect and returns the (possibly replaced) damage.
type attackHandler func(m *Match, c *AttackCall) int

// abilityEffect is an ability handler plus its optional usability precondition.
type abilityEffect struct {
	CanUse  func(m *Match, p, opp *Player, pk *Pokemon) bool
	Resolve func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon)
}

// cardEffect is a trainer or item handler. CanPlay is the single precondition consulted both by
// legality and by resolveCardEffect; nil means always playable.
type cardEffect struct {
	CanPlay func(m *Match, p, opp *Player, args catalog.Args) bool
	Resolve func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args)
}

// Registries, one per category. Passive kinds have no entry: they are resolved inline where
// they apply (damage pipeline, ApplyDamage, retreat cost, status infliction, MaxHP).
var (
	attackHandlers  map[catalog.EffectKind]attackHandler
	abilityHandlers map[catalog.EffectKind]abilityEffect
	cardEffects     map[catalog.EffectKind]cardEffect
)

// HasHandler reports whether a non-passive effect kind is implemented by the interpreter.
func HasHandler(k catalog.EffectKind) bool {
	switch k.Info().Category {
	case catalog.CategoryAttack:
		_, ok := attackHandlers[k]
		return ok
	case catalog.CategoryAbility:
		_, ok := abilityHandlers[k]
		return ok
	case catalog.CategoryTrainer, catalog.CategoryItem:
		_, ok := cardEffects[k]
		return ok
	}
	return false
}

// CheckHandlers reports every effect used by the catalog that the interpreter cannot resolve.
func CheckHandlers(c *catalog.Catalog) []string {
	var missing []string
	check := func(owner string, eff catalog.Effect) {
		if eff.IsZero() || eff.Kind.Info().Passive || HasHandler(eff.Kind) {
			return
		}
		missing = append(missing, fmt.Sprintf("%s: no handler for %s", owner, eff.Kind))
	}
	for _, a := range c.Attacks {
		check("attack "+a.ID, a.Effect)
	}
	for _, a := range c.Abilities {
		check("ability "+a.ID, a.Effect)
	}
	for _, t := range c.Trainers {
		check("trainer "+t.ID, t.Effect)
	}
	for _, i := range c.Items {
		check("item "+i.ID, i.Effect)
	}
	return missing
}

// --- Shared effect helpers ---

func (m *Match) note(player int, card, details string) {
	m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), player, card, details))
}

// healAll heals every in-play Pokémon of p.
func (m *Match) healAll(p *Player, n int) {
	for _, pk := range p.InPlay() {
		m.Heal(pk, n)
	}
}

func damaged(pks []*Pokemon) []*Pokemon {
	var result []*Pokemon
	for _, pk := range pks {
		if pk.Damage > 0 {
			result = append(result, pk)
		}
	}
	return result
}

func anyDamaged(pks []*Pokemon) bool {
	return len(damaged(pks)) > 0
}

func ofType(pks []*Pokemon, t catalog.EnergyType) []*Pokemon {
	var result []*Pokemon
	for _, pk := range pks {
		if pk.Card.Type == t {
			result = append(result, pk)
		}
	}
	return result
}

func named(pks []*Pokemon, names []string) []*Pokemon {
	var result []*Pokemon
	for _, pk := range pks {
		for _, n := range names {
			if pk.Card.Name == n {
				result = append(result, pk)
				break
			}
		}
	}
	return result
}

func holdingEnergy(pks []*Pokemon, t catalog.EnergyType) []*Pokemon {
	var result []*Pokemon
	for _, pk := range pks {
		if pk.Energy[t] > 0 {
			result = append(result, pk)
		}
	}
	return result
}

func isBasicPokemon(c Card) bool {
	pk, ok := c.(*Pokemon)
	return ok && pk.Card.Stage.IsBasic()
}

func isEvolutionPokemon(c Card) bool {
	pk, ok := c.(*Pokemon)
	return ok && !pk.Card.Stage.IsBasic()
}

func deckHas(p *Player, match func(Card) bool) bool {
	for _, c := range p.Deck {
		if match(c) {
			return true
		}
	}
	return false
}

// randomFromDeck removes and returns a random deck card satisfying match, or nil.
func (m *Match) randomFromDeck(p *Player, match func(Card) bool) Card {
	var candidates []Card
	for _, c := range p.Deck {
		if match(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	c := candidates[m.rng.Intn(len(candidates))]
	p.RemoveFromDeck(c)
	return c
}

// searchToHand moves a random matching deck card into the hand.
func (m *Match) searchToHand(p *Player, match func(Card) bool, reason string) {
	if len(p.Hand) >= MaxHandSize {
		return
	}
	c := m.randomFromDeck(p, match)
	if c == nil {
		return
	}
	p.Hand = append(p.Hand, c)
	m.log(log.NewAddToHandEvent(m.Turn, m.Phase.String(), p.Index, c.Name(), reason))
	m.shuffle(p)
}

// benchFromDeck puts a random Basic Pokémon from the deck onto the bench.
func (m *Match) benchFromDeck(p *Player) {
	if p.BenchFull() {
		return
	}
	c := m.randomFromDeck(p, isBasicPokemon)
	if c == nil {
		return
	}
	pk := c.(*Pokemon)
	p.Bench = append(p.Bench, pk)
	m.log(log.NewPlaceBenchEvent(m.Turn, m.Phase.String(), p.Index, pk.Name(), len(p.Bench)-1))
	m.shuffle(p)
}

// reshuffleHand shuffles p's hand into the deck and draws n.
func (m *Match) reshuffleHand(p *Player, n int) {
	p.Deck = append(p.Deck, p.Hand...)
	p.Hand = nil
	m.shuffle(p)
	m.drawCards(p, n)
}

// discardRandomFromHand discards n random hand cards.
func (m *Match) discardRandomFromHand(p *Player, n int) {
	for i := 0; i < n && len(p.Hand) > 0; i++ {
		c := p.Hand[m.rng.Intn(len(p.Hand))]
		p.RemoveFromHand(c)
		p.Discard = append(p.Discard, c)
		m.log(log.NewDiscardEvent(m.Turn, m.Phase.String(), p.Index, c.Name()))
	}
}

// moveEnergy moves up to n energy of type t between two Pokémon.
func (m *Match) moveEnergy(from, to *Pokemon, t catalog.EnergyType, n int) {
	moved := min(n, from.Energy[t])
	if moved <= 0 || to == nil {
		return
	}
	from.Energy[t] -= moved
	to.Energy[t] += moved
	m.note(from.Owner, from.Name(), fmt.Sprintf("%d %s energy moves from %s to %s", moved, t, from.Name(), to.Name()))
}

// setSlot sets a global slot against player, stacking with an existing slot on the same player.
func setSlot(slot **GlobalEffect, amount, player int) {
	if *slot != nil && (*slot).Player == player {
		(*slot).Amount += amount
		return
	}
	*slot = &GlobalEffect{Amount: amount, Player: player}
}
