package game

import "github.com/peterkuimelis/tcgpocket/internal/catalog"

// LegalActions returns the turn-level actions open to the current player. It is recomputed on
// every call and always contains ActionEndTurn.
func (m *Match) LegalActions() []Action {
	p := m.CurrentPlayer()
	actions := []Action{turnAction(ActionEndTurn, p.Index)}

	if m.canAttachEnergy(p) {
		actions = append(actions, turnAction(ActionAttachEnergy, p.Index))
	}
	if len(m.PlayableCards(p)) > 0 {
		actions = append(actions, turnAction(ActionPlayCard, p.Index))
	}
	if len(m.ActionablePokemon(p)) > 0 {
		actions = append(actions, turnAction(ActionPokemonAction, p.Index))
	}
	if len(m.EvolvableCards(p)) > 0 {
		actions = append(actions, turnAction(ActionEvolve, p.Index))
	}
	return actions
}

func (m *Match) canAttachEnergy(p *Player) bool {
	return !m.TurnState.HasAttachedEnergy && p.EnergyPool.Total() > 0 && p.HasPokemonInPlay()
}

// PlayableCards returns the hand cards whose play condition currently holds.
func (m *Match) PlayableCards(p *Player) []Card {
	var result []Card
	for _, c := range p.Hand {
		if m.canPlay(p, c) {
			result = append(result, c)
		}
	}
	return result
}

func (m *Match) canPlay(p *Player, c Card) bool {
	switch c := c.(type) {
	case *Pokemon:
		if c.Card.Stage.IsBasic() {
			return p.Active == nil || !p.BenchFull()
		}
		return len(m.EvolutionTargets(p, c)) > 0
	case *CardInstance:
		switch def := c.Card.(type) {
		case *catalog.TrainerCard:
			if def.Supporter && (m.TurnState.HasPlayedSupporter || slotAmount(m.SupporterPrevention, p.Index) > 0) {
				return false
			}
			return m.cardEffectPlayable(p, def.Effect)
		case *catalog.ItemCard:
			return m.cardEffectPlayable(p, def.Effect)
		case *catalog.ToolCard:
			return len(m.toolTargets(p)) > 0
		}
	}
	return false
}

// cardEffectPlayable consults the effect's precondition, the same one its resolution relies on.
// A kind with no handler stays playable and resolves as a logged no-op.
func (m *Match) cardEffectPlayable(p *Player, eff catalog.Effect) bool {
	h, ok := cardEffects[eff.Kind]
	if !ok || h.CanPlay == nil {
		return true
	}
	return h.CanPlay(m, p, m.Opponent(p), eff.Args)
}

// EvolutionTargets returns the in-play Pokémon evo can evolve from right now. Evolution is closed
// during the first two turns of the match, and a target must have been in play since before
// this turn and not have evolved this turn.
func (m *Match) EvolutionTargets(p *Player, evo *Pokemon) []*Pokemon {
	if m.Turn < 3 || evo.Card.Stage.IsBasic() {
		return nil
	}
	var result []*Pokemon
	for _, pk := range p.InPlay() {
		if pk.Card.Name == evo.Card.EvolvesFrom && pk.TurnsInPlay >= 1 && !m.TurnState.Evolved[pk.ID] {
			result = append(result, pk)
		}
	}
	return result
}

// EvolvableCards returns hand evolution cards that have at least one target.
func (m *Match) EvolvableCards(p *Player) []Card {
	var result []Card
	for _, c := range p.Hand {
		if pk, ok := c.(*Pokemon); ok && !pk.Card.Stage.IsBasic() && len(m.EvolutionTargets(p, pk)) > 0 {
			result = append(result, c)
		}
	}
	return result
}

func (m *Match) toolTargets(p *Player) []*Pokemon {
	var result []*Pokemon
	for _, pk := range p.InPlay() {
		if pk.Tool == nil {
			result = append(result, pk)
		}
	}
	return result
}

// ActionablePokemon returns p's Pokémon that have at least one precise action.
func (m *Match) ActionablePokemon(p *Player) []*Pokemon {
	var result []*Pokemon
	for _, pk := range p.InPlay() {
		if len(m.PreciseActions(p, pk)) > 0 {
			result = append(result, pk)
		}
	}
	return result
}

// PreciseActions returns pk's affordable attacks (active only), its usable ability, and retreat
// (active only).
func (m *Match) PreciseActions(p *Player, pk *Pokemon) []Action {
	var actions []Action
	isActive := p.Active != nil && p.Active.ID == pk.ID
	if isActive && m.canAttack(p, pk) {
		for _, a := range pk.Card.Attacks {
			if pk.CanAfford(a) {
				actions = append(actions, attackAction(p.Index, pk, a))
			}
		}
	}
	if m.canUseAbility(p, pk) {
		actions = append(actions, abilityAction(p.Index, pk))
	}
	if isActive {
		if cost, ok := m.canRetreat(p); ok {
			actions = append(actions, retreatAction(p.Index, pk, cost))
		}
	}
	return actions
}

// canAttack checks everything except energy: once per turn, no sleep or paralysis, and no
// attack lock on the Pokémon or the player.
func (m *Match) canAttack(p *Player, pk *Pokemon) bool {
	if m.TurnState.HasAttacked || p.Active == nil || p.Active.ID != pk.ID {
		return false
	}
	if pk.HasStatus(catalog.StatusAsleep) || pk.HasStatus(catalog.StatusParalyzed) {
		return false
	}
	if pk.AttackLockedTurn >= m.Turn || slotAmount(m.AttackPrevention, p.Index) > 0 {
		return false
	}
	return m.Opponent(p).Active != nil
}

func (m *Match) canUseAbility(p *Player, pk *Pokemon) bool {
	ab := pk.Card.Ability
	if ab == nil || ab.Usage != catalog.UsageOncePerTurn || pk.AbilityUsed {
		return false
	}
	h, ok := abilityHandlers[ab.Effect.Kind]
	if !ok || h.CanUse == nil {
		return true
	}
	return h.CanUse(m, p, m.Opponent(p), pk)
}

// RetreatCost returns the active Pokémon's retreat cost after this turn's reduction, its tool,
// and retreat-cost abilities of its owner's Pokémon.
func (m *Match) RetreatCost(p *Player, pk *Pokemon) int {
	cost := pk.Card.Retreat - m.TurnState.RetreatReduction
	if n, ok := pk.toolEffect(catalog.EffectToolRetreat); ok {
		cost -= n
	}
	for _, other := range p.InPlay() {
		if eff, ok := other.abilityEffect(catalog.EffectRetreatCostReduction); ok {
			cost -= eff.Args.Int(0)
		}
	}
	return max(0, cost)
}

// canRetreat reports whether the active Pokémon may retreat now and at what cost.
func (m *Match) canRetreat(p *Player) (int, bool) {
	pk := p.Active
	if pk == nil || len(p.Bench) == 0 || m.TurnState.HasRetreated || pk.RetreatBlocked {
		return 0, false
	}
	if pk.HasStatus(catalog.StatusAsleep) || pk.HasStatus(catalog.StatusParalyzed) {
		return 0, false
	}
	cost := m.RetreatCost(p, pk)
	if pk.Energy.Total() < cost {
		return 0, false
	}
	return cost, true
}
