package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// execute carries out a legal turn-level action. Follow-up choices that the agent declines
// leave the state untouched.
func (m *Match) execute(p *Player, a Action) {
	switch a.Type {
	case ActionAttachEnergy:
		m.executeAttachEnergy(p)
	case ActionPlayCard:
		if c := m.chooseCard(p, m.PlayableCards(p), DecisionPlayCard); c != nil {
			m.playCard(p, c)
		}
	case ActionEvolve:
		if c := m.chooseCard(p, m.EvolvableCards(p), DecisionEvolveCard); c != nil {
			m.evolveWith(p, c.(*Pokemon))
		}
	case ActionPokemonAction:
		m.executePokemonAction(p)
	}
}

func (m *Match) executeAttachEnergy(p *Player) {
	target := m.choosePokemon(p, p.InPlay(), DecisionAttachEnergy)
	if target == nil {
		return
	}
	for t, n := range p.EnergyPool {
		if n > 0 {
			p.EnergyPool[t]--
			m.attachEnergy(p, target, catalog.EnergyType(t), 1)
			break
		}
	}
	m.TurnState.HasAttachedEnergy = true
}

func (m *Match) playCard(p *Player, c Card) {
	phase := m.Phase.String()
	switch c := c.(type) {
	case *Pokemon:
		if !c.Card.Stage.IsBasic() {
			m.evolveWith(p, c)
			return
		}
		if p.Active == nil {
			p.RemoveFromHand(c)
			p.Active = c
			m.log(log.NewPlaceActiveEvent(m.Turn, phase, p.Index, c.Name()))
			return
		}
		m.putOnBench(p, c)

	case *CardInstance:
		switch def := c.Card.(type) {
		case *catalog.TrainerCard:
			p.RemoveFromHand(c)
			if def.Supporter {
				m.TurnState.HasPlayedSupporter = true
			}
			m.log(log.NewPlayCardEvent(m.Turn, phase, p.Index, c.Name(), trainerKind(def)))
			m.resolveCardEffect(p, c, def.Effect)
			p.Discard = append(p.Discard, c)
		case *catalog.ItemCard:
			p.RemoveFromHand(c)
			m.log(log.NewPlayCardEvent(m.Turn, phase, p.Index, c.Name(), "Item"))
			m.resolveCardEffect(p, c, def.Effect)
			p.Discard = append(p.Discard, c)
		case *catalog.ToolCard:
			target := m.choosePokemon(p, m.toolTargets(p), DecisionTarget)
			if target == nil {
				return
			}
			p.RemoveFromHand(c)
			target.Tool = c
			m.log(log.NewToolAttachedEvent(m.Turn, phase, p.Index, c.Name(), target.Name()))
		}
	}
}

func trainerKind(def *catalog.TrainerCard) string {
	if def.Supporter {
		return "Supporter"
	}
	return "Trainer"
}

// resolveCardEffect dispatches a trainer or item effect. A kind without a handler, or one whose
// precondition no longer holds, is a no-op with a diagnostic.
func (m *Match) resolveCardEffect(p *Player, card *CardInstance, eff catalog.Effect) {
	h, ok := cardEffects[eff.Kind]
	if !ok || h.Resolve == nil {
		m.diagnostic(p.Index, "no handler for effect %s on %s", eff.Kind, card.Name())
		return
	}
	opp := m.Opponent(p)
	if h.CanPlay != nil && !h.CanPlay(m, p, opp, eff.Args) {
		m.diagnostic(p.Index, "%s has nothing to do", card.Name())
		return
	}
	h.Resolve(m, p, opp, card, eff.Args)
}

func (m *Match) evolveWith(p *Player, evo *Pokemon) {
	target := m.choosePokemon(p, m.EvolutionTargets(p, evo), DecisionEvolveTarget)
	if target == nil {
		return
	}
	m.Evolve(p, target, evo)
}

// Evolve puts evo from p's hand into pre's slot. evo inherits damage, energy, status, and tool;
// pre is reset and shuffled back into the deck.
func (m *Match) Evolve(p *Player, pre, evo *Pokemon) {
	p.RemoveFromHand(evo)

	evo.Damage = pre.Damage
	evo.Energy = pre.Energy
	evo.Status = append([]catalog.Status(nil), pre.Status...)
	evo.Tool = pre.Tool
	evo.TurnsInPlay = 0
	evo.State = InPlay
	p.replaceInPlay(pre, evo)

	m.TurnState.Evolved[pre.ID] = true
	m.TurnState.Evolved[evo.ID] = true
	m.log(log.NewEvolveEvent(m.Turn, m.Phase.String(), p.Index, pre.Name(), evo.Name()))

	pre.reset()
	p.Deck = append(p.Deck, pre)
	m.shuffle(p)
}

// executePokemonAction asks which Pokémon acts, then which of its precise actions to take.
func (m *Match) executePokemonAction(p *Player) {
	pk := m.choosePokemon(p, m.ActionablePokemon(p), DecisionPokemonAction)
	if pk == nil {
		return
	}
	actions := m.PreciseActions(p, pk)
	chosen, err := m.Agents[p.Index].ChooseAction(m.ctx, m, actions, DecisionPreciseAction)
	if err != nil {
		m.err = fmt.Errorf("player %d precise action: %w", p.Index+1, err)
		return
	}
	if !containsAction(actions, chosen) {
		m.diagnostic(p.Index, "illegal action %q for %s ignored", chosen.String(), pk.Name())
		return
	}

	switch chosen.Type {
	case ActionAttack:
		m.Attack(p, pk, chosen.Attack)
	case ActionAbility:
		m.UseAbility(p, pk)
	case ActionRetreat:
		m.retreat(p)
	}
}

func (m *Match) retreat(p *Player) {
	old := p.Active
	cost := m.RetreatCost(p, old)
	next := m.choosePokemon(p, p.Bench, DecisionRetreat)
	if next == nil {
		return
	}
	m.payRetreat(old, cost)
	m.switchActive(p, next)
	m.TurnState.HasRetreated = true
	m.log(log.NewRetreatEvent(m.Turn, m.Phase.String(), p.Index, old.Name(), next.Name(), cost))
}

// UseAbility activates pk's once-per-turn ability.
func (m *Match) UseAbility(p *Player, pk *Pokemon) {
	ab := pk.Card.Ability
	pk.AbilityUsed = true
	m.log(log.NewAbilityEvent(m.Turn, m.Phase.String(), p.Index, pk.Name(), ab.Name))
	m.resolveAbility(p, ab, pk)
	if ab.Effect.Kind.Info().EndsTurn {
		m.TurnState.Ended = true
	}
}

func (m *Match) resolveAbility(p *Player, ab *catalog.Ability, pk *Pokemon) {
	h, ok := abilityHandlers[ab.Effect.Kind]
	if !ok || h.Resolve == nil {
		m.diagnostic(p.Index, "no handler for ability effect %s on %s", ab.Effect.Kind, pk.Name())
		return
	}
	h.Resolve(m, p, m.Opponent(p), ab, pk)
}

// checkupEffects fires the mover's checkup abilities and tool heals at the end of the turn.
func (m *Match) checkupEffects(p *Player) {
	for _, pk := range p.InPlay() {
		if pk.State != InPlay {
			continue
		}
		if ab := pk.Card.Ability; ab != nil && ab.Usage == catalog.UsageCheckup {
			m.log(log.NewAbilityEvent(m.Turn, m.Phase.String(), p.Index, pk.Name(), ab.Name))
			m.resolveAbility(p, ab, pk)
		}
		if n, ok := pk.toolEffect(catalog.EffectToolCheckupHeal); ok {
			m.Heal(pk, n)
		}
		if m.Over() {
			return
		}
	}
}
