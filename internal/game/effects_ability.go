package game

import (
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
)

func init() {
	abilityHandlers = map[catalog.EffectKind]abilityEffect{
		catalog.EffectAbilityDraw: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return len(p.Deck) > 0 && len(p.Hand) < MaxHandSize
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.drawCards(p, a.Effect.Args.Int(0))
			},
		},
		catalog.EffectAbilityHealActive: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return p.Active != nil && p.Active.Damage > 0
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.Heal(p.Active, a.Effect.Args.Int(0))
			},
		},
		catalog.EffectAbilityHealAllCheckup: {
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.healAll(p, a.Effect.Args.Int(0))
			},
		},
		catalog.EffectAbilityDamageOppActive: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return opp.Active != nil
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.ApplyDamage(opp.Active, a.Effect.Args.Int(0), nil)
			},
		},
		catalog.EffectAbilityDamageOppCheckup: {
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				if p.Active == pk && opp.Active != nil {
					m.ApplyDamage(opp.Active, a.Effect.Args.Int(0), nil)
				}
			},
		},
		catalog.EffectAbilityAttachEnergy: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return p.Active != nil
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.attachEnergy(p, p.Active, a.Effect.Args.Energy(0), 1)
			},
		},
		catalog.EffectAbilitySwitchOppActive: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return opp.Active != nil && len(opp.Bench) > 0
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				if next := m.mustChoosePokemon(p, opp.Bench, DecisionSwitchOpp); next != nil {
					m.switchIn(p.Index, opp, next)
				}
			},
		},
		catalog.EffectAbilityStatusOpp: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return opp.Active != nil
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.applyStatus(opp.Active, a.Effect.Args.Status(0))
			},
		},
		catalog.EffectAbilitySearchBasic: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return len(p.Hand) < MaxHandSize && deckHas(p, isBasicPokemon)
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.searchToHand(p, isBasicPokemon, a.Name)
			},
		},
		catalog.EffectAbilitySwitchSelf: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return p.benchIndex(pk) >= 0
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.switchIn(p.Index, p, pk)
			},
		},
		catalog.EffectAbilityRest: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return p.Active == pk && pk.Damage > 0
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				m.Heal(pk, pk.Damage)
				m.applyStatus(pk, catalog.StatusAsleep)
			},
		},
		catalog.EffectAbilityMoveEnergy: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return p.Active != nil && len(holdingEnergy(p.Bench, pk.Card.Ability.Effect.Args.Energy(0))) > 0
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				t := a.Effect.Args.Energy(0)
				if from := m.mustChoosePokemon(p, holdingEnergy(p.Bench, t), DecisionTarget); from != nil {
					m.moveEnergy(from, p.Active, t, 1)
				}
			},
		},
		catalog.EffectAbilityCoinHeal: {
			CanUse: func(m *Match, p, opp *Player, pk *Pokemon) bool {
				return p.Active != nil && p.Active.Damage > 0
			},
			Resolve: func(m *Match, p, opp *Player, a *catalog.Ability, pk *Pokemon) {
				if m.FlipCoin(p.Index, a.Name) {
					m.Heal(p.Active, a.Effect.Args.Int(0))
				}
			},
		},
	}
}
