package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

func init() {
	cardEffects = map[catalog.EffectKind]cardEffect{
		catalog.EffectTrainerDraw: {
			CanPlay: canDraw,
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.drawCards(p, args.Int(0))
			},
		},
		catalog.EffectTrainerHealType: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return anyDamaged(ofType(p.InPlay(), args.Energy(0)))
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				targets := damaged(ofType(p.InPlay(), args.Energy(0)))
				m.Heal(m.mustChoosePokemon(p, targets, DecisionHealTarget), args.Int(1))
			},
		},
		catalog.EffectTrainerSwitchOpp: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return opp.Active != nil && len(opp.Bench) > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				if next := m.mustChoosePokemon(opp, opp.Bench, DecisionSwitchOpp); next != nil {
					m.switchIn(p.Index, opp, next)
				}
			},
		},
		catalog.EffectTrainerBonusDamage: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.addBonus(p, card, DamageBonus{Amount: args.Int(0), Type: catalog.EnergyNone})
			},
		},
		catalog.EffectTrainerBonusNames: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.addBonus(p, card, DamageBonus{Amount: args.Int(0), Type: catalog.EnergyNone, Names: args.Strings(1)})
			},
		},
		catalog.EffectTrainerBonusType: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.addBonus(p, card, DamageBonus{Amount: args.Int(1), Type: args.Energy(0)})
			},
		},
		catalog.EffectTrainerAttachNames: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return len(named(p.InPlay(), args.Strings(2))) > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				target := m.mustChoosePokemon(p, named(p.InPlay(), args.Strings(2)), DecisionAttachEnergy)
				m.attachEnergy(p, target, args.Energy(0), args.Int(1))
			},
		},
		catalog.EffectTrainerFlipAttach: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return len(ofType(p.InPlay(), args.Energy(0))) > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				t := args.Energy(0)
				target := m.mustChoosePokemon(p, ofType(p.InPlay(), t), DecisionAttachEnergy)
				m.attachEnergy(p, target, t, m.flipUntilTails(p.Index, card.Name()))
			},
		},
		catalog.EffectTrainerRetreatReduction: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.TurnState.RetreatReduction += args.Int(0)
				m.note(p.Index, card.Name(), fmt.Sprintf("retreat cost is %d less this turn", args.Int(0)))
			},
		},
		catalog.EffectTrainerHealAll: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return anyDamaged(p.InPlay())
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.healAll(p, args.Int(0))
			},
		},
		catalog.EffectTrainerReshuffleDraw: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.reshuffleHand(p, args.Int(0))
			},
		},
		catalog.EffectTrainerOppReshuffle: {
			CanPlay: opponentHasHand,
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.reshuffleHand(opp, args.Int(0))
			},
		},
		catalog.EffectTrainerReduceNext: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				setSlot(&m.DamageReduction, args.Int(0), opp.Index)
				m.note(p.Index, card.Name(), fmt.Sprintf("attacks by %s do %d less damage next turn", log.PlayerName(opp.Index), args.Int(0)))
			},
		},
		catalog.EffectTrainerMoveEnergy: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return p.Active != nil && len(holdingEnergy(p.Bench, args.Energy(0))) > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				t := args.Energy(0)
				if from := m.mustChoosePokemon(p, holdingEnergy(p.Bench, t), DecisionTarget); from != nil {
					m.moveEnergy(from, p.Active, t, from.Energy[t])
				}
			},
		},
		catalog.EffectTrainerSearchEvolution: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return len(p.Hand) < MaxHandSize && deckHas(p, isEvolutionPokemon)
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.searchToHand(p, isEvolutionPokemon, card.Name())
			},
		},
		catalog.EffectTrainerGrunt: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return opp.Active != nil && opp.Active.Energy.Total() > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.discardRandomEnergy(opp.Active, m.flipUntilTails(p.Index, card.Name()))
			},
		},
		catalog.EffectTrainerPullDamaged: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return opp.Active != nil && anyDamaged(opp.Bench)
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				if next := m.mustChoosePokemon(p, damaged(opp.Bench), DecisionSwitchOpp); next != nil {
					m.switchIn(p.Index, opp, next)
				}
			},
		},
		catalog.EffectTrainerCureAll: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				for _, pk := range p.InPlay() {
					if len(pk.Status) > 0 {
						return true
					}
				}
				return false
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				for _, pk := range p.InPlay() {
					m.cureAll(pk)
				}
			},
		},
		catalog.EffectTrainerSupporterLock: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				setSlot(&m.SupporterPrevention, 1, opp.Index)
				m.note(p.Index, card.Name(), log.PlayerName(opp.Index)+" can't play Supporters next turn")
			},
		},

		catalog.EffectItemHeal: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return anyDamaged(p.InPlay())
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.Heal(m.mustChoosePokemon(p, damaged(p.InPlay()), DecisionHealTarget), args.Int(0))
			},
		},
		catalog.EffectItemSearchBasic: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return len(p.Hand) < MaxHandSize && deckHas(p, isBasicPokemon)
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.searchToHand(p, isBasicPokemon, card.Name())
			},
		},
		catalog.EffectItemSwitch: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return p.Active != nil && len(p.Bench) > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				if next := m.mustChoosePokemon(p, p.Bench, DecisionSwitchSelf); next != nil {
					m.switchIn(p.Index, p, next)
				}
			},
		},
		catalog.EffectItemOppReshuffle: {
			CanPlay: opponentHasHand,
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.reshuffleHand(opp, args.Int(0))
			},
		},
		catalog.EffectItemCure: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return p.Active != nil && len(p.Active.Status) > 0
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.cureAll(p.Active)
			},
		},
		catalog.EffectItemShield: {
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				setSlot(&m.Shield, args.Int(0), opp.Index)
				m.note(p.Index, card.Name(), fmt.Sprintf("attacks by %s do %d less damage next turn", log.PlayerName(opp.Index), args.Int(0)))
			},
		},
		catalog.EffectItemDraw: {
			CanPlay: canDraw,
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.drawCards(p, args.Int(0))
			},
		},
		catalog.EffectItemHealAll: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return anyDamaged(p.InPlay())
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.healAll(p, args.Int(0))
			},
		},
		catalog.EffectItemRandomBasicBench: {
			CanPlay: func(m *Match, p, opp *Player, args catalog.Args) bool {
				return !p.BenchFull() && deckHas(p, isBasicPokemon)
			},
			Resolve: func(m *Match, p, opp *Player, card *CardInstance, args catalog.Args) {
				m.benchFromDeck(p)
			},
		},
	}
}

func canDraw(m *Match, p, opp *Player, args catalog.Args) bool {
	return len(p.Deck) > 0 && len(p.Hand) < MaxHandSize
}

func opponentHasHand(m *Match, p, opp *Player, args catalog.Args) bool {
	return len(opp.Hand) > 0
}

func (m *Match) addBonus(p *Player, card *CardInstance, b DamageBonus) {
	m.TurnState.BonusDamage = append(m.TurnState.BonusDamage, b)
	m.note(p.Index, card.Name(), fmt.Sprintf("attacks do +%d damage this turn", b.Amount))
}
