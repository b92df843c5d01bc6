package game

import (
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
)

func init() {
	attackHandlers = map[catalog.EffectKind]attackHandler{
		catalog.EffectHealSelf: func(m *Match, c *AttackCall) int {
			m.Heal(c.Attacker, c.args().Int(0))
			return c.Damage
		},
		catalog.EffectCoinBonus: func(m *Match, c *AttackCall) int {
			if m.FlipCoin(c.Player.Index, c.Attack.Name) {
				return c.Damage + c.args().Int(0)
			}
			return c.Damage
		},
		catalog.EffectCoinFail: func(m *Match, c *AttackCall) int {
			if m.FlipCoin(c.Player.Index, c.Attack.Name) {
				return c.Damage
			}
			return 0
		},
		catalog.EffectMultiCoin: func(m *Match, c *AttackCall) int {
			return c.args().Int(1) * m.countHeads(c.Player.Index, c.args().Int(0), c.Attack.Name)
		},
		catalog.EffectFlipUntilTails: func(m *Match, c *AttackCall) int {
			return c.args().Int(0) * m.flipUntilTails(c.Player.Index, c.Attack.Name)
		},
		catalog.EffectEnergyCoins: func(m *Match, c *AttackCall) int {
			return c.args().Int(0) * m.countHeads(c.Player.Index, c.Attacker.Energy.Total(), c.Attack.Name)
		},
		catalog.EffectBonusIfDamaged: func(m *Match, c *AttackCall) int {
			return bonusIf(c, c.Defender.Damage > 0)
		},
		catalog.EffectBonusIfSelfDamaged: func(m *Match, c *AttackCall) int {
			return bonusIf(c, c.Attacker.Damage > 0)
		},
		catalog.EffectBonusPerEnergy: func(m *Match, c *AttackCall) int {
			return c.Damage + c.args().Int(1)*c.Attacker.Energy[c.args().Energy(0)]
		},
		catalog.EffectBonusPerOppEnergy: func(m *Match, c *AttackCall) int {
			return c.Damage + c.args().Int(0)*c.Defender.Energy.Total()
		},
		catalog.EffectBonusPerBench: func(m *Match, c *AttackCall) int {
			return c.Damage + c.args().Int(0)*len(c.Player.Bench)
		},
		catalog.EffectBonusPerOppBench: func(m *Match, c *AttackCall) int {
			return c.Damage + c.args().Int(0)*len(c.Opponent.Bench)
		},
		catalog.EffectBonusIfEnergy: func(m *Match, c *AttackCall) int {
			if c.Attacker.Energy[c.args().Energy(0)] >= c.args().Int(1) {
				return c.Damage + c.args().Int(2)
			}
			return c.Damage
		},
		catalog.EffectBonusIfStatus: func(m *Match, c *AttackCall) int {
			return bonusIf(c, len(c.Defender.Status) > 0)
		},
		catalog.EffectBonusIfPoisoned: func(m *Match, c *AttackCall) int {
			return bonusIf(c, c.Defender.IsPoisoned())
		},
		catalog.EffectBonusIfEX: func(m *Match, c *AttackCall) int {
			return bonusIf(c, c.Defender.IsEX())
		},
		catalog.EffectBonusPerSelfDamage: func(m *Match, c *AttackCall) int {
			return c.Damage + c.args().Int(0)*(c.Attacker.Damage/10)
		},
		catalog.EffectBonusIfTool: func(m *Match, c *AttackCall) int {
			return bonusIf(c, c.Defender.Tool != nil)
		},
		catalog.EffectBonusIfBenchNamed: func(m *Match, c *AttackCall) int {
			return bonusIf(c, len(named(c.Player.Bench, c.args().Strings(1))) > 0)
		},
		catalog.EffectDamageEqualSelfDamage: func(m *Match, c *AttackCall) int {
			return c.Attacker.Damage
		},

		catalog.EffectInflictStatus: func(m *Match, c *AttackCall) int {
			m.applyStatus(c.Defender, c.args().Status(0))
			return c.Damage
		},
		catalog.EffectCoinStatus: func(m *Match, c *AttackCall) int {
			if m.FlipCoin(c.Player.Index, c.Attack.Name) {
				m.applyStatus(c.Defender, c.args().Status(0))
			}
			return c.Damage
		},
		catalog.EffectInflictTwoStatus: func(m *Match, c *AttackCall) int {
			m.applyStatus(c.Defender, c.args().Status(0))
			m.applyStatus(c.Defender, c.args().Status(1))
			return c.Damage
		},
		catalog.EffectSelfStatus: func(m *Match, c *AttackCall) int {
			c.After(func() { m.applyStatus(c.Attacker, c.args().Status(0)) })
			return c.Damage
		},

		catalog.EffectDiscardEnergy: func(m *Match, c *AttackCall) int {
			m.discardEnergy(c.Attacker, c.args().Energy(0), c.args().Int(1))
			return c.Damage
		},
		catalog.EffectDiscardAllEnergy: func(m *Match, c *AttackCall) int {
			for t := range c.Attacker.Energy {
				m.discardEnergy(c.Attacker, catalog.EnergyType(t), c.Attacker.Energy[t])
			}
			return c.Damage
		},
		catalog.EffectDiscardOppEnergy: func(m *Match, c *AttackCall) int {
			if !c.Defender.Hiding {
				m.discardRandomEnergy(c.Defender, c.args().Int(0))
			}
			return c.Damage
		},
		catalog.EffectCoinDiscardOppEnergy: func(m *Match, c *AttackCall) int {
			if !c.Defender.Hiding && m.FlipCoin(c.Player.Index, c.Attack.Name) {
				m.discardRandomEnergy(c.Defender, 1)
			}
			return c.Damage
		},

		catalog.EffectSelfDamage: func(m *Match, c *AttackCall) int {
			c.After(func() { m.ApplyDamage(c.Attacker, c.args().Int(0), nil) })
			return c.Damage
		},
		catalog.EffectBenchDamageOpp: func(m *Match, c *AttackCall) int {
			c.After(func() { m.damageBench(c, c.Opponent, c.args().Int(0)) })
			return c.Damage
		},
		catalog.EffectBenchDamageAll: func(m *Match, c *AttackCall) int {
			c.After(func() {
				m.damageBench(c, c.Opponent, c.args().Int(0))
				m.damageBench(c, c.Player, c.args().Int(0))
			})
			return c.Damage
		},
		catalog.EffectSnipe: func(m *Match, c *AttackCall) int {
			target := m.mustChoosePokemon(c.Player, c.Opponent.InPlay(), DecisionTarget)
			c.After(func() { m.snipe(c, target, c.args().Int(0)) })
			return c.Damage
		},
		catalog.EffectSnipeBench: func(m *Match, c *AttackCall) int {
			target := m.mustChoosePokemon(c.Player, c.Opponent.Bench, DecisionTarget)
			c.After(func() { m.snipe(c, target, c.args().Int(0)) })
			return c.Damage
		},
		catalog.EffectRandomHits: func(m *Match, c *AttackCall) int {
			hits, per := c.args().Int(0), c.args().Int(1)
			c.After(func() {
				for i := 0; i < hits && !m.Over(); i++ {
					targets := c.Opponent.InPlay()
					if len(targets) == 0 {
						return
					}
					m.snipe(c, targets[m.rng.Intn(len(targets))], per)
				}
			})
			return c.Damage
		},
		catalog.EffectHealAllOwn: func(m *Match, c *AttackCall) int {
			m.healAll(c.Player, c.args().Int(0))
			return c.Damage
		},

		catalog.EffectCoinHide: func(m *Match, c *AttackCall) int {
			if m.FlipCoin(c.Player.Index, c.Attack.Name) {
				c.After(func() {
					c.Attacker.Hiding = true
					m.note(c.Player.Index, c.Attacker.Name(), c.Attacker.Name()+" is hidden until its next turn")
				})
			}
			return c.Damage
		},
		catalog.EffectNerfSelf: func(m *Match, c *AttackCall) int {
			c.Attacker.DamageNerf = c.args().Int(0)
			return c.Damage
		},
		catalog.EffectReduceOppAttack: func(m *Match, c *AttackCall) int {
			setSlot(&m.DamageReduction, c.args().Int(0), c.Opponent.Index)
			return c.Damage
		},
		catalog.EffectAttackLock: func(m *Match, c *AttackCall) int {
			m.lockOpponentAttacks(c)
			return c.Damage
		},
		catalog.EffectCoinAttackLock: func(m *Match, c *AttackCall) int {
			if m.FlipCoin(c.Player.Index, c.Attack.Name) {
				m.lockOpponentAttacks(c)
			}
			return c.Damage
		},
		catalog.EffectRetreatLock: func(m *Match, c *AttackCall) int {
			if !c.Defender.Hiding {
				c.Defender.RetreatBlocked = true
				m.note(c.Player.Index, c.Defender.Name(), c.Defender.Name()+" can't retreat next turn")
			}
			return c.Damage
		},
		catalog.EffectSupporterLock: func(m *Match, c *AttackCall) int {
			setSlot(&m.SupporterPrevention, 1, c.Opponent.Index)
			m.note(c.Player.Index, c.Attacker.Name(), "opponent can't play Supporters next turn")
			return c.Damage
		},
		catalog.EffectSelfAttackLock: func(m *Match, c *AttackCall) int {
			c.Attacker.AttackLockedTurn = m.Turn + 2
			return c.Damage
		},

		catalog.EffectAttachEnergySelf: func(m *Match, c *AttackCall) int {
			m.attachEnergy(c.Player, c.Attacker, c.args().Energy(0), c.args().Int(1))
			return c.Damage
		},
		catalog.EffectAttachEnergyBench: func(m *Match, c *AttackCall) int {
			target := m.mustChoosePokemon(c.Player, c.Player.Bench, DecisionAttachEnergy)
			m.attachEnergy(c.Player, target, c.args().Energy(0), c.args().Int(1))
			return c.Damage
		},
		catalog.EffectSwitchSelf: func(m *Match, c *AttackCall) int {
			c.After(func() {
				if next := m.mustChoosePokemon(c.Player, c.Player.Bench, DecisionSwitchSelf); next != nil {
					m.switchIn(c.Player.Index, c.Player, next)
				}
			})
			return c.Damage
		},
		catalog.EffectForceSwitchOpp: func(m *Match, c *AttackCall) int {
			c.After(func() {
				if c.Opponent.Active == nil || c.Opponent.Active.Hiding {
					return
				}
				if next := m.mustChoosePokemon(c.Opponent, c.Opponent.Bench, DecisionSwitchOpp); next != nil {
					m.switchIn(c.Player.Index, c.Opponent, next)
				}
			})
			return c.Damage
		},
		catalog.EffectDraw: func(m *Match, c *AttackCall) int {
			m.drawCards(c.Player, c.args().Int(0))
			return c.Damage
		},
		catalog.EffectDiscardOppHandRandom: func(m *Match, c *AttackCall) int {
			m.discardRandomFromHand(c.Opponent, c.args().Int(0))
			return c.Damage
		},
		catalog.EffectCallForFamily: func(m *Match, c *AttackCall) int {
			m.benchFromDeck(c.Player)
			return c.Damage
		},
		catalog.EffectDiscardOppTool: func(m *Match, c *AttackCall) int {
			if !c.Defender.Hiding {
				m.discardTool(c.Defender)
			}
			return c.Damage
		},
	}
}

func bonusIf(c *AttackCall, cond bool) int {
	if cond {
		return c.Damage + c.args().Int(0)
	}
	return c.Damage
}

// countHeads flips n coins and returns the number of heads.
func (m *Match) countHeads(player, n int, reason string) int {
	heads := 0
	for i := 0; i < n; i++ {
		if m.FlipCoin(player, reason) {
			heads++
		}
	}
	return heads
}

// damageBench deals attack damage to each of p's benched Pokémon. Weakness and reductions do
// not apply to bench damage.
func (m *Match) damageBench(c *AttackCall, p *Player, n int) {
	for _, pk := range append([]*Pokemon(nil), p.Bench...) {
		m.ApplyDamage(pk, n, c)
	}
}

// snipe deals n attack damage to one chosen Pokémon outside the pipeline.
func (m *Match) snipe(c *AttackCall, target *Pokemon, n int) {
	if target == nil || target.Hiding {
		return
	}
	m.ApplyDamage(target, n, c)
}

// lockOpponentAttacks stops the opponent's active Pokémon from attacking during their next turn.
func (m *Match) lockOpponentAttacks(c *AttackCall) {
	if c.Defender.Hiding {
		return
	}
	setSlot(&m.AttackPrevention, 1, c.Opponent.Index)
	m.note(c.Player.Index, c.Attacker.Name(), c.Defender.Name()+" can't attack next turn")
}
