package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// AttackCall carries one attack through the resolution pipeline. Handlers read and adjust
// Damage and may queue steps that must run after the defender has been hit.
type AttackCall struct {
	Attacker *Pokemon
	Defender *Pokemon
	Attack   *catalog.Attack
	Player   *Player
	Opponent *Player
	Damage   int

	after []func()
}

// After queues step to run once the attack's damage has been applied.
func (c *AttackCall) After(step func()) {
	c.after = append(c.after, step)
}

func (c *AttackCall) args() catalog.Args {
	return c.Attack.Effect.Args
}

// Attack resolves attacker's atk against the opponent's active Pokémon. The turn's attack is
// spent whatever the outcome.
func (m *Match) Attack(p *Player, attacker *Pokemon, atk *catalog.Attack) {
	defer func() { m.TurnState.HasAttacked = true }()

	opp := m.Opponent(p)
	defender := opp.Active
	if defender == nil {
		return
	}
	m.log(log.NewAttackEvent(m.Turn, p.Index, attacker.Name(), atk.Name, defender.Name()))

	if attacker.HasStatus(catalog.StatusConfused) && !m.FlipCoin(p.Index, "confusion") {
		m.log(log.NewAttackFailedEvent(m.Turn, p.Index, attacker.Name(), "confused"))
		return
	}

	m.resolveAttack(&AttackCall{
		Attacker: attacker,
		Defender: defender,
		Attack:   atk,
		Player:   p,
		Opponent: opp,
	}, true)
}

// resolveAttack runs the pipeline in order:
//  1. copy-attack substitution (restarts with the copied attack; copies never nest)
//  2. base damage
//  3. the attack's effect handler
//  4. weakness, +20 when there is damage to add it to
//  5. shield and damage-reduction slots aimed at the attacker's player, then the defender's
//     passive reductions
//  6. turn-scoped and ability damage bonuses
//  7. clamp, apply through ApplyDamage, then run queued steps
func (m *Match) resolveAttack(c *AttackCall, allowCopy bool) {
	eff := c.Attack.Effect

	// 1
	if eff.Kind == catalog.EffectCopyAttack || eff.Kind == catalog.EffectCopyLastAttack {
		if !allowCopy {
			m.log(log.NewAttackFailedEvent(m.Turn, c.Player.Index, c.Attacker.Name(), "cannot copy a copying attack"))
			return
		}
		copied := m.copyTarget(c)
		if copied == nil {
			m.log(log.NewAttackFailedEvent(m.Turn, c.Player.Index, c.Attacker.Name(), "nothing to copy"))
			return
		}
		m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), c.Player.Index, c.Attacker.Name(), c.Attacker.Name()+" copies "+copied.Name))
		c.Attack = copied
		m.resolveAttack(c, false)
		return
	}

	// 2
	c.Damage = c.Attack.Damage

	// 3
	if !eff.IsZero() && !eff.Kind.Info().Passive {
		if h, ok := attackHandlers[eff.Kind]; ok {
			c.Damage = h(m, c)
		} else {
			m.diagnostic(c.Player.Index, "no handler for attack effect %s on %s", eff.Kind, c.Attack.Name)
		}
	}

	// 4-6
	dmg := m.finalDamage(c)

	// 7
	m.ApplyDamage(c.Defender, dmg, c)
	c.Attacker.LastAttack = c.Attack
	for _, step := range c.after {
		if m.Over() {
			break
		}
		step()
	}
}

// finalDamage applies weakness, reductions, and bonuses to the handler's damage.
func (m *Match) finalDamage(c *AttackCall) int {
	base := c.Damage
	dmg := base
	def := c.Defender

	if dmg > 0 && def.Card.Weakness != catalog.EnergyNone && def.Card.Weakness == c.Attacker.Card.Type {
		dmg += WeaknessBonus
	}

	dmg -= slotAmount(m.Shield, c.Player.Index)
	dmg -= slotAmount(m.DamageReduction, c.Player.Index)
	if eff, ok := def.abilityEffect(catalog.EffectDamageReduction); ok {
		dmg -= eff.Args.Int(0)
	}
	if n, ok := def.toolEffect(catalog.EffectToolDamageReduction); ok {
		dmg -= n
	}
	dmg -= def.DamageNerf

	if base > 0 {
		for _, b := range m.TurnState.BonusDamage {
			if b.appliesTo(c.Attacker) {
				dmg += b.Amount
			}
		}
		if eff, ok := c.Attacker.abilityEffect(catalog.EffectAttackBoost); ok {
			dmg += eff.Args.Int(0)
		}
	}

	if def.Hiding {
		dmg = 0
	}
	return max(0, dmg)
}

// copyTarget picks the attack a copying attack turns into: one of the defender's attacks chosen
// by the attacker's agent, or the defender's most recent attack.
func (m *Match) copyTarget(c *AttackCall) *catalog.Attack {
	if c.Attack.Effect.Kind == catalog.EffectCopyLastAttack {
		return c.Defender.LastAttack
	}

	var actions []Action
	for _, a := range c.Defender.Card.Attacks {
		actions = append(actions, attackAction(c.Player.Index, c.Attacker, a))
	}
	if len(actions) == 0 {
		return nil
	}
	chosen, err := m.Agents[c.Player.Index].ChooseAction(m.ctx, m, actions, DecisionCopyAttack)
	if err != nil {
		m.err = fmt.Errorf("player %d %s choice: %w", c.Player.Index+1, DecisionCopyAttack, err)
		return nil
	}
	if !containsAction(actions, chosen) {
		m.diagnostic(c.Player.Index, "illegal copy choice %q, copying %s", chosen.String(), actions[0].Attack.Name)
		chosen = actions[0]
	}
	return chosen.Attack
}
