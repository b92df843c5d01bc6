package game

import (
	"fmt"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// ApplyDamage is the only path that reduces HP. src is the attack being resolved, or nil for
// status ticks, recoil, and ability damage. When the attack hits its defender, attached tools
// and thorns abilities reflect onto the attacker and lifesteal heals it. Damage to a Pokémon that
// is already knocked out is ignored, so a second call can never award a second knockout.
func (m *Match) ApplyDamage(target *Pokemon, amount int, src *AttackCall) {
	if target == nil || target.State != InPlay || amount <= 0 {
		return
	}

	m.damageDepth++
	defer func() {
		m.damageDepth--
		if m.damageDepth == 0 {
			m.checkWin()
		}
	}()

	target.Damage += amount
	m.log(log.NewDamageEvent(m.Turn, m.Phase.String(), target.Owner, target.Name(), amount, target.HP()))

	if src != nil && target == src.Defender && src.Attacker.State == InPlay {
		m.reactToHit(target, src, amount)
	}

	if target.Damage >= target.MaxHP() {
		m.knockout(target)
	}
}

// reactToHit resolves the defender's reactive passives and the attack's lifesteal.
func (m *Match) reactToHit(defender *Pokemon, src *AttackCall, amount int) {
	attacker := src.Attacker
	if n, ok := defender.toolEffect(catalog.EffectToolThorns); ok {
		m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), defender.Owner, defender.Tool.Name(), fmt.Sprintf("%s strikes back", defender.Tool.Name())))
		m.ApplyDamage(attacker, n, nil)
	}
	if _, ok := defender.toolEffect(catalog.EffectToolPoisonBarb); ok {
		m.applyStatus(attacker, catalog.StatusPoisoned)
	}
	if eff, ok := defender.abilityEffect(catalog.EffectThorns); ok {
		m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), defender.Owner, defender.Name(), fmt.Sprintf("%s's %s strikes back", defender.Name(), defender.Card.Ability.Name)))
		m.ApplyDamage(attacker, eff.Args.Int(0), nil)
	}
	if src.Attack.Effect.Kind == catalog.EffectLifesteal {
		m.Heal(attacker, amount)
	}
}

// knockout retires pk to its owner's discard pile and awards points. A knocked-out active
// Pokémon is replaced from the bench by the owner's choice.
func (m *Match) knockout(pk *Pokemon) {
	if pk.State == KnockedOut {
		return
	}
	pk.State = KnockedOut
	owner := m.Players[pk.Owner]
	opp := m.Opponent(owner)
	phase := m.Phase.String()
	m.log(log.NewKnockoutEvent(m.Turn, phase, owner.Index, pk.Name()))

	if pk.Tool != nil {
		m.log(log.NewToolDiscardedEvent(m.Turn, phase, owner.Index, pk.Tool.Name(), pk.Name()))
		owner.Discard = append(owner.Discard, pk.Tool)
		pk.Tool = nil
	}
	pk.Energy = catalog.Energy{}
	wasActive := owner.removeFromPlay(pk)
	owner.Discard = append(owner.Discard, pk)

	points := 1
	if pk.IsEX() {
		points = 2
	}
	opp.Points = min(WinPoints, opp.Points+points)
	m.log(log.NewPrizeEvent(m.Turn, phase, opp.Index, points, opp.Points))

	if wasActive && len(owner.Bench) > 0 && opp.Points < WinPoints {
		if repl := m.mustChoosePokemon(owner, owner.Bench, DecisionReplaceActive); repl != nil {
			m.promote(owner, repl)
		}
	}
}

// checkWin evaluates the win conditions: a player with no Pokémon in play loses outright;
// otherwise reaching the point threshold wins, comparing scores when both got there at once.
func (m *Match) checkWin() {
	if m.Over() {
		return
	}
	empty0 := !m.Players[0].HasPokemonInPlay()
	empty1 := !m.Players[1].HasPokemonInPlay()
	switch {
	case empty0 && empty1:
		m.declareTie("neither player has Pokémon in play")
		return
	case empty0:
		m.declareWinner(1, "P1 has no Pokémon in play")
		return
	case empty1:
		m.declareWinner(0, "P2 has no Pokémon in play")
		return
	}

	s0, s1 := m.Players[0].Points, m.Players[1].Points
	if s0 < WinPoints && s1 < WinPoints {
		return
	}
	switch {
	case s0 > s1:
		m.declareWinner(0, fmt.Sprintf("%d points", s0))
	case s1 > s0:
		m.declareWinner(1, fmt.Sprintf("%d points", s1))
	default:
		m.declareTie(fmt.Sprintf("both players reached %d points", s0))
	}
}

// sweepKnockouts knocks out every Pokémon left at zero HP.
func (m *Match) sweepKnockouts() {
	for _, p := range m.Players {
		for _, pk := range p.InPlay() {
			if pk.State == InPlay && pk.HP() == 0 {
				m.knockout(pk)
			}
		}
	}
	m.checkWin()
}

// Heal removes up to amount damage and returns how much was healed.
func (m *Match) Heal(pk *Pokemon, amount int) int {
	if pk == nil || pk.State != InPlay || amount <= 0 || pk.Damage == 0 {
		return 0
	}
	healed := min(amount, pk.Damage)
	pk.Damage -= healed
	m.log(log.NewHealEvent(m.Turn, m.Phase.String(), pk.Owner, pk.Name(), healed, pk.HP()))
	return healed
}

// applyStatus inflicts s on pk unless it is protected. Asleep and paralyzed replace each other;
// super-poison supersedes poison.
func (m *Match) applyStatus(pk *Pokemon, s catalog.Status) bool {
	if pk == nil || pk.State != InPlay || pk.Hiding {
		return false
	}
	if _, ok := pk.abilityEffect(catalog.EffectPreventStatus); ok {
		m.log(log.NewEffectEvent(m.Turn, m.Phase.String(), pk.Owner, pk.Name(), fmt.Sprintf("%s is protected from %s", pk.Name(), s)))
		return false
	}
	switch s {
	case catalog.StatusAsleep:
		pk.removeStatus(catalog.StatusParalyzed)
	case catalog.StatusParalyzed:
		pk.removeStatus(catalog.StatusAsleep)
	case catalog.StatusPoisoned:
		if pk.HasStatus(catalog.StatusSuperPoisoned) {
			return false
		}
	case catalog.StatusSuperPoisoned:
		pk.removeStatus(catalog.StatusPoisoned)
	}
	if pk.HasStatus(s) {
		return false
	}
	pk.Status = append(pk.Status, s)
	m.log(log.NewStatusEvent(m.Turn, m.Phase.String(), pk.Owner, pk.Name(), s.String()))
	return true
}

func (m *Match) cureStatus(pk *Pokemon, s catalog.Status) {
	if pk.removeStatus(s) {
		m.log(log.NewStatusCuredEvent(m.Turn, m.Phase.String(), pk.Owner, pk.Name(), s.String()))
	}
}

func (m *Match) cureAll(pk *Pokemon) {
	for len(pk.Status) > 0 {
		m.cureStatus(pk, pk.Status[0])
	}
}

// --- Board movement ---

// switchActive swaps p's active Pokémon with the benched next. The Pokémon moving to the bench
// loses its status conditions.
func (m *Match) switchActive(p *Player, next *Pokemon) *Pokemon {
	i := p.benchIndex(next)
	if i < 0 {
		return nil
	}
	old := p.Active
	if old == nil {
		p.Bench = append(p.Bench[:i], p.Bench[i+1:]...)
	} else {
		p.Bench[i] = old
		m.cureAll(old)
	}
	p.Active = next
	return old
}

// promote moves a benched Pokémon into an empty active slot.
func (m *Match) promote(p *Player, next *Pokemon) {
	if i := p.benchIndex(next); i >= 0 {
		p.Bench = append(p.Bench[:i], p.Bench[i+1:]...)
	}
	p.Active = next
	m.log(log.NewPlaceActiveEvent(m.Turn, m.Phase.String(), p.Index, next.Name()))
}

// switchIn swaps p's active with next and logs it under the acting player.
func (m *Match) switchIn(actor int, p *Player, next *Pokemon) {
	old := m.switchActive(p, next)
	if old == nil {
		m.log(log.NewPlaceActiveEvent(m.Turn, m.Phase.String(), p.Index, next.Name()))
		return
	}
	m.log(log.NewSwitchEvent(m.Turn, m.Phase.String(), actor, old.Name(), next.Name()))
}

// --- Energy and tools ---

func (m *Match) attachEnergy(p *Player, pk *Pokemon, t catalog.EnergyType, n int) {
	if pk == nil || n <= 0 {
		return
	}
	pk.Energy[t] += n
	m.log(log.NewAttachEnergyEvent(m.Turn, m.Phase.String(), p.Index, t.String(), n, pk.Name()))
}

// discardEnergy removes up to n energy of type t and returns how many were removed.
func (m *Match) discardEnergy(pk *Pokemon, t catalog.EnergyType, n int) int {
	removed := min(n, pk.Energy[t])
	if removed <= 0 {
		return 0
	}
	pk.Energy[t] -= removed
	m.log(log.NewDiscardEnergyEvent(m.Turn, m.Phase.String(), pk.Owner, t.String(), removed, pk.Name()))
	return removed
}

// discardRandomEnergy removes n energy tokens chosen uniformly among those attached.
func (m *Match) discardRandomEnergy(pk *Pokemon, n int) {
	for i := 0; i < n; i++ {
		total := pk.Energy.Total()
		if total == 0 {
			return
		}
		pick := m.rng.Intn(total)
		for t, count := range pk.Energy {
			if pick < count {
				m.discardEnergy(pk, catalog.EnergyType(t), 1)
				break
			}
			pick -= count
		}
	}
}

// payRetreat discards cost energy, always from the most plentiful type.
func (m *Match) payRetreat(pk *Pokemon, cost int) {
	for i := 0; i < cost; i++ {
		best := -1
		for t, count := range pk.Energy {
			if count > 0 && (best < 0 || count > pk.Energy[best]) {
				best = t
			}
		}
		if best < 0 {
			return
		}
		m.discardEnergy(pk, catalog.EnergyType(best), 1)
	}
}

// discardTool sends pk's tool to its owner's discard pile. Losing an HP bonus can knock pk out.
func (m *Match) discardTool(pk *Pokemon) {
	if pk == nil || pk.Tool == nil {
		return
	}
	owner := m.Players[pk.Owner]
	m.log(log.NewToolDiscardedEvent(m.Turn, m.Phase.String(), owner.Index, pk.Tool.Name(), pk.Name()))
	owner.Discard = append(owner.Discard, pk.Tool)
	pk.Tool = nil
	if pk.State == InPlay && pk.Damage >= pk.MaxHP() {
		m.knockout(pk)
		m.checkWin()
	}
}
