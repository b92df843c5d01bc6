package game

import (
	"testing"

	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

var (
	ember   = attack("Ember", 30, energy(catalog.EnergyFire, 1), catalog.Effect{})
	charm   = basicPokemon("Charmander", 60, catalog.EnergyFire, ember)
	bulba   = basicPokemon("Bulbasaur", 70, catalog.EnergyGrass, attack("Vine Whip", 40, energy(catalog.EnergyGrass, 1), catalog.Effect{}))
	squirtl = basicPokemon("Squirtle", 60, catalog.EnergyWater, attack("Water Gun", 20, energy(catalog.EnergyWater, 1), catalog.Effect{}))
)

// attackFrom resolves atk from player's active Pokémon against the opponent's active.
func attackFrom(m *Match, player int, atk *catalog.Attack) {
	p := m.Players[player]
	m.Attack(p, p.Active, atk)
}

func TestWeaknessAddsTwenty(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	def := setActive(m, 1, withWeakness(basicPokemon("Weedle", 100, catalog.EnergyGrass), catalog.EnergyFire))

	attackFrom(m, 0, ember)

	if def.Damage != 30+WeaknessBonus {
		t.Errorf("expected %d damage with weakness, got %d", 30+WeaknessBonus, def.Damage)
	}
	if !m.TurnState.HasAttacked {
		t.Error("expected the turn's attack to be spent")
	}
}

func TestWeaknessNeedsDamage(t *testing.T) {
	m, logger := newBoard(t)
	growl := attack("Growl", 0, catalog.Energy{}, fx(catalog.EffectReduceOppAttack, "20"))
	setActive(m, 0, basicPokemon("Vulpix", 50, catalog.EnergyFire, growl))
	def := setActive(m, 1, withWeakness(basicPokemon("Weedle", 100, catalog.EnergyGrass), catalog.EnergyFire))

	attackFrom(m, 0, growl)

	if def.Damage != 0 {
		t.Errorf("a zero-damage attack must not pick up weakness, got %d damage", def.Damage)
	}
	if len(logger.EventsOfType(log.EventDamage)) != 0 {
		t.Error("expected no damage event")
	}
	if slotAmount(m.DamageReduction, 1) != 20 {
		t.Errorf("expected a 20 reduction aimed at P2, got %+v", m.DamageReduction)
	}
}

func TestHPIsDerivedFromDamage(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	pk := setActive(m, 1, basicPokemon("Rattata", 40, catalog.EnergyColorless))
	addBench(m, 1, fillerPokemon)

	for _, amount := range []int{10, 0, -5, 20} {
		m.ApplyDamage(pk, amount, nil)
		if pk.HP() != max(0, pk.MaxHP()-pk.Damage) {
			t.Fatalf("HP %d does not match max(0, %d-%d)", pk.HP(), pk.MaxHP(), pk.Damage)
		}
	}
	if pk.Damage != 30 {
		t.Errorf("non-positive amounts must be ignored, damage = %d", pk.Damage)
	}

	m.ApplyDamage(pk, 50, nil)
	if pk.HP() != 0 {
		t.Errorf("HP must floor at zero, got %d", pk.HP())
	}
	if pk.State != KnockedOut {
		t.Errorf("expected knocked out, got %s", pk.State)
	}
}

func TestKnockoutIsIdempotent(t *testing.T) {
	m, logger := newBoard(t)
	setActive(m, 0, charm)
	pk := addBench(m, 1, basicPokemon("Rattata", 40, catalog.EnergyColorless))
	setActive(m, 1, fillerPokemon)

	m.ApplyDamage(pk, 40, nil)
	m.ApplyDamage(pk, 40, nil)
	m.knockout(pk)

	if got := len(logger.EventsOfType(log.EventKnockout)); got != 1 {
		t.Errorf("expected exactly one knockout, got %d", got)
	}
	if m.Players[0].Points != 1 {
		t.Errorf("expected 1 point, got %d", m.Players[0].Points)
	}
	if len(m.Players[1].Bench) != 0 {
		t.Error("expected the knocked-out Pokémon to leave the bench")
	}
	if m.Players[1].Discard[len(m.Players[1].Discard)-1] != Card(pk) {
		t.Error("expected the knocked-out Pokémon on top of the discard pile")
	}
}

func TestExKnockoutWorthTwoPoints(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, basicPokemon("Mewtwo ex", 150, catalog.EnergyPsychic, ember))
	setActive(m, 1, basicPokemon("Mew ex", 30, catalog.EnergyPsychic))
	addBench(m, 1, fillerPokemon)

	attackFrom(m, 0, ember)

	if m.Players[0].Points != 2 {
		t.Errorf("expected 2 points for an ex, got %d", m.Players[0].Points)
	}
	if m.Over() {
		t.Error("match should continue below the threshold")
	}
}

func TestPointsAreCapped(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	setActive(m, 1, basicPokemon("Mew ex", 30, catalog.EnergyPsychic))
	addBench(m, 1, fillerPokemon)
	m.Players[0].Points = 2

	attackFrom(m, 0, ember)

	if m.Players[0].Points != WinPoints {
		t.Errorf("expected points capped at %d, got %d", WinPoints, m.Players[0].Points)
	}
	if m.Winner != 0 {
		t.Errorf("expected P1 to win, got %d", m.Winner)
	}
}

func TestActiveKnockoutPromotesFromBench(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	setActive(m, 1, basicPokemon("Caterpie", 30, catalog.EnergyGrass))
	addBench(m, 1, bulba)
	replacement := addBench(m, 1, squirtl)
	m.Agents[1].(*ScriptedAgent).AddCardChoice("Squirtle")

	attackFrom(m, 0, ember)

	opp := m.Players[1]
	if opp.Active != replacement {
		t.Fatalf("expected Squirtle promoted, active is %v", opp.Active)
	}
	if len(opp.Bench) != 1 || opp.Bench[0].Name() != "Bulbasaur" {
		t.Errorf("expected only Bulbasaur left on the bench, got %v", opp.Bench)
	}
	if m.Over() {
		t.Error("match should not be over")
	}
}

func TestBenchKnockoutLeavesActive(t *testing.T) {
	m, _ := newBoard(t)
	quake := attack("Earthquake", 10, catalog.Energy{}, fx(catalog.EffectBenchDamageOpp, "30"))
	setActive(m, 0, basicPokemon("Onix", 90, catalog.EnergyFighting, quake))
	active := setActive(m, 1, bulba)
	addBench(m, 1, basicPokemon("Caterpie", 30, catalog.EnergyGrass))

	attackFrom(m, 0, quake)

	opp := m.Players[1]
	if opp.Active != active {
		t.Error("a bench knockout must not disturb the active Pokémon")
	}
	if len(opp.Bench) != 0 {
		t.Errorf("expected an empty bench, got %v", opp.Bench)
	}
	if active.Damage != 10 {
		t.Errorf("expected 10 damage on the active, got %d", active.Damage)
	}
	if m.Players[0].Points != 1 {
		t.Errorf("expected 1 point, got %d", m.Players[0].Points)
	}
}

func TestLastPokemonKnockedOutLoses(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	setActive(m, 1, basicPokemon("Caterpie", 30, catalog.EnergyGrass))

	attackFrom(m, 0, ember)

	if m.Winner != 0 {
		t.Errorf("expected P1 to win, got winner=%d (%s)", m.Winner, m.Reason)
	}
}

func TestSimultaneousThresholdIsTie(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, basicPokemon("Pikachu", 30, catalog.EnergyLightning, ember))
	def := setActive(m, 1, basicPokemon("Caterpie", 30, catalog.EnergyGrass))
	def.Tool = m.newCard(1, tool("Rocky Helmet", fx(catalog.EffectToolThorns, "30"))).(*CardInstance)
	addBench(m, 0, fillerPokemon)
	addBench(m, 1, fillerPokemon)
	m.Players[0].Points = 2
	m.Players[1].Points = 2

	attackFrom(m, 0, ember)

	if m.Winner != Tie {
		t.Errorf("expected a tie, got winner=%d (%s)", m.Winner, m.Reason)
	}
}

func TestShieldAndReductionsStack(t *testing.T) {
	m, _ := newBoard(t)
	big := attack("Flamethrower", 60, catalog.Energy{}, catalog.Effect{})
	setActive(m, 0, basicPokemon("Charmeleon", 90, catalog.EnergyFire, big))
	def := setActive(m, 1, withAbility(basicPokemon("Shellder", 100, catalog.EnergyWater), "Shell Armor",
		catalog.UsagePassive, fx(catalog.EffectDamageReduction, "10")))
	def.Tool = m.newCard(1, tool("Giant Cape", fx(catalog.EffectToolDamageReduction, "10"))).(*CardInstance)
	setSlot(&m.Shield, 20, 0)

	attackFrom(m, 0, big)

	if def.Damage != 20 {
		t.Errorf("expected 60-20-10-10 = 20 damage, got %d", def.Damage)
	}
}

func TestTurnBonusMatchesAttackerType(t *testing.T) {
	m, _ := newBoard(t)
	setActive(m, 0, charm)
	def := setActive(m, 1, basicPokemon("Snorlax", 150, catalog.EnergyColorless))
	m.TurnState.BonusDamage = append(m.TurnState.BonusDamage,
		DamageBonus{Amount: 10, Type: catalog.EnergyFire},
		DamageBonus{Amount: 30, Type: catalog.EnergyWater})

	attackFrom(m, 0, ember)

	if def.Damage != 40 {
		t.Errorf("expected 30+10 = 40 damage, got %d", def.Damage)
	}
}

func TestConfusedTailsFails(t *testing.T) {
	m, logger := newBoard(t)
	att := setActive(m, 0, charm)
	att.Status = []catalog.Status{catalog.StatusConfused}
	def := setActive(m, 1, bulba)
	coins(m, false)

	attackFrom(m, 0, ember)

	if def.Damage != 0 {
		t.Errorf("expected the attack to fail, got %d damage", def.Damage)
	}
	if len(logger.EventsOfType(log.EventAttackFailed)) != 1 {
		t.Error("expected an attack-failed event")
	}
	if !m.TurnState.HasAttacked {
		t.Error("a failed attack still spends the turn's attack")
	}
}

func TestHiddenPokemonTakesNoDamage(t *testing.T) {
	m, _ := newBoard(t)
	dig := attack("Dig", 20, catalog.Energy{}, fx(catalog.EffectCoinHide))
	hider := setActive(m, 0, basicPokemon("Diglett", 50, catalog.EnergyFighting, dig))
	def := setActive(m, 1, charm)

	attackFrom(m, 0, dig)
	if !hider.Hiding {
		t.Fatal("expected heads to hide the attacker")
	}
	if def.Damage != 20 {
		t.Errorf("expected 20 damage, got %d", def.Damage)
	}

	attackFrom(m, 1, ember)
	if hider.Damage != 0 {
		t.Errorf("hidden Pokémon took %d damage", hider.Damage)
	}
}

func TestLifestealAndThorns(t *testing.T) {
	m, _ := newBoard(t)
	drain := attack("Leech Life", 30, catalog.Energy{}, fx(catalog.EffectLifesteal))
	att := setActive(m, 0, basicPokemon("Zubat", 70, catalog.EnergyDarkness, drain))
	att.Damage = 40
	setActive(m, 1, withAbility(basicPokemon("Ferroseed", 90, catalog.EnergyMetal), "Iron Barbs",
		catalog.UsagePassive, fx(catalog.EffectThorns, "10")))

	attackFrom(m, 0, drain)

	// 40 + 10 thorns - 30 healed
	if att.Damage != 20 {
		t.Errorf("expected attacker damage 20, got %d", att.Damage)
	}
}

func TestCopyAttackUsesDefenderAttack(t *testing.T) {
	m, _ := newBoard(t)
	mimic := attack("Copy", 0, catalog.Energy{}, fx(catalog.EffectCopyAttack))
	setActive(m, 0, basicPokemon("Mew", 60, catalog.EnergyPsychic, mimic))
	def := setActive(m, 1, basicPokemon("Charizard", 180, catalog.EnergyFire,
		attack("Fire Blast", 70, energy(catalog.EnergyFire, 4), catalog.Effect{})))

	attackFrom(m, 0, mimic)

	if def.Damage != 70 {
		t.Errorf("expected the copied 70 damage, got %d", def.Damage)
	}
}

func TestCopyAttackDoesNotNest(t *testing.T) {
	m, logger := newBoard(t)
	mimic := attack("Copy", 0, catalog.Energy{}, fx(catalog.EffectCopyAttack))
	setActive(m, 0, basicPokemon("Mew", 60, catalog.EnergyPsychic, mimic))
	def := setActive(m, 1, basicPokemon("Ditto", 60, catalog.EnergyColorless,
		attack("Transform", 0, catalog.Energy{}, fx(catalog.EffectCopyLastAttack))))

	attackFrom(m, 0, mimic)

	if def.Damage != 0 {
		t.Errorf("expected no damage, got %d", def.Damage)
	}
	if len(logger.EventsOfType(log.EventAttackFailed)) != 1 {
		t.Error("expected the nested copy to fail")
	}
}

func TestCopyLastAttack(t *testing.T) {
	m, _ := newBoard(t)
	mirror := attack("Mirror Move", 0, catalog.Energy{}, fx(catalog.EffectCopyLastAttack))
	setActive(m, 0, basicPokemon("Pidgey", 60, catalog.EnergyColorless, mirror))
	def := setActive(m, 1, charm)

	attackFrom(m, 0, mirror)
	if def.Damage != 0 {
		t.Fatalf("nothing to copy yet, got %d damage", def.Damage)
	}

	m.TurnState = newTurnState()
	attackFrom(m, 1, ember)
	m.TurnState = newTurnState()
	attackFrom(m, 0, mirror)
	if def.Damage != 30 {
		t.Errorf("expected Ember copied for 30, got %d", def.Damage)
	}
}

func TestRecoilRunsAfterDamage(t *testing.T) {
	m, _ := newBoard(t)
	takeDown := attack("Take Down", 50, catalog.Energy{}, fx(catalog.EffectSelfDamage, "20"))
	att := setActive(m, 0, basicPokemon("Tauros", 100, catalog.EnergyColorless, takeDown))
	def := setActive(m, 1, bulba)

	attackFrom(m, 0, takeDown)

	if def.Damage != 50 || att.Damage != 20 {
		t.Errorf("expected 50 dealt and 20 recoil, got %d and %d", def.Damage, att.Damage)
	}
}

func TestRecoilSkippedOnceMatchIsOver(t *testing.T) {
	m, _ := newBoard(t)
	takeDown := attack("Take Down", 50, catalog.Energy{}, fx(catalog.EffectSelfDamage, "20"))
	att := setActive(m, 0, basicPokemon("Tauros", 100, catalog.EnergyColorless, takeDown))
	setActive(m, 1, basicPokemon("Caterpie", 30, catalog.EnergyGrass))

	attackFrom(m, 0, takeDown)

	if !m.Over() || m.Winner != 0 {
		t.Fatalf("expected P1 to win, got winner=%d", m.Winner)
	}
	if att.Damage != 0 {
		t.Errorf("no step may run after the match is over, attacker took %d", att.Damage)
	}
}
