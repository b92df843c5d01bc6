package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Category names which registry an effect kind belongs to.
type Category int

const (
	CategoryAttack Category = iota
	CategoryAbility
	CategoryTrainer
	CategoryItem
	CategoryTool
)

func (c Category) String() string {
	switch c {
	case CategoryAttack:
		return "attack"
	case CategoryAbility:
		return "ability"
	case CategoryTrainer:
		return "trainer"
	case CategoryItem:
		return "item"
	case CategoryTool:
		return "tool"
	default:
		return "unknown"
	}
}

// ArgType is the expected type of one special value.
type ArgType int

const (
	ArgInt ArgType = iota
	ArgEnergy
	ArgStatus
	ArgString
	ArgStrings // one or more trailing strings; must be last
)

func (a ArgType) String() string {
	switch a {
	case ArgInt:
		return "int"
	case ArgEnergy:
		return "energy"
	case ArgStatus:
		return "status"
	case ArgString:
		return "string"
	case ArgStrings:
		return "strings..."
	default:
		return "unknown"
	}
}

// EffectKind is the closed set of effect opcodes a card can carry.
type EffectKind int

const (
	EffectNone EffectKind = iota

	// Attack effects.
	EffectHealSelf
	EffectCoinBonus
	EffectCoinFail
	EffectMultiCoin
	EffectFlipUntilTails
	EffectEnergyCoins
	EffectBonusIfDamaged
	EffectBonusIfSelfDamaged
	EffectBonusPerEnergy
	EffectBonusPerOppEnergy
	EffectBonusPerBench
	EffectBonusPerOppBench
	EffectBonusIfEnergy
	EffectBonusIfStatus
	EffectBonusIfPoisoned
	EffectBonusIfEX
	EffectBonusPerSelfDamage
	EffectBonusIfTool
	EffectBonusIfBenchNamed
	EffectDamageEqualSelfDamage
	EffectInflictStatus
	EffectCoinStatus
	EffectInflictTwoStatus
	EffectSelfStatus
	EffectDiscardEnergy
	EffectDiscardAllEnergy
	EffectDiscardOppEnergy
	EffectCoinDiscardOppEnergy
	EffectSelfDamage
	EffectBenchDamageOpp
	EffectBenchDamageAll
	EffectSnipe
	EffectSnipeBench
	EffectRandomHits
	EffectHealAllOwn
	EffectCoinHide
	EffectNerfSelf
	EffectReduceOppAttack
	EffectAttackLock
	EffectCoinAttackLock
	EffectRetreatLock
	EffectSupporterLock
	EffectSelfAttackLock
	EffectAttachEnergySelf
	EffectAttachEnergyBench
	EffectSwitchSelf
	EffectForceSwitchOpp
	EffectDraw
	EffectDiscardOppHandRandom
	EffectCallForFamily
	EffectDiscardOppTool
	EffectLifesteal
	EffectCopyAttack
	EffectCopyLastAttack

	// Ability effects.
	EffectAbilityDraw
	EffectAbilityHealActive
	EffectAbilityHealAllCheckup
	EffectAbilityDamageOppActive
	EffectAbilityDamageOppCheckup
	EffectAbilityAttachEnergy
	EffectAbilitySwitchOppActive
	EffectAbilityStatusOpp
	EffectAbilitySearchBasic
	EffectAbilitySwitchSelf
	EffectAbilityRest
	EffectAbilityMoveEnergy
	EffectAbilityCoinHeal
	EffectDamageReduction
	EffectRetreatCostReduction
	EffectThorns
	EffectPreventStatus
	EffectAttackBoost

	// Trainer effects.
	EffectTrainerDraw
	EffectTrainerHealType
	EffectTrainerSwitchOpp
	EffectTrainerBonusDamage
	EffectTrainerBonusNames
	EffectTrainerBonusType
	EffectTrainerAttachNames
	EffectTrainerFlipAttach
	EffectTrainerRetreatReduction
	EffectTrainerHealAll
	EffectTrainerReshuffleDraw
	EffectTrainerOppReshuffle
	EffectTrainerReduceNext
	EffectTrainerMoveEnergy
	EffectTrainerSearchEvolution
	EffectTrainerGrunt
	EffectTrainerPullDamaged
	EffectTrainerCureAll
	EffectTrainerSupporterLock

	// Item effects.
	EffectItemHeal
	EffectItemSearchBasic
	EffectItemSwitch
	EffectItemOppReshuffle
	EffectItemCure
	EffectItemShield
	EffectItemDraw
	EffectItemHealAll
	EffectItemRandomBasicBench

	// Tool effects.
	EffectToolHP
	EffectToolThorns
	EffectToolPoisonBarb
	EffectToolRetreat
	EffectToolDamageReduction
	EffectToolCheckupHeal

	numEffectKinds
)

// EffectInfo describes one opcode: its tag, registry, operand layout, and whether it is
// resolved inline at the point of use instead of by a registered handler.
type EffectInfo struct {
	Tag      string
	Category Category
	Args     []ArgType
	Passive  bool
	EndsTurn bool // using an ability of this kind ends the action loop
}

func info(tag string, cat Category, args ...ArgType) EffectInfo {
	return EffectInfo{Tag: tag, Category: cat, Args: args}
}

func passive(tag string, cat Category, args ...ArgType) EffectInfo {
	return EffectInfo{Tag: tag, Category: cat, Args: args, Passive: true}
}

var effectInfo = map[EffectKind]EffectInfo{
	EffectHealSelf:              info("heal_self", CategoryAttack, ArgInt),
	EffectCoinBonus:             info("coin_bonus", CategoryAttack, ArgInt),
	EffectCoinFail:              info("coin_fail", CategoryAttack),
	EffectMultiCoin:             info("multi_coin", CategoryAttack, ArgInt, ArgInt),
	EffectFlipUntilTails:        info("flip_until_tails", CategoryAttack, ArgInt),
	EffectEnergyCoins:           info("energy_coins", CategoryAttack, ArgInt),
	EffectBonusIfDamaged:        info("bonus_if_damaged", CategoryAttack, ArgInt),
	EffectBonusIfSelfDamaged:    info("bonus_if_self_damaged", CategoryAttack, ArgInt),
	EffectBonusPerEnergy:        info("bonus_per_energy", CategoryAttack, ArgEnergy, ArgInt),
	EffectBonusPerOppEnergy:     info("bonus_per_opp_energy", CategoryAttack, ArgInt),
	EffectBonusPerBench:         info("bonus_per_bench", CategoryAttack, ArgInt),
	EffectBonusPerOppBench:      info("bonus_per_opp_bench", CategoryAttack, ArgInt),
	EffectBonusIfEnergy:         info("bonus_if_energy", CategoryAttack, ArgEnergy, ArgInt, ArgInt),
	EffectBonusIfStatus:         info("bonus_if_status", CategoryAttack, ArgInt),
	EffectBonusIfPoisoned:       info("bonus_if_poisoned", CategoryAttack, ArgInt),
	EffectBonusIfEX:             info("bonus_if_ex", CategoryAttack, ArgInt),
	EffectBonusPerSelfDamage:    info("bonus_per_self_damage", CategoryAttack, ArgInt),
	EffectBonusIfTool:           info("bonus_if_tool", CategoryAttack, ArgInt),
	EffectBonusIfBenchNamed:     info("bonus_if_bench_named", CategoryAttack, ArgInt, ArgStrings),
	EffectDamageEqualSelfDamage: info("damage_equal_self_damage", CategoryAttack),
	EffectInflictStatus:         info("inflict_status", CategoryAttack, ArgStatus),
	EffectCoinStatus:            info("coin_status", CategoryAttack, ArgStatus),
	EffectInflictTwoStatus:      info("inflict_two_status", CategoryAttack, ArgStatus, ArgStatus),
	EffectSelfStatus:            info("self_status", CategoryAttack, ArgStatus),
	EffectDiscardEnergy:         info("discard_energy", CategoryAttack, ArgEnergy, ArgInt),
	EffectDiscardAllEnergy:      info("discard_all_energy", CategoryAttack),
	EffectDiscardOppEnergy:      info("discard_opp_energy", CategoryAttack, ArgInt),
	EffectCoinDiscardOppEnergy:  info("coin_discard_opp_energy", CategoryAttack),
	EffectSelfDamage:            info("self_damage", CategoryAttack, ArgInt),
	EffectBenchDamageOpp:        info("bench_damage_opp", CategoryAttack, ArgInt),
	EffectBenchDamageAll:        info("bench_damage_all", CategoryAttack, ArgInt),
	EffectSnipe:                 info("snipe", CategoryAttack, ArgInt),
	EffectSnipeBench:            info("snipe_bench", CategoryAttack, ArgInt),
	EffectRandomHits:            info("random_hits", CategoryAttack, ArgInt, ArgInt),
	EffectHealAllOwn:            info("heal_all_own", CategoryAttack, ArgInt),
	EffectCoinHide:              info("coin_hide", CategoryAttack),
	EffectNerfSelf:              info("nerf_self", CategoryAttack, ArgInt),
	EffectReduceOppAttack:       info("reduce_opp_attack", CategoryAttack, ArgInt),
	EffectAttackLock:            info("attack_lock", CategoryAttack),
	EffectCoinAttackLock:        info("coin_attack_lock", CategoryAttack),
	EffectRetreatLock:           info("retreat_lock", CategoryAttack),
	EffectSupporterLock:         info("supporter_lock", CategoryAttack),
	EffectSelfAttackLock:        info("self_attack_lock", CategoryAttack),
	EffectAttachEnergySelf:      info("attach_energy_self", CategoryAttack, ArgEnergy, ArgInt),
	EffectAttachEnergyBench:     info("attach_energy_bench", CategoryAttack, ArgEnergy, ArgInt),
	EffectSwitchSelf:            info("switch_self", CategoryAttack),
	EffectForceSwitchOpp:        info("force_switch_opp", CategoryAttack),
	EffectDraw:                  info("draw", CategoryAttack, ArgInt),
	EffectDiscardOppHandRandom:  info("discard_opp_hand_random", CategoryAttack, ArgInt),
	EffectCallForFamily:         info("call_for_family", CategoryAttack),
	EffectDiscardOppTool:        info("discard_opp_tool", CategoryAttack),
	EffectLifesteal:             passive("lifesteal", CategoryAttack),
	EffectCopyAttack:            passive("copy_attack", CategoryAttack),
	EffectCopyLastAttack:        passive("copy_last_attack", CategoryAttack),

	EffectAbilityDraw:             info("ability_draw", CategoryAbility, ArgInt),
	EffectAbilityHealActive:       info("ability_heal_active", CategoryAbility, ArgInt),
	EffectAbilityHealAllCheckup:   info("ability_heal_all_checkup", CategoryAbility, ArgInt),
	EffectAbilityDamageOppActive:  info("ability_damage_opp_active", CategoryAbility, ArgInt),
	EffectAbilityDamageOppCheckup: info("ability_damage_opp_checkup", CategoryAbility, ArgInt),
	EffectAbilityAttachEnergy:     info("ability_attach_energy", CategoryAbility, ArgEnergy),
	EffectAbilitySwitchOppActive:  info("ability_switch_opp_active", CategoryAbility),
	EffectAbilityStatusOpp:        info("ability_status_opp", CategoryAbility, ArgStatus),
	EffectAbilitySearchBasic:      info("ability_search_basic", CategoryAbility),
	EffectAbilitySwitchSelf:       info("ability_switch_self", CategoryAbility),
	EffectAbilityRest:             {Tag: "ability_rest", Category: CategoryAbility, EndsTurn: true},
	EffectAbilityMoveEnergy:       info("ability_move_energy", CategoryAbility, ArgEnergy),
	EffectAbilityCoinHeal:         info("ability_coin_heal", CategoryAbility, ArgInt),
	EffectDamageReduction:         passive("damage_reduction", CategoryAbility, ArgInt),
	EffectRetreatCostReduction:    passive("retreat_cost_reduction", CategoryAbility, ArgInt),
	EffectThorns:                  passive("thorns", CategoryAbility, ArgInt),
	EffectPreventStatus:           passive("prevent_status", CategoryAbility),
	EffectAttackBoost:             passive("attack_boost", CategoryAbility, ArgInt),

	EffectTrainerDraw:             info("trainer_draw", CategoryTrainer, ArgInt),
	EffectTrainerHealType:         info("trainer_heal_type", CategoryTrainer, ArgEnergy, ArgInt),
	EffectTrainerSwitchOpp:        info("trainer_switch_opp", CategoryTrainer),
	EffectTrainerBonusDamage:      info("trainer_bonus_damage", CategoryTrainer, ArgInt),
	EffectTrainerBonusNames:       info("trainer_bonus_names", CategoryTrainer, ArgInt, ArgStrings),
	EffectTrainerBonusType:        info("trainer_bonus_type", CategoryTrainer, ArgEnergy, ArgInt),
	EffectTrainerAttachNames:      info("trainer_attach_names", CategoryTrainer, ArgEnergy, ArgInt, ArgStrings),
	EffectTrainerFlipAttach:       info("trainer_flip_attach", CategoryTrainer, ArgEnergy),
	EffectTrainerRetreatReduction: info("trainer_retreat_reduction", CategoryTrainer, ArgInt),
	EffectTrainerHealAll:          info("trainer_heal_all", CategoryTrainer, ArgInt),
	EffectTrainerReshuffleDraw:    info("trainer_reshuffle_draw", CategoryTrainer, ArgInt),
	EffectTrainerOppReshuffle:     info("trainer_opp_reshuffle", CategoryTrainer, ArgInt),
	EffectTrainerReduceNext:       info("trainer_reduce_next", CategoryTrainer, ArgInt),
	EffectTrainerMoveEnergy:       info("trainer_move_energy", CategoryTrainer, ArgEnergy),
	EffectTrainerSearchEvolution:  info("trainer_search_evolution", CategoryTrainer),
	EffectTrainerGrunt:            info("trainer_grunt", CategoryTrainer),
	EffectTrainerPullDamaged:      info("trainer_pull_damaged", CategoryTrainer),
	EffectTrainerCureAll:          info("trainer_cure_all", CategoryTrainer),
	EffectTrainerSupporterLock:    info("trainer_supporter_lock", CategoryTrainer),

	EffectItemHeal:             info("item_heal", CategoryItem, ArgInt),
	EffectItemSearchBasic:      info("item_search_basic", CategoryItem),
	EffectItemSwitch:           info("item_switch", CategoryItem),
	EffectItemOppReshuffle:     info("item_opp_reshuffle", CategoryItem, ArgInt),
	EffectItemCure:             info("item_cure", CategoryItem),
	EffectItemShield:           info("item_shield", CategoryItem, ArgInt),
	EffectItemDraw:             info("item_draw", CategoryItem, ArgInt),
	EffectItemHealAll:          info("item_heal_all", CategoryItem, ArgInt),
	EffectItemRandomBasicBench: info("item_random_basic_bench", CategoryItem),

	EffectToolHP:              passive("tool_hp", CategoryTool, ArgInt),
	EffectToolThorns:          passive("tool_thorns", CategoryTool, ArgInt),
	EffectToolPoisonBarb:      passive("tool_poison_barb", CategoryTool),
	EffectToolRetreat:         passive("tool_retreat", CategoryTool, ArgInt),
	EffectToolDamageReduction: passive("tool_damage_reduction", CategoryTool, ArgInt),
	EffectToolCheckupHeal:     passive("tool_checkup_heal", CategoryTool, ArgInt),
}

var effectByTag = func() map[string]EffectKind {
	m := make(map[string]EffectKind, len(effectInfo))
	for k, inf := range effectInfo {
		m[inf.Tag] = k
	}
	return m
}()

// Info returns the descriptor for k. EffectNone and unknown kinds return a zero EffectInfo.
func (k EffectKind) Info() EffectInfo {
	return effectInfo[k]
}

func (k EffectKind) String() string {
	if k == EffectNone {
		return "none"
	}
	if inf, ok := effectInfo[k]; ok {
		return inf.Tag
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// ParseEffectKind maps a tag to its kind. The empty tag is EffectNone.
func ParseEffectKind(tag string) (EffectKind, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return EffectNone, nil
	}
	k, ok := effectByTag[tag]
	if !ok {
		return EffectNone, fmt.Errorf("unknown effect tag %q", tag)
	}
	return k, nil
}

// KindsIn returns every kind registered under cat, in declaration order.
func KindsIn(cat Category) []EffectKind {
	var kinds []EffectKind
	for k := EffectNone + 1; k < numEffectKinds; k++ {
		if inf, ok := effectInfo[k]; ok && inf.Category == cat {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// AllKinds returns every declared effect kind except EffectNone.
func AllKinds() []EffectKind {
	kinds := make([]EffectKind, 0, int(numEffectKinds)-1)
	for k := EffectNone + 1; k < numEffectKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// --- Effect ---

// Args is the special-value tuple attached to an effect. Its layout is fixed per kind and
// checked by Effect.Check; accessors return zero values for missing or malformed entries.
type Args []string

func (a Args) Int(i int) int {
	if i >= len(a) {
		return 0
	}
	n, err := strconv.Atoi(a[i])
	if err != nil {
		return 0
	}
	return n
}

func (a Args) Energy(i int) EnergyType {
	if i >= len(a) {
		return EnergyColorless
	}
	t, err := ParseEnergyType(a[i])
	if err != nil || t == EnergyNone {
		return EnergyColorless
	}
	return t
}

func (a Args) Status(i int) Status {
	if i >= len(a) {
		return StatusAsleep
	}
	s, _ := ParseStatus(a[i])
	return s
}

func (a Args) Str(i int) string {
	if i >= len(a) {
		return ""
	}
	return a[i]
}

// Strings returns every value from index i on.
func (a Args) Strings(i int) []string {
	if i >= len(a) {
		return nil
	}
	return a[i:]
}

// Effect is an opcode plus its operands.
type Effect struct {
	Kind EffectKind
	Args Args
}

// IsZero reports whether the effect is absent.
func (e Effect) IsZero() bool {
	return e.Kind == EffectNone
}

func (e Effect) String() string {
	if len(e.Args) == 0 {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(e.Args, ", "))
}

// Check verifies the effect belongs to cat and that its operands match the kind's layout.
func (e Effect) Check(cat Category) error {
	if e.Kind == EffectNone {
		return nil
	}
	inf, ok := effectInfo[e.Kind]
	if !ok {
		return fmt.Errorf("undeclared effect kind %d", int(e.Kind))
	}
	if inf.Category != cat {
		return fmt.Errorf("effect %s belongs to %s effects, not %s", inf.Tag, inf.Category, cat)
	}
	want := len(inf.Args)
	variadic := want > 0 && inf.Args[want-1] == ArgStrings
	if variadic {
		if len(e.Args) < want {
			return fmt.Errorf("effect %s wants at least %d values, got %d", inf.Tag, want, len(e.Args))
		}
	} else if len(e.Args) != want {
		return fmt.Errorf("effect %s wants %d values, got %d", inf.Tag, want, len(e.Args))
	}
	for i, at := range inf.Args {
		v := e.Args[i]
		switch at {
		case ArgInt:
			if _, err := strconv.Atoi(v); err != nil {
				return fmt.Errorf("effect %s value %d: %q is not an int", inf.Tag, i, v)
			}
		case ArgEnergy:
			t, err := ParseEnergyType(v)
			if err != nil || t == EnergyNone {
				return fmt.Errorf("effect %s value %d: %q is not an energy type", inf.Tag, i, v)
			}
		case ArgStatus:
			if _, err := ParseStatus(v); err != nil {
				return fmt.Errorf("effect %s value %d: %w", inf.Tag, i, err)
			}
		}
	}
	return nil
}
