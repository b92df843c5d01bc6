package catalog

import (
	"fmt"
	"strings"
)

// --- Energy ---

type EnergyType int

const (
	EnergyGrass EnergyType = iota
	EnergyFire
	EnergyWater
	EnergyLightning
	EnergyPsychic
	EnergyFighting
	EnergyDarkness
	EnergyMetal
	EnergyDragon
	EnergyFairy
	EnergyColorless

	NumEnergyTypes = int(EnergyColorless) + 1

	// EnergyNone marks an absent weakness.
	EnergyNone EnergyType = -1
)

var energyNames = [NumEnergyTypes]string{
	"grass", "fire", "water", "lightning", "psychic", "fighting",
	"darkness", "metal", "dragon", "fairy", "colorless",
}

func (e EnergyType) String() string {
	if e < 0 || int(e) >= NumEnergyTypes {
		return "none"
	}
	return energyNames[e]
}

// ParseEnergyType accepts the lower-case type name. "normal" is an alias for colorless.
func ParseEnergyType(s string) (EnergyType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return EnergyNone, nil
	case "normal":
		return EnergyColorless, nil
	}
	for i, name := range energyNames {
		if name == s {
			return EnergyType(i), nil
		}
	}
	return EnergyNone, fmt.Errorf("unknown energy type %q", s)
}

// AllEnergyTypes returns the eleven energy types in declaration order.
func AllEnergyTypes() []EnergyType {
	types := make([]EnergyType, NumEnergyTypes)
	for i := range types {
		types[i] = EnergyType(i)
	}
	return types
}

// Energy is a count per energy type. Every type is always present.
type Energy [NumEnergyTypes]int

// Total returns the sum over all types.
func (e Energy) Total() int {
	n := 0
	for _, v := range e {
		n += v
	}
	return n
}

// Covers reports whether pool e can pay cost. Specific (non-colorless) requirements are
// reserved type-for-type first; the colorless requirement is then paid from whatever
// remains across all types.
func (e Energy) Covers(cost Energy) bool {
	remaining := 0
	for t := 0; t < NumEnergyTypes; t++ {
		if EnergyType(t) == EnergyColorless {
			remaining += e[t]
			continue
		}
		if e[t] < cost[t] {
			return false
		}
		remaining += e[t] - cost[t]
	}
	return remaining >= cost[EnergyColorless]
}

func (e Energy) String() string {
	var parts []string
	for t, v := range e {
		if v > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", EnergyType(t), v))
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// --- Stage ---

type Stage int

const (
	StageBasic Stage = iota
	StageStage1
	StageStage2
	StageBasicEX
	StageStage1EX
	StageStage2EX
	StageFossil
)

var stageNames = map[Stage]string{
	StageBasic:    "basic",
	StageStage1:   "stage1",
	StageStage2:   "stage2",
	StageBasicEX:  "basic_ex",
	StageStage1EX: "stage1_ex",
	StageStage2EX: "stage2_ex",
	StageFossil:   "fossil",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsBasic reports whether a card of this stage can be put into play directly.
func (s Stage) IsBasic() bool {
	return s == StageBasic || s == StageBasicEX || s == StageFossil
}

func ParseStage(s string) (Stage, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range stageNames {
		if name == s {
			return st, nil
		}
	}
	return StageBasic, fmt.Errorf("unknown stage %q", s)
}

// --- Status conditions ---

type Status int

const (
	StatusAsleep Status = iota
	StatusParalyzed
	StatusPoisoned
	StatusSuperPoisoned
	StatusConfused
	StatusBurned

	NumStatuses = int(StatusBurned) + 1
)

var statusNames = [NumStatuses]string{
	"asleep", "paralyzed", "poisoned", "super_poisoned", "confused", "burned",
}

func (s Status) String() string {
	if s < 0 || int(s) >= NumStatuses {
		return "unknown"
	}
	return statusNames[s]
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range statusNames {
		if name == s {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// --- Ability usage ---

type Usage int

const (
	UsageOncePerTurn Usage = iota
	UsagePassive
	UsageCheckup
)

func (u Usage) String() string {
	switch u {
	case UsageOncePerTurn:
		return "once_per_turn"
	case UsagePassive:
		return "always"
	case UsageCheckup:
		return "on_checkup"
	default:
		return "unknown"
	}
}

func ParseUsage(s string) (Usage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once_per_turn", "once per turn":
		return UsageOncePerTurn, nil
	case "always", "passive":
		return UsagePassive, nil
	case "on_checkup", "on-checkup", "checkup":
		return UsageCheckup, nil
	}
	return 0, fmt.Errorf("unknown ability usage %q", s)
}
