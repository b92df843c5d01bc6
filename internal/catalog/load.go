package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level YAML structure of a catalog file.
type File struct {
	Attacks   []AttackEntry  `yaml:"attacks"`
	Abilities []AbilityEntry `yaml:"abilities"`
	Pokemon   []PokemonEntry `yaml:"pokemon"`
	Trainers  []TrainerEntry `yaml:"trainers"`
	Items     []EffectEntry  `yaml:"items"`
	Tools     []EffectEntry  `yaml:"tools"`
}

type AttackEntry struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Damage int            `yaml:"damage"`
	Cost   map[string]int `yaml:"cost"`
	Effect string         `yaml:"effect"`
	Values []any          `yaml:"values"`
}

type AbilityEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Usage  string `yaml:"usage"`
	Effect string `yaml:"effect"`
	Values []any  `yaml:"values"`
}

type PokemonEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Stage       string   `yaml:"stage"`
	EvolvesFrom string   `yaml:"evolves_from"`
	HP          int      `yaml:"hp"`
	Type        string   `yaml:"type"`
	Weakness    string   `yaml:"weakness"`
	Retreat     int      `yaml:"retreat"`
	Attacks     []string `yaml:"attacks"`
	Ability     string   `yaml:"ability"`
}

type TrainerEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Supporter bool   `yaml:"supporter"`
	Effect    string `yaml:"effect"`
	Values    []any  `yaml:"values"`
}

// EffectEntry is the shape shared by items and tools.
type EffectEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Effect string `yaml:"effect"`
	Values []any  `yaml:"values"`
}

// Load reads and parses a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a catalog from YAML. Attack and ability references are resolved here;
// every unresolvable reference, unknown tag, or malformed field is reported, joined.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	return Build(f)
}

// Build converts a decoded File into a Catalog.
func Build(f File) (*Catalog, error) {
	c := New()
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for _, e := range f.Attacks {
		eff, err := parseEffect(e.Effect, e.Values)
		if err != nil {
			fail("attack %q: %w", e.ID, err)
		}
		cost, err := parseEnergy(e.Cost)
		if err != nil {
			fail("attack %q cost: %w", e.ID, err)
		}
		if _, dup := c.Attacks[e.ID]; dup {
			fail("attack %q declared twice", e.ID)
		}
		c.Attacks[e.ID] = &Attack{ID: e.ID, Name: e.Name, Damage: e.Damage, Cost: cost, Effect: eff}
	}

	for _, e := range f.Abilities {
		eff, err := parseEffect(e.Effect, e.Values)
		if err != nil {
			fail("ability %q: %w", e.ID, err)
		}
		usage, err := ParseUsage(e.Usage)
		if err != nil {
			fail("ability %q: %w", e.ID, err)
		}
		c.Abilities[e.ID] = &Ability{ID: e.ID, Name: e.Name, Effect: eff, Usage: usage}
	}

	for _, e := range f.Pokemon {
		stage, err := ParseStage(e.Stage)
		if err != nil {
			fail("pokemon %q: %w", e.ID, err)
		}
		typ, err := ParseEnergyType(e.Type)
		if err != nil || typ == EnergyNone {
			fail("pokemon %q: bad type %q", e.ID, e.Type)
			typ = EnergyColorless
		}
		weak, err := ParseEnergyType(e.Weakness)
		if err != nil {
			fail("pokemon %q: %w", e.ID, err)
		}
		p := &PokemonCard{
			ID:          e.ID,
			Name:        e.Name,
			Stage:       stage,
			EvolvesFrom: e.EvolvesFrom,
			HP:          e.HP,
			Type:        typ,
			Weakness:    weak,
			Retreat:     e.Retreat,
		}
		for _, id := range e.Attacks {
			a, ok := c.Attacks[id]
			if !ok {
				fail("pokemon %q references unknown attack %q", e.ID, id)
				continue
			}
			p.Attacks = append(p.Attacks, a)
		}
		if e.Ability != "" {
			a, ok := c.Abilities[e.Ability]
			if !ok {
				fail("pokemon %q references unknown ability %q", e.ID, e.Ability)
			}
			p.Ability = a
		}
		if _, dup := c.Pokemon[e.ID]; dup {
			fail("pokemon %q declared twice", e.ID)
		}
		c.Pokemon[e.ID] = p
	}

	for _, e := range f.Trainers {
		eff, err := parseEffect(e.Effect, e.Values)
		if err != nil {
			fail("trainer %q: %w", e.ID, err)
		}
		c.Trainers[e.ID] = &TrainerCard{ID: e.ID, Name: e.Name, Supporter: e.Supporter, Effect: eff}
	}
	for _, e := range f.Items {
		eff, err := parseEffect(e.Effect, e.Values)
		if err != nil {
			fail("item %q: %w", e.ID, err)
		}
		c.Items[e.ID] = &ItemCard{ID: e.ID, Name: e.Name, Effect: eff}
	}
	for _, e := range f.Tools {
		eff, err := parseEffect(e.Effect, e.Values)
		if err != nil {
			fail("tool %q: %w", e.ID, err)
		}
		c.Tools[e.ID] = &ToolCard{ID: e.ID, Name: e.Name, Effect: eff}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func parseEffect(tag string, values []any) (Effect, error) {
	kind, err := ParseEffectKind(tag)
	if err != nil {
		return Effect{}, err
	}
	args := make(Args, 0, len(values))
	for _, v := range values {
		args = append(args, fmt.Sprint(v))
	}
	return Effect{Kind: kind, Args: args}, nil
}

func parseEnergy(m map[string]int) (Energy, error) {
	var e Energy
	for name, n := range m {
		t, err := ParseEnergyType(name)
		if err != nil {
			return e, err
		}
		if t == EnergyNone {
			return e, fmt.Errorf("energy type required")
		}
		if n < 0 {
			return e, fmt.Errorf("negative %s cost %d", t, n)
		}
		e[t] += n
	}
	return e, nil
}
