package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// Validate is the offline integrity pass over a loaded catalog. It reports every effect whose
// tag belongs to the wrong registry or whose special values do not fit the tag's layout, every
// evolution whose predecessor name is unknown, and obviously broken stats. A catalog that
// passes never produces a dangling reference mid-match.
func Validate(c *Catalog) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, id := range sortedKeys(c.Attacks) {
		a := c.Attacks[id]
		if a.Damage < 0 {
			add(fmt.Errorf("attack %q: negative damage %d", id, a.Damage))
		}
		if err := a.Effect.Check(CategoryAttack); err != nil {
			add(fmt.Errorf("attack %q: %w", id, err))
		}
	}
	for _, id := range sortedKeys(c.Abilities) {
		a := c.Abilities[id]
		if a.Effect.IsZero() {
			add(fmt.Errorf("ability %q: no effect", id))
			continue
		}
		if err := a.Effect.Check(CategoryAbility); err != nil {
			add(fmt.Errorf("ability %q: %w", id, err))
		}
		if a.Effect.Kind.Info().Passive && a.Usage != UsagePassive {
			add(fmt.Errorf("ability %q: passive effect %s must use usage %q", id, a.Effect.Kind, UsagePassive))
		}
	}

	names := make(map[string]bool)
	for _, p := range c.Pokemon {
		names[p.Name] = true
	}
	for _, id := range sortedKeys(c.Pokemon) {
		p := c.Pokemon[id]
		if p.HP <= 0 {
			add(fmt.Errorf("pokemon %q: hp must be positive", id))
		}
		if p.Retreat < 0 {
			add(fmt.Errorf("pokemon %q: negative retreat cost", id))
		}
		for i, a := range p.Attacks {
			if a == nil {
				add(fmt.Errorf("pokemon %q: attack %d is unresolved", id, i))
			}
		}
		if p.IsEvolution() {
			if p.EvolvesFrom == "" {
				add(fmt.Errorf("pokemon %q: %s card without evolves_from", id, p.Stage))
			} else if !names[p.EvolvesFrom] {
				add(fmt.Errorf("pokemon %q: evolves from unknown pokemon %q", id, p.EvolvesFrom))
			}
		}
	}

	for _, id := range sortedKeys(c.Trainers) {
		if err := requireEffect(c.Trainers[id].Effect, CategoryTrainer); err != nil {
			add(fmt.Errorf("trainer %q: %w", id, err))
		}
	}
	for _, id := range sortedKeys(c.Items) {
		if err := requireEffect(c.Items[id].Effect, CategoryItem); err != nil {
			add(fmt.Errorf("item %q: %w", id, err))
		}
	}
	for _, id := range sortedKeys(c.Tools) {
		if err := requireEffect(c.Tools[id].Effect, CategoryTool); err != nil {
			add(fmt.Errorf("tool %q: %w", id, err))
		}
	}

	return errors.Join(errs...)
}

func requireEffect(e Effect, cat Category) error {
	if e.IsZero() {
		return errors.New("no effect")
	}
	return e.Check(cat)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
