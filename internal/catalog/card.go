// Package catalog holds the immutable card reference data a match is played with.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the card variant.
type Kind int

const (
	KindPokemon Kind = iota
	KindTrainer
	KindItem
	KindTool
)

func (k Kind) String() string {
	switch k {
	case KindPokemon:
		return "Pokémon"
	case KindTrainer:
		return "Trainer"
	case KindItem:
		return "Item"
	case KindTool:
		return "Tool"
	default:
		return "Unknown"
	}
}

// Card is any catalog entry that can sit in a deck.
type Card interface {
	CardID() string
	CardName() string
	Kind() Kind
}

type Attack struct {
	ID     string
	Name   string
	Damage int
	Cost   Energy
	Effect Effect
}

func (a *Attack) String() string {
	return a.Name
}

type Ability struct {
	ID     string
	Name   string
	Effect Effect
	Usage  Usage
}

type PokemonCard struct {
	ID          string
	Name        string
	Stage       Stage
	EvolvesFrom string // name of the predecessor; empty for basics
	HP          int
	Type        EnergyType
	Weakness    EnergyType
	Retreat     int
	Attacks     []*Attack
	Ability     *Ability
}

func (c *PokemonCard) CardID() string   { return c.ID }
func (c *PokemonCard) CardName() string { return c.Name }
func (c *PokemonCard) Kind() Kind       { return KindPokemon }

// IsEX reports whether a knockout of this Pokémon is worth two points.
func (c *PokemonCard) IsEX() bool {
	return strings.HasSuffix(c.Name, " ex")
}

// IsEvolution reports whether the card must be played onto a predecessor.
func (c *PokemonCard) IsEvolution() bool {
	return !c.Stage.IsBasic()
}

type TrainerCard struct {
	ID        string
	Name      string
	Supporter bool
	Effect    Effect
}

func (c *TrainerCard) CardID() string   { return c.ID }
func (c *TrainerCard) CardName() string { return c.Name }
func (c *TrainerCard) Kind() Kind       { return KindTrainer }

type ItemCard struct {
	ID     string
	Name   string
	Effect Effect
}

func (c *ItemCard) CardID() string   { return c.ID }
func (c *ItemCard) CardName() string { return c.Name }
func (c *ItemCard) Kind() Kind       { return KindItem }

type ToolCard struct {
	ID     string
	Name   string
	Effect Effect
}

func (c *ToolCard) CardID() string   { return c.ID }
func (c *ToolCard) CardName() string { return c.Name }
func (c *ToolCard) Kind() Kind       { return KindTool }

// Catalog indexes every card definition by ID. It is read-only once loaded.
type Catalog struct {
	Attacks   map[string]*Attack
	Abilities map[string]*Ability
	Pokemon   map[string]*PokemonCard
	Trainers  map[string]*TrainerCard
	Items     map[string]*ItemCard
	Tools     map[string]*ToolCard
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		Attacks:   make(map[string]*Attack),
		Abilities: make(map[string]*Ability),
		Pokemon:   make(map[string]*PokemonCard),
		Trainers:  make(map[string]*TrainerCard),
		Items:     make(map[string]*ItemCard),
		Tools:     make(map[string]*ToolCard),
	}
}

// Lookup finds a deck-able card by ID.
func (c *Catalog) Lookup(id string) (Card, error) {
	if p, ok := c.Pokemon[id]; ok {
		return p, nil
	}
	if t, ok := c.Trainers[id]; ok {
		return t, nil
	}
	if i, ok := c.Items[id]; ok {
		return i, nil
	}
	if t, ok := c.Tools[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("card not found in catalog: %q", id)
}

// Cards returns every deck-able card sorted by ID.
func (c *Catalog) Cards() []Card {
	var cards []Card
	for _, p := range c.Pokemon {
		cards = append(cards, p)
	}
	for _, t := range c.Trainers {
		cards = append(cards, t)
	}
	for _, i := range c.Items {
		cards = append(cards, i)
	}
	for _, t := range c.Tools {
		cards = append(cards, t)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].CardID() < cards[j].CardID() })
	return cards
}

// PokemonByName returns every Pokémon definition with the given display name.
func (c *Catalog) PokemonByName(name string) []*PokemonCard {
	var out []*PokemonCard
	for _, p := range c.Pokemon {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out
}
