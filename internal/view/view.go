// Package view builds read-only JSON projections of a match for presentation layers.
package view

import (
	"github.com/peterkuimelis/tcgpocket/internal/catalog"
	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/log"
)

// EventView is a simplified match event.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Target  string `json:"target,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// CardView describes a card candidate for selection.
type CardView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	HP    int    `json:"hp,omitempty"`
}

// StateView is the match state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
	Slots      []SlotView `json:"slots,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Name         string         `json:"name"`
	Points       int            `json:"points"`
	HandCount    int            `json:"hand_count"`
	Hand         []string       `json:"hand,omitempty"` // card names (only for "you")
	DeckCount    int            `json:"deck_count"`
	DiscardCount int            `json:"discard_count"`
	EnergyPool   map[string]int `json:"energy_pool,omitempty"`
	EnergyTypes  []string       `json:"energy_types"`
	Active       *PokemonView   `json:"active,omitempty"`
	Bench        []PokemonView  `json:"bench"`
}

// PokemonView describes one Pokémon in play.
type PokemonView struct {
	Name     string         `json:"name"`
	Stage    string         `json:"stage"`
	Type     string         `json:"type"`
	HP       int            `json:"hp"`
	MaxHP    int            `json:"max_hp"`
	Energy   map[string]int `json:"energy,omitempty"`
	Status   []string       `json:"status,omitempty"`
	Tool     string         `json:"tool,omitempty"`
	Ability  string         `json:"ability,omitempty"`
	Attacks  []string       `json:"attacks,omitempty"`
	Weakness string         `json:"weakness,omitempty"`
	Retreat  int            `json:"retreat"`
	Hiding   bool           `json:"hiding,omitempty"`
}

// SlotView is an active match-wide effect.
type SlotView struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Player int    `json:"player"`
}

// BuildStateView projects m from perspective's point of view. Only perspective's hand is
// revealed.
func BuildStateView(m *game.Match, perspective int) *StateView {
	sv := &StateView{
		You:        buildPlayerView(m.Players[perspective], true),
		Opponent:   buildPlayerView(m.Players[1-perspective], false),
		Turn:       m.Turn,
		Phase:      m.Phase.String(),
		IsYourTurn: m.Current == perspective,
	}
	for _, s := range []struct {
		name string
		slot *game.GlobalEffect
	}{
		{"attack_prevention", m.AttackPrevention},
		{"supporter_prevention", m.SupporterPrevention},
		{"shield", m.Shield},
		{"damage_reduction", m.DamageReduction},
	} {
		if s.slot != nil {
			sv.Slots = append(sv.Slots, SlotView{Name: s.name, Amount: s.slot.Amount, Player: s.slot.Player})
		}
	}
	return sv
}

func buildPlayerView(p *game.Player, showHand bool) PlayerView {
	pv := PlayerView{
		Name:         log.PlayerName(p.Index),
		Points:       p.Points,
		HandCount:    len(p.Hand),
		DeckCount:    len(p.Deck),
		DiscardCount: len(p.Discard),
		EnergyPool:   energyMap(p.EnergyPool),
		Bench:        []PokemonView{},
	}
	if showHand {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, c.Name())
		}
	}
	for _, t := range p.EnergyTypes {
		pv.EnergyTypes = append(pv.EnergyTypes, t.String())
	}
	if p.Active != nil {
		av := BuildPokemonView(p.Active)
		pv.Active = &av
	}
	for _, pk := range p.Bench {
		pv.Bench = append(pv.Bench, BuildPokemonView(pk))
	}
	return pv
}

// BuildPokemonView describes pk.
func BuildPokemonView(pk *game.Pokemon) PokemonView {
	v := PokemonView{
		Name:    pk.Name(),
		Stage:   pk.Card.Stage.String(),
		Type:    pk.Card.Type.String(),
		HP:      pk.HP(),
		MaxHP:   pk.MaxHP(),
		Energy:  energyMap(pk.Energy),
		Retreat: pk.Card.Retreat,
		Hiding:  pk.Hiding,
	}
	if pk.Card.Weakness != catalog.EnergyNone {
		v.Weakness = pk.Card.Weakness.String()
	}
	for _, s := range pk.Status {
		v.Status = append(v.Status, s.String())
	}
	if pk.Tool != nil {
		v.Tool = pk.Tool.Name()
	}
	if pk.Card.Ability != nil {
		v.Ability = pk.Card.Ability.Name
	}
	for _, a := range pk.Card.Attacks {
		v.Attacks = append(v.Attacks, a.Name)
	}
	return v
}

// energyMap lists the non-zero counts of e, or nil when e is empty.
func energyMap(e catalog.Energy) map[string]int {
	var out map[string]int
	for t, n := range e {
		if n == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]int)
		}
		out[catalog.EnergyType(t).String()] = n
	}
	return out
}

// Actions numbers a legal action list.
func Actions(actions []game.Action) []ActionView {
	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{Index: i, Type: a.Type.String(), Desc: a.String()}
	}
	return views
}

// Cards numbers a candidate card list.
func Cards(options []game.Card) []CardView {
	views := make([]CardView, len(options))
	for i, c := range options {
		cv := CardView{Index: i, Name: c.Name(), Kind: c.Def().Kind().String()}
		if pk, ok := c.(*game.Pokemon); ok {
			cv.HP = pk.HP()
		}
		views[i] = cv
	}
	return views
}

// Event converts a logged event.
func Event(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Target:  e.Target,
		Amount:  e.Amount,
		Details: e.Details,
	}
}

// Events converts a slice of logged events.
func Events(events []log.GameEvent) []EventView {
	views := make([]EventView, len(events))
	for i, e := range events {
		views[i] = Event(e)
	}
	return views
}

// CatalogCard is the JSON shape of one catalog entry.
type CatalogCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Stage       string   `json:"stage,omitempty"`
	Type        string   `json:"type,omitempty"`
	HP          int      `json:"hp,omitempty"`
	EvolvesFrom string   `json:"evolves_from,omitempty"`
	Attacks     []string `json:"attacks,omitempty"`
	Ability     string   `json:"ability,omitempty"`
	Effect      string   `json:"effect,omitempty"`
	Supporter   bool     `json:"supporter,omitempty"`
}

// Catalog lists every deck-able card, sorted by ID.
func Catalog(c *catalog.Catalog) []CatalogCard {
	cards := c.Cards()
	out := make([]CatalogCard, 0, len(cards))
	for _, card := range cards {
		cc := CatalogCard{ID: card.CardID(), Name: card.CardName(), Kind: card.Kind().String()}
		switch d := card.(type) {
		case *catalog.PokemonCard:
			cc.Stage = d.Stage.String()
			cc.Type = d.Type.String()
			cc.HP = d.HP
			cc.EvolvesFrom = d.EvolvesFrom
			for _, a := range d.Attacks {
				cc.Attacks = append(cc.Attacks, a.Name)
			}
			if d.Ability != nil {
				cc.Ability = d.Ability.Name
			}
		case *catalog.TrainerCard:
			cc.Effect = d.Effect.String()
			cc.Supporter = d.Supporter
		case *catalog.ItemCard:
			cc.Effect = d.Effect.String()
		case *catalog.ToolCard:
			cc.Effect = d.Effect.String()
		}
		out = append(out, cc)
	}
	return out
}
