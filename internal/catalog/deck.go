package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure of a decks file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry references a catalog card by ID with a copy count.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Deck is a named, resolved card list.
type Deck struct {
	Name  string
	Cards []Card
}

// ParseDeckFile parses YAML deck data.
func ParseDeckFile(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return df, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// LoadDecks reads a decks file and resolves every deck against the catalog.
func LoadDecks(c *Catalog, path string) ([]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.ParseDecks(data)
}

// ParseDecks parses YAML deck data and resolves every deck against the catalog.
func (c *Catalog) ParseDecks(data []byte) ([]Deck, error) {
	df, err := ParseDeckFile(data)
	if err != nil {
		return nil, err
	}
	decks := make([]Deck, 0, len(df.Decks))
	for _, entry := range df.Decks {
		d, err := c.ResolveDeck(entry)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the decks file.
func DeckByNumber(c *Catalog, path string, n int) (Deck, error) {
	decks, err := LoadDecks(c, path)
	if err != nil {
		return Deck{}, err
	}
	if n < 1 || n > len(decks) {
		return Deck{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(decks))
	}
	return decks[n-1], nil
}

// FindDeck returns the deck named name, or the Nth deck (1-indexed) when name is a number.
func FindDeck(decks []Deck, name string) (Deck, error) {
	for _, d := range decks {
		if d.Name == name {
			return d, nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil && n >= 1 && n <= len(decks) {
		return decks[n-1], nil
	}
	return Deck{}, fmt.Errorf("deck %q not found (have %d decks)", name, len(decks))
}

// ResolveDeck expands a deck entry into catalog cards.
func (c *Catalog) ResolveDeck(entry DeckEntry) (Deck, error) {
	d := Deck{Name: entry.Name}
	for _, ce := range entry.Cards {
		card, err := c.Lookup(ce.ID)
		if err != nil {
			return Deck{}, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		for i := 0; i < ce.Count; i++ {
			d.Cards = append(d.Cards, card)
		}
	}
	return d, nil
}
