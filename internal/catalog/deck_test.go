package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDecks(t *testing.T) {
	c, err := Parse([]byte(miniCatalog))
	require.NoError(t, err)

	_, err = LoadDecks(c, "testdata/decks.yaml")
	assert.ErrorContains(t, err, `deck "Missing Card"`)
	assert.ErrorContains(t, err, "ghost_card")

	d, err := c.ResolveDeck(DeckEntry{
		Name:  "Rattata Rush",
		Cards: []CardEntry{{ID: "rattata", Count: 8}, {ID: "potion", Count: 12}},
	})
	require.NoError(t, err)
	assert.Len(t, d.Cards, 20)
	assert.Equal(t, "Rattata", d.Cards[0].CardName())
	assert.Equal(t, KindItem, d.Cards[19].Kind())
}

func TestDeckByNumber(t *testing.T) {
	c, err := Parse([]byte(miniCatalog + "\n  - {id: ghost_card, name: Ghost Card, effect: item_draw, values: [1]}\n"))
	require.NoError(t, err)

	d, err := DeckByNumber(c, "testdata/decks.yaml", 2)
	require.NoError(t, err)
	assert.Equal(t, "Missing Card", d.Name)
	assert.Len(t, d.Cards, 20)

	_, err = DeckByNumber(c, "testdata/decks.yaml", 3)
	assert.ErrorContains(t, err, "deck 3 not found (have 2 decks)")
}

func TestFindDeck(t *testing.T) {
	decks := []Deck{{Name: "Alpha"}, {Name: "Beta"}, {Name: "3"}}

	d, err := FindDeck(decks, "Beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta", d.Name)

	d, err = FindDeck(decks, "1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", d.Name)

	d, err = FindDeck(decks, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", d.Name)

	_, err = FindDeck(decks, "4")
	assert.EqualError(t, err, `deck "4" not found (have 3 decks)`)
	_, err = FindDeck(decks, "Gamma")
	assert.ErrorContains(t, err, `deck "Gamma" not found`)
}
