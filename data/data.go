// Package data embeds the default card catalog and decks.
package data

import _ "embed"

//go:embed cards.yaml
var Cards []byte

//go:embed decks.yaml
var Decks []byte
