// Package assets embeds the default data files shipped with the server:
// the dictionary word list and the level ladder.
package assets

import (
	_ "embed"
)

//go:embed words.txt
var words string

//go:embed levels.json
var levels []byte

// WordList returns the embedded dictionary source (one word per line, any case, unsorted).
func WordList() string { return words }

// Levels returns the embedded level ladder as JSON.
func Levels() []byte { return levels }
