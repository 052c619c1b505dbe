// internal/grid/tile.go
//
// Tile type for the letter board.
// A tile keeps its identity for its whole life on the board: gravity moves
// update Row/Col in place, and only ClearAndRefill/ClearAndRefillAll destroy it.

package grid

import "fmt"

// Tile is a single letter on the board.
type Tile struct {
	ID     int  // unique per Grid, assigned at spawn
	Letter rune // always an uppercase A–Z letter
	Row    int  // row 0 is the bottom of the board
	Col    int

	selected bool
}

// Selected reports whether the tile is part of the current selection path.
func (t *Tile) Selected() bool { return t.selected }

// SetSelected toggles the selection flag.
// Only selection.Path calls this; everything else reads Selected().
func (t *Tile) SetSelected(v bool) { t.selected = v }

// Alive reports whether the tile is still on the board.
func (t *Tile) Alive() bool { return t.Row >= 0 && t.Col >= 0 }

func (t *Tile) String() string {
	return fmt.Sprintf("%c(%d,%d)#%d", t.Letter, t.Row, t.Col, t.ID)
}

// Adjacent reports whether a and b sit on Chebyshev-neighbouring cells
// (diagonals included, same cell excluded). Destroyed tiles are never adjacent.
func Adjacent(a, b *Tile) bool {
	if a == nil || b == nil || !a.Alive() || !b.Alive() {
		return false
	}
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	return dr <= 1 && dc <= 1 && dr+dc > 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
