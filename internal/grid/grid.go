// internal/grid/grid.go
//
// Authoritative board state for a single session.
// Responsibilities:
//   - Fill a rows×cols board with weighted random letters.
//   - Answer cell lookups (out-of-range probes return nil, never fail).
//   - Clear tiles, compact each column toward row 0, and refill the top.
//
// Invariants (observable between calls):
//   - Every cell holds exactly one tile.
//   - A tile's Row/Col always equals the cell that references it.

package grid

import (
	"errors"
	"fmt"
)

// ErrBadDimensions is returned when a board would have no cells.
var ErrBadDimensions = errors.New("grid: rows and cols must be positive")

// Grid owns every tile on the board.
type Grid struct {
	rows    int
	cols    int
	cells   [][]*Tile // [row][col]
	letters LetterSource
	nextID  int
}

// Generate builds a fully populated board.
func Generate(rows, cols int, letters LetterSource) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrBadDimensions, rows, cols)
	}
	if letters == nil {
		return nil, errors.New("grid: nil letter source")
	}
	g := &Grid{rows: rows, cols: cols, letters: letters}
	g.fill()
	return g, nil
}

func (g *Grid) fill() {
	g.cells = make([][]*Tile, g.rows)
	for r := 0; r < g.rows; r++ {
		g.cells[r] = make([]*Tile, g.cols)
		for c := 0; c < g.cols; c++ {
			g.cells[r][c] = g.spawn(r, c)
		}
	}
}

func (g *Grid) spawn(r, c int) *Tile {
	g.nextID++
	return &Tile{ID: g.nextID, Letter: g.letters.Letter(), Row: r, Col: c}
}

// Rows returns the board height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the board width.
func (g *Grid) Cols() int { return g.cols }

// Get returns the tile at (row, col), or nil when the coordinates are off the board.
func (g *Grid) Get(row, col int) *Tile {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return g.cells[row][col]
}

// Find returns the live tile with the given ID, or nil.
func (g *Grid) Find(id int) *Tile {
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil && t.ID == id {
				return t
			}
		}
	}
	return nil
}

// Tiles returns every tile in row-major order (row 0 first).
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, g.rows*g.cols)
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// ClearAndRefill destroys the given tiles, lets the survivors fall toward
// row 0 (keeping their relative order), and spawns new tiles above them.
// Tiles that no longer occupy the cell they claim are skipped.
func (g *Grid) ClearAndRefill(tiles []*Tile) {
	if len(tiles) == 0 {
		return
	}

	for _, t := range tiles {
		if t == nil {
			continue
		}
		if g.Get(t.Row, t.Col) != t {
			continue
		}
		g.cells[t.Row][t.Col] = nil
		destroy(t)
	}

	for c := 0; c < g.cols; c++ {
		write := 0
		for r := 0; r < g.rows; r++ {
			t := g.cells[r][c]
			if t == nil {
				continue
			}
			if r != write {
				g.cells[write][c] = t
				g.cells[r][c] = nil
				t.Row = write
			}
			write++
		}
		for r := write; r < g.rows; r++ {
			g.cells[r][c] = g.spawn(r, c)
		}
	}
}

// ClearAndRefillAll destroys every tile and regenerates the board.
func (g *Grid) ClearAndRefillAll() {
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil {
				destroy(t)
			}
		}
	}
	g.fill()
}

func destroy(t *Tile) {
	t.Row, t.Col = -1, -1
}

// Position maps a cell to layout coordinates for the renderer.
// The board is centred on the origin: column c sits at c*spacing minus half
// the board width, and likewise for rows.
func Position(row, col, rows, cols int, spacing float64) (x, y float64) {
	xOffset := -float64(cols-1) * spacing * 0.5
	yOffset := -float64(rows-1) * spacing * 0.5
	return float64(col)*spacing + xOffset, float64(row)*spacing + yOffset
}
