// Package selection tracks the in-progress path of tiles a player traces.
//
// A path is an ordered, duplicate-free list of tiles in which every
// consecutive pair is Chebyshev-adjacent. The order spells the word.
package selection

import (
	"strings"

	"github.com/robalobadob/wordgrid/internal/grid"
)

// ChangeFunc is called after a tile joins (selected=true) or leaves the path.
type ChangeFunc func(t *grid.Tile, selected bool)

// Path is the current selection. The zero value is an empty path.
type Path struct {
	tiles    []*grid.Tile
	onChange ChangeFunc
}

// New returns an empty path. onChange may be nil.
func New(onChange ChangeFunc) *Path {
	return &Path{onChange: onChange}
}

// Click applies one "tile clicked" event and reports whether the path changed.
//
//   - Clicking the last tile removes it (single-step backtrack).
//   - Clicking any other tile already in the path is ignored.
//   - Any tile may start an empty path.
//   - Otherwise the tile is appended only if adjacent to the last one.
func (p *Path) Click(t *grid.Tile) bool {
	if t == nil || !t.Alive() {
		return false
	}
	if n := len(p.tiles); n > 0 && p.tiles[n-1] == t {
		p.pop()
		return true
	}
	if p.Contains(t) {
		return false
	}
	if len(p.tiles) == 0 || grid.Adjacent(p.Last(), t) {
		p.push(t)
		return true
	}
	return false
}

func (p *Path) push(t *grid.Tile) {
	p.tiles = append(p.tiles, t)
	t.SetSelected(true)
	p.changed(t, true)
}

func (p *Path) pop() {
	n := len(p.tiles)
	last := p.tiles[n-1]
	p.tiles[n-1] = nil
	p.tiles = p.tiles[:n-1]
	last.SetSelected(false)
	p.changed(last, false)
}

func (p *Path) changed(t *grid.Tile, selected bool) {
	if p.onChange != nil {
		p.onChange(t, selected)
	}
}

// Word concatenates the letters of the path in order ("" when empty).
func (p *Path) Word() string {
	var sb strings.Builder
	for _, t := range p.tiles {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}

// Len returns the number of tiles in the path.
func (p *Path) Len() int { return len(p.tiles) }

// Last returns the most recently added tile, or nil.
func (p *Path) Last() *grid.Tile {
	if len(p.tiles) == 0 {
		return nil
	}
	return p.tiles[len(p.tiles)-1]
}

// Contains reports whether t is anywhere in the path.
func (p *Path) Contains(t *grid.Tile) bool {
	for _, x := range p.tiles {
		if x == t {
			return true
		}
	}
	return false
}

// Tiles returns a copy of the path, safe to keep after Clear.
func (p *Path) Tiles() []*grid.Tile {
	out := make([]*grid.Tile, len(p.tiles))
	copy(out, p.tiles)
	return out
}

// Clear deselects every tile and empties the path. Calling it on an empty path is a no-op.
func (p *Path) Clear() {
	for len(p.tiles) > 0 {
		p.pop()
	}
}
