package selection

import (
	"testing"

	"github.com/robalobadob/wordgrid/internal/grid"
)

// board returns a 3x3 grid whose letters spell A..I in row-major order.
func board(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.Generate(3, 3, &seq{letters: "ABCDEFGHI"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return g
}

type seq struct {
	letters string
	i       int
}

func (s *seq) Letter() rune {
	r := rune(s.letters[s.i%len(s.letters)])
	s.i++
	return r
}

func assertPathInvariant(t *testing.T, p *Path) {
	t.Helper()
	tiles := p.Tiles()
	seen := make(map[*grid.Tile]bool)
	for i, tile := range tiles {
		if seen[tile] {
			t.Fatalf("tile %v appears twice", tile)
		}
		seen[tile] = true
		if !tile.Selected() {
			t.Fatalf("tile %v in path is not flagged selected", tile)
		}
		if i > 0 && !grid.Adjacent(tiles[i-1], tile) {
			t.Fatalf("tiles %v and %v are not adjacent", tiles[i-1], tile)
		}
	}
	if len([]rune(p.Word())) != p.Len() {
		t.Fatalf("word %q length != path length %d", p.Word(), p.Len())
	}
}

func TestClickBuildsAdjacentPath(t *testing.T) {
	g := board(t)
	p := New(nil)

	if !p.Click(g.Get(0, 0)) {
		t.Fatal("first click should start the path")
	}
	if !p.Click(g.Get(1, 1)) {
		t.Fatal("diagonal neighbour should be appended")
	}
	if !p.Click(g.Get(1, 2)) {
		t.Fatal("horizontal neighbour should be appended")
	}
	if got := p.Word(); got != "AEF" {
		t.Fatalf("Word() = %q, want AEF", got)
	}
	assertPathInvariant(t, p)
}

func TestClickIgnoresNonAdjacent(t *testing.T) {
	g := board(t)
	p := New(nil)
	p.Click(g.Get(0, 0))
	if p.Click(g.Get(2, 2)) {
		t.Fatal("non-adjacent click should be ignored")
	}
	if p.Len() != 1 || g.Get(2, 2).Selected() {
		t.Fatal("non-adjacent click changed state")
	}
}

func TestClickLastBacktracksOneStep(t *testing.T) {
	g := board(t)
	p := New(nil)
	p.Click(g.Get(0, 0))
	p.Click(g.Get(0, 1))
	p.Click(g.Get(0, 2))

	last := g.Get(0, 2)
	if !p.Click(last) {
		t.Fatal("clicking the last tile should pop it")
	}
	if p.Word() != "AB" {
		t.Fatalf("Word() = %q after backtrack, want AB", p.Word())
	}
	if last.Selected() {
		t.Fatal("popped tile still flagged selected")
	}
	assertPathInvariant(t, p)
}

func TestClickEarlierTileIsIgnored(t *testing.T) {
	g := board(t)
	p := New(nil)
	p.Click(g.Get(0, 0))
	p.Click(g.Get(0, 1))
	p.Click(g.Get(1, 1))

	if p.Click(g.Get(0, 0)) {
		t.Fatal("clicking a tile deeper in the path should be ignored")
	}
	if p.Word() != "ABE" {
		t.Fatalf("Word() = %q, want ABE", p.Word())
	}
}

func TestClickNilOrDestroyedTile(t *testing.T) {
	g := board(t)
	p := New(nil)
	if p.Click(nil) {
		t.Fatal("nil click should be ignored")
	}
	dead := g.Get(0, 0)
	g.ClearAndRefill([]*grid.Tile{dead})
	if p.Click(dead) {
		t.Fatal("destroyed tile should be ignored")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	g := board(t)
	p := New(nil)
	p.Click(g.Get(0, 0))
	p.Click(g.Get(1, 0))

	p.Clear()
	p.Clear()
	if p.Len() != 0 || p.Word() != "" {
		t.Fatalf("path not empty after Clear: %q", p.Word())
	}
	for _, tile := range g.Tiles() {
		if tile.Selected() {
			t.Fatalf("tile %v still selected after Clear", tile)
		}
	}
}

func TestTilesIsACopy(t *testing.T) {
	g := board(t)
	p := New(nil)
	p.Click(g.Get(0, 0))
	p.Click(g.Get(0, 1))
	kept := p.Tiles()
	p.Clear()
	if len(kept) != 2 || kept[0] != g.Get(0, 0) || kept[1] != g.Get(0, 1) {
		t.Fatalf("captured tiles changed after Clear: %v", kept)
	}
}

func TestChangeCallback(t *testing.T) {
	g := board(t)
	type change struct {
		id       int
		selected bool
	}
	var got []change
	p := New(func(tile *grid.Tile, selected bool) {
		got = append(got, change{tile.ID, selected})
	})

	a, b := g.Get(0, 0), g.Get(0, 1)
	p.Click(a)
	p.Click(b)
	p.Click(b)
	p.Clear()

	want := []change{{a.ID, true}, {b.ID, true}, {b.ID, false}, {a.ID, false}}
	if len(got) != len(want) {
		t.Fatalf("got %d callbacks, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("callback %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
