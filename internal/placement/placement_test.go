package placement

import (
	"testing"

	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/shape"
)

func domino() piece.Piece {
	return piece.Piece{ID: 1, Name: "domino", Shape: shape.Canonical([]shape.Coord{{0, 0}, {1, 0}})}
}

func TestEnumerateOnEmptyBoard(t *testing.T) {
	p := domino()
	got := Enumerate(p, map[shape.Coord]bool{}, 2, 1)
	// A 1x2 domino on a 2x1 board: horizontal orientation fits once,
	// vertical orientation fits zero times (board is only 1 row tall).
	if len(got) != 1 {
		t.Fatalf("Enumerate = %d placements, want 1", len(got))
	}
}

func TestEnumerateRejectsOccupiedCells(t *testing.T) {
	p := domino()
	occupied := map[shape.Coord]bool{{X: 1, Y: 0}: true}
	got := Enumerate(p, occupied, 2, 1)
	if len(got) != 0 {
		t.Fatalf("Enumerate = %d placements, want 0 (occupied cell blocks the only fit)", len(got))
	}
}

func TestEnumerateDeterministicOrder(t *testing.T) {
	p := domino()
	a := Enumerate(p, map[shape.Coord]bool{}, 3, 2)
	b := Enumerate(p, map[shape.Coord]bool{}, 3, 2)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic placement count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("order mismatch at %d: %v vs %v", i, a[i].ID, b[i].ID)
		}
	}
}

func TestEnumerateCellsAreSorted(t *testing.T) {
	p := domino()
	got := Enumerate(p, map[shape.Coord]bool{}, 3, 2)
	for _, pl := range got {
		for i := 1; i < len(pl.Cells); i++ {
			prev, cur := pl.Cells[i-1], pl.Cells[i]
			if prev.X > cur.X || (prev.X == cur.X && prev.Y > cur.Y) {
				t.Errorf("cells not sorted: %v", pl.Cells)
			}
		}
	}
}

func TestEnumeratePlacementsStayInBounds(t *testing.T) {
	p := domino()
	got := Enumerate(p, map[shape.Coord]bool{}, 3, 3)
	for _, pl := range got {
		for _, c := range pl.Cells {
			if c.X < 0 || c.X >= 3 || c.Y < 0 || c.Y >= 3 {
				t.Errorf("placement out of bounds: %v", pl.Cells)
			}
		}
	}
}
