// Package placement enumerates every legal translation of every orientation
// of a piece within the board's required (empty) cells — spec.md §4.2.
package placement

import (
	"sort"

	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/shape"
)

// ID identifies a placement uniquely within one solve invocation: the piece
// it belongs to, plus a counter scoped to that piece.
type ID struct {
	PieceID int
	Counter int
}

// Placement is one translated orientation of a piece, entirely inside the
// board's required cells.
type Placement struct {
	ID       ID
	PieceID  int
	Cells    []shape.Coord // sorted lexicographically, per spec.md §4.2
}

// Enumerate produces every placement of p that lies entirely within
// occupied's complement and the board bounds, in the deterministic order
// spec.md §4.2 mandates: orientation-outer, dy-inner-innermost.
func Enumerate(p piece.Piece, occupied map[shape.Coord]bool, width, height int) []Placement {
	var out []Placement
	counter := 0

	for _, orientation := range shape.Orientations(p.Shape) {
		minX, minY, maxX, maxY := orientation.Bounds()

		for dx := -minX; dx <= width-1-maxX; dx++ {
			for dy := -minY; dy <= height-1-maxY; dy++ {
				cells := orientation.Translate(dx, dy)
				if !fits(cells, occupied, width, height) {
					continue
				}
				sorted := sortedCoords(cells)
				out = append(out, Placement{
					ID:      ID{PieceID: p.ID, Counter: counter},
					PieceID: p.ID,
					Cells:   sorted,
				})
				counter++
			}
		}
	}
	return out
}

func fits(cells []shape.Coord, occupied map[shape.Coord]bool, width, height int) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y >= height {
			return false
		}
		if occupied[c] {
			return false
		}
	}
	return true
}

func sortedCoords(cells []shape.Coord) []shape.Coord {
	out := append([]shape.Coord(nil), cells...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}
