// Package piece defines the polyomino piece catalog entry: an id, a display
// name, a base shape in relative coordinates, and a color passed through to
// the host unchanged.
package piece

import (
	"fmt"

	"github.com/polysphere/kanoodle/internal/shape"
)

// EmptyID is reserved to mean "empty cell" on boards; no piece may use it.
const EmptyID = 0

// Piece is a single polyomino definition supplied by the host.
type Piece struct {
	ID    int
	Name  string
	Shape shape.Shape
	Color string
}

// Validate enforces the id/shape invariants spec.md §6 requires: ids are
// unique and positive, shapes are non-empty. Uniqueness is checked across a
// whole catalog by ValidateCatalog, not by a single Piece in isolation.
func (p Piece) Validate() error {
	if p.ID <= EmptyID {
		return fmt.Errorf("piece %q: id must be >= 1, got %d", p.Name, p.ID)
	}
	if len(p.Shape) == 0 {
		return fmt.Errorf("piece %q (id %d): shape must be non-empty", p.Name, p.ID)
	}
	return nil
}

// ValidateCatalog checks a full piece list for the invariants the solver
// façade depends on: each piece passes Validate (positive id, non-empty
// shape), ids are unique, and names are unique.
func ValidateCatalog(pieces []Piece) error {
	ids := make(map[int]bool, len(pieces))
	names := make(map[string]bool, len(pieces))
	for _, p := range pieces {
		if err := p.Validate(); err != nil {
			return err
		}
		if ids[p.ID] {
			return fmt.Errorf("duplicate piece id %d", p.ID)
		}
		ids[p.ID] = true
		if names[p.Name] {
			return fmt.Errorf("duplicate piece name %q", p.Name)
		}
		names[p.Name] = true
	}
	return nil
}

// CellCount returns the number of cells the piece's base shape occupies.
func (p Piece) CellCount() int {
	return len(p.Shape)
}
