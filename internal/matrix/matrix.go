// Package matrix transforms a placement list into the exact-cover column
// layout the Dancing-Links engine needs, and runs the cheap feasibility gate
// spec.md §4.3 describes before any search is attempted.
package matrix

import (
	"fmt"
	"sort"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/placement"
	"github.com/polysphere/kanoodle/internal/shape"
)

// Unsolvable describes why a board/piece combination can never be
// completed, carrying one of the two literal messages spec.md §6 defines.
type Unsolvable struct {
	Message string
}

func (u *Unsolvable) Error() string { return u.Message }

// MsgParityViolation and MsgNoPlacements are the literal messages spec.md §6
// defines for the two ways Prepare can find a board/piece pair infeasible.
const (
	MsgParityViolation = "Unsolvable: Placed pieces do not leave a solvable empty space."
	MsgNoPlacements    = "Unsolvable: No valid placements found."

	msgParityViolation = MsgParityViolation
	msgNoPlacements    = MsgNoPlacements
)

// Build is the result of preparing an exact-cover matrix for one board
// state: the ordered column names, the placements whose cells all lie
// inside the required positions, and a lookup from placement id back to
// (piece id, cells) for board reconstruction.
type Build struct {
	Columns       []string
	Rows          []matrixRow
	PlacementInfo map[placement.ID]placement.Placement
}

type matrixRow struct {
	RowKey  placement.ID
	Columns []string
}

// pieceColumn and cellColumn mirror util.py's "piece_<id>" / "pos_<x>_<y>"
// column naming exactly, since the column ordering (piece columns first, in
// supplied order, then cell columns in enumeration order) is part of the
// spec's test-stability contract.
func pieceColumn(id int) string {
	return fmt.Sprintf("piece_%d", id)
}

func cellColumn(c shape.Coord) string {
	return fmt.Sprintf("pos_%d_%d", c.X, c.Y)
}

// Prepare computes required positions and remaining pieces from b, applies
// the cell-count parity gate, enumerates placements for every remaining
// piece, and builds the column/row layout. It never runs the search engine.
func Prepare(b *board.Board, pieces []piece.Piece) (*Build, error) {
	required := b.RequiredPositions()
	_, placedIDs := b.Occupied()

	var remaining []piece.Piece
	for _, p := range pieces {
		if !placedIDs[p.ID] {
			remaining = append(remaining, p)
		}
	}

	remainingCells := 0
	for _, p := range remaining {
		remainingCells += p.CellCount()
	}
	if remainingCells != len(required) {
		return nil, &Unsolvable{Message: msgParityViolation}
	}

	// Columns: one per remaining piece (supplied order), then one per
	// required cell (enumeration order — row-major by y then x, matching
	// the deterministic iteration RequiredPositions' caller performs).
	columns := make([]string, 0, len(remaining)+len(required))
	for _, p := range remaining {
		columns = append(columns, pieceColumn(p.ID))
	}

	orderedCells := sortedCells(required)
	for _, c := range orderedCells {
		columns = append(columns, cellColumn(c))
	}

	occupied, _ := b.Occupied()

	rows := make([]matrixRow, 0)
	info := make(map[placement.ID]placement.Placement)
	for _, p := range remaining {
		for _, pl := range placement.Enumerate(p, occupied, b.Width, b.Height) {
			if !allRequired(pl.Cells, required) {
				continue
			}
			rowCols := make([]string, 0, 1+len(pl.Cells))
			rowCols = append(rowCols, pieceColumn(pl.PieceID))
			for _, c := range pl.Cells {
				rowCols = append(rowCols, cellColumn(c))
			}
			rows = append(rows, matrixRow{RowKey: pl.ID, Columns: rowCols})
			info[pl.ID] = pl
		}
	}

	if len(info) == 0 {
		return nil, &Unsolvable{Message: msgNoPlacements}
	}

	return &Build{Columns: columns, Rows: rows, PlacementInfo: info}, nil
}

func allRequired(cells []shape.Coord, required map[shape.Coord]bool) bool {
	for _, c := range cells {
		if !required[c] {
			return false
		}
	}
	return true
}

func sortedCells(required map[shape.Coord]bool) []shape.Coord {
	out := make([]shape.Coord, 0, len(required))
	for c := range required {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
