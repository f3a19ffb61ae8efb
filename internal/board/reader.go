package board

import (
	"encoding/json"
	"fmt"
	"io"
)

// fileFormat is the on-disk JSON shape for a board definition, read by the
// CLI the way kpitt-sudoku/internal/puzzle.PuzzleFromFile reads a raw text
// grid — except the host format here is JSON, since a Kanoodle board also
// carries width/height rather than an implicit fixed 9x9 size.
type fileFormat struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Cells  [][]int `json:"cells"`
}

// ReadJSON parses a board definition from r. A missing or empty "cells"
// array is treated as an all-empty board, matching spec.md §6's rule that
// partial_board may be null/empty/ragged.
func ReadJSON(r io.Reader) (*Board, error) {
	var ff fileFormat
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ff); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty board input")
		}
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if ff.Width <= 0 || ff.Height <= 0 {
		return nil, fmt.Errorf("board width and height must be > 0, got %dx%d", ff.Width, ff.Height)
	}
	return FromRows(ff.Width, ff.Height, ff.Cells), nil
}
