package board

import (
	"strings"
	"testing"

	"github.com/polysphere/kanoodle/internal/shape"
)

func TestFromRowsPadsRaggedInput(t *testing.T) {
	b := FromRows(3, 2, [][]int{{1}})
	if b.Cells[0][0] != 1 || b.Cells[0][1] != 0 || b.Cells[1][0] != 0 {
		t.Errorf("unexpected cells: %v", b.Cells)
	}
}

func TestFromRowsIgnoresExtraRows(t *testing.T) {
	b := FromRows(2, 1, [][]int{{1, 2}, {3, 4}})
	if b.Height != 1 || len(b.Cells) != 1 {
		t.Errorf("expected 1 row, got %d", len(b.Cells))
	}
}

func TestIsComplete(t *testing.T) {
	b := New(2, 1)
	if b.IsComplete() {
		t.Error("empty board reported complete")
	}
	b.Cells[0][0], b.Cells[0][1] = 1, 2
	if !b.IsComplete() {
		t.Error("fully stamped board reported incomplete")
	}
}

func TestRequiredPositions(t *testing.T) {
	b := FromRows(2, 2, [][]int{{1, 0}, {0, 0}})
	req := b.RequiredPositions()
	if len(req) != 3 {
		t.Fatalf("expected 3 required positions, got %d", len(req))
	}
	if req[shape.Coord{X: 0, Y: 0}] {
		t.Error("occupied cell should not be required")
	}
}

func TestStamp(t *testing.T) {
	b := New(2, 2)
	b.Stamp(5, []shape.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}})
	if b.Cells[0][0] != 5 || b.Cells[0][1] != 5 {
		t.Errorf("stamp did not write expected cells: %v", b.Cells)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(1, 1)
	clone := b.Clone()
	clone.Cells[0][0] = 9
	if b.Cells[0][0] != 0 {
		t.Error("mutating clone affected original")
	}
}

func TestReadJSONRejectsBadDimensions(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"width":0,"height":3,"cells":[]}`))
	if err == nil {
		t.Error("expected error for zero width")
	}
}

func TestReadJSONAcceptsMissingCells(t *testing.T) {
	b, err := ReadJSON(strings.NewReader(`{"width":2,"height":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.IsComplete() {
		t.Error("board with no cells should be all-empty")
	}
}
