// Package solve is the solver façade of spec.md §4.5: it accepts a board and
// piece catalog, validates feasibility, drives internal/matrix and
// internal/dlx, and reconstructs boards from the winning placement sets.
// Orchestration style (construct, validate, delegate, log) is grounded on
// kpitt-sudoku/internal/solver/solver.go's Solver.Solve() pass loop.
package solve

import (
	"fmt"
	"time"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/dlx"
	"github.com/polysphere/kanoodle/internal/matrix"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/placement"
	"github.com/polysphere/kanoodle/internal/telemetry"
)

// Literal messages from spec.md §6, kept verbatim for test stability.
const (
	MsgNoSolutions   = "No solutions found."
	msgFoundAllFmt   = "Found all %d solution(s)."
	msgSampleLimit   = "Found %d solution(s) (sample limit reached)."
	msgTimeLimitFmt  = "Found %d solution(s) before time limit."
	MsgBatchMore     = "Batch complete, more available."
	MsgTimeLimitBatch = "Time limit reached; partial batch."
	MsgAllSolutionsFound = "All solutions found."
)

// BoardResult is one reconstructed board in a Result or BatchResult.
type BoardResult struct {
	Board [][]int `json:"board"`
}

// Result is solve_partial's return shape, spec.md §6.
type Result struct {
	Solutions         []BoardResult `json:"solutions"`
	SolutionCount     int           `json:"solutionCount"`
	SolutionsReturned int           `json:"solutionsReturned"`
	TimedOut          bool          `json:"timedOut"`
	LimitReached      bool          `json:"limitReached"`
	Message           string        `json:"message"`
}

// BatchResult is session_next_batch's return shape, spec.md §6.
type BatchResult struct {
	Solutions         []BoardResult `json:"solutions"`
	SolutionsReturned int           `json:"solutionsReturned"`
	SolutionCount     int           `json:"solutionCount"`
	TimedOut          bool          `json:"timedOut"`
	Exhausted         bool          `json:"exhausted"`
	Message           string        `json:"message"`
	Cache             string        `json:"cache"`
}

// buildDLXMatrix lowers a matrix.Build into a dlx.Matrix, returning the row
// index -> placement.ID table needed to translate a solution's row ids back
// into placements.
func buildDLXMatrix(build *matrix.Build) (*dlx.Matrix, []placement.ID) {
	m := dlx.NewMatrix(build.Columns)
	rowKeys := make([]placement.ID, len(build.Rows))
	for i, row := range build.Rows {
		m.AddRow(i, row.Columns)
		rowKeys[i] = row.RowKey
	}
	return m, rowKeys
}

func reconstructBoard(partial *board.Board, build *matrix.Build, rowKeys []placement.ID, solutionRows []int) BoardResult {
	b := partial.Clone()
	for _, r := range solutionRows {
		pl := build.PlacementInfo[rowKeys[r]]
		b.Stamp(pl.PieceID, pl.Cells)
	}
	return BoardResult{Board: b.Rows()}
}

// recoverInvariant converts a dlx.InvariantError panic into a returned error,
// per spec.md §7: an internal invariant violation is the one error kind that
// propagates distinctly rather than folding into Result/BatchResult. Any
// other panic is not ours to interpret and continues unwinding.
func recoverInvariant(errp *error) {
	if r := recover(); r != nil {
		if ie, ok := r.(*dlx.InvariantError); ok {
			*errp = ie
			return
		}
		panic(r)
	}
}

func pickResultMessage(total int, timedOut, limitReached bool) string {
	switch {
	case total == 0:
		return MsgNoSolutions
	case timedOut:
		return fmt.Sprintf(msgTimeLimitFmt, total)
	case limitReached:
		return fmt.Sprintf(msgSampleLimit, total)
	default:
		return fmt.Sprintf(msgFoundAllFmt, total)
	}
}

// SolvePartial runs spec.md §4.5's one-shot solve_partial: collect up to
// maxSamples solutions from the start of the enumeration, truncated early if
// maxTimeMs elapses. maxSamples <= 0 means unbounded; maxTimeMs <= 0 disables
// the deadline.
func SolvePartial(partial *board.Board, pieces []piece.Piece, maxSamples, maxTimeMs int) (result Result, err error) {
	defer recoverInvariant(&err)

	if verr := piece.ValidateCatalog(pieces); verr != nil {
		return Result{}, verr
	}

	telemetry.Debug("solve_partial: board %dx%d, %d pieces, maxSamples=%d, maxTimeMs=%d",
		partial.Width, partial.Height, len(pieces), maxSamples, maxTimeMs)

	build, perr := matrix.Prepare(partial, pieces)
	if perr != nil {
		if u, ok := perr.(*matrix.Unsolvable); ok {
			return Result{Message: u.Message}, nil
		}
		return Result{}, perr
	}

	m, rowKeys := buildDLXMatrix(build)

	hasDeadline := maxTimeMs > 0
	var deadline time.Time
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(maxTimeMs) * time.Millisecond)
	}

	var boards []BoardResult
	total, stopped := dlx.Search(m, maxSamples, func() bool {
		return hasDeadline && time.Now().After(deadline)
	}, func(sol []int) {
		boards = append(boards, reconstructBoard(partial, build, rowKeys, sol))
	})

	timedOut := stopped
	limitReached := !timedOut && maxSamples > 0 && total >= maxSamples

	return Result{
		Solutions:         boards,
		SolutionCount:     total,
		SolutionsReturned: len(boards),
		TimedOut:          timedOut,
		LimitReached:      limitReached,
		Message:           pickResultMessage(total, timedOut, limitReached),
	}, nil
}
