package session

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/cache"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/shape"
	"github.com/polysphere/kanoodle/internal/solve"
)

func openInMemoryBadger(t *testing.T) *cache.Badger {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return cache.NewBadger(db)
}

// zeroSolutionBoardAndPieces mirrors internal/solve's helper of the same
// name: a 2x4 board with two same-colored cells pre-filled, breaking the
// checkerboard balance three dominoes would need.
func zeroSolutionBoardAndPieces() (*board.Board, []piece.Piece) {
	b := board.New(2, 4)
	b.Cells[0][0] = 99
	b.Cells[2][0] = 99

	pieces := []piece.Piece{
		{ID: 1, Name: "A", Shape: shape.Canonical([]shape.Coord{{0, 0}, {1, 0}})},
		{ID: 2, Name: "B", Shape: shape.Canonical([]shape.Coord{{0, 0}, {1, 0}})},
		{ID: 3, Name: "C", Shape: shape.Canonical([]shape.Coord{{0, 0}, {1, 0}})},
	}
	return b, pieces
}

// TestNextBatchCachedZeroSolutionsHitsOnSecondCall covers the maintainer's
// reported gap: a fingerprint with zero exact-cover solutions must report
// "No solutions found." both on the initial (miss) call and on a later
// (hit) call served straight from the cache, never "All solutions found.".
func TestNextBatchCachedZeroSolutionsHitsOnSecondCall(t *testing.T) {
	b, pieces := zeroSolutionBoardAndPieces()
	c := openInMemoryBadger(t)

	r := NewRegistry()
	key, _, err := r.Create("zero", b, pieces)
	require.NoError(t, err)

	first, _, err := NextBatchCached(r, key, c, b.Width, b.Height, pieces, b.Rows(), 0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, "miss", first.Cache)
	require.Equal(t, 0, first.SolutionCount)
	require.Equal(t, solve.MsgNoSolutions, first.Message)

	r2 := NewRegistry()
	key2, _, err := r2.Create("zero2", b, pieces)
	require.NoError(t, err)

	second, _, err := NextBatchCached(r2, key2, c, b.Width, b.Height, pieces, b.Rows(), 0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, "hit", second.Cache)
	require.Equal(t, 0, second.SolutionCount)
	require.Equal(t, solve.MsgNoSolutions, second.Message)
}

func TestNextBatchCachedMissThenHit(t *testing.T) {
	// Two dominoes on a 4x1 board: exactly two tilings, so a batch of 2 is
	// filled without the session reporting exhaustion.
	b := board.New(4, 1)
	pieces := []piece.Piece{
		{ID: 1, Name: "A", Shape: shape.Canonical([]shape.Coord{{0, 0}, {1, 0}})},
		{ID: 2, Name: "B", Shape: shape.Canonical([]shape.Coord{{0, 0}, {1, 0}})},
	}
	c := openInMemoryBadger(t)

	r := NewRegistry()
	key, _, err := r.Create("s", b, pieces)
	require.NoError(t, err)

	first, cursor, err := NextBatchCached(r, key, c, b.Width, b.Height, pieces, b.Rows(), 0, 2, 0)
	require.NoError(t, err)
	require.Equal(t, "miss", first.Cache)
	require.Len(t, first.Solutions, 2)
	require.Equal(t, 2, cursor)

	// A fresh session over the same fingerprint, requesting the same
	// range, should be served straight from the cache this time.
	r2 := NewRegistry()
	key2, _, err := r2.Create("s2", b, pieces)
	require.NoError(t, err)

	second, cursor2, err := NextBatchCached(r2, key2, c, b.Width, b.Height, pieces, b.Rows(), 0, 2, 0)
	require.NoError(t, err)
	require.Equal(t, "hit", second.Cache)
	require.Equal(t, first.Solutions, second.Solutions)
	require.Equal(t, 2, cursor2)
}
