package solve

import (
	"sync"
	"time"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/dlx"
	"github.com/polysphere/kanoodle/internal/matrix"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/placement"
)

// Session is the live, resumable enumeration of spec.md §3's Session entity:
// the solver config, the pinned board, the placement-index table, and the
// cumulative counters that let next_batch resume where it left off. It owns
// its dlx.Matrix exclusively (spec.md §3's lifecycle rule) and serializes
// concurrent NextBatch calls with its own mutex, matching util.py's
// per-session threading.Lock().
//
// internal/session.Registry wraps Session with the process-wide LRU
// bookkeeping; Session itself knows nothing about keys or eviction.
type Session struct {
	mu sync.Mutex

	partial    *board.Board
	build      *matrix.Build
	rowKeys    []placement.ID
	enumerator *dlx.Enumerator

	total      int
	exhausted  bool
	lastUsedMs int64
}

// BuildIncrementalSession prepares the matrix and engine for a board/piece
// combination and returns a fresh, un-advanced Session. If the combination
// is infeasible, it returns a *matrix.Unsolvable instead (spec.md §4.5: "an
// unsolvable result, or a live enumerator").
func BuildIncrementalSession(partial *board.Board, pieces []piece.Piece) (*Session, error) {
	if err := piece.ValidateCatalog(pieces); err != nil {
		return nil, err
	}
	build, err := matrix.Prepare(partial, pieces)
	if err != nil {
		return nil, err
	}
	m, rowKeys := buildDLXMatrix(build)
	return &Session{
		partial:    partial,
		build:      build,
		rowKeys:    rowKeys,
		enumerator: dlx.NewEnumerator(m),
		lastUsedMs: time.Now().UnixMilli(),
	}, nil
}

// LastUsedMs returns the timestamp of the most recent NextBatch call, for
// the registry's LRU eviction.
func (s *Session) LastUsedMs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsedMs
}

// NextBatch advances the session's enumerator by up to batchSize solutions,
// per spec.md §4.6's algorithm: stop early on exhaustion or on an elapsed
// deadline, and report both cumulative and per-call counts.
func (s *Session) NextBatch(batchSize int, maxTimeMs int) (result BatchResult, err error) {
	defer recoverInvariant(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exhausted {
		message := MsgAllSolutionsFound
		if s.total == 0 {
			message = MsgNoSolutions
		}
		return BatchResult{
			SolutionCount: s.total,
			Exhausted:     true,
			Message:       message,
			Cache:         "miss",
		}, nil
	}

	hasDeadline := maxTimeMs > 0
	var deadline time.Time
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(maxTimeMs) * time.Millisecond)
	}

	var boards []BoardResult
	timedOut := false
	for len(boards) < batchSize {
		if hasDeadline && time.Now().After(deadline) {
			timedOut = true
			break
		}
		sol, ok := s.enumerator.Next()
		if !ok {
			s.exhausted = true
			break
		}
		s.total++
		boards = append(boards, reconstructBoard(s.partial, s.build, s.rowKeys, sol))
	}
	s.lastUsedMs = time.Now().UnixMilli()

	var message string
	switch {
	case s.exhausted && s.total == 0:
		message = MsgNoSolutions
	case s.exhausted:
		message = MsgAllSolutionsFound
	case timedOut:
		message = MsgTimeLimitBatch
	default:
		message = MsgBatchMore
	}

	return BatchResult{
		Solutions:         boards,
		SolutionsReturned: len(boards),
		SolutionCount:     s.total,
		TimedOut:          timedOut,
		Exhausted:         s.exhausted,
		Message:           message,
		Cache:             "miss",
	}, nil
}

// SolveBatch is the stateless skip-count sibling of the session path —
// util.py's solveIncremental, folded by spec.md's distillation into the
// session layer but kept here as an independent one-shot "give me
// solutions skip..skip+take" entry point; the CLI does not call it. It builds a fresh
// session, discards the first skip solutions, then collects up to take more,
// sharing a single deadline across both phases.
func SolveBatch(partial *board.Board, pieces []piece.Piece, skip, take, maxTimeMs int) (BatchResult, error) {
	sess, err := BuildIncrementalSession(partial, pieces)
	if err != nil {
		if u, ok := err.(*matrix.Unsolvable); ok {
			return BatchResult{Message: u.Message, Exhausted: true, Cache: "miss"}, nil
		}
		return BatchResult{}, err
	}

	hasDeadline := maxTimeMs > 0
	var deadline time.Time
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(maxTimeMs) * time.Millisecond)
	}

	for i := 0; i < skip; i++ {
		if hasDeadline && time.Now().After(deadline) {
			return BatchResult{
				SolutionCount: sess.total,
				TimedOut:      true,
				Message:       MsgTimeLimitBatch,
				Cache:         "miss",
			}, nil
		}
		sol, ok := sess.enumerator.Next()
		if !ok {
			message := MsgAllSolutionsFound
			if sess.total == 0 {
				message = MsgNoSolutions
			}
			return BatchResult{
				SolutionCount: sess.total,
				Exhausted:     true,
				Message:       message,
				Cache:         "miss",
			}, nil
		}
		sess.total++
		_ = sol
	}

	remainingMs := 0
	if hasDeadline {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return BatchResult{SolutionCount: sess.total, TimedOut: true, Message: MsgTimeLimitBatch, Cache: "miss"}, nil
		}
		// Round up: NextBatch treats 0 as "no deadline".
		remainingMs = int((remaining + time.Millisecond - 1) / time.Millisecond)
	}

	return sess.NextBatch(take, remainingMs)
}
