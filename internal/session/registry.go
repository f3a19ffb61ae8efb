// Package session is the process-wide, LRU-bounded registry of live
// enumerators from spec.md §4.6: a keyed map of solve.Session values, capped
// at 32 entries, evicting the least-recently-used session on overflow.
// Concurrency matches util.py's per-session threading.Lock() plus a
// dict-of-sessions guarded separately: solve.Session already serializes its
// own NextBatch calls, so Registry only needs to protect the map itself.
package session

import (
	"errors"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/solve"
)

// MaxSessions is the registry's configured ceiling, spec.md §3 and §4.6.
const MaxSessions = 32

// ErrNotFound is returned by Get/NextBatch for an unknown key — the
// "invalid session key" non-fatal error kind of spec.md §7, which the host
// is expected to treat as "must initialize first." Delete does not return
// it: deleting an unknown key is a silent no-op.
var ErrNotFound = errors.New("session: not found")

// Registry is the process-wide keyed session store.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*solve.Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*solve.Session)}
}

// Create builds a new session for (partial, pieces) and registers it under
// key, minting a UUID-based key if the caller supplies an empty one — the
// CLI's "session" command has no persisted external id to key off
// of, unlike the Django view's "solve:<solution_id>". If the board/piece
// combination is infeasible, Create returns the *matrix.Unsolvable error
// without registering anything.
func (r *Registry) Create(key string, partial *board.Board, pieces []piece.Piece) (string, *solve.Session, error) {
	if key == "" {
		key = uuid.NewString()
	}

	sess, err := solve.BuildIncrementalSession(partial, pieces)
	if err != nil {
		return key, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictIfFullLocked()
	r.sessions[key] = sess
	return key, sess, nil
}

// Get returns the session registered under key.
func (r *Registry) Get(key string) (*solve.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete removes the session registered under key. Deleting an unknown key
// is a no-op, matching util.py's dict.pop(key, None) behavior — callers that
// need to distinguish "didn't exist" should call Get first.
func (r *Registry) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}

// NextBatch is the convenience path combining Get with Session.NextBatch,
// returning ErrNotFound for an unregistered key instead of a nil-pointer
// panic.
func (r *Registry) NextBatch(key string, batchSize, maxTimeMs int) (solve.BatchResult, error) {
	sess, err := r.Get(key)
	if err != nil {
		return solve.BatchResult{}, err
	}
	return sess.NextBatch(batchSize, maxTimeMs)
}

// evictIfFullLocked evicts the least-recently-used session when the
// registry is at capacity. Callers must hold r.mu for writing.
func (r *Registry) evictIfFullLocked() {
	if len(r.sessions) < MaxSessions {
		return
	}
	var oldestKey string
	oldest := int64(math.MaxInt64)
	for k, sess := range r.sessions {
		lu := sess.LastUsedMs()
		if lu < oldest {
			oldest = lu
			oldestKey = k
		}
	}
	if oldestKey != "" {
		delete(r.sessions, oldestKey)
	}
}
