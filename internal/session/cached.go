package session

import (
	"encoding/json"

	"github.com/polysphere/kanoodle/internal/cache"
	"github.com/polysphere/kanoodle/internal/fingerprint"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/solve"
	"github.com/polysphere/kanoodle/internal/telemetry"
)

// NextBatchCached is spec.md §4.6's cache-fronted batch request: look up the
// fingerprint's cached range first, serving from it without touching the
// session if the window holds any entries (even fewer than batchSize) or
// the fingerprint is known to be exhausted; otherwise, fall through to the live
// session and write the produced boards back to cache. cursor is the
// caller-held external cache cursor for this fingerprint — independent of
// the session's own cumulative total, per spec.md §4.6's "cache and session
// cursors are independent state" rule.
//
// Any cache operation failure is logged and treated as a miss; the session
// remains authoritative, matching util.py's bare except-and-continue.
func NextBatchCached(
	registry *Registry,
	key string,
	c cache.Cache,
	width, height int,
	pieces []piece.Piece,
	boardCells [][]int,
	cursor int,
	batchSize int,
	maxTimeMs int,
) (result solve.BatchResult, newCursor int, err error) {
	keys := fingerprint.Key(width, height, pieces, boardCells)

	if entries, found, cerr := c.GetRange(keys.SolutionsKey, cursor, batchSize); cerr != nil {
		telemetry.Warn(cerr, "cache GetRange failed, falling back to session")
	} else if found {
		boards, derr := decodeBoards(entries)
		if derr != nil {
			telemetry.Warn(derr, "cache entry decode failed, falling back to session")
		} else {
			meta, metaFound, merr := c.GetMeta(keys.MetaKey)
			if merr != nil {
				telemetry.Warn(merr, "cache GetMeta failed")
			}
			advanced := cursor + len(boards)
			exhausted := metaFound && meta.Exhausted && advanced >= meta.Total
			// A window with nothing in it is only a genuine hit once the
			// fingerprint is known to be fully (and, here, emptily)
			// exhausted; otherwise the range just hasn't been populated
			// yet and the live session must be consulted.
			if len(boards) > 0 || exhausted {
				message := solve.MsgBatchMore
				switch {
				case exhausted && meta.Total == 0:
					message = solve.MsgNoSolutions
				case exhausted:
					message = solve.MsgAllSolutionsFound
				}
				return solve.BatchResult{
					Solutions:         boards,
					SolutionsReturned: len(boards),
					SolutionCount:     meta.Total,
					Exhausted:         exhausted,
					Message:           message,
					Cache:             "hit",
				}, advanced, nil
			}
		}
	}

	batch, err := registry.NextBatch(key, batchSize, maxTimeMs)
	if err != nil {
		return solve.BatchResult{}, cursor, err
	}
	batch.Cache = "miss"

	// Append (and Expire) even when there is nothing to append: this is what
	// marks the fingerprint's solutions key as "known", so a zero-solution
	// board can be served as a cache hit on the next lookup instead of
	// re-running the live session forever.
	if entries, eerr := encodeBoards(batch.Solutions); eerr != nil {
		telemetry.Warn(eerr, "cache entry encode failed")
	} else {
		if aerr := c.Append(keys.SolutionsKey, entries); aerr != nil {
			telemetry.Warn(aerr, "cache Append failed")
		}
		if aerr := c.Expire(keys.SolutionsKey, cache.TTL); aerr != nil {
			telemetry.Warn(aerr, "cache Expire failed")
		}
	}
	if _, merr := c.SetMeta(keys.MetaKey, cache.Meta{Total: batch.SolutionCount, Exhausted: batch.Exhausted}); merr != nil {
		telemetry.Warn(merr, "cache SetMeta failed")
	} else if merr := c.Expire(keys.MetaKey, cache.TTL); merr != nil {
		telemetry.Warn(merr, "cache Expire failed")
	}

	return batch, cursor + len(batch.Solutions), nil
}

func encodeBoards(boards []solve.BoardResult) ([][]byte, error) {
	out := make([][]byte, len(boards))
	for i, b := range boards {
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		out[i] = buf
	}
	return out, nil
}

func decodeBoards(entries [][]byte) ([]solve.BoardResult, error) {
	out := make([]solve.BoardResult, len(entries))
	for i, e := range entries {
		if err := json.Unmarshal(e, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
