package solve

import (
	"crypto/sha1"
	"encoding/json"
	"sort"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/placement"
	"github.com/polysphere/kanoodle/internal/shape"
)

// bruteForceHashes is a test-only cross-checker for invariant 1 (equivalence
// with brute force): it places the pieces one at a time in supplied order,
// trying every placement of each within the required cells via plain
// recursive backtracking, with no DLX involved, and
// returns the set of distinct board hashes it finds. Grounded on the same
// recursive backtracking shape original_source's tests imply, since
// spec.md's distillation leaves the reference implementation unspecified.
func bruteForceHashes(partial *board.Board, pieces []piece.Piece) map[string]bool {
	required := partial.RequiredPositions()
	occupied, placedIDs := partial.Occupied()

	var remaining []piece.Piece
	for _, p := range pieces {
		if !placedIDs[p.ID] {
			remaining = append(remaining, p)
		}
	}

	found := make(map[string]bool)
	occ := make(map[shape.Coord]bool, len(occupied))
	for c := range occupied {
		occ[c] = true
	}

	var recurse func(remaining []piece.Piece, occ map[shape.Coord]bool, stamped map[shape.Coord]int)
	recurse = func(remaining []piece.Piece, occ map[shape.Coord]bool, stamped map[shape.Coord]int) {
		if len(remaining) == 0 {
			if len(occ) == len(required)+len(occupied) {
				found[hashStamped(partial, stamped)] = true
			}
			return
		}
		p := remaining[0]
		rest := remaining[1:]
		for _, pl := range placement.Enumerate(p, occ, partial.Width, partial.Height) {
			if !withinRequired(pl.Cells, required) {
				continue
			}
			nextOcc := cloneCoordSet(occ)
			nextStamped := cloneStampMap(stamped)
			ok := true
			for _, c := range pl.Cells {
				if nextOcc[c] {
					ok = false
					break
				}
				nextOcc[c] = true
				nextStamped[c] = p.ID
			}
			if !ok {
				continue
			}
			recurse(rest, nextOcc, nextStamped)
		}
	}

	recurse(remaining, occ, map[shape.Coord]int{})
	return found
}

func withinRequired(cells []shape.Coord, required map[shape.Coord]bool) bool {
	for _, c := range cells {
		if !required[c] {
			return false
		}
	}
	return true
}

func cloneCoordSet(m map[shape.Coord]bool) map[shape.Coord]bool {
	out := make(map[shape.Coord]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStampMap(m map[shape.Coord]int) map[shape.Coord]int {
	out := make(map[shape.Coord]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func hashStamped(partial *board.Board, stamped map[shape.Coord]int) string {
	b := partial.Clone()
	for c, id := range stamped {
		b.Cells[c.Y][c.X] = id
	}
	return hashBoard(b.Rows())
}

// resultHashes maps a Result's solution boards to a hashed set for
// order-independent comparison against bruteForceHashes.
func resultHashes(boards []BoardResult) map[string]bool {
	out := make(map[string]bool, len(boards))
	for _, b := range boards {
		out[hashBoard(b.Board)] = true
	}
	return out
}

func hashBoard(rows [][]int) string {
	buf, _ := json.Marshal(rows)
	sum := sha1.Sum(buf)
	return string(sum[:])
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
