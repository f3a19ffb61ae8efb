// Package fingerprint reproduces util.py's hash_board_state / hash_pieces /
// make_cache_keys: a stable content hash over (W, H, board, pieces) used as
// an external cache key. Stability comes from encoding/json's guarantee that
// struct fields serialize in declaration order, the same determinism Python
// gets from json.dumps(..., sort_keys=True).
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/polysphere/kanoodle/internal/piece"
)

type boardDoc struct {
	Width  int     `json:"w"`
	Height int     `json:"h"`
	Cells  [][]int `json:"cells"`
}

type pieceDoc struct {
	ID    int            `json:"id"`
	Shape []coordDoc     `json:"shape"`
}

type coordDoc struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func shaHex(v interface{}) string {
	buf, err := json.Marshal(v)
	if err != nil {
		// v is always one of this package's own doc types; a marshal
		// failure here means a programmer error, not a runtime condition.
		panic(fmt.Sprintf("fingerprint: unmarshalable document: %v", err))
	}
	sum := sha1.Sum(buf)
	return hex.EncodeToString(sum[:])
}

// BoardHash hashes {width, height, cells}, insertion-order-independent since
// cells is already a fixed-shape 2D array keyed by position, not a map.
func BoardHash(width, height int, cells [][]int) string {
	return shaHex(boardDoc{Width: width, Height: height, Cells: cells})
}

// PiecesHash hashes the piece catalog reduced to (id, shape), sorted by id so
// the result is invariant under the caller's piece-list ordering —
// invariant 8 and scenario S8 in spec.md §8.
func PiecesHash(pieces []piece.Piece) string {
	sorted := make([]piece.Piece, len(pieces))
	copy(sorted, pieces)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	docs := make([]pieceDoc, len(sorted))
	for i, p := range sorted {
		shapeDoc := make([]coordDoc, len(p.Shape))
		for j, c := range p.Shape {
			shapeDoc[j] = coordDoc{X: c.X, Y: c.Y}
		}
		docs[i] = pieceDoc{ID: p.ID, Shape: shapeDoc}
	}
	return shaHex(docs)
}

// Keys are the composite cache key and its companion meta key from
// spec.md §4.6.
type Keys struct {
	SolutionsKey string
	MetaKey      string
}

// Key builds the composite fingerprint key
// "kanoodle:solutions:<W>x<H>:<pieces-hash>:<board-hash>" plus its ":meta"
// companion.
func Key(width, height int, pieces []piece.Piece, cells [][]int) Keys {
	boardHash := BoardHash(width, height, cells)
	piecesHash := PiecesHash(pieces)
	base := fmt.Sprintf("kanoodle:solutions:%dx%d:%s:%s", width, height, piecesHash, boardHash)
	return Keys{SolutionsKey: base, MetaKey: base + ":meta"}
}
