package piece

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/polysphere/kanoodle/internal/shape"
)

// fileEntry is the on-disk JSON shape for one catalog piece, field-named
// after original_source/Polysphere/kanoodleApp/models.py's Piece model
// (shapeData, color) so fixtures can be adapted straight from that app's
// test data. id isn't a Django model field there (the row's primary key
// played that role); the host here must supply it explicitly.
type fileEntry struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	ShapeData [][2]int   `json:"shapeData"`
	Color     string     `json:"color"`
}

// ReadCatalogJSON parses a piece catalog from r: a JSON array of entries
// shaped like fileEntry. Each shapeData coordinate pair is canonicalized on
// load, matching spec.md §3's definition of a piece's base shape.
func ReadCatalogJSON(r io.Reader) ([]Piece, error) {
	var entries []fileEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode piece catalog: %w", err)
	}

	out := make([]Piece, 0, len(entries))
	for _, e := range entries {
		coords := make([]shape.Coord, len(e.ShapeData))
		for i, xy := range e.ShapeData {
			coords[i] = shape.Coord{X: xy[0], Y: xy[1]}
		}
		out = append(out, Piece{
			ID:    e.ID,
			Name:  e.Name,
			Shape: shape.Canonical(coords),
			Color: e.Color,
		})
	}

	if err := ValidateCatalog(out); err != nil {
		return nil, err
	}
	return out, nil
}
