// Package shape implements the orientation generator: given a polyomino base
// shape, it produces the distinct shapes reachable via the dihedral group D4
// (four rotations times identity/reflection), each in canonical normalized
// form.
package shape

import (
	"sort"

	"github.com/polysphere/kanoodle/internal/set"
)

// Coord is a relative or absolute cell coordinate.
type Coord struct {
	X, Y int
}

// Shape is a finite non-empty set of cell coordinates, represented as a
// canonical sorted slice once returned from Canonical.
type Shape []Coord

// Canonical translates coords so that min(x)=0 and min(y)=0, then returns
// them sorted lexicographically. Equality of shapes is equality of
// canonical forms.
func Canonical(coords []Coord) Shape {
	if len(coords) == 0 {
		return Shape{}
	}

	minX, minY := coords[0].X, coords[0].Y
	for _, c := range coords[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}

	out := make(Shape, len(coords))
	for i, c := range coords {
		out[i] = Coord{X: c.X - minX, Y: c.Y - minY}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// rotateCCW90 sends (x,y) to (y,-x).
func rotateCCW90(s Shape) Shape {
	coords := make([]Coord, len(s))
	for i, c := range s {
		coords[i] = Coord{X: c.Y, Y: -c.X}
	}
	return Canonical(coords)
}

// reflectX sends (x,y) to (-x,y).
func reflectX(s Shape) Shape {
	coords := make([]Coord, len(s))
	for i, c := range s {
		coords[i] = Coord{X: -c.X, Y: c.Y}
	}
	return Canonical(coords)
}

// Orientations returns the set of distinct canonical shapes reachable from
// base via the eight D4 transforms, in emission order {flip=false, r=0..3,
// flip=true, r=0..3} with duplicates suppressed. The result has between 1
// and 8 entries depending on the symmetry of base.
func Orientations(base []Coord) []Shape {
	seen := set.NewSet[string]()
	var out []Shape

	current := Canonical(base)
	for flip := 0; flip < 2; flip++ {
		for r := 0; r < 4; r++ {
			key := current.key()
			if !seen.Contains(key) {
				seen.Add(key)
				out = append(out, current)
			}
			current = rotateCCW90(current)
		}
		current = reflectX(current)
	}
	return out
}

// key renders a canonical shape into a string suitable for de-duplication
// and map keys.
func (s Shape) key() string {
	b := make([]byte, 0, len(s)*8)
	for _, c := range s {
		b = appendInt(b, c.X)
		b = append(b, ',')
		b = appendInt(b, c.Y)
		b = append(b, ';')
	}
	return string(b)
}

// Key exposes the canonical string form for callers outside this package
// that need a stable identity derived from shape equality.
func (s Shape) Key() string {
	return s.key()
}

func appendInt(b []byte, v int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	if v == 0 {
		return append(b, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(b, tmp[i:]...)
}

// Bounds returns the inclusive bounding box of a canonical shape.
func (s Shape) Bounds() (minX, minY, maxX, maxY int) {
	if len(s) == 0 {
		return 0, 0, -1, -1
	}
	minX, minY = s[0].X, s[0].Y
	maxX, maxY = s[0].X, s[0].Y
	for _, c := range s[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return
}

// Translate returns a copy of s with every coordinate shifted by (dx, dy).
// The result is not re-canonicalized; callers use this for placement, not
// for orientation comparison.
func (s Shape) Translate(dx, dy int) []Coord {
	out := make([]Coord, len(s))
	for i, c := range s {
		out[i] = Coord{X: c.X + dx, Y: c.Y + dy}
	}
	return out
}
