package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ColorResolver resolves a piece id to a terminal color using the catalog's
// declared color name, falling back to a neutral color for unknown ids.
// Named colors follow fatih/color's palette, the same library the teacher
// (kpitt-sudoku) uses for its board printer.
type ColorResolver func(pieceID int) *color.Color

// Print renders the board to stdout, one line per row, using resolve to
// pick a color per piece id. Empty cells (id 0) print as a plain dot.
func (b *Board) Print(resolve ColorResolver) {
	border := "+" + strings.Repeat("---+", b.Width)
	fmt.Println(border)
	for _, row := range b.Cells {
		fmt.Print("|")
		for _, id := range row {
			if id == 0 {
				fmt.Print(" . |")
				continue
			}
			c := resolve(id)
			c.Printf("%2d |", id)
		}
		fmt.Println()
		fmt.Println(border)
	}
}

// NamedColor maps the small set of color names the original Polysphere
// piece catalog uses (original_source/Polysphere/kanoodleApp/models.py's
// `color` field) onto fatih/color attributes. Unrecognized names fall back
// to plain white, matching the teacher's "locked value" default styling.
func NamedColor(name string) *color.Color {
	switch strings.ToLower(name) {
	case "red":
		return color.New(color.FgRed, color.Bold)
	case "green":
		return color.New(color.FgGreen, color.Bold)
	case "blue":
		return color.New(color.FgBlue, color.Bold)
	case "yellow":
		return color.New(color.FgYellow, color.Bold)
	case "magenta", "purple":
		return color.New(color.FgMagenta, color.Bold)
	case "cyan":
		return color.New(color.FgCyan, color.Bold)
	case "orange":
		return color.New(color.FgHiYellow, color.Bold)
	default:
		return color.New(color.FgHiWhite, color.Bold)
	}
}
