// Command kanoodle is the CLI host for the polyomino exact-cover solver,
// grounded on kpitt-sudoku/cmd/sudoku/main.go's thin main() over a
// package-provided Execute(), with the subcommand structure itself modeled
// on eng618-parable-bloom/tools/level-builder/cmd/root.go.
package main

import "github.com/polysphere/kanoodle/cmd/kanoodle/internal/cmd"

func main() {
	cmd.Execute()
}
