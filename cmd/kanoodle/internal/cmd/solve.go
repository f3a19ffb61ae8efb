package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/piece"
	"github.com/polysphere/kanoodle/internal/solve"
)

var (
	solveBoardPath  string
	solvePiecesPath string
	solveMaxSamples int
	solveMaxTimeMs  int
	solveJSON       bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a one-shot solve_partial over a board and piece catalog",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveBoardPath, "board", "", "path to a board JSON file (required)")
	solveCmd.Flags().StringVar(&solvePiecesPath, "pieces", "", "path to a piece catalog JSON file (required)")
	solveCmd.Flags().IntVar(&solveMaxSamples, "max-samples", 0, "stop after this many solutions (0 = unbounded)")
	solveCmd.Flags().IntVar(&solveMaxTimeMs, "max-time-ms", 0, "stop after this many milliseconds (0 = no deadline)")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print the raw Result as JSON instead of rendering boards")
	_ = solveCmd.MarkFlagRequired("board")
	_ = solveCmd.MarkFlagRequired("pieces")
}

func runSolve(cmd *cobra.Command, args []string) error {
	promptBannerIfInteractive()

	b, pieces, err := loadBoardAndPieces(solveBoardPath, solvePiecesPath)
	if err != nil {
		return err
	}

	result, err := solve.SolvePartial(b, pieces, solveMaxSamples, solveMaxTimeMs)
	if err != nil {
		return fmt.Errorf("solve_partial: %w", err)
	}

	if solveJSON {
		return printJSON(result)
	}

	fmt.Println(result.Message)
	resolve := colorResolver(pieces)
	for i, sol := range result.Solutions {
		fmt.Printf("\nSolution %d:\n", i+1)
		board.FromRows(b.Width, b.Height, sol.Board).Print(resolve)
	}
	return nil
}

func loadBoardAndPieces(boardPath, piecesPath string) (*board.Board, []piece.Piece, error) {
	bf, err := os.Open(boardPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open board file: %w", err)
	}
	defer bf.Close()
	b, err := board.ReadJSON(bf)
	if err != nil {
		return nil, nil, err
	}

	pf, err := os.Open(piecesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open pieces file: %w", err)
	}
	defer pf.Close()
	pieces, err := piece.ReadCatalogJSON(pf)
	if err != nil {
		return nil, nil, err
	}

	return b, pieces, nil
}

func colorResolver(pieces []piece.Piece) board.ColorResolver {
	byID := make(map[int]string, len(pieces))
	for _, p := range pieces {
		byID[p.ID] = p.Color
	}
	return func(pieceID int) *color.Color {
		return board.NamedColor(byID[pieceID])
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// promptBannerIfInteractive prints a short usage hint when stdin is an
// interactive terminal, the same isatty check kpitt-sudoku/cmd/sudoku's
// main() uses before reading a board from stdin.
func promptBannerIfInteractive() {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Println("Reading board and piece definitions from file flags; stdin is not used.")
	}
}
