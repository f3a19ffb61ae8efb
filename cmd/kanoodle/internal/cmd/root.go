// Package cmd implements the kanoodle CLI's cobra command tree, grounded on
// eng618-parable-bloom/tools/level-builder/cmd/root.go's
// root-command-with-persistent-flags-and-subcommands shape.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/polysphere/kanoodle/internal/telemetry"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kanoodle",
	Short: "Polyomino exact-cover tiling solver",
	Long: `kanoodle enumerates board tilings for a Kanoodle-style polyomino
puzzle: a rectangular board, a catalog of pieces under rotation and
reflection, and an optional partial board pinning some pieces already.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.Verbose = verbose
	},
}

// Execute runs the root command. Called once from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(sessionCmd)
}
