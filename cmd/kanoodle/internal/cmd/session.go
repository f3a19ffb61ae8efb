package cmd

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/polysphere/kanoodle/internal/board"
	"github.com/polysphere/kanoodle/internal/cache"
	"github.com/polysphere/kanoodle/internal/session"
	"github.com/polysphere/kanoodle/internal/telemetry"
)

var (
	sessionBoardPath  string
	sessionPiecesPath string
	sessionKey        string
	sessionBatchSize  int
	sessionMaxBatches int
	sessionMaxTimeMs  int
	sessionCacheDir   string
)

// sessionCmd drives create_session / session_next_batch / delete_session
// (spec.md §6) against a registry that lives only for this process's
// lifetime — the registry is in-process state per spec.md §9's design
// notes, and the spec's Non-goals exclude cross-restart persistence of
// solutions, so there is no durable store to resume a session from a
// separate invocation. This command therefore runs the full lifecycle —
// init, repeated next_batch, delete — in one pass, which is the faithful
// shape of "in-process registry" for a one-shot CLI rather than a
// long-lived server.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run a full session lifecycle: init, repeated next-batch, delete",
	RunE:  runSession,
}

func init() {
	sessionCmd.Flags().StringVar(&sessionBoardPath, "board", "", "path to a board JSON file (required)")
	sessionCmd.Flags().StringVar(&sessionPiecesPath, "pieces", "", "path to a piece catalog JSON file (required)")
	sessionCmd.Flags().StringVar(&sessionKey, "key", "", "external session key (default: a generated uuid)")
	sessionCmd.Flags().IntVar(&sessionBatchSize, "batch-size", 1, "solutions to pull per next_batch call")
	sessionCmd.Flags().IntVar(&sessionMaxBatches, "max-batches", 0, "stop after this many batches (0 = run to exhaustion)")
	sessionCmd.Flags().IntVar(&sessionMaxTimeMs, "max-time-ms", 0, "per-batch deadline in milliseconds (0 = none)")
	sessionCmd.Flags().StringVar(&sessionCacheDir, "cache-dir", "", "badger directory for cross-session batch caching (default: no cache)")
	_ = sessionCmd.MarkFlagRequired("board")
	_ = sessionCmd.MarkFlagRequired("pieces")
}

func runSession(cmd *cobra.Command, args []string) error {
	b, pieces, err := loadBoardAndPieces(sessionBoardPath, sessionPiecesPath)
	if err != nil {
		return err
	}

	registry := session.NewRegistry()

	var c cache.Cache = cache.Noop{}
	if sessionCacheDir != "" {
		db, err := badger.Open(badger.DefaultOptions(sessionCacheDir))
		if err != nil {
			return fmt.Errorf("open cache dir: %w", err)
		}
		defer db.Close()
		c = cache.NewBadger(db)
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " initializing session"
	if !telemetry.Verbose {
		sp.Start()
	}

	key, _, err := registry.Create(sessionKey, b, pieces)
	stopSpinner(sp)
	if err != nil {
		telemetry.Warn(err, "session init reported an unsolvable board/piece combination")
		fmt.Println(err.Error())
		return nil
	}
	fmt.Printf("session %q initialized\n", key)

	resolve := colorResolver(pieces)
	batches := 0
	cursor := 0
	for sessionMaxBatches <= 0 || batches < sessionMaxBatches {
		sp.Suffix = fmt.Sprintf(" producing batch %d", batches+1)
		if !telemetry.Verbose {
			sp.Start()
		}
		batch, newCursor, err := session.NextBatchCached(registry, key, c, b.Width, b.Height, pieces, b.Rows(), cursor, sessionBatchSize, sessionMaxTimeMs)
		cursor = newCursor
		stopSpinner(sp)
		if err != nil {
			return fmt.Errorf("session_next_batch: %w", err)
		}

		fmt.Printf("\nbatch %d (%s): %s\n", batches+1, batch.Cache, batch.Message)
		for i, sol := range batch.Solutions {
			fmt.Printf("solution %d (cumulative %d):\n", i+1, batch.SolutionCount)
			board.FromRows(b.Width, b.Height, sol.Board).Print(resolve)
		}

		batches++
		if batch.Exhausted || batch.TimedOut {
			break
		}
	}

	registry.Delete(key)
	fmt.Printf("session %q deleted\n", key)
	return nil
}

func stopSpinner(sp *spinner.Spinner) {
	if sp.Active() {
		sp.Stop()
	}
}
