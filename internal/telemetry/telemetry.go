// Package telemetry wraps zerolog in the same small free-function shape
// eng618-parable-bloom's pkg/common/log.go uses (Info/Debug/Warning/Error
// package-level helpers over shared state), re-expressed with a structured
// logger instead of fmt.Println since the corpus reaches for zerolog
// wherever logging needs levels and fields rather than plain text.
package telemetry

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Verbose mirrors common.VerboseEnabled: when false, Debug calls are dropped
// before they reach the logger.
var Verbose = false

// Log is the process-wide logger. Callers needing structured fields use it
// directly (telemetry.Log.Warn().Err(err).Msg("...")); the package functions
// below cover the common unstructured case.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

// Info logs an always-shown informational message.
func Info(format string, args ...interface{}) {
	Log.Info().Msgf(format, args...)
}

// Debug logs a message only when Verbose is enabled.
func Debug(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	Log.Debug().Msgf(format, args...)
}

// Warn logs a warning, optionally attaching the error that triggered it.
func Warn(err error, format string, args ...interface{}) {
	Log.Warn().Err(err).Msgf(format, args...)
}

// Error logs an error condition.
func Error(err error, format string, args ...interface{}) {
	Log.Error().Err(err).Msgf(format, args...)
}
