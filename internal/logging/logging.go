// Package logging configures the zerolog logger shared by the compiler and the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger based on verbosity level.
//
//   - quiet: only errors are logged
//   - 0: warnings and errors
//   - 1: info
//   - 2: debug (with caller information)
//   - 3+: trace
func Setup(verbosity int, quiet bool, useColors bool) {
	SetupWithWriter(os.Stderr, verbosity, quiet, useColors)
}

// SetupWithWriter is Setup with an explicit destination, used by tests.
func SetupWithWriter(w io.Writer, verbosity int, quiet bool, useColors bool) {
	zerolog.SetGlobalLevel(LevelFor(verbosity, quiet))

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !useColors,
	}
	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// LevelFor maps CLI verbosity flags to a zerolog level.
func LevelFor(verbosity int, quiet bool) zerolog.Level {
	if quiet {
		return zerolog.ErrorLevel
	}
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a logger tagged with the given component name.
// It must be called at log time, not cached at package init, so that
// Setup (or a test) can swap the global logger.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
