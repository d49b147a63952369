package qubosat

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger shared by cmd/qubosat and
// orchestrate, wired to stderr via a ConsoleWriter the way
// github.com/itohio/EasyRobot's pkg/logger wires its own. cmd/qubosat maps
// its -q/-v flags onto zerolog's level via SetVerbosity.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// SetVerbosity maps the CLI's -q/-v contract (spec §6: "-v repeatable;
// raises log level error->info->debug->trace") onto zerolog's global level.
// quiet takes precedence over any verbose count.
func SetVerbosity(quiet bool, verboseCount int) {
	if quiet {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}
	levels := []zerolog.Level{
		zerolog.ErrorLevel,
		zerolog.InfoLevel,
		zerolog.DebugLevel,
		zerolog.TraceLevel,
	}
	if verboseCount >= len(levels) {
		verboseCount = len(levels) - 1
	}
	zerolog.SetGlobalLevel(levels[verboseCount])
}
