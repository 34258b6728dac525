// Package shared holds helpers common to the kuhnforbots subcommands.
package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger at the given level; debug
// overrides the level entirely.
func SetupLogger(level string, debug bool) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	if debug {
		parsed = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		ReportTimestamp: true,
	})
}
