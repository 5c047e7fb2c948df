// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stderr. Warnings and errors are always
// shown; verbose adds debug output. JSON mode keeps stderr machine-readable
// so it does not interfere with --json on stdout.
func Setup(verbose, jsonOutput bool) {
	log.Logger = New(os.Stderr, verbose, jsonOutput)
}

// New builds a logger writing to w.
func New(w io.Writer, verbose, jsonOutput bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if !jsonOutput {
		noColor := true
		if f, ok := w.(*os.File); ok {
			noColor = !isatty.IsTerminal(f.Fd()) || os.Getenv("NO_COLOR") != ""
		}
		w = zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
