// Package display renders schedules for the terminal using raw ANSI escape
// codes.
//
// It respects NO_COLOR (https://no-color.org/) and FORCE_COLOR, and turns
// colour off when stdout is not a terminal.
package display

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

var enabled = shouldEnable(os.LookupEnv, os.Stdout.Fd())

func shouldEnable(lookup func(string) (string, bool), fd uintptr) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if _, ok := lookup("FORCE_COLOR"); ok {
		return true
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides the detected colour state, e.g. for --json.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether colour output is active.
func Enabled() bool {
	return enabled
}

func wrap(code, text string) string {
	if !enabled {
		return text
	}
	return code + text + reset
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return wrap(bold, text)
}

// Dim is used for past prayers and secondary details.
func Dim(text string) string {
	return wrap(dim, text)
}

// Warn marks times produced by a high latitude rule.
func Warn(text string) string {
	return wrap(yellow, text)
}

// Accent highlights the next prayer.
func Accent(text string) string {
	return wrap(bold+cyan, text)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}
