package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the diagnostics logger. It stays quiet below warn unless
// verbose is set.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          "todo",
	})
}
