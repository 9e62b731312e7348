package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures charmbracelet/log on stderr. verbose forces debug,
// otherwise level is parsed and falls back to warn.
func SetupLogger(level string, verbose bool) *log.Logger {
	return newLogger(os.Stderr, level, verbose)
}

func newLogger(w io.Writer, level string, verbose bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05",
	})
}
