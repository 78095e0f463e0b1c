package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the structured logger used across subcommands.
func SetupLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
