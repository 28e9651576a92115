package cliconfig

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	logAdapter "github.com/bft-labs/formship/internal/adapters/log"
)

// Logger returns the CLI console logger on stderr at the given level.
// Unknown levels fall back to info.
func Logger(level string) zerolog.Logger {
	return newLogger(os.Stderr, level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return logAdapter.NewConsoleLogger(w, lvl)
}
