// Package logging routes the global zerolog logger to a file. The terminal
// belongs to the UI, so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appName     = "phototriage"
	logFileName = "phototriage.log"
)

// Setup opens (appending) the log file at path, or the XDG state file when
// path is empty, and installs it as the global logger at the given level.
// The returned closer flushes and closes the file.
func Setup(level, path string) (io.Closer, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if path == "" {
		path, err = xdg.StateFile(filepath.Join(appName, logFileName))
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}

	Install(f, lvl)
	log.Info().Str("path", path).Str("level", lvl.String()).Msg("logging started")
	return f, nil
}

// Install points the global logger at w.
func Install(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}
