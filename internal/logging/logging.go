// Package logging builds the file logger. The terminal belongs to the
// grid, so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// New opens path for appending and returns a logger at the named level.
// An empty path discards output. The returned closer must be closed on exit.
func New(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(path) == "" {
		return newLogger(io.Discard, lvl), nopCloser{}, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, lvl), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func ParseLevel(level string) (log.Level, error) {
	raw := strings.ToLower(strings.TrimSpace(level))
	if raw == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

func newLogger(w io.Writer, lvl log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "habitd",
	})
}

// Discard is a logger for tests and for callers without a log file.
func Discard() *log.Logger {
	return newLogger(io.Discard, log.FatalLevel)
}
