// Package logging configures the process-wide charmbracelet logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level
// ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "claudash",
	}), nil
}

// ParseLevel maps a level name to a log.Level. Empty means warn.
func ParseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.WarnLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Setup installs a logger as the package default used by library code.
func Setup(w io.Writer, level string) error {
	l, err := New(w, level)
	if err != nil {
		return err
	}
	log.SetDefault(l)
	return nil
}
