// Package debuglog provides the env-gated debug log. With HLGREP_DEBUG=1
// records are appended to HLGREP_DEBUG_FILE (hlgrep-debug.log by default);
// otherwise every record is discarded.
package debuglog

import (
	"io"
	"log/slog"
	"os"
)

const (
	EnvEnabled     = "HLGREP_DEBUG"
	EnvFile        = "HLGREP_DEBUG_FILE"
	defaultLogFile = "hlgrep-debug.log"
)

// Open returns a logger configured from the environment and a close func
// that must be called before exit.
func Open() (*slog.Logger, func() error) {
	return OpenWith(os.Getenv)
}

// OpenWith is Open with an explicit environment lookup.
func OpenWith(getenv func(string) string) (*slog.Logger, func() error) {
	if getenv(EnvEnabled) != "1" {
		return Discard(), func() error { return nil }
	}
	path := getenv(EnvFile)
	if path == "" {
		path = defaultLogFile
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Discard(), func() error { return nil }
	}
	return New(f), f.Close
}

// New returns a debug-level text logger writing to w.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
