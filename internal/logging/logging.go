// Package logging configures the slog logger. The TUI owns the terminal, so
// logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Logger is a handle on the configured logger and its backing file.
type Logger struct {
	*slog.Logger
	Path string
	file *os.File
}

// New returns a logger writing JSON records to a file. When debug is false
// and file is empty, records are discarded. An empty file with debug set
// creates a uniquely named log in dir.
func New(debug bool, file, dir string) (*Logger, error) {
	if !debug && file == "" {
		return &Logger{Logger: slog.New(slog.DiscardHandler)}, nil
	}
	path := file
	if path == "" {
		path = filepath.Join(dir, uuid.NewString()+".log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Logger{
		Logger: newJSON(f),
		Path:   path,
		file:   f,
	}, nil
}

func newJSON(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Close closes the backing file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
