package quotes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/verte-zerg/typesmith/internal/model"
	"github.com/verte-zerg/typesmith/internal/store"
)

// Source supplies a quote collection.
type Source interface {
	Load(ctx context.Context) ([]model.Quote, error)
}

// FileSource reads a JSON collection, falling back to the bundled quotes when
// the file does not exist.
type FileSource struct {
	Path   string
	Logger *slog.Logger
}

// Load implements Source.
func (f FileSource) Load(_ context.Context) ([]model.Quote, error) {
	if f.Path != "" {
		qs, err := LoadFile(f.Path)
		if err == nil {
			return qs, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load quotes from %s: %w", f.Path, err)
		}
		if f.Logger != nil {
			f.Logger.Debug("quote file not found, using bundled quotes", "path", f.Path)
		}
	}
	return Default()
}

// LibrarySource reads quotes from the SQLite quote library.
type LibrarySource struct {
	Path string
}

// Load implements Source.
func (l LibrarySource) Load(ctx context.Context) (qs []model.Quote, err error) {
	st, err := store.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quote library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close quote library: %w", cerr)
		}
	}()
	qs, err = st.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	qs, _ = Validate(qs)
	if len(qs) == 0 {
		return nil, ErrNoQuotes
	}
	return qs, nil
}

// NewSource returns the Source selected by cfg.Source.
func NewSource(cfg model.Config, logger *slog.Logger) (Source, error) {
	switch cfg.Source {
	case "", model.SourceFile:
		return FileSource{Path: cfg.QuotesPath, Logger: logger}, nil
	case model.SourceLibrary:
		return LibrarySource{Path: cfg.LibraryPath}, nil
	default:
		return nil, fmt.Errorf("unknown quote source %q (want %q or %q)", cfg.Source, model.SourceFile, model.SourceLibrary)
	}
}
