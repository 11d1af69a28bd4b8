// Package quotes loads quote collections.
package quotes

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/typesmith/internal/model"
)

//go:embed default_quotes.json
var defaultQuotes []byte

// ErrNoQuotes is returned when a collection holds no usable quote.
var ErrNoQuotes = errors.New("quote collection is empty")

type collection struct {
	Quotes []model.Quote `json:"quotes"`
}

// Decode reads a `{"quotes": [...]}` document.
func Decode(r io.Reader) ([]model.Quote, error) {
	var c collection
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return c.Quotes, nil
}

// LoadFile reads and validates a quote collection from path.
func LoadFile(path string) ([]model.Quote, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only quote file.
			_ = cerr
		}
	}()

	qs, err := Decode(file)
	if err != nil {
		return nil, err
	}
	qs, _ = Validate(qs)
	if len(qs) == 0 {
		return nil, ErrNoQuotes
	}
	return qs, nil
}

// Default returns the collection bundled with the binary.
func Default() ([]model.Quote, error) {
	qs, err := Decode(bytes.NewReader(defaultQuotes))
	if err != nil {
		return nil, err
	}
	qs, _ = Validate(qs)
	return qs, nil
}

// Validate keeps quotes whose text is not blank and reports how many were dropped.
func Validate(qs []model.Quote) ([]model.Quote, int) {
	out := make([]model.Quote, 0, len(qs))
	for _, q := range qs {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		out = append(out, q)
	}
	return out, len(qs) - len(out)
}
