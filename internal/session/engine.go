package session

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/typesmith/internal/model"
)

// Picker chooses an index in [0, n).
type Picker interface {
	Intn(n int) int
}

// Engine owns a session State and applies its transitions. It is not safe
// for concurrent use; callers drive it from a single event loop.
type Engine struct {
	picker Picker
	logger *slog.Logger
	state  State
}

// New returns an idle engine without quotes. A nil logger discards output.
func New(picker Picker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		picker: picker,
		logger: logger,
		state:  initialState(nil),
	}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.clone()
}

// Metrics returns the derived figures for the current state.
func (e *Engine) Metrics() Metrics {
	return e.state.Metrics()
}

// LoadQuotes installs the quote collection and draws the first quote.
// Quotes with blank text are skipped. An empty collection leaves the engine
// without a quote.
func (e *Engine) LoadQuotes(quotes []model.Quote) {
	usable := make([]model.Quote, 0, len(quotes))
	for _, q := range quotes {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		usable = append(usable, q)
	}
	if skipped := len(quotes) - len(usable); skipped > 0 {
		e.logger.Warn("skipped quotes with empty text", "count", skipped)
	}

	next := e.state
	next.Quotes = usable
	if next.CurrentQuote == nil || next.InputText == "" {
		next = next.withQuote(e.pick(usable))
	}
	e.state = next
	if len(usable) == 0 {
		e.logger.Warn("no quotes available")
		return
	}
	e.logger.Debug("quotes loaded", "count", len(usable))
}

// HandleInput replaces the input buffer with text. It reports false when the
// input was ignored because the session is completed or no quote is loaded.
func (e *Engine) HandleInput(text string) bool {
	s := e.state
	if s.IsTestCompleted || s.CurrentQuote == nil {
		return false
	}
	next := s.withInput(text)
	if !s.IsTestActive && next.TypedCharacters > 0 {
		next = next.started(uuid.NewString())
		e.logger.Info("session started", "attempt", next.AttemptID, "epoch", next.Epoch)
	}
	if next.quoteFinished() {
		e.logger.Debug("quote completed",
			"attempt", next.AttemptID,
			"typed", next.TypedCharacters,
			"correct", next.CorrectCharacters,
			"errors", next.Errors,
		)
		next = next.folded().withQuote(e.pick(next.Quotes))
	}
	e.state = next
	return true
}

// Tick advances the timer by one second. It reports whether the timer is
// still running afterwards; ticks outside the active phase are ignored.
func (e *Engine) Tick() bool {
	s := e.state
	if !s.IsTestActive || s.IsTestCompleted {
		return false
	}
	next := s.ticked()
	e.state = next
	if next.IsTestCompleted {
		m := next.Metrics()
		e.logger.Info("session completed",
			"attempt", next.AttemptID,
			"typed", m.TypedCharacters,
			"gross_wpm", m.GrossWPM,
			"net_wpm", m.NetWPM,
			"accuracy", m.Accuracy,
		)
		return false
	}
	return true
}

// TryAgain folds the attempt in progress into the totals, returns the metrics
// of the session being discarded and resets to a fresh idle session with a
// new quote. It is valid from any phase.
func (e *Engine) TryAgain() Metrics {
	final := e.state.folded()
	summary := final.Metrics()
	e.state = final.reset(e.pick(final.Quotes))
	e.logger.Info("session reset",
		"attempt", final.AttemptID,
		"phase", final.Phase().String(),
		"epoch", e.state.Epoch,
	)
	return summary
}

func (e *Engine) pick(quotes []model.Quote) *model.Quote {
	if len(quotes) == 0 {
		return nil
	}
	q := quotes[e.picker.Intn(len(quotes))]
	return &q
}
