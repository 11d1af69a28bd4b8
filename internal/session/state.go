// Package session implements the timed typing-session state machine.
package session

import (
	"slices"
	"unicode/utf8"

	"github.com/verte-zerg/typesmith/internal/model"
	"github.com/verte-zerg/typesmith/internal/scoring"
)

// SessionSeconds is the length of one timed session.
const SessionSeconds = 60

// Phase is the coarse lifecycle position of a session.
type Phase int

const (
	// PhaseIdle means no keystroke has been accepted yet.
	PhaseIdle Phase = iota
	// PhaseActive means the timer is running and input is accepted.
	PhaseActive
	// PhaseCompleted means the timer ran out and input is locked.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State is a complete snapshot of a typing session.
type State struct {
	Quotes       []model.Quote
	CurrentQuote *model.Quote

	InputText         string
	TypedCharacters   int
	CorrectCharacters int
	Errors            int

	TotalTypedCharacters   int
	TotalCorrectCharacters int
	TotalErrors            int

	Timer           int
	IsTestActive    bool
	IsTestCompleted bool
	DialogOpen      bool

	// Epoch changes whenever a timer started earlier must stop counting:
	// on Idle to Active and on reset.
	Epoch     int
	AttemptID string
}

// Metrics are the derived figures shown to the user.
type Metrics struct {
	ElapsedSeconds    int
	TypedCharacters   int
	CorrectCharacters int
	Errors            int
	GrossWPM          float64
	NetWPM            float64
	Accuracy          float64
}

func initialState(quotes []model.Quote) State {
	return State{
		Quotes: quotes,
		Timer:  SessionSeconds,
	}
}

// Phase reports which of idle, active or completed holds.
func (s State) Phase() Phase {
	switch {
	case s.IsTestCompleted:
		return PhaseCompleted
	case s.IsTestActive:
		return PhaseActive
	default:
		return PhaseIdle
	}
}

// HasQuote reports whether a reference quote is available.
func (s State) HasQuote() bool {
	return s.CurrentQuote != nil
}

// QuoteText returns the current reference text or "" without a quote.
func (s State) QuoteText() string {
	if s.CurrentQuote == nil {
		return ""
	}
	return s.CurrentQuote.Text
}

// Progress returns the share of the current quote already typed, 0 to 1.
func (s State) Progress() float64 {
	n := utf8.RuneCountInString(s.QuoteText())
	if n == 0 {
		return 0
	}
	return min(float64(s.TypedCharacters)/float64(n), 1)
}

// Metrics derives speed and accuracy from the totals plus the attempt in
// progress.
func (s State) Metrics() Metrics {
	elapsed := 0
	if s.Phase() != PhaseIdle {
		elapsed = SessionSeconds - s.Timer
	}
	typed := s.TotalTypedCharacters + s.TypedCharacters
	correct := s.TotalCorrectCharacters + s.CorrectCharacters
	gross := scoring.GrossWPM(typed, elapsed)
	acc := scoring.Accuracy(correct, typed)
	return Metrics{
		ElapsedSeconds:    elapsed,
		TypedCharacters:   typed,
		CorrectCharacters: correct,
		Errors:            s.TotalErrors + s.Errors,
		GrossWPM:          gross,
		NetWPM:            scoring.NetWPM(gross, acc),
		Accuracy:          acc,
	}
}

func (s State) clone() State {
	out := s
	out.Quotes = slices.Clone(s.Quotes)
	if s.CurrentQuote != nil {
		q := *s.CurrentQuote
		out.CurrentQuote = &q
	}
	return out
}

func (s State) withInput(text string) State {
	next := s
	next.InputText = text
	next.TypedCharacters = utf8.RuneCountInString(text)
	next.CorrectCharacters = scoring.CorrectCount(text, s.QuoteText())
	next.Errors = max(0, next.TypedCharacters-next.CorrectCharacters)
	return next
}

func (s State) started(attemptID string) State {
	next := s
	next.IsTestActive = true
	next.Timer = SessionSeconds
	next.Epoch++
	next.AttemptID = attemptID
	return next
}

func (s State) quoteFinished() bool {
	if s.CurrentQuote == nil {
		return false
	}
	return s.TypedCharacters >= utf8.RuneCountInString(s.CurrentQuote.Text)
}

// folded moves the attempt counters into the totals and clears the attempt.
func (s State) folded() State {
	next := s
	next.TotalTypedCharacters += s.TypedCharacters
	next.TotalCorrectCharacters += s.CorrectCharacters
	next.TotalErrors += s.Errors
	next.InputText = ""
	next.TypedCharacters = 0
	next.CorrectCharacters = 0
	next.Errors = 0
	return next
}

func (s State) withQuote(q *model.Quote) State {
	next := s
	next.CurrentQuote = q
	return next
}

func (s State) ticked() State {
	next := s
	next.Timer = max(0, s.Timer-1)
	if next.Timer == 0 {
		next.IsTestActive = false
		next.IsTestCompleted = true
		next.DialogOpen = true
	}
	return next
}

func (s State) reset(q *model.Quote) State {
	next := initialState(s.Quotes)
	next.Epoch = s.Epoch + 1
	next.CurrentQuote = q
	return next
}
