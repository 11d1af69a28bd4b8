package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typesmith/internal/model"
	"github.com/verte-zerg/typesmith/internal/session"
)

type staticSource struct {
	quotes []model.Quote
	err    error
}

func (s staticSource) Load(context.Context) ([]model.Quote, error) {
	return s.quotes, s.err
}

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

func newTestModel(t *testing.T, texts ...string) *Model {
	t.Helper()
	qs := make([]model.Quote, 0, len(texts))
	for _, text := range texts {
		qs = append(qs, model.Quote{Text: text, Author: "Herman Melville", Work: "Moby-Dick", Year: 1851})
	}
	m := NewModel(session.New(firstPicker{}, nil), staticSource{quotes: qs}, nil)
	load := m.loadQuotes()
	m.Update(load())
	return m
}

func typeRunes(m *Model, text string) tea.Cmd {
	var last tea.Cmd
	for _, r := range text {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		_, last = m.Update(msg)
	}
	return last
}

func runTicks(m *Model, n int) {
	for i := 0; i < n; i++ {
		m.Update(tickMsg{epoch: m.engine.State().Epoch})
	}
}

func TestKeystrokesBeforeLoadAreDropped(t *testing.T) {
	m := NewModel(session.New(firstPicker{}, nil), staticSource{}, nil)
	typeRunes(m, "a")
	if m.input.Value() != "" {
		t.Fatalf("expected keystroke to be dropped, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("expected loading indicator")
	}
}

func TestViewBeforeLoadShowsSingleLoadingIndicator(t *testing.T) {
	m := NewModel(session.New(firstPicker{}, nil), staticSource{}, nil)
	view := m.View()
	if n := strings.Count(view, loadingText); n != 1 {
		t.Fatalf("expected one loading indicator, got %d:\n%s", n, view)
	}
	if strings.Contains(view, "— ") {
		t.Fatalf("expected no attribution before quotes load:\n%s", view)
	}
}

func TestLoadFailureKeepsLoading(t *testing.T) {
	m := NewModel(session.New(firstPicker{}, nil), staticSource{err: errors.New("boom")}, nil)
	m.Update(m.loadQuotes()())
	if m.engine.State().HasQuote() {
		t.Fatalf("expected no quote after failed load")
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("expected loading indicator")
	}
}

func TestFirstKeystrokeStartsTimer(t *testing.T) {
	m := newTestModel(t, "call me")
	cmd := typeRunes(m, "c")
	if cmd == nil {
		t.Fatalf("expected tick command after first keystroke")
	}
	s := m.engine.State()
	if s.Phase() != session.PhaseActive {
		t.Fatalf("expected active phase, got %s", s.Phase())
	}
	if s.InputText != "c" {
		t.Fatalf("expected input forwarded, got %q", s.InputText)
	}
}

func TestQuoteCompletionClearsInput(t *testing.T) {
	m := newTestModel(t, "ab")
	typeRunes(m, "ab")
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared after quote completion, got %q", m.input.Value())
	}
	if got := m.engine.State().TotalTypedCharacters; got != 2 {
		t.Fatalf("expected 2 total typed characters, got %d", got)
	}
}

func TestBackspaceShrinksInput(t *testing.T) {
	m := newTestModel(t, "hello")
	typeRunes(m, "hx")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	s := m.engine.State()
	if s.InputText != "h" || s.Errors != 0 {
		t.Fatalf("unexpected state after backspace: %q errors=%d", s.InputText, s.Errors)
	}
}

func TestStaleTickIsDropped(t *testing.T) {
	m := newTestModel(t, "hello")
	typeRunes(m, "h")
	stale := m.engine.State().Epoch

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	typeRunes(m, "h")
	_, cmd := m.Update(tickMsg{epoch: stale})
	if cmd != nil {
		t.Fatalf("expected stale tick to stop its chain")
	}
	if got := m.engine.State().Timer; got != session.SessionSeconds {
		t.Fatalf("expected timer untouched by stale tick, got %d", got)
	}

	_, cmd = m.Update(tickMsg{epoch: m.engine.State().Epoch})
	if cmd == nil {
		t.Fatalf("expected current tick to reschedule")
	}
	if got := m.engine.State().Timer; got != session.SessionSeconds-1 {
		t.Fatalf("expected timer to drop once, got %d", got)
	}
}

func TestTimeoutOpensDialog(t *testing.T) {
	m := newTestModel(t, "hello world")
	typeRunes(m, "hello")
	runTicks(m, session.SessionSeconds)

	s := m.engine.State()
	if !s.DialogOpen || !s.IsTestCompleted {
		t.Fatalf("expected completed session with open dialog")
	}
	final, ok := m.FinalMetrics()
	if !ok || final.TypedCharacters != 5 {
		t.Fatalf("expected final metrics with 5 typed characters, got %+v", final)
	}
	view := m.View()
	for _, want := range []string{"Test Results", "Characters Typed:", "Gross WPM:", "Accuracy:", "Net WPM:"} {
		if !strings.Contains(view, want) {
			t.Fatalf("dialog missing %q: %s", want, view)
		}
	}

	typeRunes(m, " ")
	if m.engine.State().InputText != "hello" {
		t.Fatalf("expected input locked after completion")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = m.engine.State()
	if s.DialogOpen || s.Phase() != session.PhaseIdle {
		t.Fatalf("expected fresh idle session after try again")
	}
	if m.input.Value() != "" || !m.input.Focused() {
		t.Fatalf("expected empty focused input after try again")
	}
}

func TestViewShowsQuoteAndTimer(t *testing.T) {
	m := newTestModel(t, "Call me Ishmael.")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{"TypeSmith", "Enhance your writing", "Herman Melville", "Moby-Dick (1851)", "Time Remaining: 60s"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, "abcd")
	typeRunes(m, "ab")
	m.Update(tickMsg{epoch: m.engine.State().Epoch})
	out := m.renderFooter(m.engine.State())
	for _, want := range []string{"WPM 24.00", "Accuracy 100.00%", "Progress 50%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}
