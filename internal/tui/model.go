// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesmith/internal/model"
	"github.com/verte-zerg/typesmith/internal/quotes"
	"github.com/verte-zerg/typesmith/internal/report"
	"github.com/verte-zerg/typesmith/internal/scoring"
	"github.com/verte-zerg/typesmith/internal/session"
)

const (
	tagline        = "Craft Your Tales with Speed & Precision"
	intro          = "Enhance your writing by mastering typing speed and accuracy while being inspired by quotes from literary greats."
	loadingText    = "Loading..."
	warnSeconds    = 10
	tickInterval   = time.Second
	maxContentWide = 72
)

var (
	titleStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	taglineStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	introStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	correctStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	correctSpaceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	incorrectStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	incorrectSpaceStyle = incorrectStyle.Underline(true)
	pendingStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	currentWordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	attributionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	workStyle           = attributionStyle.Italic(true)
	timerStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	timerWarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	dialogTitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	dialogLabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Italic(true)
	dialogValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle          = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
)

type quotesLoadedMsg struct {
	quotes []model.Quote
	err    error
}

// tickMsg carries the epoch it was scheduled in so ticks from a timer that
// has since been stopped are discarded.
type tickMsg struct {
	epoch int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine *session.Engine
	source quotes.Source
	logger *slog.Logger

	input textinput.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	final    session.Metrics
	hasFinal bool
}

// NewModel constructs a typing TUI model. Quotes are loaded from source
// asynchronously once the program starts.
func NewModel(engine *session.Engine, source quotes.Source, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	input := textinput.New()
	input.Placeholder = "Begin typing to start..."
	input.Prompt = "> "
	input.Focus()
	return &Model{
		engine: engine,
		source: source,
		logger: logger,
		input:  input,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// FinalMetrics returns the results of the most recently completed session.
func (m *Model) FinalMetrics() (session.Metrics, bool) {
	return m.final, m.hasFinal
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadQuotes(), textinput.Blink)
}

func (m *Model) loadQuotes() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		qs, err := source.Load(context.Background())
		return quotesLoadedMsg{quotes: qs, err: err}
	}
}

func tick(epoch int) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{epoch: epoch}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.contentWidth()-lipgloss.Width(m.input.Prompt)-1, 1)
		m.help.Width = msg.Width
		return m, nil
	case quotesLoadedMsg:
		m.handleQuotesLoaded(msg)
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleQuotesLoaded(msg quotesLoadedMsg) {
	if msg.err != nil {
		m.logger.Error("failed to load quotes", "error", msg.err)
		return
	}
	m.engine.LoadQuotes(msg.quotes)
	if !m.engine.State().HasQuote() {
		m.logger.Warn("quote source returned no usable quotes")
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.epoch != m.engine.State().Epoch {
		m.logger.Debug("dropping stale tick", "epoch", msg.epoch)
		return nil
	}
	if m.engine.Tick() {
		return tick(msg.epoch)
	}
	s := m.engine.State()
	if s.IsTestCompleted {
		m.final = m.engine.Metrics()
		m.hasFinal = true
		m.input.Blur()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		return m, m.tryAgain()
	}

	before := m.engine.State()
	if before.DialogOpen {
		if key.Matches(msg, m.keys.TryAgain) {
			return m, m.tryAgain()
		}
		return m, nil
	}
	if !before.HasQuote() || before.IsTestCompleted {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()
	if value == before.InputText {
		return m, cmd
	}
	m.engine.HandleInput(value)
	after := m.engine.State()
	if after.InputText != value {
		m.input.SetValue(after.InputText)
	}
	if before.Phase() == session.PhaseIdle && after.Phase() == session.PhaseActive {
		return m, tea.Batch(cmd, tick(after.Epoch))
	}
	return m, cmd
}

func (m *Model) tryAgain() tea.Cmd {
	summary := m.engine.TryAgain()
	m.logger.Debug("try again", "typed", summary.TypedCharacters, "gross_wpm", summary.GrossWPM)
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return maxContentWide
	}
	return max(min(int(float64(m.width)*0.70), maxContentWide), 1)
}

// View implements tea.Model.
func (m *Model) View() string {
	s := m.engine.State()
	var content string
	if s.DialogOpen {
		content = m.renderDialog()
	} else {
		content = m.renderBody(s)
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderBody(s session.State) string {
	width := m.contentWidth()
	sections := []string{
		titleStyle.Render("TypeSmith"),
		taglineStyle.Render(tagline),
		introStyle.Render(intro),
		"",
		m.renderQuote(s, width),
		"",
		m.renderAttribution(s, width),
		"",
		m.input.View(),
		lipgloss.PlaceHorizontal(width, lipgloss.Right, m.renderTimer(s)),
		"",
		m.renderFooter(s),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n"))
}

func (m *Model) renderQuote(s session.State, width int) string {
	if !s.HasQuote() {
		return pendingStyle.Render(loadingText)
	}
	chars := scoring.Classify(s.QuoteText(), s.InputText)
	cursorIndex := -1
	if s.TypedCharacters < len(chars) {
		cursorIndex = s.TypedCharacters
	}
	return wrapStyledRunes(buildStyledRunes(chars, cursorIndex), width)
}

func (m *Model) renderAttribution(s session.State, width int) string {
	q := s.CurrentQuote
	if q == nil {
		return ""
	}
	author, work, year := q.Author, q.Work, ""
	if q.Year != 0 {
		year = fmt.Sprintf("%d", q.Year)
	}
	lines := []string{attributionStyle.Render("— " + author)}
	switch {
	case work != "" && year != "":
		lines = append(lines, workStyle.Render(fmt.Sprintf("%s (%s)", work, year)))
	case work != "":
		lines = append(lines, workStyle.Render(work))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTimer(s session.State) string {
	style := timerStyle
	if s.Timer <= warnSeconds {
		style = timerWarnStyle
	}
	if s.IsTestActive {
		style = style.Bold(true)
	}
	return style.Render(fmt.Sprintf("Time Remaining: %ds", s.Timer))
}

func (m *Model) renderFooter(s session.State) string {
	if !s.HasQuote() {
		return ""
	}
	metrics := s.Metrics()
	segments := []string{
		fmt.Sprintf("WPM %.2f", metrics.GrossWPM),
		fmt.Sprintf("Accuracy %.2f%%", metrics.Accuracy),
		fmt.Sprintf("Progress %d%%", int(s.Progress()*100)),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderDialog() string {
	metrics := m.engine.Metrics()
	lines := []string{dialogTitleStyle.Render("Test Results"), ""}
	for _, line := range report.SummaryLines(metrics) {
		lines = append(lines, dialogLabelStyle.Render(line[0]+":")+" "+dialogValueStyle.Render(line[1]))
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.dialogHelp()))
	return modalStyle.Render(strings.Join(lines, "\n"))
}
