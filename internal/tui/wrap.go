package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesmith/internal/scoring"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func styleFor(class scoring.Class) lipgloss.Style {
	switch class {
	case scoring.Correct:
		return correctStyle
	case scoring.CorrectSpace:
		return correctSpaceStyle
	case scoring.Incorrect:
		return incorrectStyle
	case scoring.IncorrectSpace:
		return incorrectSpaceStyle
	default:
		return pendingStyle
	}
}

func buildStyledRunes(chars []scoring.Char, cursorIndex int) []styledRune {
	words := findWords(chars)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledRune, 0, len(chars))
	for i, ch := range chars {
		style := styleFor(ch.Class)
		if ch.Class == scoring.Untyped && ch.Rune != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end {
			style = currentWordStyle
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(ch.Rune)),
			width:   runewidth.RuneWidth(ch.Rune),
			isSpace: ch.Rune == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(chars []scoring.Char) []wordRange {
	words := []wordRange{}
	start := -1
	for i, ch := range chars {
		if ch.Rune == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(chars)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 || cursorIndex < 0 {
		return nil
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				// Keep the breaking space on this line.
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
