// Package report renders session results and quote listings as plain text.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesmith/internal/model"
	"github.com/verte-zerg/typesmith/internal/session"
)

const minTextWidth = 12

// SummaryLines returns the labelled result figures in display order.
func SummaryLines(m session.Metrics) [][2]string {
	return [][2]string{
		{"Characters Typed", strconv.Itoa(m.TypedCharacters)},
		{"Gross WPM", fmt.Sprintf("%.2f", m.GrossWPM)},
		{"Accuracy", fmt.Sprintf("%.2f%%", m.Accuracy)},
		{"Net WPM", fmt.Sprintf("%.2f", m.NetWPM)},
	}
}

// RenderSummary prints the results of a finished session.
func RenderSummary(w io.Writer, m session.Metrics) error {
	if _, err := fmt.Fprintln(w, "Test Results"); err != nil {
		return err
	}
	rows := make([][]string, 0, 4)
	for _, line := range SummaryLines(m) {
		rows = append(rows, []string{line[0] + ":", line[1]})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderQuotes prints a quote table. A positive width truncates the text
// column so each row fits.
func RenderQuotes(w io.Writer, quotes []model.Quote, width int) error {
	if len(quotes) == 0 {
		_, err := fmt.Fprintln(w, "No quotes found.")
		return err
	}
	headers := []string{"#", "Author", "Work", "Year", "Text"}
	rows := make([][]string, 0, len(quotes))
	for i, q := range quotes {
		year := ""
		if q.Year != 0 {
			year = strconv.Itoa(q.Year)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), q.Author, q.Work, year, q.Text})
	}
	if width > 0 {
		truncateLastColumn(headers, rows, width)
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func truncateLastColumn(headers []string, rows [][]string, width int) {
	last := len(headers) - 1
	used := 0
	for col := 0; col < last; col++ {
		colWidth := runewidth.StringWidth(headers[col])
		for _, row := range rows {
			colWidth = max(colWidth, runewidth.StringWidth(row[col]))
		}
		used += colWidth + 2
	}
	textWidth := max(width-used, minTextWidth)
	for _, row := range rows {
		row[last] = runewidth.Truncate(row[last], textWidth, "…")
	}
}
