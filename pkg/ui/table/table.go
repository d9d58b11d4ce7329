// Package table renders lists of solutions, voices and messages as
// terminal tables with lipgloss.
package table

import (
	"fmt"
	"os"
	"strings"
	"time"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is implemented by anything listed as a table
type TableData interface {
	// Header returns the column labels
	Header() []string

	// Len returns the number of rows
	Len() int

	// Row returns the cells of row i, or nil to skip the row.
	// Wrap a cell in Bold to highlight it.
	Row(i int) []any
}

// Bold highlights a cell
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	empty      = "-"
	timeFormat = "2006-01-02 15:04"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	borderStyle = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render draws the table, narrowing it to the terminal when it would
// otherwise overflow
func Render(data TableData) string {
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return RenderWidth(data, width)
}

// RenderWidth draws the table no wider than width. A width of zero
// leaves the table at its natural size.
func RenderWidth(data TableData, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	for i := range data.Len() {
		if row := data.Row(i); row != nil {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = FormatCell(v)
			}
			t.Row(cells...)
		}
	}

	result := t.Render()
	if width > 0 && widest(result) > width {
		result = t.Width(width).Render()
	}
	return result
}

// Truncate shortens s to max runes on a single line
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

// FormatCell converts a cell to text. Empty and zero values are shown
// as a dash, and confidence scores as percentages.
func FormatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return empty
	case Bold:
		return boldStyle.Render(FormatCell(v.Value))
	case string:
		if v == "" {
			return empty
		}
		return v
	case []string:
		return FormatCell(strings.Join(v, ", "))
	case time.Time:
		if v.IsZero() {
			return empty
		}
		return v.Local().Format(timeFormat)
	case float64:
		return fmt.Sprintf("%.0f%%", v*100)
	case int:
		if v == 0 {
			return empty
		}
		return fmt.Sprint(v)
	default:
		return FormatCell(fmt.Sprint(v))
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func widest(s string) int {
	var n int
	for _, line := range strings.Split(s, "\n") {
		n = max(n, lipgloss.Width(line))
	}
	return n
}
