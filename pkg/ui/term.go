/*
ui prints conversations, solutions and tables on a terminal. Replies are
rendered as markdown when writing to a terminal, and word wrapped plain
text otherwise.
*/
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	lipgloss "github.com/charmbracelet/lipgloss"
	wordwrap "github.com/muesli/reflow/wordwrap"
	termenv "github.com/muesli/termenv"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	table "github.com/mutablelogic/go-mia/pkg/ui/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Term writes to a terminal or a plain stream
type Term struct {
	w        io.Writer
	in       *bufio.Reader
	width    int
	renderer *glamour.TermRenderer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultWidth = 80
	maxWidth     = 100
	assistant    = "Mia"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	systemStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a terminal writing to w and reading from r. Markdown is
// rendered only when w is a terminal.
func New(w io.Writer, r io.Reader) (*Term, error) {
	t := &Term{w: w, in: bufio.NewReader(r), width: defaultWidth}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return t, nil
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		t.width = min(width, maxWidth)
	}

	style := "dark"
	if !termenv.HasDarkBackground() {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(t.width-2),
	)
	if err != nil {
		return nil, err
	}
	t.renderer = renderer

	// Return success
	return t, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Width returns the number of columns text is wrapped to
func (t *Term) Width() int {
	return t.width
}

// ReadLine prompts for a line of input. It returns io.EOF when the input
// is closed.
func (t *Term) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.w, userStyle.Render(prompt+"> "))
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Reply prints the reply of the assistant with its classification
func (t *Term) Reply(r *schema.ChatResponse) error {
	fmt.Fprintln(t.w, assistantStyle.Render(assistant))
	if err := t.Markdown(r.Response); err != nil {
		return err
	}
	meta := fmt.Sprintf("%s %.0f%% · %s · %s", r.Intent, r.Confidence*100, r.Language, r.Avatar.Expression)
	fmt.Fprintln(t.w, dimStyle.Render(meta))
	return nil
}

// Markdown prints markdown, rendered on a terminal
func (t *Term) Markdown(text string) error {
	if t.renderer == nil {
		fmt.Fprintln(t.w, wordwrap.String(text, t.width))
		return nil
	}
	out, err := t.renderer.Render(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(t.w, strings.Trim(out, "\n"))
	return nil
}

// Solution prints a knowledge base solution with its steps
func (t *Term) Solution(s schema.Solution) error {
	return t.Markdown(SolutionMarkdown(s))
}

// Table prints tabular data
func (t *Term) Table(data table.TableData) {
	fmt.Fprintln(t.w, table.RenderWidth(data, t.width))
}

// Info prints a notice
func (t *Term) Info(format string, args ...any) {
	fmt.Fprintln(t.w, systemStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error
func (t *Term) Error(err error) {
	fmt.Fprintln(t.w, errorStyle.Render(err.Error()))
}

// SolutionMarkdown formats a solution as markdown
func SolutionMarkdown(s schema.Solution) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "## %s\n\n%s\n\n", s.Title, s.Description)
	if s.Difficulty != "" || s.EstimatedTime != "" {
		fmt.Fprintf(&buf, "*%s · %s*\n\n", s.Difficulty, s.EstimatedTime)
	}
	section(&buf, "Before you start", s.Prerequisites, false)
	section(&buf, "Steps", s.Steps, true)
	section(&buf, "Tips", s.Tips, false)
	return strings.TrimSpace(buf.String())
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func section(buf *strings.Builder, title string, items []string, numbered bool) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "### %s\n\n", title)
	for i, item := range items {
		if numbered {
			fmt.Fprintf(buf, "%d. %s\n", i+1, item)
		} else {
			fmt.Fprintf(buf, "- %s\n", item)
		}
	}
	buf.WriteString("\n")
}
