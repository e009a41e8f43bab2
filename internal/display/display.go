// Package display renders CLI output: status lines, headers, key-value
// pairs, lists and boxes.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	boldStyle    = lipgloss.NewStyle().Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 1)

	prominentStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 2)
)

// Icons prefixing status lines.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
)

// Printer writes styled output. Errors go to the error writer.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing to out and errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// Out returns the standard output writer.
func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, successStyle.Render(IconSuccess+" "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, errorStyle.Render(IconError+" "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, warningStyle.Render(IconWarning+" "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, infoStyle.Render(IconInfo+" "+fmt.Sprintf(format, args...)))
}

// Header prints a section title preceded by a blank line.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, primaryStyle.Render("▶ ")+boldStyle.Render(title))
}

// Section prints a compact, underlined title.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, accentStyle.Render(title))
	fmt.Fprintln(p.out, mutedStyle.Render(strings.Repeat("─", lipgloss.Width(title))))
}

// Banner prints a framed title.
func (p *Printer) Banner(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, prominentStyle.Render(title))
}

func (p *Printer) KeyValue(key, value string) {
	fmt.Fprintf(p.out, "  %s %s\n", mutedStyle.Render(key+":"), value)
}

// List prints items as an indented bullet list.
func (p *Printer) List(items []string) {
	for _, item := range items {
		fmt.Fprintf(p.out, "  %s %s\n", primaryStyle.Render("-"), item)
	}
}

// Box prints lines inside a rounded border with an optional title line.
func (p *Printer) Box(title string, lines []string) {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = boldStyle.Render(title) + "\n\n" + body
	}
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

// Muted prints a dimmed line.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Line prints an unstyled line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() { fmt.Fprintln(p.out) }

// Styles exposed for callers that compose their own lines.
func Accent(s string) string  { return accentStyle.Render(s) }
func Muted(s string) string   { return mutedStyle.Render(s) }
func Good(s string) string    { return successStyle.Render(s) }
func Bad(s string) string     { return errorStyle.Render(s) }
func Caution(s string) string { return warningStyle.Render(s) }
func Notice(s string) string  { return infoStyle.Render(s) }
