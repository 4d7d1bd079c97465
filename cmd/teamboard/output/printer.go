package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes human-readable command output
type Printer struct {
	writer io.Writer
	quiet  bool
	styles *Styles
}

// Styles holds lipgloss styles for console output
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Header  lipgloss.Style
	Subtle  lipgloss.Style
	Bold    lipgloss.Style
}

var priorityColors = map[string]lipgloss.Color{
	"critical": lipgloss.Color("9"),
	"high":     lipgloss.Color("208"),
	"medium":   lipgloss.Color("11"),
	"low":      lipgloss.Color("10"),
}

// NewPrinter creates a printer writing to writer
func NewPrinter(writer io.Writer) *Printer {
	return &Printer{
		writer: writer,
		styles: &Styles{
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Underline(true),
			Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Bold:    lipgloss.NewStyle().Bold(true),
		},
	}
}

// SetQuiet suppresses Success and Info messages
func (p *Printer) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.writer, p.styles.Success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message. Errors are printed even when quiet.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Warning.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an info message
func (p *Printer) Info(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.writer, p.styles.Info.Render("ℹ "+fmt.Sprintf(format, args...)))
}

// Header prints a header line
func (p *Printer) Header(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Header.Render(fmt.Sprintf(format, args...)))
}

// Println prints a plain line
func (p *Printer) Println(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, fmt.Sprintf(format, args...))
}

// Subtle prints a dimmed line
func (p *Printer) Subtle(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Subtle.Render(fmt.Sprintf(format, args...)))
}

// Bold prints a bold line
func (p *Printer) Bold(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Bold.Render(fmt.Sprintf(format, args...)))
}

// Priority renders a card priority in its color
func (p *Printer) Priority(priority string) string {
	color, ok := priorityColors[strings.ToLower(priority)]
	if !ok {
		return priority
	}
	return lipgloss.NewStyle().Foreground(color).Render(priority)
}

// Raw writes s as is
func (p *Printer) Raw(s string) {
	fmt.Fprintln(p.writer, s)
}

// Table prints rows under headers with aligned columns. Cells may contain
// styled text; widths are measured on the visible characters.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	headerParts := make([]string, len(headers))
	separatorParts := make([]string, len(headers))
	for i, h := range headers {
		headerParts[i] = p.styles.Bold.Render(padRight(h, widths[i]))
		separatorParts[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(p.writer, strings.Join(headerParts, "  "))
	fmt.Fprintln(p.writer, p.styles.Subtle.Render(strings.Join(separatorParts, "  ")))

	for _, row := range rows {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			parts[i] = padRight(cell, widths[i])
		}
		fmt.Fprintln(p.writer, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// DefaultPrinter returns a printer that writes to stdout
func DefaultPrinter() *Printer {
	return NewPrinter(os.Stdout)
}
