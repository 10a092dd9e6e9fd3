// Package output provides consistent CLI output formatting with colors and status icons.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles Styles
}

// New creates a new output Writer. Color is enabled only when the
// destination is a terminal and NO_COLOR is unset.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: StylesFor(out),
	}
}

// NewPlain creates a Writer with styling disabled, regardless of destination.
func NewPlain(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: NoColorStyles(),
	}
}

// Banner prints a section banner with a separator line.
func (w *Writer) Banner(title string) {
	line := strings.Repeat("=", 60)
	_, _ = fmt.Fprintln(w.out, w.styles.Dim.Render(line))
	_, _ = fmt.Fprintln(w.out, w.styles.Header.Render(title))
	_, _ = fmt.Fprintln(w.out, w.styles.Dim.Render(line))
}

// Section prints a step heading.
func (w *Writer) Section(title string) {
	_, _ = fmt.Fprintln(w.out)
	_, _ = fmt.Fprintf(w.out, "%s\n", w.styles.Header.Render("=== "+title+" ==="))
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.Status(icon, msg)
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", w.styles.Success.Render(msg))
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", w.styles.Warning.Render(msg))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", w.styles.Error.Render(msg))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Detail prints an indented detail line under a status message.
func (w *Writer) Detail(msg string) {
	_, _ = fmt.Fprintf(w.out, "   %s\n", w.styles.Dim.Render(msg))
}

// Detailf prints a formatted detail line.
func (w *Writer) Detailf(format string, args ...any) {
	w.Detail(fmt.Sprintf(format, args...))
}

// Code prints a code block with indentation.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
