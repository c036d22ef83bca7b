package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ANSI color sequences
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
	colorBright = "\x1b[92m"
)

// Printer writes user-facing output, colored when enabled
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// NewStdoutPrinter creates a printer for the process stdout. Color is used
// only on a terminal and when not disabled.
func NewStdoutPrinter(noColor bool) *Printer {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !tty || noColor {
		return NewPrinter(colorable.NewNonColorable(os.Stdout), false)
	}
	return NewPrinter(colorable.NewColorableStdout(), true)
}

func (p *Printer) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + colorReset
}

// Printf writes formatted text without color
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line without color
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Heading writes a section heading
func (p *Printer) Heading(s string) {
	fmt.Fprintln(p.out, p.paint(colorCyan, s))
}

// Field writes "Label: value" with the label highlighted
func (p *Printer) Field(label string, value any) {
	fmt.Fprintf(p.out, "%s %v\n", p.paint(colorGreen, label+":"), value)
}

// Section writes a group heading such as "VIDEO FORMATS:"
func (p *Printer) Section(s string) {
	fmt.Fprintln(p.out, p.paint(colorGreen, s))
}

// Highlight writes an emphasized line (the selected row)
func (p *Printer) Highlight(s string) {
	fmt.Fprintln(p.out, p.paint(colorBright, s))
}

// Success writes a check-marked line
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(colorGreen, "✓ "+fmt.Sprintf(format, args...)))
}

// Warn writes a warning line
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(colorYellow, fmt.Sprintf(format, args...)))
}

// Error writes an error line
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(colorRed, "Error: "+fmt.Sprintf(format, args...)))
}

// Prompt writes a prompt without a trailing newline
func (p *Printer) Prompt(s string) {
	fmt.Fprint(p.out, p.paint(colorYellow, s))
}

// Number formats a menu number
func (p *Printer) Number(n int) string {
	return p.paint(colorYellow, fmt.Sprintf("%2d.", n))
}

// Status rewrites the current line (progress)
func (p *Printer) Status(s string) {
	fmt.Fprintf(p.out, "\r%s", p.paint(colorCyan, s))
}
