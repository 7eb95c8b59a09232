package style

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Category classifies an output line
type Category int

const (
	Info Category = iota
	Success
	Warning
	Error
)

// String returns the lowercase label of a category
func (c Category) String() string {
	switch c {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Printer writes one line per message, prefixed and colored by category
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer for out, enabling color only on a capable terminal
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, color: SupportsColor(out)}
}

// NewPlainPrinter creates a printer that never emits escape codes
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Color reports whether the printer emits colored output
func (p *Printer) Color() bool {
	return p.color
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Printf prints a formatted message in the given category
func (p *Printer) Printf(c Category, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !p.color {
		fmt.Fprintf(p.out, "%-7s %s\n", "["+c.String()+"]", msg)
		return
	}
	fmt.Fprint(p.out, prefixPrinter(c).Sprintln(msg))
}

// Println prints an unprefixed line
func (p *Printer) Println(msg string) {
	fmt.Fprintln(p.out, msg)
}

func prefixPrinter(c Category) pterm.PrefixPrinter {
	switch c {
	case Success:
		return pterm.Success
	case Warning:
		return pterm.Warning
	case Error:
		return pterm.Error
	default:
		return pterm.Info
	}
}

// SupportsColor reports whether colored output should be written to out
func SupportsColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}
