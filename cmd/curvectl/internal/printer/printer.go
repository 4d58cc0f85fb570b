// Package printer writes coloured status lines for curvectl.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Printer writes status messages to w.
type Printer struct {
	w io.Writer
}

// New returns a printer over w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success prints a success message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprintln(p.w, msg)
}

// Warning prints a warning message in yellow.
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.w, "⚠️  %s\n", fmt.Sprintf(format, a...))
}

// Error prints a title in red followed by the explanation, and returns an error carrying the
// title for cobra.
func (p *Printer) Error(title string, err error) error {
	red.Fprintf(p.w, "%s\n", title)
	if err != nil {
		fmt.Fprintf(p.w, "%v\n", err)
	}
	return fmt.Errorf("%s", title)
}
