package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Printer writes reports in a human-readable form.
// INFO entries are only shown when Verbose is set.
type Printer struct {
	Color   bool
	Verbose bool
}

// Print writes the reports in the given order. Callers wanting severity
// ordering call Sort first. Returns the highest severity printed or not.
func (p Printer) Print(w io.Writer, reports ...*Report) Severity {
	file := p.paint(color.FgHiBlue)
	line := p.paint(color.FgHiGreen)
	levels := map[Severity]*color.Color{
		Info:    p.paint(color.FgWhite),
		Warning: p.paint(color.FgYellow),
		Error:   p.paint(color.FgRed, color.Bold),
	}

	for _, r := range reports {
		if r == nil {
			continue
		}
		for _, e := range r.Entries() {
			if e.Severity == Info && !p.Verbose {
				continue
			}
			if e.Path != "" {
				header := file.Sprint(filepath.Base(e.Path))
				if e.Line > 0 {
					header += " " + line.Sprint(e.Line)
				}
				fmt.Fprintln(w, header)
			}
			label := levels[e.Severity]
			if label == nil {
				label = levels[Info]
			}
			fmt.Fprintf(w, "    %s %s\n", label.Sprint(e.Severity.String()+":"), indent(e.Message))
		}
	}
	return MaxOf(reports...)
}

func (p Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// indent aligns continuation lines of multi-line messages.
func indent(message string) string {
	return strings.ReplaceAll(message, "\n", "\n    ")
}
