package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// ANSI escapes used by Format.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

// detailWidth is the column Detail text is wrapped at.
const detailWidth = 70

var colorEnabled = true

// DisableColors makes Format emit plain text. The CLI calls it when stderr
// is not a terminal.
func DisableColors() { colorEnabled = false }

// EnableColors restores ANSI output.
func EnableColors() { colorEnabled = true }

func paint(style, text string) string {
	if !colorEnabled {
		return text
	}
	return style + text + ansiReset
}

// Format renders the error for a terminal: a headline, the source
// excerpt when a location is known, then each optional section.
func (e *DidactError) Format() string {
	var b strings.Builder

	head := "ERROR: "
	if e.Code != "" {
		head = "ERROR " + e.Code + ": "
	}
	fmt.Fprintf(&b, "\n%s%s\n\n", paint(ansiRed+ansiBold, head), e.Message)

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(ansiCyan, e.Location.String()))
		writeExcerpt(&b, e.Location, e.Context)
	}
	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, detailWidth) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		section(&b, paint(ansiGray, "Caused by: "), e.Wrapped.Error())
	}
	if e.Suggestion != "" {
		section(&b, paint(ansiCyan, "Hint: "), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint(ansiCyan, "Example:"))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint(ansiGray, "Learn more: "), paint(ansiBlue, e.DocURL))
	}
	return b.String()
}

func section(b *strings.Builder, label, text string) {
	fmt.Fprintf(b, "  %s%s\n\n", label, text)
}

// writeExcerpt prints the lines captured by WithLocation, pointing an arrow
// at the reported line and a caret under the reported column.
func writeExcerpt(b *strings.Builder, loc *Location, lines []string) {
	if len(lines) == 0 {
		return
	}
	bar := paint(ansiGray, "│ ")
	first := max(loc.Line-contextRadius, 1)
	for i, line := range lines {
		n := first + i
		if n != loc.Line {
			fmt.Fprintf(b, "    %4d %s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d %s%s\n", paint(ansiRed, "→ "), n, bar, line)
		if loc.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", bar, strings.Repeat(" ", loc.Column-1), paint(ansiRed, "^"))
		}
	}
	b.WriteString("\n")
}

// wrapText breaks text on spaces into lines of at most width bytes. A
// single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes err to w, using Format for a DidactError anywhere in its
// chain.
func Fprint(w io.Writer, err error) {
	var de *DidactError
	if stderrors.As(err, &de) {
		fmt.Fprint(w, de.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint(ansiRed+ansiBold, "ERROR:"), err)
}
