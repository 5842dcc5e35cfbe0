package proof

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Style selects how a TextSink renders its trace.
type Style int

const (
	// Plain emits unadorned ASCII text.
	Plain Style = iota
	// ANSI emits colour-escaped text for an interactive terminal.
	ANSI
	// UTF8 emits plain text with mathematical Unicode arrows/symbols
	// in place of the ASCII "->"/"~~>" notation.
	UTF8
	// AnsiUTF8 combines ANSI and UTF8: coloured verdict, Unicode
	// arrows. Selected by --style=ansiutf.
	AnsiUTF8
	// HTML emits a minimal <pre>-wrapped HTML fragment.
	HTML
	// Formal emits a numbered, uncoloured trace suitable for feeding
	// to an external certifier: every step is prefixed with its
	// sequence number rather than a bullet, and the verdict line is
	// preceded by a "QED" marker, matching the plain, tool-readable
	// shape a certifier parser expects rather than a human-facing
	// rendering. Selected by --formal/-l (spec.md §6's certifier-proof
	// flag); the CLI additionally restricts which processors ran to
	// produce the trace (see internal/framework.Policy), since Formal
	// only controls rendering, not soundness.
	Formal
)

// DetectStyle picks ANSI when fd is an interactive terminal, Plain
// otherwise, mirroring the teacher's x/term.IsTerminal
// auto-detection in pkg/util/termio.
func DetectStyle(fd int) Style {
	if term.IsTerminal(fd) {
		return ANSI
	}
	return Plain
}

// TextSink is the Sink implementation for every Style above.
type TextSink struct {
	w     *bufio.Writer
	style Style
	steps int
	green func(format string, a ...any) string
	red   func(format string, a ...any) string
	dim   func(format string, a ...any) string
}

// NewTextSink wraps w for writing in the given style.
func NewTextSink(w io.Writer, style Style) *TextSink {
	s := &TextSink{w: bufio.NewWriter(w), style: style}
	if style == ANSI || style == AnsiUTF8 {
		s.green = color.New(color.FgGreen, color.Bold).SprintfFunc()
		s.red = color.New(color.FgRed, color.Bold).SprintfFunc()
		s.dim = color.New(color.Faint).SprintfFunc()
	} else {
		plain := func(format string, a ...any) string { return fmt.Sprintf(format, a...) }
		s.green, s.red, s.dim = plain, plain, plain
	}
	return s
}

func (s *TextSink) Step(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if s.style == UTF8 || s.style == AnsiUTF8 {
		line = toUTF8Arrows(line)
	}
	switch s.style {
	case HTML:
		fmt.Fprintf(s.w, "<li>%s</li>\n", htmlEscape(line))
	case Formal:
		s.steps++
		fmt.Fprintf(s.w, "%d. %s\n", s.steps, line)
	default:
		fmt.Fprintf(s.w, "  %s\n", s.dim("- %s", line))
	}
}

func (s *TextSink) Verdict(verdict string) {
	switch s.style {
	case HTML:
		fmt.Fprintf(s.w, "<strong>%s</strong>\n", htmlEscape(verdict))
	case Formal:
		fmt.Fprintln(s.w, "QED")
		fmt.Fprintln(s.w, verdict)
	case ANSI, AnsiUTF8:
		switch verdict {
		case "YES":
			fmt.Fprintln(s.w, s.green(verdict))
		case "NO":
			fmt.Fprintln(s.w, s.red(verdict))
		default:
			fmt.Fprintln(s.w, verdict)
		}
	default:
		fmt.Fprintln(s.w, verdict)
	}
}

func (s *TextSink) Close() error { return s.w.Flush() }

func toUTF8Arrows(line string) string {
	replacer := newArrowReplacer()
	return replacer.Replace(line)
}

func htmlEscape(s string) string {
	replacer := newHTMLReplacer()
	return replacer.Replace(s)
}
