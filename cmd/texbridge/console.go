package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/texbridge/bridge"
)

var (
	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD166"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

// consoleSink prints diagnostics the way the engine's terminal front end does:
// "note: ...", "warning: ...", "error: ...".
type consoleSink struct {
	bridge.Recorder
	w     io.Writer
	color bool
	// err is the first write error; later output is dropped.
	err error
}

func newConsoleSink(w io.Writer, color bool) *consoleSink {
	return &consoleSink{w: w, color: color}
}

func (c *consoleSink) style(s lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return s.Render(text)
}

func (c *consoleSink) Report(kind bridge.Kind, message string) {
	c.Recorder.Report(kind, message)

	var label string
	switch kind {
	case bridge.KindWarning:
		label = c.style(warningStyle, "warning:")
	case bridge.KindError:
		label = c.style(errorStyle, "error:")
	default:
		label = c.style(noteStyle, "note:")
	}
	c.printf("%s %s\n", label, message)
}

func (c *consoleSink) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, args...)
}

func (c *consoleSink) DumpErrorLogs(output []byte) {
	c.Recorder.DumpErrorLogs(output)

	c.printf("%s the engine log follows:\n", c.style(errorStyle, "error:"))
	c.printf("%s\n", c.style(logStyle, "==="))
	c.printf("%s", output)
	if len(output) > 0 && output[len(output)-1] != '\n' {
		c.printf("\n")
	}
	c.printf("%s\n", c.style(logStyle, "==="))
}

// summary describes how many diagnostics of each severity were seen.
func (c *consoleSink) summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s), %d note(s)",
		c.Count(bridge.KindError), c.Count(bridge.KindWarning), c.Count(bridge.KindNote))
}
