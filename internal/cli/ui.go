package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for ids and engine names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// output writes command results. Progress animation is only shown when the
// writer is a terminal.
type output struct {
	w        io.Writer
	terminal bool
}

func newOutput(w io.Writer) *output {
	return &output{w: w, terminal: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (o *output) line(s string) {
	fmt.Fprintln(o.w, s)
}

func (o *output) title(s string) {
	o.line(StyleTitle.Render(s))
}

func (o *output) success(format string, args ...any) {
	o.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (o *output) failure(format string, args ...any) {
	o.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (o *output) warning(format string, args ...any) {
	o.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (o *output) info(format string, args ...any) {
	o.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented muted line.
func (o *output) detail(format string, args ...any) {
	o.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (o *output) file(path string) {
	o.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (o *output) keyValue(key, value string) {
	o.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// count prints a labeled number.
func (o *output) count(key string, n int) {
	o.keyValue(key, StyleNumber.Render(fmt.Sprint(n)))
}

// list prints a labeled comma-separated list, or "-" when empty.
func (o *output) list(key string, ids []string) {
	if len(ids) == 0 {
		o.keyValue(key, StyleDim.Render("-"))
		return
	}
	o.keyValue(key, strings.Join(ids, ", "))
}

// stats prints graph size and engine on one line.
func (o *output) stats(nodes, edges int, engine string) {
	sep := StyleDim.Render(" · ")
	o.line("  " + StyleDim.Render(fmt.Sprintf("%d nodes", nodes)) + sep +
		StyleDim.Render(fmt.Sprintf("%d edges", edges)) + sep +
		StyleHighlight.Render(engine))
}

func (o *output) nextStep(description, cmd string) {
	o.line("")
	o.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
