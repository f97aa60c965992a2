package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Destinations for CLI output. Tests swap these.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

func OK(msg string) {
	t := Current()
	fmt.Fprintln(Out, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(Err, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted follow-up line on Err.
func Hint(msg string) {
	fmt.Fprintln(Err, Current().Muted.Render(msg))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

// Panel draws lines inside a framed box using the current theme.
func Panel(lines []string) {
	box := lipgloss.NewStyle().
		Border(Current().Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	fmt.Fprintln(Out, box.Render(strings.Join(lines, "\n")))
}
