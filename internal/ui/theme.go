package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and panel border.
// All CLI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Done lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymOK, SymFail           string
	Border                   lipgloss.Border
}

var current = classic()

// SetTheme switches the theme by name; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = Theme{
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖",
			Border: lipgloss.RoundedBorder(),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain, Done: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "ok", SymFail: "error:",
			Border: lipgloss.ASCIIBorder(),
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymOK: "✔", SymFail: "✖",
		Border: lipgloss.NormalBorder(),
	}
}

// Current exposes the active theme to renderers.
func Current() Theme { return current }
