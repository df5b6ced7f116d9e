package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// colorEnabled decides whether to emit ANSI styling, honoring the
// config's color mode ("always", "never", "auto") and falling back to
// terminal detection for "auto".
func colorEnabled() bool {
	mode := "auto"
	if cfg != nil {
		mode = cfg.Color
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd())) && termenv.EnvColorProfile() != termenv.Ascii
	}
}

func renderOutcome(label, formula, symbol string, valid bool) string {
	mark := "PASS"
	style := validStyle
	prefix := dimStyle
	if !valid {
		mark = "FAIL"
		style = invalidStyle
	}
	if !colorEnabled() {
		style = lipgloss.NewStyle()
		prefix = lipgloss.NewStyle()
	}
	return style.Render(mark) + " " + prefix.Render(label+" "+symbol+" ") + formula
}
