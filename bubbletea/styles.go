package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/devtalk/devtalk"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	User    lipgloss.Style
	AI      lipgloss.Style
	System  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Header  lipgloss.Style
	Cursor  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t devtalk.Theme) Styles {
	return Styles{
		User:    lipgloss.NewStyle().Foreground(ansiColor(t.User)).Bold(true),
		AI:      lipgloss.NewStyle().Foreground(ansiColor(t.AI)).Bold(true),
		System:  lipgloss.NewStyle().Foreground(ansiColor(t.System)).Italic(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true).PaddingLeft(1),
		Cursor:  lipgloss.NewStyle().Foreground(ansiColor(t.AI)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
