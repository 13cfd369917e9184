package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	streakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)
