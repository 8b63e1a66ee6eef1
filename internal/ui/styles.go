package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7B2CBF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E84A27"))
)
