package ui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	header    lipgloss.Color
	accent    lipgloss.Color
	dim       lipgloss.Color
	border    lipgloss.Color
	focus     lipgloss.Color
	warning   lipgloss.Color
	error     lipgloss.Color
	canvas    lipgloss.Color
	canvasAlt lipgloss.Color
}

func defaultTheme() theme {
	return theme{
		header:    lipgloss.Color("#61afef"),
		accent:    lipgloss.Color("#e5c07b"),
		dim:       lipgloss.Color("#5c6370"),
		border:    lipgloss.Color("#5c6370"),
		focus:     lipgloss.Color("#61afef"),
		warning:   lipgloss.Color("#e5c07b"),
		error:     lipgloss.Color("#e06c75"),
		canvas:    lipgloss.Color("#282c34"),
		canvasAlt: lipgloss.Color("#2f343f"),
	}
}
