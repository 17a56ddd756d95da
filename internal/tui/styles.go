package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette - clinical, print-lab inspired
	primaryColor   = lipgloss.Color("#7FB4CA") // steel blue
	secondaryColor = lipgloss.Color("#98BB6C") // leaf green
	warningColor   = lipgloss.Color("#E6C384") // amber
	errorColor     = lipgloss.Color("#E46876") // soft red
	mutedColor     = lipgloss.Color("#6B7280") // gray
	textColor      = lipgloss.Color("#F3F4F6") // light text
	dimTextColor   = lipgloss.Color("#9CA3AF") // dim text

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginTop(1).
			MarginBottom(1)

	fileNameStyle = lipgloss.NewStyle().
			Foreground(textColor)

	modelFileStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	tissueFileStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	originStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Width(26)

	statValueStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	highlightBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	confirmPromptStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

const (
	iconFolder  = "📁"
	iconModel   = "🦷"
	iconTissue  = "🩹"
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarn    = "!"
	iconArrow   = "→"
)
