package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/cicalc/internal/ui"
)

// Style variables for the dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle        lipgloss.Style
	headerStyle       lipgloss.Style
	titleStyle        lipgloss.Style
	versionStyle      lipgloss.Style
	elapsedStyle      lipgloss.Style
	fieldLabelStyle   lipgloss.Style
	fieldFocusStyle   lipgloss.Style
	fieldValueStyle   lipgloss.Style
	sliderFilledStyle lipgloss.Style
	sliderEmptyStyle  lipgloss.Style
	resultLabelStyle  lipgloss.Style
	resultValueStyle  lipgloss.Style
	wideBandStyle     lipgloss.Style
	narrowBandStyle   lipgloss.Style
	axisStyle         lipgloss.Style
	noticeStyle       lipgloss.Style
	errorStyle        lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all dashboard styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	fieldLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	fieldFocusStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	fieldValueStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	sliderFilledStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	sliderEmptyStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	resultLabelStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	resultValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	wideBandStyle = lipgloss.NewStyle().
		Foreground(t.Wide)

	narrowBandStyle = lipgloss.NewStyle().
		Foreground(t.Narrow)

	axisStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(t.Narrow).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)
}

// bandStyle returns the style for an interval band at the given level.
func bandStyle(level float64) lipgloss.Style {
	if level >= 0.9 {
		return wideBandStyle
	}
	return narrowBandStyle
}
