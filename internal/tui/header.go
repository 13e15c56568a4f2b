package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/cicalc/internal/format"
)

// HeaderModel renders the top bar: title, version and the time taken by the
// last recomputation.
type HeaderModel struct {
	version  string
	computed time.Duration
	width    int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetComputed records the duration of the last recomputation.
func (h *HeaderModel) SetComputed(d time.Duration) {
	h.computed = d
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Confidence Interval Calculator"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText)
	right := elapsedStyle.Render("computed in " + format.FormatExecutionDuration(h.computed))

	innerWidth := h.width - 2
	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return headerStyle.Render(left)
	}
	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
