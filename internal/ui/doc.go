// Package ui provides theme and color support for the estimator's front ends.
// It defines the ANSI palette used by the one-shot output and the REPL, and
// the lipgloss palette used by the dashboard.
package ui
