// Package format renders estimator values as display strings. It is shared by
// the CLI, the dashboard and the browser page so that all front ends print
// the same figures.
package format
