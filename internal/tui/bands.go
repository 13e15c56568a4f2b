package tui

import (
	"math"
	"strings"

	"github.com/agbru/cicalc/internal/estimate"
)

const (
	bandFill  = '█'
	bandAxis  = '─'
	bandPoint = '│'
)

// axisCell maps a proportion to a cell index on an axis of the given width.
// Values outside [0, 1] are pinned to the ends of the axis.
func axisCell(x float64, width int) int {
	if width <= 1 {
		return 0
	}
	x = math.Max(0, math.Min(1, x))
	return int(math.Round(x * float64(width-1)))
}

// renderBand draws an interval on a 0%..100% axis. The observed proportion
// is drawn as a point when it falls outside the filled cells.
func renderBand(iv estimate.Interval, p float64, width int) string {
	if width <= 0 {
		return ""
	}
	start, end := axisCell(iv.Lower, width), axisCell(iv.Upper, width)
	point := axisCell(p, width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i >= start && i <= end:
			b.WriteRune(bandFill)
		case i == point:
			b.WriteRune(bandPoint)
		default:
			b.WriteRune(bandAxis)
		}
	}
	return b.String()
}

// sliderCells returns how many of width cells are filled for pct in [0, 100].
func sliderCells(pct float64, width int) int {
	if width <= 0 {
		return 0
	}
	pct = math.Max(0, math.Min(100, pct))
	return int(math.Round(pct / 100 * float64(width)))
}

// renderSlider draws the percentage slider.
func renderSlider(pct float64, width int) string {
	filled := sliderCells(pct, width)
	return sliderFilledStyle.Render(strings.Repeat("━", filled)) +
		sliderEmptyStyle.Render(strings.Repeat("─", width-filled))
}
