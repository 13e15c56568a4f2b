package tui

import (
	"strings"

	"github.com/agbru/cicalc/internal/estimate"
)

// curveWidth is the number of sample sizes plotted by the SE curve.
const curveWidth = 32

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline draws values scaled between their own minimum and maximum.
// A flat series renders at mid height.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		idx := 3
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * 7)
		}
		b.WriteRune(sparklineChars[min(max(idx, 0), 7)])
	}
	return b.String()
}

// curveSamples returns width sample sizes spread evenly over [2, population].
func curveSamples(population int64, width int) []int64 {
	if population < 2 || width <= 0 {
		return nil
	}
	span := population - 2
	if int64(width) > span+1 {
		width = int(span + 1)
	}
	samples := make([]int64, width)
	if width == 1 {
		samples[0] = 2
		return samples
	}
	// span*i/(width-1), split so that the product cannot overflow.
	steps := int64(width - 1)
	q, r := span/steps, span%steps
	for i := range samples {
		k := int64(i)
		samples[i] = 2 + q*k + r*k/steps
	}
	return samples
}

// seCurve computes the standard error of in's proportion and population for
// sample sizes from 2 up to the whole population.
func seCurve(in estimate.Input, width int) []float64 {
	samples := curveSamples(in.PopulationSize, width)
	values := make([]float64, len(samples))
	for i, n := range samples {
		values[i] = estimate.StandardError(n, in.Proportion, in.PopulationSize)
	}
	return values
}

// curveMarker returns the index of the plotted sample size closest to n.
func curveMarker(population, n int64, width int) int {
	samples := curveSamples(population, width)
	best := 0
	for i, s := range samples {
		if abs64(s-n) < abs64(samples[best]-n) {
			best = i
		}
	}
	return best
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
