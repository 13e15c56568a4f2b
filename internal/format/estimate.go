package format

import (
	"fmt"
	"strconv"

	"github.com/agbru/cicalc/internal/estimate"
)

// FormatStandardError formats a standard error with four decimals.
func FormatStandardError(se float64) string {
	return strconv.FormatFloat(se, 'f', 4, 64)
}

// FormatPercent formats a proportion as a percentage with two decimals,
// e.g. 0.40698 becomes "40.70%".
func FormatPercent(x float64) string {
	return strconv.FormatFloat(x*100, 'f', 2, 64) + "%"
}

// FormatZ formats a z-score in its shortest form ("1.96", "1.15").
// Computed quantiles are rounded to four decimals.
func FormatZ(z float64) string {
	return strconv.FormatFloat(roundTo(z, 4), 'f', -1, 64)
}

// FormatLevel formats a confidence level as a percentage without trailing
// zeros: 0.95 becomes "95%", 0.999 becomes "99.9%".
func FormatLevel(level float64) string {
	return strconv.FormatFloat(roundTo(level*100, 6), 'f', -1, 64) + "%"
}

// FormatInterval formats the bounds of an interval as percentages.
//
// Example:
//
//	(Low: 40.70%, High: 59.30%)
func FormatInterval(iv estimate.Interval) string {
	return fmt.Sprintf("(Low: %s, High: %s)", FormatPercent(iv.Lower), FormatPercent(iv.Upper))
}

// FormatIntervalLine formats the full result line of one interval.
//
// Example:
//
//	95% Confidence Interval (Z-score = 1.96): (Low: 40.70%, High: 59.30%)
func FormatIntervalLine(iv estimate.Interval) string {
	return fmt.Sprintf("%s Confidence Interval (Z-score = %s): %s", FormatLevel(iv.Level), FormatZ(iv.Z), FormatInterval(iv))
}

// FormatStandardErrorLine formats the standard error result line.
func FormatStandardErrorLine(se float64) string {
	return "Standard Error: " + FormatStandardError(se)
}

// ResultLines returns the display lines of a result: the standard error
// followed by one line per interval.
func ResultLines(r estimate.Result) []string {
	intervals := r.Intervals()
	lines := make([]string, 0, len(intervals)+1)
	lines = append(lines, FormatStandardErrorLine(r.StandardError))
	for _, iv := range intervals {
		lines = append(lines, FormatIntervalLine(iv))
	}
	return lines
}

func roundTo(x float64, decimals int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', decimals, 64), 64)
	if err != nil {
		return x
	}
	return v
}
