package format

import (
	"strconv"
	"time"
)

// FormatExecutionDuration renders how long an estimate took. Estimates usually
// finish in nanoseconds, so sub-microsecond durations keep their unit and the
// larger units carry one decimal.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	case d < time.Millisecond:
		return oneDecimal(float64(d)/float64(time.Microsecond)) + "µs"
	case d < time.Second:
		return oneDecimal(float64(d)/float64(time.Millisecond)) + "ms"
	}
	return d.Round(time.Millisecond).String()
}

func oneDecimal(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}
