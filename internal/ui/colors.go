package ui

// ColorLabel returns the escape code for field labels.
func ColorLabel() string { return GetCurrentTheme().Label }

// ColorValue returns the escape code for computed values.
func ColorValue() string { return GetCurrentTheme().Value }

// ColorWide returns the escape code for the 95% interval.
func ColorWide() string { return GetCurrentTheme().Wide }

// ColorNarrow returns the escape code for the 75% interval.
func ColorNarrow() string { return GetCurrentTheme().Narrow }

// ColorMuted returns the escape code for secondary text.
func ColorMuted() string { return GetCurrentTheme().Muted }

// ColorWarning returns the escape code for notices.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the escape code for errors.
func ColorError() string { return GetCurrentTheme().Error }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorForLevel picks the interval color for a confidence level: levels of
// 90% and above use the wide color.
func ColorForLevel(level float64) string {
	if level >= 0.9 {
		return ColorWide()
	}
	return ColorNarrow()
}
