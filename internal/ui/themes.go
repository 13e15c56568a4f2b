package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnvVar selects the theme by name when colors are enabled.
const ThemeEnvVar = "CICALC_THEME"

// Theme defines a color scheme for terminal output.
// Each field contains an ANSI escape code for the corresponding role.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Label is used for field names such as "Standard Error".
	Label string
	// Value is used for computed numbers.
	Value string
	// Wide is used for the 95% interval.
	Wide string
	// Narrow is used for the 75% interval and extra levels.
	Narrow string
	// Muted is used for hints and secondary text.
	Muted string
	// Warning is used for clamped inputs and other notices.
	Warning string
	// Error indicates rejected input.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Label:     "\033[38;5;39m",  // Bright blue
		Value:     "\033[38;5;82m",  // Bright green
		Wide:      "\033[38;5;208m", // Orange
		Narrow:    "\033[38;5;141m", // Purple
		Muted:     "\033[38;5;245m", // Grey
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Label:     "\033[38;5;27m",  // Dark blue
		Value:     "\033[38;5;28m",  // Dark green
		Wide:      "\033[38;5;130m", // Brown
		Narrow:    "\033[38;5;54m",  // Dark purple
		Muted:     "\033[38;5;240m", // Dark grey
		Warning:   "\033[38;5;136m", // Dark yellow
		Error:     "\033[38;5;124m", // Dark red
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color is given.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss colors for the dashboard.
type TUITheme struct {
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Wide   lipgloss.TerminalColor
	Narrow lipgloss.TerminalColor
	Error  lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default dashboard palette.
	DarkTUITheme = TUITheme{
		Text:   lipgloss.Color("#E0E0E0"),
		Border: lipgloss.Color("#4488FF"),
		Accent: lipgloss.Color("#9ece6a"),
		Wide:   lipgloss.Color("#FF8C00"),
		Narrow: lipgloss.Color("#BB9AF7"),
		Error:  lipgloss.Color("#FF4444"),
		Dim:    lipgloss.Color("#666666"),
	}

	// LightTUITheme mirrors LightTheme for the dashboard.
	LightTUITheme = TUITheme{
		Text:   lipgloss.Color("#202020"),
		Border: lipgloss.Color("#1F4FBF"),
		Accent: lipgloss.Color("#2E7D32"),
		Wide:   lipgloss.Color("#A0522D"),
		Narrow: lipgloss.Color("#5B2C83"),
		Error:  lipgloss.Color("#B00020"),
		Dim:    lipgloss.Color("#8A8A8A"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:   lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{},
		Wide:   lipgloss.NoColor{},
		Narrow: lipgloss.NoColor{},
		Error:  lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	switch currentTheme.Name {
	case "none":
		return NoColorTUITheme
	case "light":
		return LightTUITheme
	default:
		return DarkTUITheme
	}
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// themeByName returns the theme registered under name, or DarkTheme.
func themeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return LightTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// SetTheme changes the active theme by name.
// Valid names are "dark", "light" and "none"; unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// When colors are enabled, CICALC_THEME selects between the named themes.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(os.Getenv(ThemeEnvVar))
}
