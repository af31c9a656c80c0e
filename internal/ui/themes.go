package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme for line-oriented terminal output. Each field
// holds an ANSI escape sequence.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary highlights file names and counts.
	Primary string
	// Secondary is used for sizes, timings and other details.
	Secondary string
	// Success marks converted workbooks.
	Success string
	// Warning marks partial batches.
	Warning string
	// Error marks failed workbooks and aborted batches.
	Error string
	// Info is used for informational headings.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;42m",  // Spreadsheet green
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;75m",  // Light blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is tuned for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;28m",  // Dark green
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;22m",  // Forest green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;25m",  // Dark blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all escape sequences. It is selected by
	// --no-color or the NO_COLOR environment variable.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme holds lipgloss colors for the interactive shell.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default shell palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#101418"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#217346"),
		Accent:  lipgloss.Color("#33C481"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF5555"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#5AA9E6"),
	}

	// LightTUITheme pairs with LightTheme.
	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FAFAFA"),
		Text:    lipgloss.Color("#1E1E1E"),
		Border:  lipgloss.Color("#185C37"),
		Accent:  lipgloss.Color("#107C41"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#B26A00"),
		Error:   lipgloss.Color("#C62828"),
		Dim:     lipgloss.Color("#8A8A8A"),
		Info:    lipgloss.Color("#1565C0"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the shell palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	switch currentTheme.Name {
	case NoColorTheme.Name:
		return NoColorTUITheme
	case LightTheme.Name:
		return LightTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light" or "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case LightTheme.Name:
		currentTheme = LightTheme
	case NoColorTheme.Name:
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the theme at startup. Colors are disabled when noColor
// is set or NO_COLOR is present in the environment (https://no-color.org/).
// Otherwise XL2PDF_THEME may pick "light"; the default is dark.
func InitTheme(noColor bool) {
	if noColor {
		SetTheme(NoColorTheme.Name)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetTheme(NoColorTheme.Name)
		return
	}
	SetTheme(os.Getenv("XL2PDF_THEME"))
}
