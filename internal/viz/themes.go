package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/session"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color

	// Bar colors per element tag.
	Bar       lipgloss.Color
	Comparing lipgloss.Color
	Pivot     lipgloss.Color
	Swapping  lipgloss.Color
	Sorted    lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#00ffff"), // Cyan
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Bar:       lipgloss.Color("#00ccff"),
		Comparing: lipgloss.Color("#ffff00"),
		Pivot:     lipgloss.Color("#ff8800"),
		Swapping:  lipgloss.Color("#ff0055"),
		Sorted:    lipgloss.Color("#00ff00"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Bar:       lipgloss.Color("#008800"),
		Comparing: lipgloss.Color("#ffff00"),
		Pivot:     lipgloss.Color("#88ff88"),
		Swapping:  lipgloss.Color("#ff0000"),
		Sorted:    lipgloss.Color("#ccffcc"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Bar:       lipgloss.Color("#aaaaaa"),
		Comparing: lipgloss.Color("#0088ff"),
		Pivot:     lipgloss.Color("#ffaa00"),
		Swapping:  lipgloss.Color("#ff0000"),
		Sorted:    lipgloss.Color("#00ff00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"), // Ocean blue
		Secondary: lipgloss.Color("#00a8cc"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Bar:       lipgloss.Color("#00a8cc"),
		Comparing: lipgloss.Color("#ffd700"),
		Pivot:     lipgloss.Color("#ffcc00"),
		Swapping:  lipgloss.Color("#ff4444"),
		Sorted:    lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Bar:       lipgloss.Color("#ff9ff3"),
		Comparing: lipgloss.Color("#feca57"),
		Pivot:     lipgloss.Color("#ffc048"),
		Swapping:  lipgloss.Color("#ff4757"),
		Sorted:    lipgloss.Color("#5fd068"),
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// TagColor returns the bar color for tag.
func (t Theme) TagColor(tag session.Tag) lipgloss.Color {
	switch tag {
	case session.Comparing:
		return t.Comparing
	case session.Pivot:
		return t.Pivot
	case session.Swapping:
		return t.Swapping
	case session.Sorted:
		return t.Sorted
	}
	return t.Bar
}
