package viz

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// ParticleHue shifts the particle hue ranges.
	ParticleHue float64
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:        "cyberpunk",
		Primary:     lipgloss.Color("#00f0ff"), // Neon cyan
		Secondary:   lipgloss.Color("#b14eff"), // Neon purple
		Accent:      lipgloss.Color("#39ff14"), // Neon green
		Text:        lipgloss.Color("#e0e6ff"),
		Muted:       lipgloss.Color("#5a6380"),
		Success:     lipgloss.Color("#39ff14"),
		Warning:     lipgloss.Color("#ffbd2e"),
		Error:       lipgloss.Color("#ff2d75"),
		ParticleHue: 0,
	}

	ThemeMorning = Theme{
		Name:        "morning",
		Primary:     lipgloss.Color("#ff9f43"), // Warm orange
		Secondary:   lipgloss.Color("#ee5a24"),
		Accent:      lipgloss.Color("#ffc312"),
		Text:        lipgloss.Color("#fff5e6"),
		Muted:       lipgloss.Color("#8b6b4c"),
		Success:     lipgloss.Color("#ffc312"),
		Warning:     lipgloss.Color("#ffbd2e"),
		Error:       lipgloss.Color("#ff2d75"),
		ParticleHue: -150,
	}

	ThemeDusk = Theme{
		Name:        "dusk",
		Primary:     lipgloss.Color("#c56cf0"), // Purple
		Secondary:   lipgloss.Color("#ff6b81"),
		Accent:      lipgloss.Color("#7158e2"),
		Text:        lipgloss.Color("#fff5f5"),
		Muted:       lipgloss.Color("#8b6b8c"),
		Success:     lipgloss.Color("#7158e2"),
		Warning:     lipgloss.Color("#ffc048"),
		Error:       lipgloss.Color("#ff4757"),
		ParticleHue: 90,
	}

	ThemeRetroGreen = Theme{
		Name:        "retro",
		Primary:     lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:   lipgloss.Color("#00cc00"),
		Accent:      lipgloss.Color("#88ff88"),
		Text:        lipgloss.Color("#00ff00"),
		Muted:       lipgloss.Color("#005500"),
		Success:     lipgloss.Color("#88ff88"),
		Warning:     lipgloss.Color("#ffff00"),
		Error:       lipgloss.Color("#ff0000"),
		ParticleHue: -60,
	}

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeMorning,
		ThemeDusk,
		ThemeRetroGreen,
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

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ThemeForHour picks the time-of-day theme: warm mornings (6-11), purple
// dusk (18-21), cyberpunk otherwise.
func ThemeForHour(hour int) Theme {
	switch {
	case hour >= 6 && hour < 12:
		return ThemeMorning
	case hour >= 18 && hour < 22:
		return ThemeDusk
	}
	return ThemeCyberpunk
}

// ThemeAt is ThemeForHour for a wall-clock time.
func ThemeAt(t time.Time) Theme { return ThemeForHour(t.Hour()) }
