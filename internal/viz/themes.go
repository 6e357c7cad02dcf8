package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the field and the page around it.
type Theme struct {
	Name       string
	Text       lipgloss.Color // bright cells, body copy
	Node       lipgloss.Color // mid-intensity cells
	Link       lipgloss.Color // faint cells
	Label      lipgloss.Color // particle and node values
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
}

var (
	ThemeSynapse = Theme{
		Name:       "synapse",
		Text:       lipgloss.Color("#ffffff"),
		Node:       lipgloss.Color("#b3b3b3"),
		Link:       lipgloss.Color("#5c5c5c"),
		Label:      lipgloss.Color("#d9d9d9"),
		Muted:      lipgloss.Color("#3a3a3a"),
		Accent:     lipgloss.Color("#2196f3"), // timeline blue
		Background: lipgloss.Color("#000000"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Text:       lipgloss.Color("#ffffff"),
		Node:       lipgloss.Color("#ff00ff"),
		Link:       lipgloss.Color("#00aaaa"),
		Label:      lipgloss.Color("#ffff00"),
		Muted:      lipgloss.Color("#333333"),
		Accent:     lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#0a0a0a"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Text:       lipgloss.Color("#88ff88"),
		Node:       lipgloss.Color("#00cc00"),
		Link:       lipgloss.Color("#005500"),
		Label:      lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#002200"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#001100"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Text:       lipgloss.Color("#e0f0ff"),
		Node:       lipgloss.Color("#00a8cc"),
		Link:       lipgloss.Color("#0077be"),
		Label:      lipgloss.Color("#ffd700"),
		Muted:      lipgloss.Color("#113355"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Text:       lipgloss.Color("#fff5f5"),
		Node:       lipgloss.Color("#ff6b6b"),
		Link:       lipgloss.Color("#8b6b8c"),
		Label:      lipgloss.Color("#feca57"),
		Muted:      lipgloss.Color("#4a2f4b"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
	}

	Themes = []Theme{
		ThemeSynapse,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to synapse.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSynapse
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
