package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the strip and the panels.
type Theme struct {
	Name   string
	Cards  []lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "cyberpunk",
		Cards:  []lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00", "#ff8800"},
		Accent: "#00ffff",
		Text:   "#ffffff",
		Muted:  "#666666",
		Border: "#444466",
		Good:   "#00ff00",
		Warn:   "#ff8800",
	},
	{
		Name:   "retro",
		Cards:  []lipgloss.Color{"#00ff00", "#00cc00", "#88ff88"},
		Accent: "#88ff88",
		Text:   "#00ff00",
		Muted:  "#005500",
		Border: "#003300",
		Good:   "#88ff88",
		Warn:   "#ffff00",
	},
	{
		Name:   "minimal",
		Cards:  []lipgloss.Color{"#ffffff", "#cccccc", "#0088ff"},
		Accent: "#0088ff",
		Text:   "#ffffff",
		Muted:  "#888888",
		Border: "#444444",
		Good:   "#00ff00",
		Warn:   "#ffaa00",
	},
	{
		Name:   "ocean",
		Cards:  []lipgloss.Color{"#0077be", "#00a8cc", "#ffd700", "#00ff88"},
		Accent: "#00a8cc",
		Text:   "#e0f0ff",
		Muted:  "#4488aa",
		Border: "#003355",
		Good:   "#00ff88",
		Warn:   "#ffcc00",
	},
	{
		Name:   "sunset",
		Cards:  []lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068"},
		Accent: "#feca57",
		Text:   "#fff5f5",
		Muted:  "#8b6b8c",
		Border: "#4d2b4e",
		Good:   "#5fd068",
		Warn:   "#ffc048",
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
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

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
