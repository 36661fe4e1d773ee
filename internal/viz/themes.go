package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/warpfield/internal/hal"
)

// Theme is a colour scheme shared by the terminal and window hosts.
type Theme struct {
	Name  string
	Star  hal.Color
	Space hal.Color
	// Panel colours for the terminal side panel.
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeMono = Theme{
		Name:   "mono",
		Star:   hal.White,
		Space:  hal.Black,
		Accent: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Alert:  lipgloss.Color("#ff4444"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Star:   hal.Color{R: 0xff, G: 0xb0, B: 0x00},
		Space:  hal.Color{R: 0x1a, G: 0x0e, B: 0x00},
		Accent: lipgloss.Color("#ffb000"),
		Muted:  lipgloss.Color("#8a5a00"),
		Alert:  lipgloss.Color("#ff4444"),
	}

	ThemeIon = Theme{
		Name:   "ion",
		Star:   hal.Color{R: 0x66, G: 0xcc, B: 0xff},
		Space:  hal.Color{R: 0x00, G: 0x08, B: 0x1a},
		Accent: lipgloss.Color("#66ccff"),
		Muted:  lipgloss.Color("#336688"),
		Alert:  lipgloss.Color("#ff00ff"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Star:   hal.Color{R: 0x33, G: 0xff, B: 0x66},
		Space:  hal.Color{R: 0x00, G: 0x11, B: 0x00},
		Accent: lipgloss.Color("#33ff66"),
		Muted:  lipgloss.Color("#005500"),
		Alert:  lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{
		ThemeMono,
		ThemeAmber,
		ThemeIon,
		ThemePhosphor,
	}
)

// GetTheme returns the named theme, falling back to mono.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMono
}

// LookupTheme is GetTheme for callers that must reject unknown names.
func LookupTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("viz: unknown theme %q", name)
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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

// Hex formats a port colour for lipgloss.
func Hex(c hal.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
