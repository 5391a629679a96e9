package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownTheme is returned for a theme name not in Themes.
var ErrUnknownTheme = errors.New("viz: unknown theme")

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Sky    lipgloss.Color // canvas background, empty keeps the terminal's
	Title  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
}

// Available themes
var (
	ThemeMeadow = Theme{
		Name:   "meadow",
		Sky:    lipgloss.Color("#c8e1f5"),
		Title:  lipgloss.Color("#6e3214"), // bark
		Accent: lipgloss.Color("#379b37"), // leaf
		Text:   lipgloss.Color("#f0f0f0"),
		Muted:  lipgloss.Color("#7a8a7a"),
		Border: lipgloss.Color("#446644"),
		Good:   lipgloss.Color("#88dd66"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeNight = Theme{
		Name:   "night",
		Sky:    lipgloss.Color("#0b1026"),
		Title:  lipgloss.Color("#9fb4ff"),
		Accent: lipgloss.Color("#6bd6a0"),
		Text:   lipgloss.Color("#e0e6ff"),
		Muted:  lipgloss.Color("#56608a"),
		Border: lipgloss.Color("#2c3566"),
		Good:   lipgloss.Color("#6bd6a0"),
		Warn:   lipgloss.Color("#ffcc66"),
	}

	ThemeAutumn = Theme{
		Name:   "autumn",
		Sky:    lipgloss.Color("#f6e3c6"),
		Title:  lipgloss.Color("#c0392b"),
		Accent: lipgloss.Color("#e67e22"),
		Text:   lipgloss.Color("#fff5e6"),
		Muted:  lipgloss.Color("#a0785a"),
		Border: lipgloss.Color("#8b5a2b"),
		Good:   lipgloss.Color("#f1c40f"),
		Warn:   lipgloss.Color("#e74c3c"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Border: lipgloss.Color("#444444"),
		Good:   lipgloss.Color("#00ff00"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	// Default theme
	CurrentTheme = ThemeMeadow

	// All available themes
	Themes = []Theme{
		ThemeMeadow,
		ThemeNight,
		ThemeAutumn,
		ThemeMinimal,
	}
)

// LookupTheme returns the named theme and whether it exists.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// SetTheme changes the current theme. Unknown names leave it unchanged.
func SetTheme(name string) error {
	t, ok := LookupTheme(name)
	if !ok {
		return fmt.Errorf("%w %q (have %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}
	CurrentTheme = t
	return nil
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
