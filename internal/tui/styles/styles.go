// Package styles holds the theme palettes and shared lipgloss styles
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is one named color palette. Widgets derive all their styles
// from the active theme.
type Theme struct {
	Name       string
	Accent     lipgloss.Color // links, handles, focus borders
	Background lipgloss.Color
	Surface    lipgloss.Color // cards, modals
	Text       lipgloss.Color
	Subtle     lipgloss.Color // secondary text, timestamps
	Dim        lipgloss.Color // separators, inactive borders
	Success    lipgloss.Color
	Danger     lipgloss.Color
}

// themes mirrors the widget themes the web embeds offer
var themes = map[string]Theme{
	"default": {
		Name:       "default",
		Accent:     lipgloss.Color("#8B5CF6"),
		Background: lipgloss.Color("#0D1117"),
		Surface:    lipgloss.Color("#1F2937"),
		Text:       lipgloss.Color("#F9FAFB"),
		Subtle:     lipgloss.Color("#9CA3AF"),
		Dim:        lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#10B981"),
		Danger:     lipgloss.Color("#EF4444"),
	},
	"light": {
		Name:       "light",
		Accent:     lipgloss.Color("#7C3AED"),
		Background: lipgloss.Color("#FFFFFF"),
		Surface:    lipgloss.Color("#F3F4F6"),
		Text:       lipgloss.Color("#111827"),
		Subtle:     lipgloss.Color("#4B5563"),
		Dim:        lipgloss.Color("#9CA3AF"),
		Success:    lipgloss.Color("#059669"),
		Danger:     lipgloss.Color("#DC2626"),
	},
	"dark": {
		Name:       "dark",
		Accent:     lipgloss.Color("#A78BFA"),
		Background: lipgloss.Color("#000000"),
		Surface:    lipgloss.Color("#111827"),
		Text:       lipgloss.Color("#E5E7EB"),
		Subtle:     lipgloss.Color("#9CA3AF"),
		Dim:        lipgloss.Color("#4B5563"),
		Success:    lipgloss.Color("#34D399"),
		Danger:     lipgloss.Color("#F87171"),
	},
	"green": {
		Name:       "green",
		Accent:     lipgloss.Color("#22C55E"),
		Background: lipgloss.Color("#052E16"),
		Surface:    lipgloss.Color("#14532D"),
		Text:       lipgloss.Color("#F0FDF4"),
		Subtle:     lipgloss.Color("#86EFAC"),
		Dim:        lipgloss.Color("#166534"),
		Success:    lipgloss.Color("#4ADE80"),
		Danger:     lipgloss.Color("#F87171"),
	},
	"mint": {
		Name:       "mint",
		Accent:     lipgloss.Color("#2DD4BF"),
		Background: lipgloss.Color("#042F2E"),
		Surface:    lipgloss.Color("#134E4A"),
		Text:       lipgloss.Color("#F0FDFA"),
		Subtle:     lipgloss.Color("#99F6E4"),
		Dim:        lipgloss.Color("#115E59"),
		Success:    lipgloss.Color("#34D399"),
		Danger:     lipgloss.Color("#FB7185"),
	},
	"peach": {
		Name:       "peach",
		Accent:     lipgloss.Color("#FB923C"),
		Background: lipgloss.Color("#431407"),
		Surface:    lipgloss.Color("#7C2D12"),
		Text:       lipgloss.Color("#FFF7ED"),
		Subtle:     lipgloss.Color("#FDBA74"),
		Dim:        lipgloss.Color("#9A3412"),
		Success:    lipgloss.Color("#4ADE80"),
		Danger:     lipgloss.Color("#F87171"),
	},
	"lavender": {
		Name:       "lavender",
		Accent:     lipgloss.Color("#C4B5FD"),
		Background: lipgloss.Color("#2E1065"),
		Surface:    lipgloss.Color("#4C1D95"),
		Text:       lipgloss.Color("#F5F3FF"),
		Subtle:     lipgloss.Color("#DDD6FE"),
		Dim:        lipgloss.Color("#5B21B6"),
		Success:    lipgloss.Color("#4ADE80"),
		Danger:     lipgloss.Color("#FB7185"),
	},
	"blonde": {
		Name:       "blonde",
		Accent:     lipgloss.Color("#EAB308"),
		Background: lipgloss.Color("#422006"),
		Surface:    lipgloss.Color("#713F12"),
		Text:       lipgloss.Color("#FEFCE8"),
		Subtle:     lipgloss.Color("#FDE047"),
		Dim:        lipgloss.Color("#854D0E"),
		Success:    lipgloss.Color("#4ADE80"),
		Danger:     lipgloss.Color("#F87171"),
	},
}

// Load returns the named theme, falling back to default for unknown names
func Load(name string) Theme {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return themes["default"]
}

// Names returns the available theme names
func Names() []string {
	return []string{"default", "light", "dark", "green", "mint", "peach", "lavender", "blonde"}
}

// Derived styles

// Title renders primary text
func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text).Bold(true)
}

// Subtitle renders secondary text
func (t Theme) Subtitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Subtle)
}

// Muted renders de-emphasized text
func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Dim)
}

// AccentText renders handles and links
func (t Theme) AccentText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

// ErrorText renders failures
func (t Theme) ErrorText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Danger)
}

// SuccessText renders confirmations
func (t Theme) SuccessText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

// Card renders an entity card border
func (t Theme) Card(focused bool) lipgloss.Style {
	border := t.Dim
	if focused {
		border = t.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// Modal renders a centered overlay box
func (t Theme) Modal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(1, 2)
}

// Badge renders an inline tag
func (t Theme) Badge() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Padding(0, 1)
}

// ButtonActive renders a toggled-on action button
func (t Theme) ButtonActive() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1).
		Bold(true)
}

// ButtonIdle renders a toggled-off action button
func (t Theme) ButtonIdle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Subtle).
		Background(t.Surface).
		Padding(0, 1)
}

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
