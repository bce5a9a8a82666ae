// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header line.
	Title lipgloss.Style

	// Normal style for regular list rows.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for the highlighted row.
	Selected lipgloss.Style

	// Pinned style for the pin marker.
	Pinned lipgloss.Style

	// Register style for register letters.
	Register lipgloss.Style

	// Error style for status-line errors.
	Error lipgloss.Style

	// Success style for status-line confirmations.
	Success lipgloss.Style

	// StatusBar style for the status line.
	StatusBar lipgloss.Style

	// Help style for the hint line and help overlay.
	Help lipgloss.Style

	// Preview style for the preview pane border.
	Preview lipgloss.Style
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	t := DefaultTheme()
	return &Styles{
		theme:    t,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Normal:   lipgloss.NewStyle().Foreground(t.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Background(lipgloss.Color("#313244")),
		Pinned:   lipgloss.NewStyle().Foreground(t.Warning),
		Register: lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		StatusBar: lipgloss.NewStyle().
			Foreground(t.Muted),
		Help: lipgloss.NewStyle().Foreground(t.Muted),
		Preview: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

// Theme returns the underlying theme.
func (s *Styles) Theme() *Theme {
	return s.theme
}
