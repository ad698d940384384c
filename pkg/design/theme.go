// Package design maps semantic roles onto terminal styling.
//
// Colors use lipgloss format: color names, hex ("#ff0000") or 256-color
// numbers ("120"). Styles are composed with lipgloss, never with manual
// ANSI escapes.
package design

import "github.com/charmbracelet/lipgloss"

// Theme defines the color for each semantic role.
type Theme struct {
	Name string

	Success  lipgloss.Color // passed tests
	Failure  lipgloss.Color // failed tests
	Pending  lipgloss.Color // pending tests
	Skipped  lipgloss.Color // skipped tests
	Muted    lipgloss.Color // de-emphasized text (descriptions, annotations)
	Emphasis lipgloss.Color // suite breadcrumbs, rendered bold
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:     "default",
		Success:  lipgloss.Color("34"),  // green
		Failure:  lipgloss.Color("196"), // red
		Pending:  lipgloss.Color("214"), // orange
		Skipped:  lipgloss.Color("214"), // orange
		Muted:    lipgloss.Color("242"), // gray
		Emphasis: lipgloss.Color("255"), // white
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:     "orca",
		Success:  lipgloss.Color("108"), // sage green
		Failure:  lipgloss.Color("167"), // muted red
		Pending:  lipgloss.Color("179"), // muted gold
		Skipped:  lipgloss.Color("179"), // muted gold
		Muted:    lipgloss.Color("245"), // lighter gray
		Emphasis: lipgloss.Color("252"), // light gray
	}
}

// MonoTheme returns a monochrome theme (no colors, bold breadcrumbs only).
func MonoTheme() Theme {
	return Theme{Name: "mono"}
}

// Themes returns the built-in themes keyed by name.
func Themes() map[string]Theme {
	return map[string]Theme{
		"default": DefaultTheme(),
		"orca":    OrcaTheme(),
		"mono":    MonoTheme(),
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	if t, ok := Themes()[name]; ok {
		return t
	}
	return DefaultTheme()
}
