package design

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Palette renders text for a semantic role using a theme.
// A palette built with color disabled returns its input unchanged.
type Palette struct {
	color  bool
	styles map[Role]lipgloss.Style
}

// NewPalette builds a palette bound to w. When color is false the renderer is
// pinned to the Ascii profile, so every style degrades to plain text.
func NewPalette(w io.Writer, theme Theme, color bool) *Palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	// Tab conversion would change content; styles must only decorate.
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	fg := func(c lipgloss.Color) lipgloss.Style {
		if c == "" {
			return base
		}
		return base.Foreground(c)
	}

	return &Palette{
		color: color,
		styles: map[Role]lipgloss.Style{
			RoleSuccess:  fg(theme.Success),
			RoleFailure:  fg(theme.Failure),
			RolePending:  fg(theme.Pending),
			RoleSkipped:  fg(theme.Skipped),
			RoleMuted:    fg(theme.Muted),
			RoleEmphasis: fg(theme.Emphasis).Bold(true),
		},
	}
}

// Style decorates s for role. RoleNone and unknown roles return s unchanged.
func (p *Palette) Style(role Role, s string) string {
	if p == nil || !p.color || s == "" {
		return s
	}
	st, ok := p.styles[role]
	if !ok {
		return s
	}
	return st.Render(s)
}

// Colored reports whether the palette emits escape sequences.
func (p *Palette) Colored() bool {
	return p != nil && p.color
}

// Plain strips ANSI escape sequences from s.
func Plain(s string) string {
	return ansi.Strip(s)
}
