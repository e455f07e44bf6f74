package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lectio/internal/logtail"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Surfaces, outermost first
	Background string
	Surface    string
	SurfaceAlt string
	FocusBg    string

	// Checklist cursor row and selected chips
	SelectionBg   string
	SelectionText string
	BorderFocus   string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Badge colors keyed by backend health and submission phase
	StatusColors map[string]string
}

// palette is the handful of colors a theme is derived from.
type palette struct {
	bg, surface, raised, focus string
	sel, selText               string
	fg, muted, faint           string
	blue, green, yellow, red   string
	cyan                       string
}

func (p palette) theme(name string) Theme {
	return Theme{
		Name:          name,
		Background:    p.bg,
		Surface:       p.surface,
		SurfaceAlt:    p.raised,
		FocusBg:       p.focus,
		SelectionBg:   p.sel,
		SelectionText: p.selText,
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.muted,
		Faint:         p.faint,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,
		StatusColors: map[string]string{
			"unknown":    p.faint,
			"healthy":    p.green,
			"degraded":   p.yellow,
			"offline":    p.red,
			"loading":    p.yellow,
			"ready":      p.green,
			"submitting": p.blue,
			"success":    p.green,
			"failure":    p.red,
		},
	}
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var palettes = map[string]palette{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		bg: "#131a24", surface: "#192330", raised: "#212e3f", focus: "#29394f",
		sel: "#2b3b51", selText: "#cdcecf",
		fg: "#cdcecf", muted: "#738091", faint: "#71839b",
		blue: "#719cd6", green: "#81b29a", yellow: "#dbc074", red: "#c94f6d", cyan: "#63cdcf",
	},
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		bg: "#16161D", surface: "#1F1F28", raised: "#2A2A37", focus: "#363646",
		sel: "#2D4F67", selText: "#DCD7BA",
		fg: "#DCD7BA", muted: "#C8C093", faint: "#727169",
		blue: "#7E9CD8", green: "#98BB6C", yellow: "#E6C384", red: "#E46876", cyan: "#7FB4CA",
	},
	// Tailwind slate and sky
	"Slate": {
		bg: "#020617", surface: "#0f172a", raised: "#1e293b", focus: "#283548",
		sel: "#0284c7", selText: "#f8fafc",
		fg: "#f1f5f9", muted: "#94a3b8", faint: "#64748b",
		blue: "#38bdf8", green: "#22c55e", yellow: "#f59e0b", red: "#ef4444", cyan: "#06b6d4",
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	if p, ok := palettes[name]; ok {
		return p.theme(name)
	}
	return palettes[themeOrder[0]].theme(themeOrder[0])
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	bar := func(text string) lipgloss.Style {
		return fg(text).Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	}
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    fg(t.Text).Background(lipgloss.Color(t.Surface)),
		SurfaceAlt: fg(t.Text).Background(lipgloss.Color(t.SurfaceAlt)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   bar(t.Text),
		Footer:   bar(t.Muted),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// StatusStyle returns the badge style for a status key. Unknown keys use the
// muted color.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of s with every style painted on bgColor, so
// segments joined on a bar do not leave unpainted gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Background, &s.Surface, &s.SurfaceAlt,
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Header, &s.Footer, &s.Logo, &s.Selected,
	} {
		*st = st.Background(bg)
	}
	return s
}

// LogPalette returns the styles the activity view colours log lines with.
func (t Theme) LogPalette() logtail.Palette {
	return logtail.Palette{
		Time:      fg(t.Faint),
		Info:      fg(t.Success).Bold(true),
		Warn:      fg(t.Warning).Bold(true),
		Error:     fg(t.Danger).Bold(true),
		Debug:     fg(t.Info).Bold(true),
		Component: fg(t.Accent),
		Separator: fg(t.Muted),
		Detail:    fg(t.Text),
	}
}

// Panel returns the bordered box used for overlays.
func (t Theme) Panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Accent)).
		Padding(1, 2).
		Width(width)
}
