package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints header segments on one background. lipgloss resets after
// each styled segment, so the spaces between words are painted explicitly.
type BgStyle struct {
	fill lipgloss.Style
}

// NewBgStyle creates a background helper for bgColor.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(bgColor))}
}

// Render renders text with style on the shared background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.fill.GetBackground())
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.Spaces(1))
}

// Spaces returns n painted spaces.
func (b BgStyle) Spaces(n int) string {
	return b.fill.Render(strings.Repeat(" ", n))
}

// Join joins rendered parts with a painted sep.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.fill.Render(sep))
}
