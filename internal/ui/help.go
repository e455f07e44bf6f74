package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpWidth = 56

// helpMarkdown lays the full key map out as markdown tables, one per section.
func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard Shortcuts\n\n")
	for i, group := range k.FullHelp() {
		if i < len(helpSections) {
			fmt.Fprintf(&b, "## %s\n\n", helpSections[i])
		}
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Only one file source is active at a time. Up to **8** transcripts can be combined into one guide.\n")
	return b.String()
}

// renderHelpContent renders the markdown with glamour, falling back to the
// raw markdown when the renderer cannot be built.
func renderHelpContent(k keyMap, width int) string {
	md := helpMarkdown(k)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// openHelp renders the help text once and sizes its viewport.
func (m *Model) openHelp() {
	m.showHelp = true
	m.helpViewport.Width = helpWidth + 4
	m.helpViewport.Height = max(5, m.height-4)
	m.helpViewport.SetContent(renderHelpContent(m.keys, helpWidth))
	m.helpViewport.GotoTop()
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1).
		Render(m.helpViewport.View())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
