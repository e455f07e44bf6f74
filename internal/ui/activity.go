package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lectio/internal/logtail"
)

// readActivityCmd tails the structured log and formats it for display.
func readActivityCmd(path string, compact bool) tea.Cmd {
	return func() tea.Msg {
		raw, err := logtail.Read(path, ActivityLineLimit)
		if err != nil {
			return activityMsg{err: err}
		}
		return activityMsg{lines: logtail.FormatLines(raw, compact)}
	}
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.showActivity = false
		return m, nil
	case key.Matches(msg, m.keys.ToggleFollow):
		m.activityFollow = !m.activityFollow
		if m.activityFollow {
			m.activity.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleDetails):
		m.activityDetailed = !m.activityDetailed
		return m, readActivityCmd(m.logPath, !m.activityDetailed)
	case key.Matches(msg, m.keys.Top):
		m.activityFollow = false
		m.activity.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activity.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.activityFollow = false
	}

	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

// updateActivityViewport recolours the buffered lines with the active theme.
func (m *Model) updateActivityViewport() {
	if m.activity.Width == 0 {
		return
	}
	if len(m.activityLines) == 0 {
		m.activity.SetContent(m.theme.Styles().FaintText.Render("No activity yet. Log: " + m.logPath))
		return
	}
	m.activity.SetContent(strings.Join(m.theme.LogPalette().ColorizeLines(m.activityLines), "\n"))
	if m.activityFollow {
		m.activity.GotoBottom()
	}
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	follow := "paused"
	if m.activityFollow {
		follow = "following"
	}
	title := styles.Header.Width(m.width).Render(
		styles.Logo.Render("Activity") + "  " + styles.MutedText.Render(m.logPath) + "  " + styles.FaintText.Render(follow),
	)
	footer := styles.Footer.Width(m.width).Render("space follow · d details · j/k scroll · g/G top/bottom · esc back")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.activity.View(), footer)
}
