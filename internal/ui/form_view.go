package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/five82/lectio/internal/controller"
	"github.com/five82/lectio/internal/form"
	"github.com/five82/lectio/internal/selection"
)

const (
	audiencePrompt = "Select audience..."
	modelPrompt    = "Select model..."
)

// handleFormKey processes keys for the focused form element.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField),
		key.Matches(msg, m.keys.FieldDown) && m.focus != focusFiles:
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevField),
		key.Matches(msg, m.keys.FieldUp) && m.focus != focusFiles:
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	switch m.focus {
	case focusTitle:
		if key.Matches(msg, m.keys.SubmitFocus) {
			m.setFocus(focusAudience)
			return m, nil
		}
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		m.ctrl.SetTitle(m.title.Value())
		return m, cmd

	case focusAudience:
		switch {
		case key.Matches(msg, m.keys.ChoiceNext):
			m.ctrl.SetAudience(form.Next(form.Audiences, m.ctrl.Fields().Audience))
		case key.Matches(msg, m.keys.ChoicePrev):
			m.ctrl.SetAudience(form.Prev(form.Audiences, m.ctrl.Fields().Audience))
		case key.Matches(msg, m.keys.SubmitFocus):
			m.setFocus(focusModel)
		}
		return m, nil

	case focusModel:
		switch {
		case key.Matches(msg, m.keys.ChoiceNext):
			m.ctrl.SetModel(form.Next(form.Models, m.ctrl.Fields().Model))
		case key.Matches(msg, m.keys.ChoicePrev):
			m.ctrl.SetModel(form.Prev(form.Models, m.ctrl.Fields().Model))
		case key.Matches(msg, m.keys.SubmitFocus):
			m.setFocus(focusFiles)
		}
		return m, nil

	case focusFiles:
		n := len(m.ctrl.Selection())
		switch {
		case key.Matches(msg, m.keys.SubmitFocus):
			return m.browse()
		case key.Matches(msg, m.keys.FieldDown), key.Matches(msg, m.keys.ChoiceNext):
			if m.chipCursor < n-1 {
				m.chipCursor++
			} else if key.Matches(msg, m.keys.FieldDown) {
				m.setFocus(focusSubmit)
			}
		case key.Matches(msg, m.keys.FieldUp), key.Matches(msg, m.keys.ChoicePrev):
			if m.chipCursor > 0 {
				m.chipCursor--
			} else if key.Matches(msg, m.keys.FieldUp) {
				m.setFocus(focusModel)
			}
		case key.Matches(msg, m.keys.RemoveChip):
			if n > 0 {
				if err := m.ctrl.Remove(m.chipCursor); err != nil {
					m.setNotice(controller.Notice{Level: controller.LevelError, Text: err.Error()})
				}
				m.clampChipCursor()
			}
		case key.Matches(msg, m.keys.ClearFiles):
			m.ctrl.Clear()
			m.clampChipCursor()
		}
		return m, nil

	case focusSubmit:
		if key.Matches(msg, m.keys.SubmitFocus) {
			return m.submit()
		}
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusTitle {
		m.title.Focus()
	} else {
		m.title.Blur()
	}
	m.clampChipCursor()
}

func (m *Model) clampChipCursor() {
	n := len(m.ctrl.Selection())
	if m.chipCursor >= n {
		m.chipCursor = n - 1
	}
	if m.chipCursor < 0 {
		m.chipCursor = 0
	}
}

// incompleteHint names the first thing keeping the gate closed.
func incompleteHint(ctrl *controller.Controller) string {
	f := ctrl.Fields()
	switch {
	case strings.TrimSpace(f.SeriesTitle) == "":
		return "Enter a series title."
	case !f.Audience.Valid():
		return "Choose a target audience."
	case !f.Model.Valid():
		return "Choose a model."
	case len(ctrl.Selection()) == 0:
		return "Select at least one transcript."
	}
	return "The form is incomplete."
}

// renderMain renders the header, form, status line and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	status := m.renderStatusLine()

	bodyHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(status))
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Top, m.renderForm())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, footer)
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	width := min(formWidth, m.width-2)
	inner := width - 6
	fields := m.ctrl.Fields()

	label := func(f focus, text string) string {
		if m.focus == f {
			return styles.AccentText.Bold(true).Render("▸ " + text)
		}
		return styles.MutedText.Render("  " + text)
	}
	choice := func(f focus, value, prompt string) string {
		if value == "" {
			value = styles.FaintText.Render(prompt)
		} else {
			value = styles.Text.Render(value)
		}
		if m.focus == f {
			return "  " + styles.AccentText.Render("‹ ") + value + styles.AccentText.Render(" ›")
		}
		return "  " + value
	}

	modelLabel := ""
	if fields.Model.Valid() {
		modelLabel = fields.Model.Label()
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Generate a Study Guide"))
	b.WriteString("\n\n")

	b.WriteString(label(focusTitle, "Series Title"))
	b.WriteString("\n  ")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")

	b.WriteString(label(focusAudience, "Target Audience"))
	b.WriteString("\n")
	b.WriteString(choice(focusAudience, string(fields.Audience), audiencePrompt))
	b.WriteString("\n\n")

	b.WriteString(label(focusModel, "AI Model"))
	b.WriteString("\n")
	b.WriteString(choice(focusModel, modelLabel, modelPrompt))
	b.WriteString("\n\n")

	count := fmt.Sprintf("Sermon Transcripts (%d/%d)", len(m.ctrl.Selection()), selection.MaxFiles)
	b.WriteString(label(focusFiles, count))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(m.keys.Browse.Help().Key + " to select"))
	b.WriteString("\n")
	b.WriteString(m.renderChips(inner))
	b.WriteString("\n\n")

	b.WriteString(m.renderSubmitButton())

	return m.theme.Panel(width).Render(b.String())
}

// renderChips draws the selection in display order.
func (m Model) renderChips(width int) string {
	styles := m.theme.Styles()
	display := m.ctrl.Display()
	if len(display.Chips) == 0 {
		return "  " + styles.FaintText.Italic(true).Render(display.Placeholder)
	}
	lines := make([]string, len(display.Chips))
	for i, chip := range display.Chips {
		name := truncate.StringWithTail(chip.Name, uint(max(8, width-6)), "…")
		line := fmt.Sprintf("%d. %s", chip.Index+1, name)
		if m.focus == focusFiles && i == m.chipCursor {
			lines[i] = "  " + styles.Selected.Render(line+"  ×")
		} else {
			lines[i] = "  " + styles.Text.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSubmitButton() string {
	text := " Generate Study Guide "
	button := lipgloss.NewStyle().Padding(0, 2).Bold(true)
	switch {
	case !m.ctrl.SubmitEnabled():
		button = button.
			Foreground(lipgloss.Color(m.theme.Faint)).
			Background(lipgloss.Color(m.theme.SurfaceAlt))
	case m.focus == focusSubmit:
		button = button.
			Foreground(lipgloss.Color(m.theme.Background)).
			Background(lipgloss.Color(m.theme.Accent))
	default:
		button = button.
			Foreground(lipgloss.Color(m.theme.Accent)).
			Background(lipgloss.Color(m.theme.FocusBg))
	}
	marker := "  "
	if m.focus == focusSubmit {
		marker = m.theme.Styles().AccentText.Render("▸ ")
	}
	return marker + button.Render(text)
}

// renderStatusLine shows the current notice, or the loading spinner.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	line := ""
	switch {
	case m.loading:
		line = m.spinner.View() + " " + styles.MutedText.Render("Loading files from Google Drive...")
	case !m.notice.Empty():
		style := styles.InfoText
		switch m.notice.Level {
		case controller.LevelWarning:
			style = styles.WarningText
		case controller.LevelError:
			style = styles.DangerText
		}
		line = style.Render(truncate.StringWithTail(m.notice.Text, uint(max(10, m.width-2)), "…"))
	}
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(line)
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
