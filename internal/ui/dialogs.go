package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// renderBusy is the overlay shown while a submission is in flight.
func (m Model) renderBusy() string {
	styles := m.theme.Styles()
	elapsed := time.Since(m.submittedAt).Round(time.Second)

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(styles.Text.Bold(true).Render("Generating your study guide..."))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(wordwrap.String(
		"This usually takes a few minutes. The guide is saved to your Google Drive when it is done.",
		dialogWidth-6,
	)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Elapsed " + elapsed.String()))

	return m.placeDialog(m.theme.StatusColors["submitting"], b.String())
}

// renderSuccess shows the link to the saved guide.
func (m Model) renderSuccess() string {
	styles := m.theme.Styles()
	out := m.ctrl.Outcome()

	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("Study guide created"))
	b.WriteString("\n\n")
	if msg := strings.TrimSpace(out.Message); msg != "" {
		b.WriteString(styles.Text.Render(wordwrap.String(msg, dialogWidth-6)))
		b.WriteString("\n\n")
	}
	if out.Filename != "" {
		b.WriteString(styles.MutedText.Render("File  "))
		b.WriteString(styles.Text.Render(out.Filename))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("Link  "))
	b.WriteString(styles.AccentText.Underline(true).Render(breakURL(out.FileURL, dialogWidth-12)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("c copy link · o open in browser · enter close"))

	return m.placeDialog(m.theme.Success, b.String())
}

// renderFailure shows why the submission failed.
func (m Model) renderFailure() string {
	styles := m.theme.Styles()
	out := m.ctrl.Outcome()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Generation failed"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(wordwrap.String(out.Message, dialogWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter close"))

	return m.placeDialog(m.theme.Danger, b.String())
}

func (m Model) placeDialog(border, content string) string {
	dialog := m.theme.Panel(dialogWidth).
		BorderForeground(lipgloss.Color(border)).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// breakURL splits a long link into width-sized lines. URLs have no spaces, so
// word wrapping alone would leave them overflowing the dialog.
func breakURL(u string, width int) string {
	if width <= 0 || len(u) <= width {
		return u
	}
	var parts []string
	for len(u) > width {
		parts = append(parts, u[:width])
		u = u[width:]
	}
	return strings.Join(append(parts, u), "\n")
}
