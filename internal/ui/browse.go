package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"

	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/source"
)

// browseItem is one candidate row. index points into Candidate.Files.
type browseItem struct {
	index int
	file  guideapi.DriveFile
}

func (i browseItem) FilterValue() string { return i.file.Name + " " + i.file.Folder() }

// browseDelegate draws a two-line row with a checkbox.
type browseDelegate struct {
	checked map[int]bool
	theme   Theme
}

func (d browseDelegate) Height() int                             { return 2 }
func (d browseDelegate) Spacing() int                            { return 0 }
func (d browseDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d browseDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(browseItem)
	if !ok {
		return
	}
	styles := d.theme.Styles()
	width := max(10, m.Width()-6)

	box := "[ ]"
	if d.checked[item.index] {
		box = "[x]"
	}
	name := truncate.StringWithTail(item.file.Name, uint(width), "…")
	meta := item.file.Folder()
	if t := item.file.ParsedModifiedTime(); !t.IsZero() {
		meta += " · modified " + humanize.Time(t)
	}
	meta = truncate.StringWithTail(meta, uint(width), "…")

	line := box + " " + name
	if index == m.Index() {
		line = styles.Selected.Render("> " + line)
	} else {
		line = styles.Text.Render("  " + line)
	}
	fmt.Fprintf(w, "%s\n%s", line, styles.FaintText.Render("      "+meta))
}

// Modal is an overlay that takes over the keyboard. Update reports whether it
// asked to close; results travel in the returned command's message so the
// model can keep the overlay open when a result is rejected.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// browseConfirmMsg carries the checked rows back to the model. Indices are in
// list order, which is the order the source returned them in.
type browseConfirmMsg struct {
	candidate source.Candidate
	indices   []int
}

// browseModal is the checklist (modal source) or the Drive picker overlay
// (picker source). Only the title, the pre-checked rows and the limit differ.
type browseModal struct {
	cand    source.Candidate
	list    list.Model
	checked map[int]bool
	notice  string
}

func newBrowseModal(cand source.Candidate, theme Theme, width, height int) *browseModal {
	checked := make(map[int]bool, len(cand.Files))
	items := make([]list.Item, len(cand.Files))
	for i, f := range cand.Files {
		items[i] = browseItem{index: i, file: f}
		if cand.Preselected[f.ID] {
			checked[i] = true
		}
	}

	l := list.New(items, browseDelegate{checked: checked, theme: theme}, 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true)
	if cand.Kind == source.KindPicker {
		l.Title = "Google Drive · Text files"
		l.SetStatusBarItemName("file", "files")
	} else {
		l.Title = "Select Transcript Files"
		l.SetStatusBarItemName("transcript", "transcripts")
	}

	b := &browseModal{cand: cand, list: l, checked: checked}
	b.resize(width, height)
	return b
}

func (b *browseModal) resize(width, height int) {
	b.list.SetSize(min(browseWidth, max(30, width-8)), max(6, height-12))
}

// indices returns the checked rows in list order.
func (b *browseModal) indices() []int {
	out := lo.Keys(lo.PickBy(b.checked, func(_ int, v bool) bool { return v }))
	slices.Sort(out)
	return out
}

func (b *browseModal) setNotice(text string) { b.notice = text }

func (b *browseModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil, false

	case tea.KeyMsg:
		if b.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.Escape):
			if b.list.FilterState() == list.FilterApplied {
				break
			}
			return b, nil, true
		case key.Matches(msg, keys.Toggle):
			b.toggle()
			return b, nil, false
		case key.Matches(msg, keys.Confirm):
			b.notice = ""
			confirm := browseConfirmMsg{candidate: b.cand, indices: b.indices()}
			return b, func() tea.Msg { return confirm }, false
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd, false
}

func (b *browseModal) toggle() {
	item, ok := b.list.SelectedItem().(browseItem)
	if !ok {
		return
	}
	if b.checked[item.index] {
		delete(b.checked, item.index)
		b.notice = ""
		return
	}
	if b.cand.Limit > 0 && len(b.indices()) >= b.cand.Limit {
		b.notice = fmt.Sprintf("You can select up to %d files.", b.cand.Limit)
		return
	}
	b.checked[item.index] = true
	b.notice = ""
}

func (b *browseModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var footer strings.Builder
	count := fmt.Sprintf("%d selected", len(b.indices()))
	if b.cand.Limit > 0 {
		count += fmt.Sprintf(" (limit %d)", b.cand.Limit)
	}
	footer.WriteString(styles.MutedText.Render(count))
	footer.WriteString("\n")
	if b.notice != "" {
		footer.WriteString(styles.WarningText.Render(b.notice))
		footer.WriteString("\n")
	}
	footer.WriteString(styles.FaintText.Render("space check · / filter · enter confirm · esc cancel"))

	body := lipgloss.JoinVertical(lipgloss.Left, b.list.View(), "", footer.String())
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Render(body)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		panel,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
