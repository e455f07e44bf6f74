package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Activity   key.Binding
	Escape     key.Binding

	// Form
	NextField   key.Binding
	PrevField   key.Binding
	FieldDown   key.Binding
	FieldUp     key.Binding
	ChoiceNext  key.Binding
	ChoicePrev  key.Binding
	Browse      key.Binding
	RemoveChip  key.Binding
	ClearFiles  key.Binding
	Submit      key.Binding
	SubmitFocus key.Binding

	// Browse overlay
	Toggle  key.Binding
	Confirm key.Binding

	// Result dialogs
	CopyLink key.Binding
	OpenLink key.Binding

	// Activity view
	ToggleFollow  key.Binding
	ToggleDetails key.Binding
	Up            key.Binding
	Down          key.Binding
	Top           key.Binding
	Bottom        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "ctrl+g"),
			key.WithHelp("F1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		Activity: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Activity log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / cancel"),
		),

		// Form
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		FieldDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Next field / file"),
		),
		FieldUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Previous field / file"),
		),
		ChoiceNext: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next choice / file"),
		),
		ChoicePrev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Previous choice / file"),
		),
		Browse: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Select files from Drive"),
		),
		RemoveChip: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "Remove file"),
		),
		ClearFiles: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Remove all files"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Generate study guide"),
		),
		SubmitFocus: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Activate field"),
		),

		// Browse overlay
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Check / uncheck"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		// Result dialogs
		CopyLink: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy link"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open link in browser"),
		),

		// Activity view
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle follow mode"),
		),
		ToggleDetails: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle field details"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Browse, k.Submit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.FieldDown, k.FieldUp, k.ChoicePrev, k.ChoiceNext, k.SubmitFocus},
		{k.Browse, k.RemoveChip, k.ClearFiles, k.Submit},
		{k.Toggle, k.Confirm, k.Escape},
		{k.CopyLink, k.OpenLink},
		{k.ToggleFollow, k.ToggleDetails, k.Up, k.Down, k.Top, k.Bottom},
		{k.Activity, k.CycleTheme, k.Help, k.Quit},
	}
}

var helpSections = []string{"Form", "Files", "Browse", "Result", "Activity", "General"}
