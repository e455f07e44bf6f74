package ui

import "time"

// Widths for centred panels.
const (
	// formWidth is the maximum width of the form panel.
	formWidth = 72

	// browseWidth is the maximum width of the file browse overlay.
	browseWidth = 84

	// dialogWidth is the width of the result dialogs.
	dialogWidth = 64

	// compactWidth is the terminal width below which the header drops details.
	compactWidth = 100
)

// Activity view limits.
const (
	// ActivityLineLimit is the number of log lines read from the end of the file.
	ActivityLineLimit = 2000
)

// Timing constants.
const (
	// NoticeTTL is how long a notice stays on the status line.
	NoticeTTL = 8 * time.Second

	// PickerInitTimeout bounds the picker's token and Drive setup.
	PickerInitTimeout = 30 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
