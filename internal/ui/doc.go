// Package ui provides the terminal interface for building a study-guide
// request from Google Drive files.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the presentation state (focus,
// overlays, notices, theme) while the controller owns the selection, the form
// fields and the submission pipeline. Network work never runs inside Update:
// the controller hands back a Fetch or Send closure, the model wraps it in a
// tea.Cmd and folds the resulting message back through the controller.
//
// # Package Structure
//
//   - app.go: Model, message routing and the Run entry point
//   - form_view.go: the form, selected-file chips and submit button
//   - browse.go: the checklist overlay used by both file sources
//   - dialogs.go: busy, success and failure overlays
//   - header.go: backend health badge and source indicator
//   - activity.go: structured log viewer backed by logtail
//   - help.go: glamour-rendered key reference
//   - theme.go, keys.go, layout.go: styling, bindings and sizing
//
// # Surfaces
//
// At most one overlay is visible. In priority order: help, busy, result
// dialog, file checklist, activity log, main form. The busy overlay swallows
// all input except quit until the request finishes.
//
// # Key Bindings
//
//   - tab / shift+tab: Move between fields
//   - ctrl+o: Browse Google Drive files
//   - x: Remove the focused chip, X clears all files
//   - ctrl+s or enter on the button: Generate
//   - ctrl+l: Activity log
//   - ctrl+t: Cycle theme
//   - f1: Help
//   - ctrl+c: Quit
package ui
