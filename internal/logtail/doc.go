// Package logtail reads lectio's structured log back for the activity view.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer of N entries,
// so memory stays bounded no matter how large the log grows. A missing file
// is not an error.
//
// # Formatting
//
// The log is JSON lines as written by package logging. Parse decodes one line
// into an Entry and Format renders it for humans:
//
//	2025-10-08 21:01:05 INFO [guideapi] – request finished
//	    - request_id: 6f1c...
//	    - status: 200
//
// Lines that are not JSON pass through untouched.
//
// # Colorization
//
// A Palette carries lipgloss styles for each part of a formatted line. The UI
// builds one from the active theme. Unrecognised lines are returned as they
// are rather than failing.
package logtail
