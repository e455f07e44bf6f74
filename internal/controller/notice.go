package controller

import (
	"errors"
	"strings"

	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/selection"
	"github.com/five82/lectio/internal/source"
)

// User-facing messages.
const (
	MsgNoFiles        = "No .txt files found in your Google Drive. Please upload sermon transcript files first."
	MsgSelectOne      = "Please select at least one file."
	MsgTooMany        = "Maximum 8 files allowed. Please deselect some files."
	MsgPickerLoading  = "The Google Drive picker is still loading. Please try again in a moment."
	msgUnknownError   = "Unknown error"
	prefixListServer  = "Error loading files from Google Drive: "
	prefixListFailure = "Error loading files: "
	prefixPicker      = "Error loading the Google Drive picker: "
)

// Level classifies a notice for rendering.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a one-line message for the user. The zero value means nothing to
// show.
type Notice struct {
	Level Level
	Text  string
}

// Empty reports whether n carries no message.
func (n Notice) Empty() bool { return n.Text == "" }

func info(text string) Notice    { return Notice{Level: LevelInfo, Text: text} }
func warning(text string) Notice { return Notice{Level: LevelWarning, Text: text} }
func failure(text string) Notice { return Notice{Level: LevelError, Text: text} }

// NoticeFor converts an error from a source or selection operation into the
// message shown at the point the operation was invoked.
func NoticeFor(err error) Notice {
	if err == nil {
		return Notice{}
	}
	var (
		validation *selection.ValidationError
		capacity   *selection.CapacityError
		auth       *guideapi.AuthError
		server     *guideapi.ServerError
	)
	switch {
	case errors.Is(err, source.ErrNotReady):
		return info(MsgPickerLoading)
	case errors.As(err, &validation):
		return warning(validation.Reason)
	case errors.As(err, &capacity):
		return warning(capacity.Error())
	case errors.As(err, &auth):
		return failure(prefixPicker + auth.Err.Error())
	case errors.As(err, &server):
		detail := strings.TrimSpace(server.Detail)
		if detail == "" {
			detail = msgUnknownError
		}
		return failure(prefixListServer + detail)
	default:
		var netErr *guideapi.NetworkError
		if errors.As(err, &netErr) {
			return failure(prefixListFailure + netErr.Err.Error())
		}
		return failure(prefixListFailure + err.Error())
	}
}
