// Package source provides the strategies that produce candidate files for the
// selection: a checklist fed by the backend's file listing (Modal) and a
// Drive-backed picker authorised with a backend-issued token (Picker).
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/five82/lectio/internal/guideapi"
)

// Kind names a source strategy.
type Kind string

const (
	KindModal  Kind = "modal"
	KindPicker Kind = "picker"
)

// ParseKind validates a configured strategy name. Blank means modal.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(value))); k {
	case "":
		return KindModal, nil
	case KindModal, KindPicker:
		return k, nil
	default:
		return "", fmt.Errorf("unknown source %q (want %q or %q)", value, KindModal, KindPicker)
	}
}

// ErrNotReady is returned by an adapter that is still initialising.
var ErrNotReady = errors.New("source is not ready")

// Candidate is what an adapter offers the user to choose from.
type Candidate struct {
	Kind  Kind
	Files []guideapi.DriveFile
	// Preselected holds ids that start checked.
	Preselected map[string]bool
	// Limit is the most files the widget lets the user check; zero means
	// no widget-side limit.
	Limit int
}

// Empty reports the no-files-available condition.
func (c Candidate) Empty() bool { return len(c.Files) == 0 }

// Adapter produces candidates for the selection.
type Adapter interface {
	Kind() Kind
	Ready() bool
	// Candidates lists what the user may pick. selected holds the ids already
	// in the selection.
	Candidates(ctx context.Context, selected []string) (Candidate, error)
}

// Lister lists the Drive files visible to the backend.
type Lister interface {
	ListFiles(ctx context.Context) ([]guideapi.DriveFile, error)
}

// Modal lists files through the backend and pre-checks the current selection.
type Modal struct {
	lister Lister
}

var _ Adapter = (*Modal)(nil)

// NewModal returns a Modal adapter backed by lister.
func NewModal(lister Lister) *Modal {
	return &Modal{lister: lister}
}

// Kind implements Adapter.
func (m *Modal) Kind() Kind { return KindModal }

// Ready implements Adapter. The backend listing needs no preparation.
func (m *Modal) Ready() bool { return m != nil && m.lister != nil }

// Candidates implements Adapter.
func (m *Modal) Candidates(ctx context.Context, selected []string) (Candidate, error) {
	if !m.Ready() {
		return Candidate{}, ErrNotReady
	}
	files, err := m.lister.ListFiles(ctx)
	if err != nil {
		return Candidate{}, fmt.Errorf("load files: %w", err)
	}
	pre := lo.Associate(lo.Intersect(selected, lo.Map(files, func(f guideapi.DriveFile, _ int) string { return f.ID })),
		func(id string) (string, bool) { return id, true })
	return Candidate{Kind: KindModal, Files: files, Preselected: pre}, nil
}
