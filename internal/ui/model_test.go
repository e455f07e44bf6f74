package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lectio/internal/controller"
	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/selection"
	"github.com/five82/lectio/internal/source"
	"github.com/five82/lectio/internal/state"
)

func driveFiles(n int) []guideapi.DriveFile {
	out := make([]guideapi.DriveFile, n)
	for i := range out {
		out[i] = guideapi.DriveFile{ID: fmt.Sprintf("id-%02d", i+1), Name: fmt.Sprintf("File %02d.txt", i+1)}
	}
	return out
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctrl := controller.New(controller.Options{})
	m := New(Options{Controller: ctrl, PrefsPath: t.TempDir() + "/prefs.toml"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func TestHealthStatus(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		snap state.Snapshot
		want string
	}{
		{"no probe yet", state.Snapshot{}, "unknown"},
		{"healthy", state.Snapshot{HasHealth: true, Health: guideapi.HealthResponse{Status: "healthy"}, LastUpdated: now}, "healthy"},
		{"unhealthy status", state.Snapshot{HasHealth: true, Health: guideapi.HealthResponse{Status: "starting"}}, "degraded"},
		{"single failure", state.Snapshot{LastError: errors.New("boom"), ConsecutiveFailures: 1}, "degraded"},
		{"repeated failures", state.Snapshot{LastError: errors.New("boom"), ConsecutiveFailures: 2}, "offline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := healthStatus(tt.snap); got != tt.want {
				t.Fatalf("healthStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyHealthError(t *testing.T) {
	if got := classifyHealthError(&guideapi.NetworkError{Op: "health", Err: errors.New("refused")}); got != "backend unreachable" {
		t.Fatalf("network error classified as %q", got)
	}
	if got := classifyHealthError(&guideapi.ServerError{Op: "health", Status: 503, Detail: "maintenance"}); got != "maintenance" {
		t.Fatalf("server error classified as %q", got)
	}
}

func TestHostOf(t *testing.T) {
	if got := hostOf("http://127.0.0.1:8080/api"); got != "127.0.0.1:8080" {
		t.Fatalf("hostOf = %q", got)
	}
	if got := hostOf("not a url"); got != "" {
		t.Fatalf("hostOf(garbage) = %q, want empty", got)
	}
}

func TestBreakURL(t *testing.T) {
	if got := breakURL("https://x", 20); got != "https://x" {
		t.Fatalf("short url changed: %q", got)
	}
	got := breakURL("abcdefghij", 4)
	if got != "abcd\nefgh\nij" {
		t.Fatalf("breakURL = %q", got)
	}
}

func TestBrowseModalTogglesRespectLimit(t *testing.T) {
	cand := source.Candidate{Kind: source.KindPicker, Files: driveFiles(3), Limit: 2}
	b := newBrowseModal(cand, GetTheme(""), 120, 40)

	b.toggle()
	b.list.CursorDown()
	b.toggle()
	b.list.CursorDown()
	b.toggle()

	if got := b.indices(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("indices = %v, want [0 1]", got)
	}
	if b.notice != "You can select up to 2 files." {
		t.Fatalf("notice = %q", b.notice)
	}

	b.list.CursorUp()
	b.toggle()
	if got := b.indices(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("indices after uncheck = %v, want [0]", got)
	}
	if b.notice != "" {
		t.Fatalf("notice not cleared: %q", b.notice)
	}
}

func TestBrowseModalPrechecksSelection(t *testing.T) {
	files := driveFiles(3)
	cand := source.Candidate{Kind: source.KindModal, Files: files, Preselected: map[string]bool{files[2].ID: true}}
	b := newBrowseModal(cand, GetTheme(""), 120, 40)

	if got := b.indices(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("prechecked = %v, want [2]", got)
	}
}

func TestModalConfirmOverLimitKeepsChecklistOpen(t *testing.T) {
	m := newTestModel(t)
	cand := source.Candidate{Kind: source.KindModal, Files: driveFiles(9)}

	next, _ := m.Update(candidatesMsg{candidate: cand})
	m = next.(Model)
	if m.modal == nil {
		t.Fatal("checklist not opened")
	}

	next, _ = m.Update(browseConfirmMsg{candidate: cand, indices: sequence(9)})
	m = next.(Model)

	b, ok := m.modal.(*browseModal)
	if !ok {
		t.Fatal("checklist closed after rejected confirm")
	}
	if b.notice != controller.MsgTooMany {
		t.Fatalf("checklist notice = %q, want %q", b.notice, controller.MsgTooMany)
	}
	if n := len(m.ctrl.Selection()); n != 0 {
		t.Fatalf("selection changed to %d files", n)
	}
}

func TestPickerConfirmTruncatesAndCloses(t *testing.T) {
	m := newTestModel(t)
	cand := source.Candidate{Kind: source.KindPicker, Files: driveFiles(10), Limit: 10}

	next, _ := m.Update(candidatesMsg{candidate: cand})
	m = next.(Model)
	next, _ = m.Update(browseConfirmMsg{candidate: cand, indices: sequence(10)})
	m = next.(Model)

	if m.modal != nil {
		t.Fatal("picker overlay still open")
	}
	if n := len(m.ctrl.Selection()); n != selection.MaxFiles {
		t.Fatalf("selection = %d files, want %d", n, selection.MaxFiles)
	}
	if m.notice.Level != controller.LevelWarning {
		t.Fatalf("notice level = %v, want warning", m.notice.Level)
	}
}

func TestEmptyListingShowsNotice(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(candidatesMsg{candidate: source.Candidate{Kind: source.KindModal}})
	m = next.(Model)

	if m.modal != nil {
		t.Fatal("empty listing opened the checklist")
	}
	if m.notice.Text != controller.MsgNoFiles {
		t.Fatalf("notice = %q", m.notice.Text)
	}
}

func TestIncompleteHint(t *testing.T) {
	ctrl := controller.New(controller.Options{})
	if got := incompleteHint(ctrl); got != "Enter a series title." {
		t.Fatalf("hint = %q", got)
	}
	ctrl.SetTitle("Romans")
	if got := incompleteHint(ctrl); !strings.Contains(got, "audience") {
		t.Fatalf("hint = %q", got)
	}
}

func TestHelpMarkdownListsBindings(t *testing.T) {
	md := helpMarkdown(DefaultKeyMap())
	for _, want := range []string{"# Keyboard Shortcuts", "ctrl+o", "ctrl+s", "**8**"} {
		if !strings.Contains(md, want) {
			t.Fatalf("help markdown missing %q", want)
		}
	}
}
