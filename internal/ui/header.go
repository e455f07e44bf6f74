package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/source"
	"github.com/five82/lectio/internal/state"
)

// healthStatus maps a snapshot to one of the theme's status keys.
func healthStatus(snap state.Snapshot) string {
	switch {
	case snap.IsOffline():
		return "offline"
	case snap.LastError != nil:
		return "degraded"
	case !snap.HasHealth:
		return "unknown"
	case snap.Healthy():
		return "healthy"
	default:
		return "degraded"
	}
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < compactWidth

	parts := []string{bg.Render("lectio", styles.Logo)}

	status := healthStatus(m.snapshot)
	badge := styles.StatusStyle(status).Render(strings.ToUpper(status))
	parts = append(parts, badge)

	if host := hostOf(m.serverURL); host != "" {
		parts = append(parts, bg.Render(host, styles.MutedText))
	}
	if m.snapshot.HasHealth && m.snapshot.LastError == nil && m.snapshot.Latency > 0 {
		parts = append(parts, bg.Render(m.snapshot.Latency.Round(time.Millisecond).String(), styles.FaintText))
	}
	switch {
	case compact:
	case m.snapshot.IsOffline() && !m.snapshot.FailingSince.IsZero():
		parts = append(parts, bg.Render("down since "+humanize.Time(m.snapshot.FailingSince), styles.FaintText))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, bg.Render("checked "+humanize.Time(m.snapshot.LastUpdated), styles.FaintText))
	}

	parts = append(parts, m.sourceBadge(styles, bg))

	if err := m.snapshot.LastError; err != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		text := truncate.StringWithTail(classifyHealthError(err), uint(maxErr), "…")
		parts = append(parts, bg.Render(text, styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// sourceBadge names the file source and, for the picker, its readiness.
func (m Model) sourceBadge(styles Styles, bg BgStyle) string {
	if m.ctrl.Source() == nil || m.ctrl.Source().Kind() == source.KindModal {
		return bg.Render("source: backend list", styles.MutedText)
	}
	label, status := "picker loading", "loading"
	switch m.pickerState {
	case pickerReady:
		label, status = "picker ready", "ready"
	case pickerFailed:
		label, status = "picker unavailable", "failure"
	}
	color := lipgloss.Color(m.theme.StatusColors[status])
	return bg.Render("source:", styles.MutedText) + bg.Spaces(1) +
		bg.Render(label, lipgloss.NewStyle().Foreground(color))
}

// classifyHealthError shortens a probe error for the header.
func classifyHealthError(err error) string {
	switch {
	case guideapi.IsNetwork(err):
		return "backend unreachable"
	case guideapi.Detail(err) != "":
		return guideapi.Detail(err)
	default:
		return fmt.Sprintf("health check failed: %v", err)
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}
