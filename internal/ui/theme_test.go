package ui

import "testing"

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("does-not-exist").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown) = %q, want Nightfox", got)
	}
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q) = %q", name, got)
		}
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	current := names[0]
	for range names {
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("cycling %d times ended on %q, want %q", len(names), current, names[0])
	}
	if got := NextTheme("bogus"); got != names[0] {
		t.Fatalf("NextTheme(bogus) = %q, want %q", got, names[0])
	}
}

func TestThemes_CoverEveryStatus(t *testing.T) {
	statuses := []string{"unknown", "healthy", "degraded", "offline", "loading", "ready", "submitting", "success", "failure"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range statuses {
			if th.StatusColors[status] == "" {
				t.Errorf("theme %s has no color for %q", name, status)
			}
		}
	}
}
