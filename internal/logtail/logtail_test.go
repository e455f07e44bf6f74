package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParseAndFormat(t *testing.T) {
	line := `{"level":"warn","ts":"2025-10-08T21:01:05.000Z","logger":"lectio.controller","msg":"submission failed","message":"Network error: refused","files":2}`

	entry := Parse(line)
	if entry.Level != "warn" || entry.Logger != "lectio.controller" || entry.Message != "submission failed" {
		t.Fatalf("Parse() = %+v", entry)
	}
	want := time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC)
	if !entry.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", entry.Time, want)
	}

	got := Format(entry)
	header := want.In(time.Local).Format("2006-01-02 15:04:05") + " WARN [controller] – submission failed"
	expected := []string{
		header,
		"    - files: 2",
		"    - message: Network error: refused",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("Format() = %q, want %q", got, expected)
	}
}

func TestParse_PlainLinePassesThrough(t *testing.T) {
	for _, line := range []string{"panic: boom", "{not json"} {
		if got := Format(Parse(line)); !reflect.DeepEqual(got, []string{line}) {
			t.Fatalf("Format(Parse(%q)) = %q", line, got)
		}
	}
}

func TestFormatLines_Compact(t *testing.T) {
	raw := []string{
		`{"level":"info","ts":"2025-10-08T21:01:05.000Z","logger":"lectio","msg":"started","source":"modal"}`,
		"plain",
	}
	got := FormatLines(raw, true)
	if len(got) != 2 {
		t.Fatalf("FormatLines(compact) = %q, want 2 lines", got)
	}
	if !strings.HasSuffix(got[0], "INFO – started") {
		t.Fatalf("header = %q", got[0])
	}
	if got := FormatLines(raw, false); len(got) != 3 {
		t.Fatalf("FormatLines() = %q, want 3 lines", got)
	}
}

func TestColorizeLine_PlainPalette(t *testing.T) {
	var p Palette
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty line", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: "   "},
		{name: "detail line", input: "    - status: 200", expected: "    status: 200"},
		{
			name:     "info with component",
			input:    "2025-10-08 21:01:05 INFO [guideapi] – request finished",
			expected: "2025-10-08 21:01:05 INFO [guideapi] – request finished",
		},
		{name: "unrecognised", input: "panic: boom", expected: "panic: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ColorizeLine(tt.input); got != tt.expected {
				t.Errorf("ColorizeLine() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestColorizeLines_KeepsCount(t *testing.T) {
	var p Palette
	input := []string{
		"2025-10-08 21:01:05 INFO – started",
		"    - source: modal",
		"2025-10-08 21:01:06 ERROR [controller] – failed",
	}
	if got := p.ColorizeLines(input); len(got) != len(input) {
		t.Fatalf("ColorizeLines() returned %d lines, want %d", len(got), len(input))
	}
}
