package logtail

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/five82/lectio/internal/logging"
)

// Entry is one decoded line of the structured log.
type Entry struct {
	Time    time.Time
	Level   string
	Logger  string
	Message string
	Fields  map[string]any
	// Raw holds the original text when the line is not JSON.
	Raw string
}

var reservedKeys = []string{logging.TimeKey, logging.LevelKey, logging.NameKey, logging.MessageKey, "caller", "stacktrace"}

// Parse decodes a JSON log line. Lines that are not JSON objects come back
// with only Raw set.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Raw: line}
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return Entry{Raw: line}
	}
	entry := Entry{
		Time:    parseTime(fields[logging.TimeKey]),
		Level:   stringField(fields, logging.LevelKey),
		Logger:  stringField(fields, logging.NameKey),
		Message: stringField(fields, logging.MessageKey),
	}
	extra := lo.OmitByKeys(fields, reservedKeys)
	if len(extra) > 0 {
		entry.Fields = extra
	}
	return entry
}

// Format renders an entry as a header line plus one indented detail line per
// extra field, sorted by key:
//
//	2025-10-08 21:01:05 INFO [guideapi] – request finished
//	    - status: 200
func Format(e Entry) []string {
	if e.Time.IsZero() && e.Level == "" && e.Message == "" {
		return []string{e.Raw}
	}
	parts := make([]string, 0, 4)
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	if component := componentOf(e.Logger); component != "" {
		parts = append(parts, "["+component+"]")
	}
	header := strings.Join(parts, " ")
	if msg := strings.TrimSpace(e.Message); msg != "" {
		header += " – " + msg
	}

	lines := []string{header}
	keys := lo.Keys(e.Fields)
	slices.Sort(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("    - %s: %v", k, e.Fields[k]))
	}
	return lines
}

// FormatLines parses and formats raw log lines. When compact is set the
// detail lines are dropped.
func FormatLines(raw []string, compact bool) []string {
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		formatted := Format(Parse(line))
		if compact {
			formatted = formatted[:1]
		}
		out = append(out, formatted...)
	}
	return out
}

// componentOf strips the root logger name so "lectio.guideapi" shows as
// "guideapi".
func componentOf(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return ""
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func parseTime(v any) time.Time {
	switch ts := v.(type) {
	case string:
		for _, layout := range []string{logging.TimeLayout, time.RFC3339Nano} {
			if t, err := time.Parse(layout, ts); err == nil {
				return t
			}
		}
	case float64:
		sec := int64(ts)
		return time.Unix(sec, int64((ts-float64(sec))*1e9))
	}
	return time.Time{}
}
