package logtail

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the styles ColorizeLine applies. The zero value renders plain
// text.
type Palette struct {
	Time      lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Debug     lipgloss.Style
	Component lipgloss.Style
	Separator lipgloss.Style
	Detail    lipgloss.Style
}

var headerPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) (DEBUG|INFO|WARN|ERROR|DPANIC|PANIC|FATAL)(?: (\[[^\]]+\]))?(?: (–) (.*))?$`)

// ColorizeLine styles one line produced by Format. Lines it does not
// recognise are returned unchanged.
func (p Palette) ColorizeLine(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	if rest, ok := strings.CutPrefix(line, "    - "); ok {
		return "    " + p.Detail.Render(rest)
	}
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	var b strings.Builder
	b.WriteString(p.Time.Render(m[1]))
	b.WriteByte(' ')
	b.WriteString(p.level(m[2]).Render(m[2]))
	if m[3] != "" {
		b.WriteByte(' ')
		b.WriteString(p.Component.Render(m[3]))
	}
	if m[4] != "" {
		b.WriteByte(' ')
		b.WriteString(p.Separator.Render(m[4]))
		b.WriteByte(' ')
		b.WriteString(m[5])
	}
	return b.String()
}

// ColorizeLines styles every line.
func (p Palette) ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = p.ColorizeLine(line)
	}
	return out
}

func (p Palette) level(name string) lipgloss.Style {
	switch name {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return p.Error
	case "WARN":
		return p.Warn
	case "DEBUG":
		return p.Debug
	default:
		return p.Info
	}
}
