// Package form holds the study guide form fields and the predicate that
// decides whether the form may be submitted.
package form

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/five82/lectio/internal/guideapi"
)

// Audience is the target audience choice.
type Audience string

const (
	AudienceNewChristians   Audience = "New Christians"
	AudienceMatureBelievers Audience = "Mature Believers"
	AudienceMixed           Audience = "Mixed"
)

// Audiences lists the choices in display order.
var Audiences = []Audience{AudienceNewChristians, AudienceMatureBelievers, AudienceMixed}

// Valid reports whether a is one of the offered choices.
func (a Audience) Valid() bool { return lo.Contains(Audiences, a) }

// Model is the generation model choice, named as the backend expects.
type Model string

const (
	ModelClaudeSonnet Model = "claude-sonnet-4.5"
	ModelClaudeHaiku  Model = "claude-3.5-haiku"
	ModelGPT4o        Model = "gpt-4o"
)

// Models lists the choices in display order.
var Models = []Model{ModelClaudeSonnet, ModelClaudeHaiku, ModelGPT4o}

// Valid reports whether m is one of the offered choices.
func (m Model) Valid() bool { return lo.Contains(Models, m) }

// Label is the human name shown in the form.
func (m Model) Label() string {
	switch m {
	case ModelClaudeSonnet:
		return "Claude Sonnet 4.5"
	case ModelClaudeHaiku:
		return "Claude 3.5 Haiku"
	case ModelGPT4o:
		return "GPT-4o"
	default:
		return string(m)
	}
}

// Fields are the user-entered form values. The zero value is a reset form.
type Fields struct {
	SeriesTitle string
	Audience    Audience
	Model       Model
}

// Enabled is the form gate: submission is allowed only when the title is
// non-blank, an audience and a model are chosen, and at least one file is
// selected.
func Enabled(titleSet, audienceSet, modelSet, hasFiles bool) bool {
	return titleSet && audienceSet && modelSet && hasFiles
}

// Gate evaluates Enabled for f with the given number of selected files.
func (f Fields) Gate(selected int) bool {
	return Enabled(strings.TrimSpace(f.SeriesTitle) != "", f.Audience.Valid(), f.Model.Valid(), selected > 0)
}

// ErrIncomplete is returned when a snapshot is requested from a form that
// does not pass the gate.
var ErrIncomplete = errors.New("form is incomplete")

// Snapshot is the serialisable state of the form at submission time.
type Snapshot struct {
	SeriesTitle    string
	TargetAudience Audience
	Model          Model
	FileIDs        []string
}

// NewSnapshot captures f and the selected ids. The title is trimmed.
func NewSnapshot(f Fields, fileIDs []string) (Snapshot, error) {
	if !f.Gate(len(fileIDs)) {
		return Snapshot{}, ErrIncomplete
	}
	return Snapshot{
		SeriesTitle:    strings.TrimSpace(f.SeriesTitle),
		TargetAudience: f.Audience,
		Model:          f.Model,
		FileIDs:        append([]string(nil), fileIDs...),
	}, nil
}

// Joined returns the comma-joined ids.
func (s Snapshot) Joined() string { return strings.Join(s.FileIDs, ",") }

// Request converts the snapshot into the backend request.
func (s Snapshot) Request() guideapi.GenerateRequest {
	return guideapi.GenerateRequest{
		SeriesTitle:    s.SeriesTitle,
		TargetAudience: string(s.TargetAudience),
		Model:          string(s.Model),
		FileIDs:        append([]string(nil), s.FileIDs...),
	}
}

// Next returns the choice after current, wrapping around. An unset or unknown
// current yields the first choice.
func Next[T comparable](choices []T, current T) T {
	if len(choices) == 0 {
		return current
	}
	_, idx, ok := lo.FindIndexOf(choices, func(c T) bool { return c == current })
	if !ok {
		return choices[0]
	}
	return choices[(idx+1)%len(choices)]
}

// Prev returns the choice before current, wrapping around. An unset or
// unknown current yields the last choice.
func Prev[T comparable](choices []T, current T) T {
	if len(choices) == 0 {
		return current
	}
	_, idx, ok := lo.FindIndexOf(choices, func(c T) bool { return c == current })
	if !ok {
		return choices[len(choices)-1]
	}
	return choices[(idx-1+len(choices))%len(choices)]
}
