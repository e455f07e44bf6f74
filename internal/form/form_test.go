package form

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled_AllSixteenCombinations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		title := mask&1 != 0
		audience := mask&2 != 0
		model := mask&4 != 0
		files := mask&8 != 0
		t.Run(fmt.Sprintf("title=%t/audience=%t/model=%t/files=%t", title, audience, model, files), func(t *testing.T) {
			want := mask == 15
			assert.Equal(t, want, Enabled(title, audience, model, files))

			f := Fields{}
			if title {
				f.SeriesTitle = "Acts"
			}
			if audience {
				f.Audience = AudienceMixed
			}
			if model {
				f.Model = ModelGPT4o
			}
			selected := 0
			if files {
				selected = 2
			}
			assert.Equal(t, want, f.Gate(selected))
		})
	}
}

func TestGate_BlankTitleAndUnknownChoices(t *testing.T) {
	f := Fields{SeriesTitle: "   ", Audience: AudienceMixed, Model: ModelGPT4o}
	assert.False(t, f.Gate(1), "whitespace title must not pass")

	f.SeriesTitle = "Acts"
	f.Audience = "Everyone"
	assert.False(t, f.Gate(1), "unknown audience counts as unset")

	f.Audience = AudienceMixed
	f.Model = "gpt-2"
	assert.False(t, f.Gate(1), "unknown model counts as unset")
}

func TestNewSnapshot(t *testing.T) {
	_, err := NewSnapshot(Fields{}, []string{"a"})
	require.ErrorIs(t, err, ErrIncomplete)

	ids := []string{"a", "b"}
	snap, err := NewSnapshot(Fields{SeriesTitle: "  Acts  ", Audience: AudienceNewChristians, Model: ModelClaudeHaiku}, ids)
	require.NoError(t, err)
	assert.Equal(t, "Acts", snap.SeriesTitle)
	assert.Equal(t, "a,b", snap.Joined())

	ids[0] = "mutated"
	assert.Equal(t, "a", snap.FileIDs[0], "snapshot must not alias the caller's slice")

	req := snap.Request()
	assert.Equal(t, "New Christians", req.TargetAudience)
	assert.Equal(t, "claude-3.5-haiku", req.Model)
	assert.Equal(t, "a,b", req.JoinedFileIDs())
}

func TestNextPrevWrap(t *testing.T) {
	assert.Equal(t, AudienceNewChristians, Next(Audiences, Audience("")))
	assert.Equal(t, AudienceMatureBelievers, Next(Audiences, AudienceNewChristians))
	assert.Equal(t, AudienceNewChristians, Next(Audiences, AudienceMixed))

	assert.Equal(t, ModelGPT4o, Prev(Models, Model("")))
	assert.Equal(t, ModelGPT4o, Prev(Models, ModelClaudeSonnet))
	assert.Equal(t, "Claude Sonnet 4.5", ModelClaudeSonnet.Label())
}
