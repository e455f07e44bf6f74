package submit

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lectio/internal/guideapi"
)

func TestPipeline_SuccessPath(t *testing.T) {
	var p Pipeline
	assert.Equal(t, PhaseIdle, p.Phase())
	assert.False(t, p.Busy())

	assert.Equal(t, Outcome{}, p.Outcome())

	require.NoError(t, p.Begin())
	assert.True(t, p.Busy())
	assert.Equal(t, Outcome{Phase: PhaseSubmitting}, p.Outcome())
	assert.ErrorIs(t, p.Begin(), ErrInFlight)

	out := p.Complete(guideapi.GenerateResponse{Success: true, FileURL: "https://x"}, nil)
	assert.Equal(t, PhaseSuccess, out.Phase)
	assert.Equal(t, "https://x", out.FileURL)
	assert.False(t, p.Busy())
	assert.ErrorIs(t, p.Begin(), ErrNotIdle)

	p.Dismiss()
	assert.Equal(t, PhaseIdle, p.Phase())
	assert.Equal(t, Outcome{}, p.Outcome())
	assert.NoError(t, p.Begin())
}

func TestPipeline_FailureMessages(t *testing.T) {
	cases := []struct {
		name string
		resp guideapi.GenerateResponse
		err  error
		want string
	}{
		{
			name: "network",
			err:  &guideapi.NetworkError{Op: "generate", Err: errors.New("connection refused")},
			want: "Network error: connection refused",
		},
		{
			name: "server detail",
			err:  &guideapi.ServerError{Op: "generate", Status: http.StatusInternalServerError, Detail: "Unknown model: x"},
			want: "Unknown model: x",
		},
		{
			name: "success false without detail",
			resp: guideapi.GenerateResponse{Success: false},
			err:  &guideapi.ServerError{Op: "generate"},
			want: GenericFailure,
		},
		{
			name: "payload detail only",
			resp: guideapi.GenerateResponse{Detail: "No files selected"},
			want: "No files selected",
		},
		{
			name: "ok status success false",
			resp: guideapi.GenerateResponse{},
			want: GenericFailure,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Pipeline
			require.NoError(t, p.Begin())
			out := p.Complete(tc.resp, tc.err)
			assert.Equal(t, PhaseFailure, out.Phase)
			assert.Equal(t, tc.want, out.Message)
			assert.False(t, p.Busy())
		})
	}
}

func TestPipeline_CompleteIgnoredWhenIdle(t *testing.T) {
	var p Pipeline
	out := p.Complete(guideapi.GenerateResponse{Success: true, FileURL: "https://x"}, nil)
	assert.Equal(t, PhaseIdle, out.Phase)
	assert.Equal(t, PhaseIdle, p.Phase())
}

func TestPipeline_DismissWhileSubmittingIsNoop(t *testing.T) {
	var p Pipeline
	require.NoError(t, p.Begin())
	p.Dismiss()
	assert.True(t, p.Busy())
}
