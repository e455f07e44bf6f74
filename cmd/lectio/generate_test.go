package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/lectio/internal/app"
	"github.com/five82/lectio/internal/form"
	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/prefs"
	"github.com/five82/lectio/internal/selection"
)

func TestResolveFields(t *testing.T) {
	t.Run("defaults to first choices", func(t *testing.T) {
		f, err := resolveFields(generateFlags{title: "  Romans "}, prefs.Prefs{})
		require.NoError(t, err)
		assert.Equal(t, form.Fields{SeriesTitle: "Romans", Audience: form.Audiences[0], Model: form.Models[0]}, f)
	})
	t.Run("remembered choices", func(t *testing.T) {
		f, err := resolveFields(generateFlags{title: "Romans"}, prefs.Prefs{Audience: "Mixed", Model: "gpt-4o"})
		require.NoError(t, err)
		assert.Equal(t, form.AudienceMixed, f.Audience)
		assert.Equal(t, form.ModelGPT4o, f.Model)
	})
	t.Run("flags win and ignore case", func(t *testing.T) {
		f, err := resolveFields(generateFlags{title: "Romans", audience: "mature believers", model: "GPT-4O"}, prefs.Prefs{Audience: "Mixed"})
		require.NoError(t, err)
		assert.Equal(t, form.AudienceMatureBelievers, f.Audience)
		assert.Equal(t, form.ModelGPT4o, f.Model)
	})
	t.Run("blank title", func(t *testing.T) {
		_, err := resolveFields(generateFlags{title: "   "}, prefs.Prefs{})
		require.Error(t, err)
	})
	t.Run("unknown model", func(t *testing.T) {
		_, err := resolveFields(generateFlags{title: "Romans", model: "llama"}, prefs.Prefs{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llama")
	})
}

func newTestEnv(t *testing.T, handler http.Handler) *app.Env {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := guideapi.NewClient(guideapi.Options{ServerURL: server.URL})
	require.NoError(t, err)
	return &app.Env{
		Prefs:     prefs.Default(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Logger:    zap.NewNop(),
		Client:    client,
	}
}

func TestRunGenerateSucceeds(t *testing.T) {
	var gotIDs string
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/list-files":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"files":   []map[string]string{{"id": "b", "name": "Beta.txt"}, {"id": "a", "name": "Alpha.txt"}},
			})
		case "/api/generate":
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			gotIDs = r.FormValue(guideapi.FieldFileIDs)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "file_url": "https://docs.example/guide", "filename": "Romans.docx"})
		default:
			http.NotFound(w, r)
		}
	}))

	var out bytes.Buffer
	err := runGenerate(context.Background(), &out, env, generateFlags{
		title:    "Romans",
		audience: "Mixed",
		fileIDs:  []string{"b", "a", "b", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b", gotIDs)
	assert.Contains(t, out.String(), "Saved Romans.docx")
	assert.Contains(t, out.String(), "https://docs.example/guide")

	saved := prefs.Load(env.PrefsPath)
	assert.Equal(t, "Mixed", saved.Audience)
	assert.Equal(t, string(form.Models[0]), saved.Model)
}

func TestRunGenerateRejectsTooManyFiles(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())

	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	err := runGenerate(context.Background(), &bytes.Buffer{}, env, generateFlags{title: "Romans", fileIDs: ids})

	var verr *selection.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 9, verr.Checked)
}

func TestRunGenerateReportsServerDetail(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/generate" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"detail": "Transcript too short"})
			return
		}
		http.Error(w, "down", http.StatusInternalServerError)
	}))

	err := runGenerate(context.Background(), &bytes.Buffer{}, env, generateFlags{title: "Romans", fileIDs: []string{"a"}})
	require.Error(t, err)
	assert.Equal(t, "Transcript too short", err.Error())
}
