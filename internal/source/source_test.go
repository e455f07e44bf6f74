package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/five82/lectio/internal/guideapi"
)

type fakeLister struct {
	files []guideapi.DriveFile
	err   error
}

func (f fakeLister) ListFiles(context.Context) ([]guideapi.DriveFile, error) {
	return f.files, f.err
}

type fakeTokens struct {
	token string
	err   error
	calls atomic.Int32
}

func (f *fakeTokens) AccessToken(context.Context) (string, error) {
	f.calls.Add(1)
	return f.token, f.err
}

type fakeDrive struct {
	files []guideapi.DriveFile
}

func (f fakeDrive) ListTextFiles(context.Context) ([]guideapi.DriveFile, error) {
	return f.files, nil
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindModal, k)

	k, err = ParseKind(" Picker ")
	require.NoError(t, err)
	assert.Equal(t, KindPicker, k)

	_, err = ParseKind("dropdown")
	assert.Error(t, err)
}

func TestModal_PrechecksCurrentSelection(t *testing.T) {
	m := NewModal(fakeLister{files: []guideapi.DriveFile{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}})
	require.True(t, m.Ready())

	c, err := m.Candidates(context.Background(), []string{"b", "gone"})
	require.NoError(t, err)
	assert.Equal(t, KindModal, c.Kind)
	assert.False(t, c.Empty())
	assert.Equal(t, map[string]bool{"b": true}, c.Preselected)
	assert.Zero(t, c.Limit)
}

func TestModal_EmptyListingIsNotAnError(t *testing.T) {
	m := NewModal(fakeLister{files: []guideapi.DriveFile{}})
	c, err := m.Candidates(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestModal_PropagatesTypedErrors(t *testing.T) {
	m := NewModal(fakeLister{err: &guideapi.ServerError{Op: "list files", Status: 500, Detail: "boom"}})
	_, err := m.Candidates(context.Background(), nil)
	var srvErr *guideapi.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "boom", guideapi.Detail(err))
}

func TestPicker_NotReadyUntilInit(t *testing.T) {
	tokens := &fakeTokens{token: "ya29"}
	var gotToken, gotKey string
	p := NewPicker(PickerOptions{
		Tokens:       tokens,
		DeveloperKey: "dev-key",
		NewDrive: func(_ context.Context, token, key string) (DriveLister, error) {
			gotToken, gotKey = token, key
			return fakeDrive{files: []guideapi.DriveFile{{ID: "x", Name: "X"}}}, nil
		},
	})
	assert.False(t, p.Ready())
	_, err := p.Candidates(context.Background(), nil)
	require.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, p.Init(context.Background()))
	assert.True(t, p.Ready())
	assert.Equal(t, "ya29", gotToken)
	assert.Equal(t, "dev-key", gotKey)

	c, err := p.Candidates(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, KindPicker, c.Kind)
	assert.Equal(t, DefaultPickerLimit, c.Limit)
	assert.Empty(t, c.Preselected, "picker never pre-checks")
}

func TestPicker_InitFailures(t *testing.T) {
	p := NewPicker(PickerOptions{Tokens: &fakeTokens{token: "t"}})
	assert.ErrorContains(t, p.Init(context.Background()), "developer key")

	tokens := &fakeTokens{err: errors.New("session expired")}
	p = NewPicker(PickerOptions{Tokens: tokens, DeveloperKey: "k"})
	err := p.Init(context.Background())
	var authErr *guideapi.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, p.Ready())
	assert.EqualValues(t, 1, tokens.calls.Load())
}

func TestDriveLister_ListsAndResolvesFolders(t *testing.T) {
	var keys atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "dev" {
			keys.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/files":
			if !strings.Contains(r.URL.Query().Get("q"), "text/plain") {
				http.Error(w, "bad query", http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"files": []map[string]any{
					{"id": "2", "name": "02.txt", "parents": []string{"p1"}, "modifiedTime": "2025-01-02T00:00:00Z"},
					{"id": "1", "name": "01.txt", "parents": []string{"p1"}},
					{"id": "3", "name": "03.txt", "parents": []string{"missing"}},
					{"id": "4", "name": "04.txt"},
				},
			})
		case r.URL.Path == "/files/p1":
			_ = json.NewEncoder(w).Encode(map[string]any{"name": "Sermons"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	d, err := newDriveLister(context.Background(), "dev",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	files, err := d.ListTextFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, "2", files[0].ID, "drive order is kept")
	assert.Equal(t, "Sermons", files[0].FolderName)
	assert.Equal(t, "Sermons", files[1].FolderName)
	assert.Equal(t, unknownFolderTag, files[2].FolderName)
	assert.Equal(t, rootFolderLabel, files[3].FolderName)
	assert.GreaterOrEqual(t, keys.Load(), int32(3))
}

type rotatingTokens struct {
	calls atomic.Int32
}

func (r *rotatingTokens) AccessToken(context.Context) (string, error) {
	return fmt.Sprintf("token-%d", r.calls.Add(1)), nil
}

// tokenDrive only accepts the most recently issued token, like Drive after
// an access token expires.
type tokenDrive struct {
	token  string
	tokens *rotatingTokens
}

func (d tokenDrive) ListTextFiles(context.Context) ([]guideapi.DriveFile, error) {
	if d.token != fmt.Sprintf("token-%d", d.tokens.calls.Load()) {
		return nil, &googleapi.Error{Code: http.StatusUnauthorized, Message: "Invalid Credentials"}
	}
	return []guideapi.DriveFile{{ID: "x", Name: "X"}}, nil
}

func TestPicker_RequestsFreshTokenPerOpen(t *testing.T) {
	tokens := &rotatingTokens{}
	var built []string
	p := NewPicker(PickerOptions{
		Tokens:       tokens,
		DeveloperKey: "k",
		NewDrive: func(_ context.Context, token, _ string) (DriveLister, error) {
			built = append(built, token)
			return tokenDrive{token: token, tokens: tokens}, nil
		},
	})
	require.NoError(t, p.Init(context.Background()))

	for i := 0; i < 3; i++ {
		c, err := p.Candidates(context.Background(), nil)
		require.NoError(t, err, "open %d", i+1)
		assert.Len(t, c.Files, 1)
	}
	assert.EqualValues(t, 4, tokens.calls.Load())
	assert.Equal(t, []string{"token-1", "token-2", "token-3", "token-4"}, built)
}

func TestPicker_TokenFailureOnOpenIsAuthError(t *testing.T) {
	tokens := &fakeTokens{token: "t"}
	p := NewPicker(PickerOptions{
		Tokens:       tokens,
		DeveloperKey: "k",
		NewDrive: func(context.Context, string, string) (DriveLister, error) {
			return fakeDrive{}, nil
		},
	})
	require.NoError(t, p.Init(context.Background()))

	tokens.err = errors.New("session expired")
	_, err := p.Candidates(context.Background(), nil)
	var authErr *guideapi.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.EqualValues(t, 2, tokens.calls.Load())
}
