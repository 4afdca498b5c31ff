// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanewilkins/roadmap/internal/logger"
)

func newTestTracker(t *testing.T, serverURL string) *gitHubTracker {
	t.Helper()
	tr := NewGitHubTracker(GitHubConfig{BaseURL: serverURL, Token: "test-token"}, logger.Nop())
	return tr.(*gitHubTracker)
}

// ── Fetch ───────────────────────────────────────────────────────────────────

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/shanewilkins/roadmap/issues/42", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"number": 42,
			"title": "Ship the parser",
			"body": "Details here",
			"state": "closed",
			"state_reason": "not_planned",
			"html_url": "https://github.com/shanewilkins/roadmap/issues/42"
		}`))
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	got, err := tr.Fetch(context.Background(), "shanewilkins", "roadmap", 42)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 42, got.Number)
	assert.Equal(t, "Ship the parser", got.Title)
	assert.Equal(t, "closed", got.State)
	assert.Equal(t, "not_planned", got.StateReason)
}

func TestFetch_NotFoundReturnsNilSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	got, err := tr.Fetch(context.Background(), "shanewilkins", "roadmap", 404)

	require.NoError(t, err)
	assert.Nil(t, got, "missing remote issue must be a nil snapshot, not an error")
}

func TestFetch_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	_, err := tr.Fetch(context.Background(), "shanewilkins", "roadmap", 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	_, err := tr.Fetch(context.Background(), "shanewilkins", "roadmap", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
	assert.Contains(t, err.Error(), "boom")
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"number": `))
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	_, err := tr.Fetch(context.Background(), "shanewilkins", "roadmap", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode issue response")
}

// ── Update ──────────────────────────────────────────────────────────────────

func TestUpdate_Success(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/shanewilkins/roadmap/issues/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	err := tr.Update(context.Background(), "shanewilkins", "roadmap", 7, map[string]any{
		"title": "Renamed",
		"state": "closed",
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", gotBody["title"])
	assert.Equal(t, "closed", gotBody["state"])
}

func TestUpdate_EmptyFieldsIsNoOp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for an empty field set")
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	err := tr.Update(context.Background(), "shanewilkins", "roadmap", 7, nil)

	require.NoError(t, err)
}

func TestUpdate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr := newTestTracker(t, srv.URL)
	err := tr.Update(context.Background(), "shanewilkins", "roadmap", 7, map[string]any{"state": "open"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
