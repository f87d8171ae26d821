package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickadd/internal/config"
	"tickadd/internal/ticktick"
)

func newAPIStub(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/open/v1/project":
			_ = json.NewEncoder(w).Encode([]ticktick.Project{
				{ID: "p1", Name: "Work"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	return &config.Config{
		APIBaseURL:     apiURL,
		TokenPath:      filepath.Join(t.TempDir(), "ticktick.token"),
		MaxSuggestions: 5,
		RedirectPort:   13337,
	}
}

func TestNewServerContextWithoutToken(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t, "https://ticktick.invalid"), nil)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Nil(t, sc.Client())
	assert.NotNil(t, sc.Parser())
	assert.NotNil(t, sc.Engine())
	assert.False(t, sc.Store().Has())
}

func TestSetTokenRefreshesProjects(t *testing.T) {
	api := newAPIStub(t)

	sc, err := NewServerContext(context.Background(), testConfig(t, api.URL), nil)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	require.NoError(t, sc.SetToken(context.Background(), "tok-123"))

	assert.NotNil(t, sc.Client())
	assert.True(t, sc.Store().Has())

	// The parser now resolves ~work against the refreshed directory.
	res := sc.Parser().Parse("report ~work")
	assert.Equal(t, "p1", res.ProjectID)
	assert.Equal(t, "report", res.Title)
}

func TestNewServerContextWithStoredToken(t *testing.T) {
	api := newAPIStub(t)
	cfg := testConfig(t, api.URL)

	// Pre-seed the token file, then boot a fresh context.
	first, err := NewServerContext(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NoError(t, first.Store().Save("tok-123"))
	_ = first.Shutdown()

	sc, err := NewServerContext(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.NotNil(t, sc.Client())
	res := sc.Parser().Parse("report ~work")
	assert.Equal(t, "p1", res.ProjectID)
}

func TestRefreshProjectsUnauthenticated(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t, "https://ticktick.invalid"), nil)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Error(t, sc.RefreshProjects(context.Background()))
}

func TestShutdownIsIdempotent(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(t, "https://ticktick.invalid"), nil)
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
}
