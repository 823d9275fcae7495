package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/artfolio/internal/auth"
	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/tui"
	"github.com/utafrali/artfolio/pkg/httputil"
	"github.com/utafrali/artfolio/pkg/pagination"
)

func execute(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	if c == nil {
		c = &cli{run: func(context.Context, tea.Model) error { return nil }}
	}
	var out, errOut bytes.Buffer
	root := newRootCommand(c)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestArtists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/artists", r.URL.Path)
		assert.Equal(t, "berlin", r.URL.Query().Get("location"))
		assert.Equal(t, "ink", r.URL.Query().Get("style"))
		params := pagination.Params{Page: 1, PerPage: 20}
		httputil.WriteJSON(w, http.StatusOK, pagination.NewResult([]domain.ArtistSummary{
			{ID: "u1", Username: "mara", Name: "Mara Lind", Location: "Berlin", Style: "ink"},
			{ID: "u2", Username: "tomo", Location: "Berlin", Style: "ink"},
		}, 2, params))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, nil, "artists", "--api", srv.URL, "--location", "berlin", "--style", "ink")

	require.NoError(t, err)
	assert.Contains(t, out, "Mara Lind")
	assert.Contains(t, out, "@mara")
	assert.Contains(t, out, "tomo", "display name falls back to the username")
	assert.Contains(t, out, "page 1 of 1, 2 artists")
}

func TestArtists_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, pagination.NewResult([]domain.ArtistSummary{}, 0, pagination.DefaultParams()))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, nil, "artists", "--api", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "No artists found.")
}

func TestArtists_APIURLFromEnv(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "Bearer env-token", r.Header.Get("Authorization"))
		httputil.WriteJSON(w, http.StatusOK, pagination.NewResult([]domain.ArtistSummary{}, 0, pagination.DefaultParams()))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("ARTFOLIO_API_URL", srv.URL)
	t.Setenv("ARTFOLIO_TOKEN", "env-token")

	_, err := execute(t, nil, "artists")

	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNews(t *testing.T) {
	published := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/news", r.URL.Path)
		items := []domain.NewsFeedItem{{
			NewsPost: domain.NewsPost{ID: "p1", Title: "Summer show", Status: domain.NewsPublished, PublishedAt: &published},
			Author:   domain.ArtistSummary{Username: "mara"},
		}}
		httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(items, 1, pagination.DefaultParams()))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, nil, "news", "--api", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-01")
	assert.Contains(t, out, "Summer show")
	assert.Contains(t, out, "@mara")
}

func TestBrowse_RunsMicrositeModel(t *testing.T) {
	var got tea.Model
	c := &cli{run: func(_ context.Context, m tea.Model) error {
		got = m
		return nil
	}}

	_, err := execute(t, c, "browse", "Mara", "--api", "http://127.0.0.1:1", "--refresh", "5s")

	require.NoError(t, err)
	_, ok := got.(tui.Model)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, c.cfg.Refresh)
}

func TestBrowse_RequiresUsername(t *testing.T) {
	_, err := execute(t, nil, "browse")
	require.Error(t, err)

	_, err = execute(t, nil, "browse", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username must not be empty")
}

func TestToken_VerifiesWithSameSecret(t *testing.T) {
	t.Setenv("ARTFOLIO_JWT_SECRET", "s3cret")
	t.Setenv("ARTFOLIO_JWT_ISSUER", "artfolio-dev")

	out, err := execute(t, nil, "token", "--subject", "auth0|dev", "--name", "Dev", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.NewVerifier("s3cret", "artfolio-dev").Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "auth0|dev", claims.Subject)
	assert.Equal(t, "Dev", claims.Name)
}

func TestToken_RequiresSubject(t *testing.T) {
	_, err := execute(t, nil, "token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject")
}

func TestSetup_InvalidRefreshEnv(t *testing.T) {
	t.Setenv("ARTFOLIO_REFRESH", "soon")

	_, err := execute(t, nil, "artists", "--api", "http://127.0.0.1:1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
