package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/artfolio/internal/domain"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
	"github.com/utafrali/artfolio/pkg/httpclient"
	"github.com/utafrali/artfolio/pkg/httputil"
	"github.com/utafrali/artfolio/pkg/pagination"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cfg.Timeout = 2 * time.Second
	return New(httpclient.New(cfg), srv.URL+"/", testLogger(), opts...)
}

func TestMicrosite(t *testing.T) {
	year := 2021
	site := domain.NewMicrosite(
		domain.Artist{ID: "u1", Username: "mara", Name: "Mara"},
		[]domain.Artwork{{ID: "a1", Title: "Dusk", ImageURL: "https://cdn.example/dusk.jpg", YearCreated: &year}},
		nil,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/microsites/mara", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		httputil.WriteData(w, http.StatusOK, site)
	}, WithToken("tok"))

	got, err := c.Microsite(context.Background(), "mara")

	require.NoError(t, err)
	assert.Equal(t, "Mara", got.Artist.Name)
	require.Len(t, got.Media, 1)
	assert.Equal(t, 2021, got.Media[0].Year)
}

func TestMicrosite_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorCode(w, r, http.StatusNotFound, "NOT_FOUND", "artist ghost not found")
	})

	_, err := c.Microsite(context.Background(), "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "fetch microsite ghost")
}

func TestArtists_ForwardsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/v1/artists", r.URL.Path)
		assert.Equal(t, "mar", q.Get("q"))
		assert.Equal(t, "berlin", q.Get("location"))
		assert.False(t, q.Has("style"))
		assert.Equal(t, "2", q.Get("page"))
		params := pagination.Params{Page: 2, PerPage: 20, Offset: 20}
		httputil.WriteJSON(w, http.StatusOK, pagination.NewResult([]domain.ArtistSummary{{ID: "u1", Username: "mara"}}, 21, params))
	})

	got, err := c.Artists(context.Background(),
		domain.DirectoryQuery{Q: " mar ", Location: "berlin"},
		pagination.Params{Page: 2, PerPage: 20})

	require.NoError(t, err)
	assert.Equal(t, 21, got.TotalCount)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "mara", got.Data[0].Username)
}

func TestNews(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		params := pagination.DefaultParams()
		items := []domain.NewsFeedItem{{NewsPost: domain.NewsPost{ID: "p1", Title: "Opening"}}}
		httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(items, 1, params))
	})

	got, err := c.News(context.Background(), pagination.DefaultParams())

	require.NoError(t, err)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Opening", got.Data[0].Title)
}

func TestGet_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":`))
	})

	_, err := c.Microsite(context.Background(), "mara")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNewDefault_FallbackWhenOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"oops": "down"})
	}))
	t.Cleanup(srv.Close)

	c := NewDefault(srv.URL, testLogger())
	ctx := context.Background()

	var err error
	for i := 0; i < 10; i++ {
		_, err = c.Microsite(ctx, "mara")
		require.Error(t, err)
	}
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
