//go:build integration

// These tests drive a running server end to end. Start the stack, then:
//
//	go test -tags integration ./internal/app/...
//
// ARTFOLIO_API_URL and JWT_SECRET must match the server under test. The
// tests skip when the server is not reachable.
package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/artfolio/internal/auth"
	"github.com/utafrali/artfolio/internal/client"
	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/pagination"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func baseURL() string {
	return envOr("ARTFOLIO_API_URL", "http://localhost:8080")
}

func skipIfNotRunning(t *testing.T) {
	t.Helper()
	c := &http.Client{Timeout: 2 * time.Second}
	resp, err := c.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("artfolio api at %s not reachable: %v", baseURL(), err)
	}
	resp.Body.Close()
}

// artistToken signs a token the server accepts for a fresh subject.
func artistToken(t *testing.T, subject string) string {
	t.Helper()
	var opts []auth.Option
	if aud := os.Getenv("JWT_AUDIENCE"); aud != "" {
		opts = append(opts, auth.WithAudience(aud))
	}
	v := auth.NewVerifier(envOr("JWT_SECRET", "artfolio-dev-secret"), os.Getenv("JWT_ISSUER"), opts...)
	token, err := v.Issue(subject, subject+"@test.example.com", "Flow Test", time.Hour)
	require.NoError(t, err)
	return token
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano()%1e6, rand.IntN(10000))
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, method, path, token string, body any, dst any) int {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL()+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if dst != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return resp.StatusCode
}

func publicClient() *client.Client {
	return client.NewDefault(baseURL(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestArtistFlow(t *testing.T) {
	skipIfNotRunning(t)

	username := uniqueName("flow")
	token := artistToken(t, "test|"+username)

	var profile domain.Artist
	status := doJSON(t, http.MethodPut, "/api/v1/me/profile", token, map[string]any{
		"username": username,
		"name":     "Flow Test",
		"location": "Testville",
		"style":    "ink",
	}, &profile)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, username, profile.Username)

	ids := make([]string, 0, 3)
	for i, title := range []string{"First", "Second", "Third"} {
		var a domain.Artwork
		status := doJSON(t, http.MethodPost, "/api/v1/me/artworks", token, map[string]any{
			"title":        title,
			"image_url":    fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", username, i),
			"year_created": 2020 + i,
			"available":    true,
		}, &a)
		require.Equal(t, http.StatusCreated, status)
		ids = append(ids, a.ID)
	}
	t.Cleanup(func() {
		for _, id := range ids {
			doJSON(t, http.MethodDelete, "/api/v1/me/artworks/"+id, token, nil, nil)
		}
	})

	reversed := []string{ids[2], ids[1], ids[0]}
	var ordered []domain.Artwork
	status = doJSON(t, http.MethodPut, "/api/v1/me/artworks/order", token, map[string]any{"artwork_ids": reversed}, &ordered)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, ordered, 3)
	assert.Equal(t, "Third", ordered[0].Title)

	var post domain.NewsPost
	status = doJSON(t, http.MethodPost, "/api/v1/me/news", token, map[string]any{
		"title":   "Flow opening",
		"content": "Doors at seven.",
	}, &post)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, domain.NewsDraft, post.Status)
	t.Cleanup(func() {
		doJSON(t, http.MethodDelete, "/api/v1/me/news/"+post.ID, token, nil, nil)
	})

	status = doJSON(t, http.MethodGet, "/api/v1/news/"+post.ID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status, "drafts are not public")

	status = doJSON(t, http.MethodPost, "/api/v1/me/news/"+post.ID+"/publish", token, nil, &post)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, post.PublishedAt)

	ctx := context.Background()
	site, err := publicClient().Microsite(ctx, username)
	require.NoError(t, err)
	require.Len(t, site.Media, 3)
	assert.Equal(t, "Third", site.Media[0].Title)
	assert.Len(t, site.MoreWorks(), 2)
	require.Len(t, site.News, 1)
	assert.Equal(t, "Flow opening", site.News[0].Title)
}

func TestDirectoryPicksUpNewArtist(t *testing.T) {
	skipIfNotRunning(t)

	username := uniqueName("dir")
	token := artistToken(t, "test|"+username)
	status := doJSON(t, http.MethodPut, "/api/v1/me/profile", token, map[string]any{
		"username": username,
		"name":     "Directory Test",
		"style":    "collage",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	c := publicClient()
	require.Eventually(t, func() bool {
		res, err := c.Artists(context.Background(), domain.DirectoryQuery{Q: username}, pagination.DefaultParams())
		return err == nil && len(res.Data) == 1 && res.Data[0].Username == username
	}, 15*time.Second, 250*time.Millisecond)
}

func TestUnknownMicrosite(t *testing.T) {
	skipIfNotRunning(t)

	_, err := publicClient().Microsite(context.Background(), uniqueName("ghost"))
	require.Error(t, err)
}
