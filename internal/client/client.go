// Package client reads the public artfolio API for the terminal browser.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/artfolio/internal/domain"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
	"github.com/utafrali/artfolio/pkg/httpclient"
	"github.com/utafrali/artfolio/pkg/pagination"
)

// HTTPDoer is satisfied by httpclient.Client and
// httpclient.CircuitBreakerClient.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

const upstream = "artfolio api"

type Client struct {
	http    HTTPDoer
	baseURL string
	token   string
	logger  *slog.Logger
}

type Option func(*Client)

// WithToken sends token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(doer HTTPDoer, baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{http: doer, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault builds a client on the retrying, circuit-broken HTTP stack.
func NewDefault(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("artfolio-api"),
		logger,
	).WithFallback(func(context.Context, error) (*http.Response, error) {
		return nil, apperrors.ServiceUnavailable("artfolio api is unavailable, retry shortly")
	})
	return New(breaker, baseURL, logger, opts...)
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// Microsite fetches the public page of username.
func (c *Client) Microsite(ctx context.Context, username string) (*domain.Microsite, error) {
	var env dataEnvelope[domain.Microsite]
	if err := c.get(ctx, "/api/v1/microsites/"+url.PathEscape(username), nil, &env); err != nil {
		return nil, fmt.Errorf("fetch microsite %s: %w", username, err)
	}
	return &env.Data, nil
}

// Artists searches the directory.
func (c *Client) Artists(ctx context.Context, q domain.DirectoryQuery, params pagination.Params) (pagination.Result[domain.ArtistSummary], error) {
	query := pageQuery(params)
	setIf(query, "q", q.Q)
	setIf(query, "location", q.Location)
	setIf(query, "style", q.Style)

	var result pagination.Result[domain.ArtistSummary]
	if err := c.get(ctx, "/api/v1/artists", query, &result); err != nil {
		return result, fmt.Errorf("search artists: %w", err)
	}
	return result, nil
}

// News fetches one page of the public feed.
func (c *Client) News(ctx context.Context, params pagination.Params) (pagination.Result[domain.NewsFeedItem], error) {
	var result pagination.Result[domain.NewsFeedItem]
	if err := c.get(ctx, "/api/v1/news", pageQuery(params), &result); err != nil {
		return result, fmt.Errorf("fetch news feed: %w", err)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call %s: %w", upstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, upstream)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.logger.DebugContext(ctx, "api call", slog.String("path", path), slog.Int("status", resp.StatusCode))
	return nil
}

func pageQuery(p pagination.Params) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.Set(key, value)
	}
}
