// Package elasticsearch is the artist directory backed by an Elasticsearch
// index, for deployments where replicas share one directory.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/pagination"
)

type Config struct {
	URL       string
	IndexName string
}

// Index answers the same queries as directory.Index: substring matches on
// name, username and location, case-insensitive exact style, ordered by
// display name.
type Index struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

// document is the stored form of an artist.
type document struct {
	domain.ArtistSummary
	SortName string `json:"sort_name"`
}

func newDocument(a domain.ArtistSummary) document {
	return document{ArtistSummary: a, SortName: strings.ToLower(a.DisplayName())}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID    string `json:"_id"`
			Error struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// New connects to the cluster and creates the index when it is missing.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Index, error) {
	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: create client: %w", err)
	}

	x := &Index{client: client, indexName: cfg.IndexName, logger: logger}
	if err := x.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("elasticsearch: ensure index: %w", err)
	}
	return x, nil
}

func (x *Index) Ping(ctx context.Context) error {
	res, err := x.client.Ping(x.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

func (x *Index) ensureIndex(ctx context.Context) error {
	res, err := x.client.Indices.Exists([]string{x.indexName}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.client.Indices.Create(
		x.indexName,
		x.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
		x.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return responseError("create index", res)
	}
	x.logger.InfoContext(ctx, "elasticsearch index created", slog.String("index", x.indexName))
	return nil
}

// Index adds or replaces one artist. Summaries without a username are not
// listed and remove any previous document.
func (x *Index) Index(ctx context.Context, artist domain.ArtistSummary) error {
	if artist.Username == "" {
		return x.Delete(ctx, artist.ID)
	}

	data, err := json.Marshal(newDocument(artist))
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal artist: %w", err)
	}
	res, err := x.client.Index(
		x.indexName,
		bytes.NewReader(data),
		x.client.Index.WithDocumentID(artist.ID),
		x.client.Index.WithRefresh("true"),
		x.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return responseError("elasticsearch index", res)
	}
	return nil
}

// Delete removes an artist; a missing document is not an error.
func (x *Index) Delete(ctx context.Context, id string) error {
	res, err := x.client.Delete(
		x.indexName,
		id,
		x.client.Delete.WithRefresh("true"),
		x.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("elasticsearch delete", res)
	}
	return nil
}

// Replace bulk-indexes artists and then deletes every other document.
func (x *Index) Replace(ctx context.Context, artists []domain.ArtistSummary) error {
	ids := make([]string, 0, len(artists))
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, a := range artists {
		if a.Username == "" {
			continue
		}
		action := map[string]any{"index": map[string]any{"_index": x.indexName, "_id": a.ID}}
		if err := enc.Encode(action); err != nil {
			return fmt.Errorf("elasticsearch replace: encode action: %w", err)
		}
		if err := enc.Encode(newDocument(a)); err != nil {
			return fmt.Errorf("elasticsearch replace: encode artist: %w", err)
		}
		ids = append(ids, a.ID)
	}

	if len(ids) > 0 {
		if err := x.bulk(ctx, &buf); err != nil {
			return err
		}
	}
	return x.deleteOthers(ctx, ids)
}

func (x *Index) bulk(ctx context.Context, body *bytes.Buffer) error {
	res, err := x.client.Bulk(
		bytes.NewReader(body.Bytes()),
		x.client.Bulk.WithIndex(x.indexName),
		x.client.Bulk.WithRefresh("true"),
		x.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return responseError("elasticsearch bulk", res)
	}

	var bulk bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return fmt.Errorf("elasticsearch bulk: decode response: %w", err)
	}
	if bulk.Errors {
		var msgs []string
		for _, item := range bulk.Items {
			if item.Index.Error.Type != "" {
				msgs = append(msgs, fmt.Sprintf("id=%s: %s: %s", item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason))
			}
		}
		return fmt.Errorf("elasticsearch bulk: partial errors: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (x *Index) deleteOthers(ctx context.Context, keep []string) error {
	var query map[string]any
	if len(keep) == 0 {
		query = map[string]any{"match_all": map[string]any{}}
	} else {
		query = map[string]any{"bool": map[string]any{
			"must_not": map[string]any{"ids": map[string]any{"values": keep}},
		}}
	}
	data, err := json.Marshal(map[string]any{"query": query})
	if err != nil {
		return fmt.Errorf("elasticsearch replace: marshal query: %w", err)
	}

	res, err := x.client.DeleteByQuery(
		[]string{x.indexName},
		bytes.NewReader(data),
		x.client.DeleteByQuery.WithConflicts("proceed"),
		x.client.DeleteByQuery.WithRefresh(true),
		x.client.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch replace: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return responseError("elasticsearch replace", res)
	}
	return nil
}

func (x *Index) Search(ctx context.Context, q domain.DirectoryQuery, params pagination.Params) ([]domain.ArtistSummary, int, error) {
	data, err := json.Marshal(buildQuery(q, params))
	if err != nil {
		return nil, 0, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithIndex(x.indexName),
		x.client.Search.WithBody(bytes.NewReader(data)),
		x.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, 0, responseError("elasticsearch search", res)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, 0, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}
	artists := make([]domain.ArtistSummary, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		artists = append(artists, hit.Source.ArtistSummary)
	}
	return artists, sr.Hits.Total.Value, nil
}

// DeleteIndex drops the whole index. A missing index is not an error.
func (x *Index) DeleteIndex(ctx context.Context) error {
	res, err := x.client.Indices.Delete([]string{x.indexName}, x.client.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch delete index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("elasticsearch delete index", res)
	}
	return nil
}

func buildQuery(q domain.DirectoryQuery, params pagination.Params) map[string]any {
	var filters []any
	if needle := strings.ToLower(strings.TrimSpace(q.Q)); needle != "" {
		filters = append(filters, map[string]any{"bool": map[string]any{
			"should": []any{
				contains("name", needle),
				contains("username", needle),
			},
			"minimum_should_match": 1,
		}})
	}
	if loc := strings.ToLower(strings.TrimSpace(q.Location)); loc != "" {
		filters = append(filters, contains("location", loc))
	}
	if style := strings.TrimSpace(q.Style); style != "" {
		filters = append(filters, map[string]any{"term": map[string]any{
			"style": map[string]any{"value": style, "case_insensitive": true},
		}})
	}

	query := map[string]any{"match_all": map[string]any{}}
	if len(filters) > 0 {
		query = map[string]any{"bool": map[string]any{"filter": filters}}
	}

	return map[string]any{
		"query": query,
		"from":  params.Offset,
		"size":  params.PerPage,
		"sort": []any{
			map[string]any{"sort_name": "asc"},
			map[string]any{"username": "asc"},
		},
		"track_total_hits": true,
	}
}

func contains(field, needle string) map[string]any {
	return map[string]any{"wildcard": map[string]any{
		field: map[string]any{"value": "*" + escapeWildcard(needle) + "*", "case_insensitive": true},
	}}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}

func responseError(op string, res *esapi.Response) error {
	var er errorResponse
	if err := json.NewDecoder(res.Body).Decode(&er); err == nil && er.Error.Type != "" {
		return fmt.Errorf("%s: %s: %s", op, er.Error.Type, er.Error.Reason)
	}
	return fmt.Errorf("%s: unexpected status %s", op, res.Status())
}
