package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/pagination"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repositories ---

type mockArtistRepo struct{ mock.Mock }

func (m *mockArtistRepo) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

func (m *mockArtistRepo) GetByUsername(ctx context.Context, username string) (*domain.Artist, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

func (m *mockArtistRepo) Upsert(ctx context.Context, artist *domain.Artist) error {
	return m.Called(ctx, artist).Error(0)
}

func (m *mockArtistRepo) ListSummaries(ctx context.Context) ([]domain.ArtistSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArtistSummary), args.Error(1)
}

type mockArtworkRepo struct{ mock.Mock }

func (m *mockArtworkRepo) Create(ctx context.Context, a *domain.Artwork) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockArtworkRepo) GetByID(ctx context.Context, id string) (*domain.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepo) ListByUser(ctx context.Context, userID string) ([]domain.Artwork, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepo) Update(ctx context.Context, a *domain.Artwork) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockArtworkRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockArtworkRepo) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}

func (m *mockArtworkRepo) NextSortOrder(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockNewsRepo struct{ mock.Mock }

func (m *mockNewsRepo) Create(ctx context.Context, p *domain.NewsPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockNewsRepo) GetByID(ctx context.Context, id string) (*domain.NewsPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NewsPost), args.Error(1)
}

func (m *mockNewsRepo) ListByUser(ctx context.Context, userID string) ([]domain.NewsPost, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NewsPost), args.Error(1)
}

func (m *mockNewsRepo) ListPublishedByUser(ctx context.Context, userID string) ([]domain.NewsPost, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NewsPost), args.Error(1)
}

func (m *mockNewsRepo) ListPublished(ctx context.Context, offset, limit int) ([]domain.NewsFeedItem, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.NewsFeedItem), args.Int(1), args.Error(2)
}

func (m *mockNewsRepo) Update(ctx context.Context, p *domain.NewsPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockNewsRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, username string) (*domain.Microsite, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Microsite), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, username string, site *domain.Microsite, ttl time.Duration) error {
	return m.Called(ctx, username, site, ttl).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

// --- collaborators ---

type mockEvents struct{ mock.Mock }

func (m *mockEvents) PublishArtistUpdated(ctx context.Context, a *domain.Artist) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockEvents) PublishArtworkCreated(ctx context.Context, a *domain.Artwork) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockEvents) PublishArtworkUpdated(ctx context.Context, a *domain.Artwork) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockEvents) PublishArtworkDeleted(ctx context.Context, a *domain.Artwork) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockEvents) PublishArtworksReordered(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}

func (m *mockEvents) PublishNewsPublished(ctx context.Context, p *domain.NewsPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockEvents) PublishNewsUnpublished(ctx context.Context, p *domain.NewsPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockEvents) PublishNewsDeleted(ctx context.Context, p *domain.NewsPost) error {
	return m.Called(ctx, p).Error(0)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) Index(ctx context.Context, a domain.ArtistSummary) error {
	return m.Called(ctx, a).Error(0)
}

type mockDirectoryIndex struct{ mock.Mock }

func (m *mockDirectoryIndex) Search(ctx context.Context, q domain.DirectoryQuery, p pagination.Params) ([]domain.ArtistSummary, int, error) {
	args := m.Called(ctx, q, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ArtistSummary), args.Int(1), args.Error(2)
}

func (m *mockDirectoryIndex) Replace(ctx context.Context, artists []domain.ArtistSummary) error {
	return m.Called(ctx, artists).Error(0)
}

func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
