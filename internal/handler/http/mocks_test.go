package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/pkg/pagination"
)

var (
	_ ProfileService   = (*mockProfiles)(nil)
	_ ArtworkService   = (*mockArtworks)(nil)
	_ NewsService      = (*mockNews)(nil)
	_ MicrositeService = (*mockMicrosites)(nil)
	_ DirectoryService = (*mockDirectory)(nil)
	_ UploadService    = (*mockUploads)(nil)
)

// --- Profiles ---

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfile(ctx context.Context, userID string) (*domain.Artist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

func (m *mockProfiles) SaveProfile(ctx context.Context, userID string, input *service.SaveProfileInput) (*domain.Artist, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

// --- Artworks ---

type mockArtworks struct {
	mock.Mock
}

func (m *mockArtworks) List(ctx context.Context, userID string) ([]domain.Artwork, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Artwork), args.Error(1)
}

func (m *mockArtworks) Get(ctx context.Context, userID, id string) (*domain.Artwork, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworks) Create(ctx context.Context, userID string, input *service.ArtworkInput) (*domain.Artwork, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworks) Update(ctx context.Context, userID, id string, input *service.ArtworkInput) (*domain.Artwork, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworks) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockArtworks) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}

// --- News ---

type mockNews struct {
	mock.Mock
}

func (m *mockNews) post(args mock.Arguments) (*domain.NewsPost, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NewsPost), args.Error(1)
}

func (m *mockNews) ListMine(ctx context.Context, userID string) ([]domain.NewsPost, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.NewsPost), args.Error(1)
}

func (m *mockNews) Get(ctx context.Context, userID, id string) (*domain.NewsPost, error) {
	return m.post(m.Called(ctx, userID, id))
}

func (m *mockNews) Create(ctx context.Context, userID string, input *service.NewsInput) (*domain.NewsPost, error) {
	return m.post(m.Called(ctx, userID, input))
}

func (m *mockNews) Update(ctx context.Context, userID, id string, input *service.NewsInput) (*domain.NewsPost, error) {
	return m.post(m.Called(ctx, userID, id, input))
}

func (m *mockNews) Publish(ctx context.Context, userID, id string) (*domain.NewsPost, error) {
	return m.post(m.Called(ctx, userID, id))
}

func (m *mockNews) Unpublish(ctx context.Context, userID, id string) (*domain.NewsPost, error) {
	return m.post(m.Called(ctx, userID, id))
}

func (m *mockNews) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNews) Feed(ctx context.Context, params pagination.Params) (pagination.Result[domain.NewsFeedItem], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(pagination.Result[domain.NewsFeedItem]), args.Error(1)
}

func (m *mockNews) PublicPost(ctx context.Context, id string) (*domain.NewsPost, error) {
	return m.post(m.Called(ctx, id))
}

// --- Public ---

type mockMicrosites struct {
	mock.Mock
}

func (m *mockMicrosites) Get(ctx context.Context, username string) (*domain.Microsite, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Microsite), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Search(ctx context.Context, q domain.DirectoryQuery, params pagination.Params) (pagination.Result[domain.ArtistSummary], error) {
	args := m.Called(ctx, q, params)
	return args.Get(0).(pagination.Result[domain.ArtistSummary]), args.Error(1)
}

// --- Uploads ---

type mockUploads struct {
	mock.Mock
}

func (m *mockUploads) Upload(ctx context.Context, userID string, input *service.UploadInput) (*domain.Upload, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}
