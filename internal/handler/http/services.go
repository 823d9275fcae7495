package http

import (
	"context"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/service"
	"github.com/utafrali/artfolio/pkg/pagination"
)

// The handlers depend on these narrow views of the services so they can be
// tested without a database.

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Artist, error)
	SaveProfile(ctx context.Context, userID string, input *service.SaveProfileInput) (*domain.Artist, error)
}

type ArtworkService interface {
	List(ctx context.Context, userID string) ([]domain.Artwork, error)
	Get(ctx context.Context, userID, id string) (*domain.Artwork, error)
	Create(ctx context.Context, userID string, input *service.ArtworkInput) (*domain.Artwork, error)
	Update(ctx context.Context, userID, id string, input *service.ArtworkInput) (*domain.Artwork, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
}

type NewsService interface {
	ListMine(ctx context.Context, userID string) ([]domain.NewsPost, error)
	Get(ctx context.Context, userID, id string) (*domain.NewsPost, error)
	Create(ctx context.Context, userID string, input *service.NewsInput) (*domain.NewsPost, error)
	Update(ctx context.Context, userID, id string, input *service.NewsInput) (*domain.NewsPost, error)
	Publish(ctx context.Context, userID, id string) (*domain.NewsPost, error)
	Unpublish(ctx context.Context, userID, id string) (*domain.NewsPost, error)
	Delete(ctx context.Context, userID, id string) error
	Feed(ctx context.Context, params pagination.Params) (pagination.Result[domain.NewsFeedItem], error)
	PublicPost(ctx context.Context, id string) (*domain.NewsPost, error)
}

type MicrositeService interface {
	Get(ctx context.Context, username string) (*domain.Microsite, error)
}

type DirectoryService interface {
	Search(ctx context.Context, q domain.DirectoryQuery, params pagination.Params) (pagination.Result[domain.ArtistSummary], error)
}

type UploadService interface {
	Upload(ctx context.Context, userID string, input *service.UploadInput) (*domain.Upload, error)
}

var (
	_ ProfileService   = (*service.ProfileService)(nil)
	_ ArtworkService   = (*service.ArtworkService)(nil)
	_ NewsService      = (*service.NewsService)(nil)
	_ MicrositeService = (*service.MicrositeService)(nil)
	_ DirectoryService = (*service.DirectoryService)(nil)
	_ UploadService    = (*service.UploadService)(nil)
)
