// Package repository declares the persistence contracts the services depend
// on. Implementations live in the postgres and redis subpackages.
package repository

import (
	"context"
	"time"

	"github.com/utafrali/artfolio/internal/domain"
)

type ArtistRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Artist, error)
	GetByUsername(ctx context.Context, username string) (*domain.Artist, error)

	// Upsert creates the profile on first save and updates it afterwards.
	// A username held by another artist yields apperrors.ErrAlreadyExists.
	Upsert(ctx context.Context, artist *domain.Artist) error

	// ListSummaries returns every artist that has claimed a username, for
	// loading the directory index.
	ListSummaries(ctx context.Context) ([]domain.ArtistSummary, error)
}

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *domain.Artwork) error
	GetByID(ctx context.Context, id string) (*domain.Artwork, error)

	// ListByUser returns the artist's artworks in display order.
	ListByUser(ctx context.Context, userID string) ([]domain.Artwork, error)

	// Update modifies an artwork owned by artwork.UserID.
	Update(ctx context.Context, artwork *domain.Artwork) error
	Delete(ctx context.Context, id, userID string) error

	// Reorder assigns sort_order 0..n-1 following ids. Every id must belong
	// to userID or nothing is changed.
	Reorder(ctx context.Context, userID string, ids []string) error

	// NextSortOrder returns the position after the artist's last artwork.
	NextSortOrder(ctx context.Context, userID string) (int, error)
}

type NewsRepository interface {
	Create(ctx context.Context, post *domain.NewsPost) error
	GetByID(ctx context.Context, id string) (*domain.NewsPost, error)
	ListByUser(ctx context.Context, userID string) ([]domain.NewsPost, error)
	ListPublishedByUser(ctx context.Context, userID string) ([]domain.NewsPost, error)

	// ListPublished returns one page of the public feed, newest first, and
	// the total number of published posts.
	ListPublished(ctx context.Context, offset, limit int) ([]domain.NewsFeedItem, int, error)

	Update(ctx context.Context, post *domain.NewsPost) error
	Delete(ctx context.Context, id, userID string) error
}

// MicrositeCache stores rendered microsites keyed by username.
type MicrositeCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, username string) (*domain.Microsite, error)
	Set(ctx context.Context, username string, site *domain.Microsite, ttl time.Duration) error
	Invalidate(ctx context.Context, username string) error
}
