// Package service holds the artfolio business logic between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/repository"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

// EventPublisher is implemented by event.Producer and event.Noop.
type EventPublisher interface {
	PublishArtistUpdated(ctx context.Context, artist *domain.Artist) error
	PublishArtworkCreated(ctx context.Context, artwork *domain.Artwork) error
	PublishArtworkUpdated(ctx context.Context, artwork *domain.Artwork) error
	PublishArtworkDeleted(ctx context.Context, artwork *domain.Artwork) error
	PublishArtworksReordered(ctx context.Context, userID string, ids []string) error
	PublishNewsPublished(ctx context.Context, post *domain.NewsPost) error
	PublishNewsUnpublished(ctx context.Context, post *domain.NewsPost) error
	PublishNewsDeleted(ctx context.Context, post *domain.NewsPost) error
}

// invalidator drops the cached microsite of an artist after any change to
// their public content. Failures are logged: a stale page expires with the
// cache TTL.
type invalidator struct {
	artists repository.ArtistRepository
	cache   repository.MicrositeCache
	logger  *slog.Logger
}

func (i invalidator) username(ctx context.Context, username string) {
	if username == "" {
		return
	}
	if err := i.cache.Invalidate(ctx, username); err != nil {
		i.logger.WarnContext(ctx, "failed to invalidate microsite cache",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}
}

func (i invalidator) user(ctx context.Context, userID string) {
	artist, err := i.artists.GetByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return
	}
	if err != nil {
		i.logger.WarnContext(ctx, "failed to resolve artist for cache invalidation",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return
	}
	i.username(ctx, artist.Username)
}

// logPublishError reports a failed event publish without failing the
// request that caused it.
func logPublishError(ctx context.Context, logger *slog.Logger, eventType, aggregateID string, err error) {
	if err == nil {
		return
	}
	logger.ErrorContext(ctx, "failed to publish event",
		slog.String("event_type", eventType),
		slog.String("aggregate_id", aggregateID),
		slog.String("error", err.Error()),
	)
}

// owned hides records of other artists behind a not-found error.
func owned(resource, id, owner, userID string) error {
	if owner != userID {
		return apperrors.NotFound(resource, id)
	}
	return nil
}
