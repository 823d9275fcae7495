package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/repository"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

type ArtworkService struct {
	artworks repository.ArtworkRepository
	events   EventPublisher
	cache    invalidator
	logger   *slog.Logger
}

func NewArtworkService(
	artworks repository.ArtworkRepository,
	artists repository.ArtistRepository,
	cache repository.MicrositeCache,
	events EventPublisher,
	logger *slog.Logger,
) *ArtworkService {
	return &ArtworkService{
		artworks: artworks,
		events:   events,
		cache:    invalidator{artists: artists, cache: cache, logger: logger},
		logger:   logger,
	}
}

// ArtworkInput carries every editable artwork field.
type ArtworkInput struct {
	Title       string
	Description string
	ImageURL    string
	AltText     string
	YearCreated *int
	Medium      string
	Dimensions  string
	Price       *int64
	Available   bool
}

func (in *ArtworkInput) apply(a *domain.Artwork) {
	a.Title = in.Title
	a.Description = in.Description
	a.ImageURL = in.ImageURL
	a.AltText = in.AltText
	a.YearCreated = in.YearCreated
	a.Medium = in.Medium
	a.Dimensions = in.Dimensions
	a.Price = in.Price
	a.Available = in.Available
}

// List returns the artist's artworks in display order.
func (s *ArtworkService) List(ctx context.Context, userID string) ([]domain.Artwork, error) {
	artworks, err := s.artworks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	return artworks, nil
}

// Get returns one of the caller's artworks.
func (s *ArtworkService) Get(ctx context.Context, userID, id string) (*domain.Artwork, error) {
	artwork, err := s.artworks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artwork: %w", err)
	}
	if err := owned("artwork", id, artwork.UserID, userID); err != nil {
		return nil, err
	}
	return artwork, nil
}

// Create appends a new artwork to the end of the artist's gallery.
func (s *ArtworkService) Create(ctx context.Context, userID string, input *ArtworkInput) (*domain.Artwork, error) {
	next, err := s.artworks.NextSortOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	now := time.Now().UTC()
	artwork := &domain.Artwork{
		ID:        uuid.New().String(),
		UserID:    userID,
		SortOrder: next,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(artwork)

	if err := s.artworks.Create(ctx, artwork); err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	s.cache.user(ctx, userID)
	logPublishError(ctx, s.logger, domain.EventArtworkCreated, artwork.ID, s.events.PublishArtworkCreated(ctx, artwork))

	s.logger.InfoContext(ctx, "artwork created",
		slog.String("artwork_id", artwork.ID),
		slog.String("user_id", userID),
		slog.Int("sort_order", artwork.SortOrder),
	)
	return artwork, nil
}

func (s *ArtworkService) Update(ctx context.Context, userID, id string, input *ArtworkInput) (*domain.Artwork, error) {
	artwork, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	input.apply(artwork)
	artwork.UpdatedAt = time.Now().UTC()

	if err := s.artworks.Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("update artwork: %w", err)
	}

	s.cache.user(ctx, userID)
	logPublishError(ctx, s.logger, domain.EventArtworkUpdated, artwork.ID, s.events.PublishArtworkUpdated(ctx, artwork))
	return artwork, nil
}

func (s *ArtworkService) Delete(ctx context.Context, userID, id string) error {
	artwork, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.artworks.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	s.cache.user(ctx, userID)
	logPublishError(ctx, s.logger, domain.EventArtworkDeleted, id, s.events.PublishArtworkDeleted(ctx, artwork))

	s.logger.InfoContext(ctx, "artwork deleted",
		slog.String("artwork_id", id),
		slog.String("user_id", userID),
	)
	return nil
}

// Reorder rewrites the display order. ids must list each of the artist's
// artworks exactly once.
func (s *ArtworkService) Reorder(ctx context.Context, userID string, ids []string) error {
	current, err := s.artworks.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("reorder artworks: %w", err)
	}
	if len(ids) != len(current) {
		return apperrors.InvalidInput(fmt.Sprintf("order lists %d artworks, gallery has %d", len(ids), len(current)))
	}

	known := make(map[string]bool, len(current))
	for _, a := range current {
		known[a.ID] = false
	}
	for _, id := range ids {
		seen, ok := known[id]
		if !ok {
			return apperrors.NotFound("artwork", id)
		}
		if seen {
			return apperrors.InvalidInput(fmt.Sprintf("artwork %s listed twice", id))
		}
		known[id] = true
	}

	if err := s.artworks.Reorder(ctx, userID, ids); err != nil {
		return fmt.Errorf("reorder artworks: %w", err)
	}

	s.cache.user(ctx, userID)
	logPublishError(ctx, s.logger, domain.EventArtworkReordered, userID, s.events.PublishArtworksReordered(ctx, userID, ids))
	return nil
}
