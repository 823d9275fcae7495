package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/repository"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
	"github.com/utafrali/artfolio/pkg/slug"
	"github.com/utafrali/artfolio/pkg/validator"
)

// DirectoryIndexer receives profile changes so the directory reflects them
// without waiting for the event round trip.
type DirectoryIndexer interface {
	Index(ctx context.Context, artist domain.ArtistSummary) error
}

type ProfileService struct {
	artists repository.ArtistRepository
	index   DirectoryIndexer
	events  EventPublisher
	cache   invalidator
	logger  *slog.Logger
}

func NewProfileService(
	artists repository.ArtistRepository,
	cache repository.MicrositeCache,
	index DirectoryIndexer,
	events EventPublisher,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		artists: artists,
		index:   index,
		events:  events,
		cache:   invalidator{artists: artists, cache: cache, logger: logger},
		logger:  logger,
	}
}

// SaveProfileInput replaces every editable profile field.
type SaveProfileInput struct {
	Username        string
	Name            string
	BioShort        string
	BioLong         string
	Location        string
	Style           string
	WebsiteURL      string
	InstagramHandle string
	ContactEmail    string
	ProfileImageURL string
	HeaderBannerURL string
}

// GetProfile returns the caller's profile, or a not-found error before the
// first save.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Artist, error) {
	artist, err := s.artists.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return artist, nil
}

// SaveProfile creates or updates the caller's profile. An empty username is
// derived from the name.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, input *SaveProfileInput) (*domain.Artist, error) {
	username := domain.NormalizeUsername(input.Username)
	if username == "" {
		username = slug.Username(input.Name)
	}
	if err := checkUsername(username); err != nil {
		return nil, err
	}

	var previous string
	existing, err := s.artists.GetByID(ctx, userID)
	switch {
	case err == nil:
		previous = existing.Username
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("load profile: %w", err)
	}

	artist := &domain.Artist{
		ID:              userID,
		Username:        username,
		Name:            input.Name,
		BioShort:        input.BioShort,
		BioLong:         input.BioLong,
		Location:        input.Location,
		Style:           input.Style,
		WebsiteURL:      input.WebsiteURL,
		InstagramHandle: domain.NormalizeInstagramHandle(input.InstagramHandle),
		ContactEmail:    input.ContactEmail,
		ProfileImageURL: input.ProfileImageURL,
		HeaderBannerURL: input.HeaderBannerURL,
	}
	if err := s.artists.Upsert(ctx, artist); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if previous != username {
		s.cache.username(ctx, previous)
	}
	s.cache.username(ctx, username)

	if err := s.index.Index(ctx, artist.Summary()); err != nil {
		s.logger.WarnContext(ctx, "failed to index artist",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	logPublishError(ctx, s.logger, domain.EventArtistUpdated, userID, s.events.PublishArtistUpdated(ctx, artist))

	s.logger.InfoContext(ctx, "profile saved",
		slog.String("user_id", userID),
		slog.String("username", username),
		slog.Bool("created", existing == nil),
	)
	return artist, nil
}

func checkUsername(username string) error {
	if username == "" {
		return apperrors.InvalidInput("username is required")
	}
	if !validator.UsernamePattern.MatchString(username) {
		return apperrors.InvalidInput(fmt.Sprintf("username %q must be 3-30 characters of lowercase letters, digits, '_' or '-'", username))
	}
	if domain.IsReservedUsername(username) {
		return apperrors.InvalidInput(fmt.Sprintf("username %q is reserved", username))
	}
	return nil
}
