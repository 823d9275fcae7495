package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/repository"
)

type MicrositeService struct {
	artists  repository.ArtistRepository
	artworks repository.ArtworkRepository
	news     repository.NewsRepository
	cache    repository.MicrositeCache
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewMicrositeService(
	artists repository.ArtistRepository,
	artworks repository.ArtworkRepository,
	news repository.NewsRepository,
	cache repository.MicrositeCache,
	ttl time.Duration,
	logger *slog.Logger,
) *MicrositeService {
	return &MicrositeService{
		artists:  artists,
		artworks: artworks,
		news:     news,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Get assembles the public page of username. Cache failures fall through
// to the database. The cache write is not ordered against Invalidate: an
// edit that lands between the database reads and Set leaves the older page
// cached until the TTL expires.
func (s *MicrositeService) Get(ctx context.Context, username string) (*domain.Microsite, error) {
	username = domain.NormalizeUsername(username)

	cached, err := s.cache.Get(ctx, username)
	if err != nil {
		s.logger.WarnContext(ctx, "microsite cache read failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}
	if cached != nil {
		return cached, nil
	}

	artist, err := s.artists.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get microsite: %w", err)
	}
	artworks, err := s.artworks.ListByUser(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("get microsite artworks: %w", err)
	}
	news, err := s.news.ListPublishedByUser(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("get microsite news: %w", err)
	}

	site := domain.NewMicrosite(*artist, artworks, news, s.now())

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, username, site, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "microsite cache write failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
	}
	return site, nil
}
