package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/repository"
	"github.com/utafrali/artfolio/pkg/pagination"
)

// DirectoryIndex is the searchable store behind the directory.
type DirectoryIndex interface {
	Search(ctx context.Context, q domain.DirectoryQuery, params pagination.Params) ([]domain.ArtistSummary, int, error)
	Replace(ctx context.Context, artists []domain.ArtistSummary) error
}

type DirectoryService struct {
	index   DirectoryIndex
	artists repository.ArtistRepository
	logger  *slog.Logger
}

func NewDirectoryService(index DirectoryIndex, artists repository.ArtistRepository, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{index: index, artists: artists, logger: logger}
}

func (s *DirectoryService) Search(ctx context.Context, q domain.DirectoryQuery, params pagination.Params) (pagination.Result[domain.ArtistSummary], error) {
	artists, total, err := s.index.Search(ctx, q, params)
	if err != nil {
		return pagination.Result[domain.ArtistSummary]{}, fmt.Errorf("search directory: %w", err)
	}
	return pagination.NewResult(artists, total, params), nil
}

// Rebuild reloads the index from the database.
func (s *DirectoryService) Rebuild(ctx context.Context) error {
	artists, err := s.artists.ListSummaries(ctx)
	if err != nil {
		return fmt.Errorf("rebuild directory: %w", err)
	}
	if err := s.index.Replace(ctx, artists); err != nil {
		return fmt.Errorf("rebuild directory: %w", err)
	}
	s.logger.InfoContext(ctx, "directory index rebuilt", slog.Int("artists", len(artists)))
	return nil
}
