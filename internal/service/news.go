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
	"github.com/utafrali/artfolio/pkg/pagination"
)

type NewsService struct {
	news   repository.NewsRepository
	events EventPublisher
	cache  invalidator
	logger *slog.Logger
	now    func() time.Time
}

func NewNewsService(
	news repository.NewsRepository,
	artists repository.ArtistRepository,
	cache repository.MicrositeCache,
	events EventPublisher,
	logger *slog.Logger,
) *NewsService {
	return &NewsService{
		news:   news,
		events: events,
		cache:  invalidator{artists: artists, cache: cache, logger: logger},
		logger: logger,
		now:    time.Now,
	}
}

// NewsInput carries every editable field. Status may be empty, which keeps
// the current status (draft for new posts).
type NewsInput struct {
	Title            string
	Content          string
	FeaturedImageURL string
	ImageAlt         string
	ExternalLink     string
	LinkButtonText   string
	Status           domain.NewsStatus
}

func (in *NewsInput) apply(p *domain.NewsPost) {
	p.Title = in.Title
	p.Content = in.Content
	p.FeaturedImageURL = in.FeaturedImageURL
	p.ImageAlt = in.ImageAlt
	p.ExternalLink = in.ExternalLink
	p.LinkButtonText = in.LinkButtonText
}

// ListMine returns all of the caller's posts, drafts included.
func (s *NewsService) ListMine(ctx context.Context, userID string) ([]domain.NewsPost, error) {
	posts, err := s.news.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list news posts: %w", err)
	}
	return posts, nil
}

// Get returns one of the caller's posts.
func (s *NewsService) Get(ctx context.Context, userID, id string) (*domain.NewsPost, error) {
	post, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news post: %w", err)
	}
	if err := owned("news post", id, post.UserID, userID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *NewsService) Create(ctx context.Context, userID string, input *NewsInput) (*domain.NewsPost, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown status %q", input.Status))
	}

	now := s.now().UTC()
	post := &domain.NewsPost{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    domain.NewsDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(post)
	if input.Status == domain.NewsPublished {
		post.Publish(now)
	}

	if err := s.news.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create news post: %w", err)
	}

	if post.IsPublished() {
		s.cache.user(ctx, userID)
		logPublishError(ctx, s.logger, domain.EventNewsPublished, post.ID, s.events.PublishNewsPublished(ctx, post))
	}

	s.logger.InfoContext(ctx, "news post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", userID),
		slog.String("status", string(post.Status)),
	)
	return post, nil
}

func (s *NewsService) Update(ctx context.Context, userID, id string, input *NewsInput) (*domain.NewsPost, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown status %q", input.Status))
	}

	post, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	wasPublished := post.IsPublished()

	now := s.now().UTC()
	input.apply(post)
	switch input.Status {
	case domain.NewsPublished:
		post.Publish(now)
	case domain.NewsDraft:
		post.Unpublish()
	}
	post.UpdatedAt = now

	if err := s.news.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update news post: %w", err)
	}

	if wasPublished || post.IsPublished() {
		s.cache.user(ctx, userID)
	}
	s.publishTransition(ctx, post, wasPublished)
	return post, nil
}

// Publish makes a post public. PublishedAt keeps the date of the first
// publish.
func (s *NewsService) Publish(ctx context.Context, userID, id string) (*domain.NewsPost, error) {
	return s.setStatus(ctx, userID, id, domain.NewsPublished)
}

func (s *NewsService) Unpublish(ctx context.Context, userID, id string) (*domain.NewsPost, error) {
	return s.setStatus(ctx, userID, id, domain.NewsDraft)
}

func (s *NewsService) setStatus(ctx context.Context, userID, id string, status domain.NewsStatus) (*domain.NewsPost, error) {
	post, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	wasPublished := post.IsPublished()
	if post.Status == status {
		return post, nil
	}

	now := s.now().UTC()
	if status == domain.NewsPublished {
		post.Publish(now)
	} else {
		post.Unpublish()
	}
	post.UpdatedAt = now

	if err := s.news.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("set news post status: %w", err)
	}

	s.cache.user(ctx, userID)
	s.publishTransition(ctx, post, wasPublished)

	s.logger.InfoContext(ctx, "news post status changed",
		slog.String("post_id", post.ID),
		slog.String("status", string(post.Status)),
	)
	return post, nil
}

func (s *NewsService) publishTransition(ctx context.Context, post *domain.NewsPost, wasPublished bool) {
	switch {
	case !wasPublished && post.IsPublished():
		logPublishError(ctx, s.logger, domain.EventNewsPublished, post.ID, s.events.PublishNewsPublished(ctx, post))
	case wasPublished && !post.IsPublished():
		logPublishError(ctx, s.logger, domain.EventNewsUnpublished, post.ID, s.events.PublishNewsUnpublished(ctx, post))
	}
}

func (s *NewsService) Delete(ctx context.Context, userID, id string) error {
	post, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.news.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete news post: %w", err)
	}

	if post.IsPublished() {
		s.cache.user(ctx, userID)
	}
	logPublishError(ctx, s.logger, domain.EventNewsDeleted, id, s.events.PublishNewsDeleted(ctx, post))
	return nil
}

// Feed returns one page of published posts from every artist, newest first.
func (s *NewsService) Feed(ctx context.Context, params pagination.Params) (pagination.Result[domain.NewsFeedItem], error) {
	items, total, err := s.news.ListPublished(ctx, params.Offset, params.PerPage)
	if err != nil {
		return pagination.Result[domain.NewsFeedItem]{}, fmt.Errorf("news feed: %w", err)
	}
	return pagination.NewResult(items, total, params), nil
}

// PublicPost returns a published post. Drafts are reported as not found.
func (s *NewsService) PublicPost(ctx context.Context, id string) (*domain.NewsPost, error) {
	post, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news post: %w", err)
	}
	if !post.IsPublished() {
		return nil, apperrors.NotFound("news post", id)
	}
	return post, nil
}
