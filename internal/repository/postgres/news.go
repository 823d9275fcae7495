package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/database"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

const newsColumns = `id, user_id, title, content, featured_image_url, image_alt, external_link,
		link_button_text, status, published_at, created_at, updated_at`

// NewsRepository implements repository.NewsRepository.
type NewsRepository struct {
	db database.DBTX
}

func NewNewsRepository(db database.DBTX) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(ctx context.Context, p *domain.NewsPost) (err error) {
	query := `
		INSERT INTO news_posts (id, user_id, title, content, featured_image_url, image_alt, external_link,
			link_button_text, status, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	ctx, end := database.TraceQuery(ctx, "CreateNewsPost", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Title,
		p.Content,
		p.FeaturedImageURL,
		p.ImageAlt,
		p.ExternalLink,
		p.LinkButtonText,
		string(p.Status),
		p.PublishedAt,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert news post: %w", err)
	}
	return nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (p *domain.NewsPost, err error) {
	query := `SELECT ` + newsColumns + ` FROM news_posts WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetNewsPost", query)
	defer func() { end(err) }()

	p, err = scanNewsPost(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("news post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get news post %s: %w", id, err)
	}
	return p, nil
}

func (r *NewsRepository) ListByUser(ctx context.Context, userID string) ([]domain.NewsPost, error) {
	query := `
		SELECT ` + newsColumns + `
		FROM news_posts
		WHERE user_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, "ListNewsPosts", query, userID)
}

func (r *NewsRepository) ListPublishedByUser(ctx context.Context, userID string) ([]domain.NewsPost, error) {
	query := `
		SELECT ` + newsColumns + `
		FROM news_posts
		WHERE user_id = $1 AND status = 'published'
		ORDER BY published_at DESC`
	return r.list(ctx, "ListPublishedNewsPostsByUser", query, userID)
}

func (r *NewsRepository) list(ctx context.Context, operation, query string, args ...any) (out []domain.NewsPost, err error) {
	ctx, end := database.TraceQuery(ctx, operation, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list news posts: %w", err)
	}
	defer rows.Close()

	out = []domain.NewsPost{}
	for rows.Next() {
		var p *domain.NewsPost
		if p, err = scanNewsPost(rows); err != nil {
			return nil, fmt.Errorf("scan news post row: %w", err)
		}
		out = append(out, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news posts: %w", err)
	}
	return out, nil
}

func (r *NewsRepository) ListPublished(ctx context.Context, offset, limit int) (out []domain.NewsFeedItem, total int, err error) {
	query := `
		SELECT n.id, n.user_id, n.title, n.content, n.featured_image_url, n.image_alt, n.external_link,
			n.link_button_text, n.status, n.published_at, n.created_at, n.updated_at,
			a.id, a.username, a.name, a.location, a.style, a.bio_short, a.profile_image_url,
			count(*) OVER() AS total_count
		FROM news_posts n
		JOIN artists a ON a.id = n.user_id
		WHERE n.status = 'published'
		ORDER BY n.published_at DESC
		LIMIT $1 OFFSET $2`

	ctx, end := database.TraceQuery(ctx, "ListPublishedNewsPosts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list news feed: %w", err)
	}
	defer rows.Close()

	out = []domain.NewsFeedItem{}
	for rows.Next() {
		var (
			item   domain.NewsFeedItem
			status string
		)
		if err = rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Content,
			&item.FeaturedImageURL,
			&item.ImageAlt,
			&item.ExternalLink,
			&item.LinkButtonText,
			&status,
			&item.PublishedAt,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Author.ID,
			&item.Author.Username,
			&item.Author.Name,
			&item.Author.Location,
			&item.Author.Style,
			&item.Author.BioShort,
			&item.Author.ProfileImageURL,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan news feed row: %w", err)
		}
		item.Status = domain.NewsStatus(status)
		out = append(out, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate news feed: %w", err)
	}
	return out, total, nil
}

func (r *NewsRepository) Update(ctx context.Context, p *domain.NewsPost) (err error) {
	query := `
		UPDATE news_posts
		SET title = $3, content = $4, featured_image_url = $5, image_alt = $6, external_link = $7,
			link_button_text = $8, status = $9, published_at = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "UpdateNewsPost", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Title,
		p.Content,
		p.FeaturedImageURL,
		p.ImageAlt,
		p.ExternalLink,
		p.LinkButtonText,
		string(p.Status),
		p.PublishedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update news post %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("news post", p.ID)
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id, userID string) (err error) {
	query := `DELETE FROM news_posts WHERE id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "DeleteNewsPost", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete news post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("news post", id)
	}
	return nil
}

func scanNewsPost(row pgx.Row) (*domain.NewsPost, error) {
	var (
		p      domain.NewsPost
		status string
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Content,
		&p.FeaturedImageURL,
		&p.ImageAlt,
		&p.ExternalLink,
		&p.LinkButtonText,
		&status,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.NewsStatus(status)
	return &p, nil
}
