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

const artworkColumns = `id, user_id, title, description, image_url, alt_text, year_created, medium,
		dimensions, price, available, sort_order, created_at, updated_at`

// ArtworkRepository implements repository.ArtworkRepository.
type ArtworkRepository struct {
	db database.DBTX
}

func NewArtworkRepository(db database.DBTX) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

func (r *ArtworkRepository) Create(ctx context.Context, a *domain.Artwork) (err error) {
	query := `
		INSERT INTO artworks (id, user_id, title, description, image_url, alt_text, year_created, medium,
			dimensions, price, available, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	ctx, end := database.TraceQuery(ctx, "CreateArtwork", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Title,
		a.Description,
		a.ImageURL,
		a.AltText,
		a.YearCreated,
		a.Medium,
		a.Dimensions,
		a.Price,
		a.Available,
		a.SortOrder,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert artwork: %w", err)
	}
	return nil
}

func (r *ArtworkRepository) GetByID(ctx context.Context, id string) (a *domain.Artwork, err error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetArtwork", query)
	defer func() { end(err) }()

	a, err = scanArtwork(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("artwork", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get artwork %s: %w", id, err)
	}
	return a, nil
}

func (r *ArtworkRepository) ListByUser(ctx context.Context, userID string) (out []domain.Artwork, err error) {
	query := `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at DESC`

	ctx, end := database.TraceQuery(ctx, "ListArtworks", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	defer rows.Close()

	out = []domain.Artwork{}
	for rows.Next() {
		var a *domain.Artwork
		if a, err = scanArtwork(rows); err != nil {
			return nil, fmt.Errorf("scan artwork row: %w", err)
		}
		out = append(out, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artworks: %w", err)
	}
	return out, nil
}

func (r *ArtworkRepository) Update(ctx context.Context, a *domain.Artwork) (err error) {
	query := `
		UPDATE artworks
		SET title = $3, description = $4, image_url = $5, alt_text = $6, year_created = $7,
			medium = $8, dimensions = $9, price = $10, available = $11, updated_at = $12
		WHERE id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "UpdateArtwork", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Title,
		a.Description,
		a.ImageURL,
		a.AltText,
		a.YearCreated,
		a.Medium,
		a.Dimensions,
		a.Price,
		a.Available,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update artwork %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", a.ID)
	}
	return nil
}

func (r *ArtworkRepository) Delete(ctx context.Context, id, userID string) (err error) {
	query := `DELETE FROM artworks WHERE id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "DeleteArtwork", query)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete artwork %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", id)
	}
	return nil
}

func (r *ArtworkRepository) Reorder(ctx context.Context, userID string, ids []string) (err error) {
	query := `UPDATE artworks SET sort_order = $1, updated_at = now() WHERE id = $2 AND user_id = $3`

	ctx, end := database.TraceQuery(ctx, "ReorderArtworks", query)
	defer func() { end(err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, id := range ids {
		tag, execErr := tx.Exec(ctx, query, i, id, userID)
		if execErr != nil {
			return fmt.Errorf("reorder artwork %s: %w", id, execErr)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("artwork", id)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

func (r *ArtworkRepository) NextSortOrder(ctx context.Context, userID string) (next int, err error) {
	query := `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM artworks WHERE user_id = $1`

	ctx, end := database.TraceQuery(ctx, "NextArtworkSortOrder", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query, userID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	return next, nil
}

func scanArtwork(row pgx.Row) (*domain.Artwork, error) {
	var a domain.Artwork
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Title,
		&a.Description,
		&a.ImageURL,
		&a.AltText,
		&a.YearCreated,
		&a.Medium,
		&a.Dimensions,
		&a.Price,
		&a.Available,
		&a.SortOrder,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
