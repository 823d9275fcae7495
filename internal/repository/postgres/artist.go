// Package postgres implements the repository contracts on PostgreSQL via pgx.
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

const artistColumns = `id, username, name, bio_short, bio_long, location, style, website_url,
		instagram_handle, contact_email, profile_image_url, header_banner_url, created_at, updated_at`

// ArtistRepository implements repository.ArtistRepository.
type ArtistRepository struct {
	db database.DBTX
}

func NewArtistRepository(db database.DBTX) *ArtistRepository {
	return &ArtistRepository{db: db}
}

func (r *ArtistRepository) GetByID(ctx context.Context, id string) (a *domain.Artist, err error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetArtistByID", query)
	defer func() { end(err) }()

	a, err = scanArtist(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("artist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %s: %w", id, err)
	}
	return a, nil
}

func (r *ArtistRepository) GetByUsername(ctx context.Context, username string) (a *domain.Artist, err error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE username = $1`

	ctx, end := database.TraceQuery(ctx, "GetArtistByUsername", query)
	defer func() { end(err) }()

	a, err = scanArtist(r.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("artist", username)
	}
	if err != nil {
		return nil, fmt.Errorf("get artist by username %s: %w", username, err)
	}
	return a, nil
}

// Upsert writes the profile and fills in the stored timestamps.
func (r *ArtistRepository) Upsert(ctx context.Context, a *domain.Artist) (err error) {
	query := `
		INSERT INTO artists (id, username, name, bio_short, bio_long, location, style, website_url,
			instagram_handle, contact_email, profile_image_url, header_banner_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			name = EXCLUDED.name,
			bio_short = EXCLUDED.bio_short,
			bio_long = EXCLUDED.bio_long,
			location = EXCLUDED.location,
			style = EXCLUDED.style,
			website_url = EXCLUDED.website_url,
			instagram_handle = EXCLUDED.instagram_handle,
			contact_email = EXCLUDED.contact_email,
			profile_image_url = EXCLUDED.profile_image_url,
			header_banner_url = EXCLUDED.header_banner_url,
			updated_at = now()
		RETURNING created_at, updated_at`

	ctx, end := database.TraceQuery(ctx, "UpsertArtist", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		a.ID,
		a.Username,
		a.Name,
		a.BioShort,
		a.BioLong,
		a.Location,
		a.Style,
		a.WebsiteURL,
		a.InstagramHandle,
		a.ContactEmail,
		a.ProfileImageURL,
		a.HeaderBannerURL,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if database.IsUniqueViolation(err, "artists_username_key") {
		return apperrors.AlreadyExists("artist", "username", a.Username)
	}
	if err != nil {
		return fmt.Errorf("upsert artist %s: %w", a.ID, err)
	}
	return nil
}

func (r *ArtistRepository) ListSummaries(ctx context.Context) (out []domain.ArtistSummary, err error) {
	query := `
		SELECT id, username, name, location, style, bio_short, profile_image_url
		FROM artists
		ORDER BY username ASC`

	ctx, end := database.TraceQuery(ctx, "ListArtistSummaries", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	out = []domain.ArtistSummary{}
	for rows.Next() {
		var s domain.ArtistSummary
		if err = rows.Scan(&s.ID, &s.Username, &s.Name, &s.Location, &s.Style, &s.BioShort, &s.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("scan artist summary: %w", err)
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return out, nil
}

func scanArtist(row pgx.Row) (*domain.Artist, error) {
	var a domain.Artist
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Name,
		&a.BioShort,
		&a.BioLong,
		&a.Location,
		&a.Style,
		&a.WebsiteURL,
		&a.InstagramHandle,
		&a.ContactEmail,
		&a.ProfileImageURL,
		&a.HeaderBannerURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
