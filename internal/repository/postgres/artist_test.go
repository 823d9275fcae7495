package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/database"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var artistCols = []string{
	"id", "username", "name", "bio_short", "bio_long", "location", "style", "website_url",
	"instagram_handle", "contact_email", "profile_image_url", "header_banner_url", "created_at", "updated_at",
}

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleArtist() domain.Artist {
	return domain.Artist{
		ID:              "auth0|42",
		Username:        "mira-kovac",
		Name:            "Mira Kovač",
		BioShort:        "Oil and cold wax.",
		BioLong:         "Mira paints northern coastlines.",
		Location:        "Rijeka",
		Style:           "Abstract",
		WebsiteURL:      "https://mirakovac.art",
		InstagramHandle: "mira.paints",
		ContactEmail:    "studio@mirakovac.art",
		ProfileImageURL: "https://cdn.example.com/avatar/auth0|42/a.jpg",
		HeaderBannerURL: "",
		CreatedAt:       fixedTime,
		UpdatedAt:       fixedTime,
	}
}

func artistRow(a domain.Artist) []any {
	return []any{
		a.ID, a.Username, a.Name, a.BioShort, a.BioLong, a.Location, a.Style, a.WebsiteURL,
		a.InstagramHandle, a.ContactEmail, a.ProfileImageURL, a.HeaderBannerURL, a.CreatedAt, a.UpdatedAt,
	}
}

func TestArtistRepository_GetByUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)
	a := sampleArtist()

	mock.ExpectQuery("SELECT .+ FROM artists WHERE username").
		WithArgs("mira-kovac").
		WillReturnRows(pgxmock.NewRows(artistCols).AddRow(artistRow(a)...))

	got, err := repo.GetByUsername(context.Background(), "mira-kovac")
	require.NoError(t, err)
	assert.Equal(t, &a, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM artists WHERE id").
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_GetByID_DBError(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM artists WHERE id").
		WithArgs("auth0|42").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), "auth0|42")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)
	a := sampleArtist()
	a.CreatedAt, a.UpdatedAt = time.Time{}, time.Time{}

	mock.ExpectQuery("INSERT INTO artists").
		WithArgs(a.ID, a.Username, a.Name, a.BioShort, a.BioLong, a.Location, a.Style, a.WebsiteURL,
			a.InstagramHandle, a.ContactEmail, a.ProfileImageURL, a.HeaderBannerURL).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(fixedTime, fixedTime))

	require.NoError(t, repo.Upsert(context.Background(), &a))
	assert.Equal(t, fixedTime, a.CreatedAt)
	assert.Equal(t, fixedTime, a.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_Upsert_UsernameTaken(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)
	a := sampleArtist()

	mock.ExpectQuery("INSERT INTO artists").
		WithArgs(a.ID, a.Username, a.Name, a.BioShort, a.BioLong, a.Location, a.Style, a.WebsiteURL,
			a.InstagramHandle, a.ContactEmail, a.ProfileImageURL, a.HeaderBannerURL).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "artists_username_key"})

	err := repo.Upsert(context.Background(), &a)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "mira-kovac")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_ListSummaries(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)

	cols := []string{"id", "username", "name", "location", "style", "bio_short", "profile_image_url"}
	mock.ExpectQuery("SELECT .+ FROM artists").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("u1", "ada", "Ada Park", "Seoul", "Ink", "", "").
			AddRow("u2", "bo", "", "Oslo", "", "Light.", "https://cdn.example.com/b.png"))

	got, err := repo.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ada", got[0].Username)
	assert.Equal(t, "bo", got[1].DisplayName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_ListSummaries_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewArtistRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM artists").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "name", "location", "style", "bio_short", "profile_image_url"}))

	got, err := repo.ListSummaries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
