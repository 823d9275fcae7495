package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/artfolio/internal/domain"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

type artworkFixture struct {
	artworks *mockArtworkRepo
	artists  *mockArtistRepo
	cache    *mockCache
	events   *mockEvents
	svc      *ArtworkService
}

func newArtworkFixture() *artworkFixture {
	f := &artworkFixture{
		artworks: new(mockArtworkRepo),
		artists:  new(mockArtistRepo),
		cache:    new(mockCache),
		events:   new(mockEvents),
	}
	f.svc = NewArtworkService(f.artworks, f.artists, f.cache, f.events, newTestLogger())
	return f
}

// expectInvalidation wires the lookup the service does to find the cached
// microsite of userID.
func (f *artworkFixture) expectInvalidation(ctx context.Context, userID, username string) {
	f.artists.On("GetByID", ctx, userID).Return(&domain.Artist{ID: userID, Username: username}, nil)
	f.cache.On("Invalidate", ctx, username).Return(nil)
}

func TestArtworkService_Create(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	f.artworks.On("NextSortOrder", ctx, "u1").Return(3, nil)
	f.artworks.On("Create", ctx, mock.AnythingOfType("*domain.Artwork")).Return(nil)
	f.expectInvalidation(ctx, "u1", "mira")
	f.events.On("PublishArtworkCreated", ctx, mock.Anything).Return(nil)

	artwork, err := f.svc.Create(ctx, "u1", &ArtworkInput{
		Title:       "Tide Line",
		ImageURL:    "https://cdn.example.com/tide.jpg",
		YearCreated: intPtr(2023),
		Price:       int64Ptr(180000),
		Available:   true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, artwork.ID)
	assert.Equal(t, "u1", artwork.UserID)
	assert.Equal(t, 3, artwork.SortOrder)
	assert.Equal(t, 2023, *artwork.YearCreated)
	assert.False(t, artwork.CreatedAt.IsZero())

	f.artworks.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestArtworkService_Create_RepoError(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	f.artworks.On("NextSortOrder", ctx, "u1").Return(0, nil)
	f.artworks.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

	_, err := f.svc.Create(ctx, "u1", &ArtworkInput{Title: "x", ImageURL: "https://x"})
	require.Error(t, err)
	f.events.AssertNotCalled(t, "PublishArtworkCreated", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestArtworkService_Get_OtherArtistIsNotFound(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	f.artworks.On("GetByID", ctx, "art-1").Return(&domain.Artwork{ID: "art-1", UserID: "someone-else"}, nil)

	_, err := f.svc.Get(ctx, "u1", "art-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestArtworkService_Update(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	existing := &domain.Artwork{ID: "art-1", UserID: "u1", Title: "Old", ImageURL: "https://old", SortOrder: 4}
	f.artworks.On("GetByID", ctx, "art-1").Return(existing, nil)
	f.artworks.On("Update", ctx, mock.MatchedBy(func(a *domain.Artwork) bool {
		return a.Title == "New" && a.SortOrder == 4 && a.Price == nil
	})).Return(nil)
	f.expectInvalidation(ctx, "u1", "mira")
	f.events.On("PublishArtworkUpdated", ctx, mock.Anything).Return(nil)

	updated, err := f.svc.Update(ctx, "u1", "art-1", &ArtworkInput{Title: "New", ImageURL: "https://new"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	f.artworks.AssertExpectations(t)
}

func TestArtworkService_Delete(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	f.artworks.On("GetByID", ctx, "art-1").Return(&domain.Artwork{ID: "art-1", UserID: "u1"}, nil)
	f.artworks.On("Delete", ctx, "art-1", "u1").Return(nil)
	f.expectInvalidation(ctx, "u1", "mira")
	f.events.On("PublishArtworkDeleted", ctx, mock.Anything).Return(errors.New("broker down"))

	require.NoError(t, f.svc.Delete(ctx, "u1", "art-1"))
	f.artworks.AssertExpectations(t)
}

func TestArtworkService_Delete_NotOwned(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	f.artworks.On("GetByID", ctx, "art-1").Return(&domain.Artwork{ID: "art-1", UserID: "u2"}, nil)

	assert.ErrorIs(t, f.svc.Delete(ctx, "u1", "art-1"), apperrors.ErrNotFound)
	f.artworks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func galleryOf(ids ...string) []domain.Artwork {
	out := make([]domain.Artwork, len(ids))
	for i, id := range ids {
		out[i] = domain.Artwork{ID: id, UserID: "u1", SortOrder: i}
	}
	return out
}

func TestArtworkService_Reorder(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()
	order := []string{"c", "a", "b"}

	f.artworks.On("ListByUser", ctx, "u1").Return(galleryOf("a", "b", "c"), nil)
	f.artworks.On("Reorder", ctx, "u1", order).Return(nil)
	f.expectInvalidation(ctx, "u1", "mira")
	f.events.On("PublishArtworksReordered", ctx, "u1", order).Return(nil)

	require.NoError(t, f.svc.Reorder(ctx, "u1", order))
	f.artworks.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestArtworkService_Reorder_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		is    error
	}{
		{"missing artwork", []string{"a", "b"}, apperrors.ErrInvalidInput},
		{"duplicate", []string{"a", "a", "b"}, apperrors.ErrInvalidInput},
		{"foreign id", []string{"a", "b", "zzz"}, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newArtworkFixture()
			ctx := context.Background()
			f.artworks.On("ListByUser", ctx, "u1").Return(galleryOf("a", "b", "c"), nil)

			err := f.svc.Reorder(ctx, "u1", tt.order)
			assert.ErrorIs(t, err, tt.is)
			f.artworks.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestArtworkService_CacheLookupMissingArtist(t *testing.T) {
	f := newArtworkFixture()
	ctx := context.Background()

	f.artworks.On("NextSortOrder", ctx, "u9").Return(0, nil)
	f.artworks.On("Create", ctx, mock.Anything).Return(nil)
	f.artists.On("GetByID", ctx, "u9").Return(nil, apperrors.NotFound("artist", "u9"))
	f.events.On("PublishArtworkCreated", ctx, mock.Anything).Return(nil)

	_, err := f.svc.Create(ctx, "u9", &ArtworkInput{Title: "x", ImageURL: "https://x"})
	require.NoError(t, err)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}
