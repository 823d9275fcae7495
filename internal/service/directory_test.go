package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/pagination"
)

func TestDirectoryService_Search(t *testing.T) {
	index := new(mockDirectoryIndex)
	svc := NewDirectoryService(index, new(mockArtistRepo), newTestLogger())
	ctx := context.Background()

	q := domain.DirectoryQuery{Style: "ink"}
	params := pagination.DefaultParams()
	index.On("Search", ctx, q, params).Return([]domain.ArtistSummary{{Username: "ada"}}, 1, nil)

	res, err := svc.Search(ctx, q, params)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, "ada", res.Data[0].Username)
}

func TestDirectoryService_Rebuild(t *testing.T) {
	index := new(mockDirectoryIndex)
	artists := new(mockArtistRepo)
	svc := NewDirectoryService(index, artists, newTestLogger())
	ctx := context.Background()

	all := []domain.ArtistSummary{{ID: "1", Username: "ada"}, {ID: "2", Username: "bo"}}
	artists.On("ListSummaries", ctx).Return(all, nil)
	index.On("Replace", ctx, all).Return(nil)

	require.NoError(t, svc.Rebuild(ctx))
	index.AssertExpectations(t)
}

func TestDirectoryService_RebuildError(t *testing.T) {
	index := new(mockDirectoryIndex)
	artists := new(mockArtistRepo)
	svc := NewDirectoryService(index, artists, newTestLogger())
	ctx := context.Background()

	artists.On("ListSummaries", ctx).Return(nil, errors.New("db down"))

	err := svc.Rebuild(ctx)
	require.Error(t, err)
	index.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}
