package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/storage"
	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

// unsafeKeyChars covers everything but the characters allowed in an
// object key segment. Identity-provider subjects such as "auth0|42"
// contain some of them.
var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type UploadService struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewUploadService(store storage.Storage, logger *slog.Logger) *UploadService {
	return &UploadService{storage: store, logger: logger}
}

type UploadInput struct {
	Kind        domain.UploadKind
	ContentType string
	Size        int64
	Data        io.Reader
}

// Upload stores an image under "<kind>/<user>/<uuid><ext>" and returns its
// public URL.
func (s *UploadService) Upload(ctx context.Context, userID string, input *UploadInput) (*domain.Upload, error) {
	if !input.Kind.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("upload kind %q is not allowed", input.Kind))
	}
	ext, ok := domain.ImageExtension(input.ContentType)
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}
	if input.Size <= 0 {
		return nil, apperrors.InvalidInput("file is empty")
	}
	if input.Size > domain.MaxUploadSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("file size %d exceeds maximum allowed size of %d bytes", input.Size, domain.MaxUploadSize))
	}
	owner := unsafeKeyChars.ReplaceAllString(userID, "-")
	if owner == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	key := fmt.Sprintf("%s/%s/%s%s", input.Kind, owner, uuid.New().String(), ext)
	res, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	s.logger.InfoContext(ctx, "image uploaded",
		slog.String("key", res.Key),
		slog.String("content_type", input.ContentType),
		slog.Int64("size", input.Size),
	)
	return &domain.Upload{Key: res.Key, URL: res.URL, ContentType: input.ContentType, Size: input.Size}, nil
}
