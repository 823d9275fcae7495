// Package storage abstracts the object store holding uploaded images.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("object not found")

type Storage interface {
	// Upload stores the object and returns its key and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL of a stored object.
	GetURL(ctx context.Context, key string) (string, error)
}

type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Data        io.Reader
}

type UploadResult struct {
	Key string
	URL string
}
