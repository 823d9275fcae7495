// Package memory is an in-process storage backend for development and tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/utafrali/artfolio/internal/storage"
)

type object struct {
	contentType string
	data        []byte
}

// Storage implements storage.Storage in memory.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
}

func New(baseURL string) *Storage {
	return &Storage{
		objects: make(map[string]object),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, input.Data); err != nil {
		return nil, fmt.Errorf("read upload %s: %w", input.Key, err)
	}

	s.mu.Lock()
	s.objects[input.Key] = object{contentType: input.ContentType, data: buf.Bytes()}
	s.mu.Unlock()

	return &storage.UploadResult{Key: input.Key, URL: s.url(input.Key)}, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("delete %s: %w", key, storage.ErrNotFound)
	}
	delete(s.objects, key)
	return nil
}

func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("url %s: %w", key, storage.ErrNotFound)
	}
	return s.url(key), nil
}

// Object returns the stored bytes and content type of key.
func (s *Storage) Object(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	return obj.data, obj.contentType, ok
}

func (s *Storage) url(key string) string {
	return fmt.Sprintf("%s/media/%s", s.baseURL, key)
}
