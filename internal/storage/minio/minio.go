// Package minio stores uploads in an S3-compatible bucket through minio-go.
package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/utafrali/artfolio/internal/storage"
)

// objectStore is the subset of *minio.Client the backend uses.
type objectStore interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucket, policy string) error
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL prefixes object keys in returned URLs. When empty the
	// URL is built from Endpoint and Bucket.
	PublicBaseURL string
}

// Storage implements storage.Storage on a bucket.
type Storage struct {
	client  objectStore
	bucket  string
	baseURL string
}

func New(cfg Config) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return newStorage(client, cfg), nil
}

func newStorage(client objectStore, cfg Config) *Storage {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &Storage{client: client, bucket: cfg.Bucket, baseURL: base}
}

// publicReadPolicy lets anonymous clients GET objects, which is what the
// returned URLs rely on.
const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// EnsureBucket creates the bucket with a public read policy if it does not
// exist yet.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	if err := s.client.SetBucketPolicy(ctx, s.bucket, fmt.Sprintf(publicReadPolicy, s.bucket)); err != nil {
		return fmt.Errorf("set bucket policy %s: %w", s.bucket, err)
	}
	return nil
}

// Ping reports whether the bucket is reachable; used by readiness checks.
func (s *Storage) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio ping: %w", err)
	}
	return nil
}

func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	_, err := s.client.PutObject(ctx, s.bucket, input.Key, input.Data, input.Size, minio.PutObjectOptions{
		ContentType:  input.ContentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", input.Key, err)
	}
	return &storage.UploadResult{Key: input.Key, URL: s.url(input.Key)}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *Storage) GetURL(ctx context.Context, key string) (string, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", fmt.Errorf("url %s: %w", key, storage.ErrNotFound)
		}
		return "", fmt.Errorf("stat object %s: %w", key, err)
	}
	return s.url(key), nil
}

func (s *Storage) url(key string) string {
	return s.baseURL + "/" + key
}
