package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"hradmin/internal/platform/config"
)

var ErrNotConfigured = errors.New("storage not configured")

// Object is a downloaded object plus the metadata needed to serve it.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// ObjectStore puts and fetches binary objects in a single bucket.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

// New returns an ObjectStore. With no endpoint configured every call fails
// with ErrNotConfigured so the rest of the service keeps running.
func New(ctx context.Context, cfg config.Config) (*ObjectStore, error) {
	if !cfg.StorageConfigured() {
		return &ObjectStore{bucket: cfg.MinioBucket}, nil
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &ObjectStore{client: client, bucket: cfg.MinioBucket}, nil
}

func (s *ObjectStore) Configured() bool {
	return s != nil && s.client != nil
}

func (s *ObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	return nil
}

func (s *ObjectStore) Get(ctx context.Context, key string) (Object, error) {
	if !s.Configured() {
		return Object{}, ErrNotConfigured
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return Object{}, fmt.Errorf("get object: %w", err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return Object{}, fmt.Errorf("stat object: %w", err)
	}
	return Object{Body: obj, Size: info.Size, ContentType: info.ContentType}, nil
}

func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
