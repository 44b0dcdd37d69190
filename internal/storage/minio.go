package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio implements Storage on a MinIO (or any S3-compatible) backend.
// Switching providers only needs different endpoint and credentials —
// no code changes, since the API is S3-compatible throughout.
type Minio struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinio creates a MinIO client, ensures the bucket exists, and returns a
// ready-to-use Minio. Bucket creation is idempotent across concurrent startups.
func NewMinio(endpoint, accessKey, secretKey, bucket, publicBase string, useSSL bool) (*Minio, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			exists, eerr := client.BucketExists(ctx, bucket)
			if eerr != nil || !exists {
				return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
			}
		}
	}

	return &Minio{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Save streams reader to the bucket under key. A stat guards write-once; the
// stat-then-put window is acceptable because keys carry enough entropy that
// two writers never pick the same one.
func (s *Minio) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return fmt.Errorf("commit %q: %w", key, ErrKeyExists)
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("stat object %q: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// Open returns a reader for the object at key. MinIO defers the existence
// check to the first read, so Stat is called up front to surface ErrNotFound.
func (s *Minio) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ValidateKey(key); err != nil {
		return nil, ErrNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, ErrNotFound
	}
	return obj, nil
}

// Remove deletes the object at key from the bucket.
func (s *Minio) Remove(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL returns the URL path the asset is served from.
func (s *Minio) PublicURL(key string) string {
	return s.publicBase + "/" + key
}
