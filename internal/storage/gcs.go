package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GCSStore keeps receipts in a Cloud Storage bucket under
// receipts/{userID}/{name}.
type GCSStore struct {
	client *gcs.Client
	bucket string
	logger *zap.Logger
}

func NewGCSStore(ctx context.Context, bucket string, logger *zap.Logger) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is not configured")
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

func (s *GCSStore) Upload(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error) {
	object := fmt.Sprintf("receipts/%s/%s%s", userID, uuid.New(), filepath.Ext(filename))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload receipt: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize receipt upload: %w", err)
	}

	s.logger.Debug("receipt uploaded",
		zap.String("bucket", s.bucket),
		zap.String("object", object),
	)
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object), nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	object := strings.TrimPrefix(url, prefix)
	if object == url || object == "" {
		return fmt.Errorf("unexpected receipt url %q", url)
	}
	return s.client.Bucket(s.bucket).Object(object).Delete(ctx)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
