// Package storage holds receipt attachments for transactions. Two
// backends exist: a local directory served under /uploads by the API,
// and a Google Cloud Storage bucket for deployments.
package storage

import (
	"context"
	"fmt"
	"io"

	"pennywise/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptStore saves and removes receipt files. Upload returns a URL
// that clients can fetch the receipt from.
type ReceiptStore interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// New builds the backend selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (ReceiptStore, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalStore(cfg.LocalDir, logger)
	case "gcs":
		return NewGCSStore(ctx, cfg.GCSBucket, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
