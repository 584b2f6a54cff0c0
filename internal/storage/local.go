package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStore writes receipts to a directory on disk. The API serves
// the directory under /uploads.
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *LocalStore) Upload(_ context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s%s", userID, uuid.New(), filepath.Ext(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create receipt file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write receipt file: %w", err)
	}

	s.logger.Debug("receipt stored", zap.String("path", path))
	return "/uploads/" + name, nil
}

func (s *LocalStore) Delete(_ context.Context, url string) error {
	name := strings.TrimPrefix(url, "/uploads/")
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("unexpected receipt url %q", url)
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// Dir returns the directory receipts are written to, for wiring the
// static file route.
func (s *LocalStore) Dir() string {
	return s.dir
}
