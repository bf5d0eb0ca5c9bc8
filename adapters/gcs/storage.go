package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/voxscribe/server/domain/repositories"
)

// Storage implements ObjectStorage on a Google Cloud Storage bucket.
// The bucket must already exist; the service never creates it.
type Storage struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// NewStorage creates a GCS-backed object storage for the given bucket
func NewStorage(ctx context.Context, bucket string, logger *zap.Logger) (*Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Storage{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Close releases the underlying connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Upload writes an object to the bucket and returns its gs:// URI
func (s *Storage) Upload(ctx context.Context, name string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", name, err)
	}

	uri := fmt.Sprintf("gs://%s/%s", s.bucket, name)
	s.logger.Info("Uploaded audio to GCS", zap.String("uri", uri), zap.Int("size", len(data)))

	return uri, nil
}

// Delete removes an object from the bucket
func (s *Storage) Delete(ctx context.Context, name string) error {
	if err := s.client.Bucket(s.bucket).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}

var _ repositories.ObjectStorage = &Storage{}
