package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStore is the concrete Store backed by a Google Cloud Storage bucket.
// It assumes Application Default Credentials are configured
// (GOOGLE_APPLICATION_CREDENTIALS, or the ambient service account inside a
// cloud function environment).
type GCSStore struct {
	client     *gcs.Client
	bucketName string
}

// NewGCSStore creates a GCSStore for the given bucket. Close releases the
// underlying client.
func NewGCSStore(ctx context.Context, bucketName string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSStore{client: client, bucketName: bucketName}, nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// GetObject downloads the object bytes from the bucket. A missing object is
// reported as ErrNotFound so callers can treat it as "no state yet".
func (s *GCSStore) GetObject(ctx context.Context, name string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucketName).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open object reader %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}

	return data, nil
}

// PutObject uploads the object bytes to the bucket.
func (s *GCSStore) PutObject(ctx context.Context, name string, data []byte) error {
	w := s.client.Bucket(s.bucketName).Object(name).NewWriter(ctx)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %s: %w", name, err)
	}

	return nil
}
