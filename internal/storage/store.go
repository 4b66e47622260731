// Package storage persists exporter artifacts: the per-card checkpoint blob
// and the generated statement files.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports an object that does not exist in the store.
var ErrNotFound = errors.New("object not found")

// Store provides an interface for blob storage operations. This interface
// enables mocking and testing of storage functionality.
type Store interface {
	// GetObject downloads the object bytes, or ErrNotFound.
	GetObject(ctx context.Context, name string) ([]byte, error)

	// PutObject uploads the object bytes, overwriting any existing object.
	PutObject(ctx context.Context, name string, data []byte) error
}
