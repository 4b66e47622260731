package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const checkpointObjectName = "settings.json"

// checkpointBlob is the persisted checkpoint format, one blob per
// (bank, card) caption.
type checkpointBlob struct {
	LastExportTime int64 `json:"lastExportTime"`
}

// CheckpointStore reads and writes the last-export-time checkpoint for a
// caption ("{bank}-{last4}"). The blob lives at "{caption}/settings.json".
type CheckpointStore struct {
	store Store
}

// NewCheckpointStore creates a CheckpointStore over the given blob store.
func NewCheckpointStore(store Store) *CheckpointStore {
	return &CheckpointStore{store: store}
}

// LastExportTime returns the persisted checkpoint in epoch millis. An absent
// blob is not an error: it means a first-ever run and reads as 0.
func (s *CheckpointStore) LastExportTime(ctx context.Context, caption string) (int64, error) {
	data, err := s.store.GetObject(ctx, checkpointName(caption))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("read checkpoint for %s: %w", caption, err)
	}

	var blob checkpointBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return 0, fmt.Errorf("decode checkpoint for %s: %w", caption, err)
	}

	return blob.LastExportTime, nil
}

// SetLastExportTime persists the checkpoint in epoch millis.
func (s *CheckpointStore) SetLastExportTime(ctx context.Context, caption string, millis int64) error {
	data, err := json.Marshal(checkpointBlob{LastExportTime: millis})
	if err != nil {
		return fmt.Errorf("encode checkpoint for %s: %w", caption, err)
	}

	if err := s.store.PutObject(ctx, checkpointName(caption), data); err != nil {
		return fmt.Errorf("write checkpoint for %s: %w", caption, err)
	}

	return nil
}

func checkpointName(caption string) string {
	return caption + "/" + checkpointObjectName
}
