package storage

import (
	"context"
	"testing"
)

func TestCheckpointStore_AbsentReadsAsZero(t *testing.T) {
	checkpoints := NewCheckpointStore(NewMemoryStore())

	got, err := checkpoints.LastExportTime(context.Background(), "monobank-9010")
	if err != nil {
		t.Fatalf("LastExportTime failed: %v", err)
	}
	if got != 0 {
		t.Errorf("LastExportTime = %d, want 0 for absent checkpoint", got)
	}
}

func TestCheckpointStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	checkpoints := NewCheckpointStore(store)

	if err := checkpoints.SetLastExportTime(ctx, "monobank-9010", 1706745599999); err != nil {
		t.Fatalf("SetLastExportTime failed: %v", err)
	}

	got, err := checkpoints.LastExportTime(ctx, "monobank-9010")
	if err != nil {
		t.Fatalf("LastExportTime failed: %v", err)
	}
	if got != 1706745599999 {
		t.Errorf("LastExportTime = %d, want 1706745599999", got)
	}

	// Blob lives under the caption folder.
	if _, err := store.GetObject(ctx, "monobank-9010/settings.json"); err != nil {
		t.Errorf("expected checkpoint at monobank-9010/settings.json: %v", err)
	}
}

func TestCheckpointStore_CaptionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	checkpoints := NewCheckpointStore(NewMemoryStore())

	if err := checkpoints.SetLastExportTime(ctx, "monobank-9010", 42); err != nil {
		t.Fatalf("SetLastExportTime failed: %v", err)
	}

	got, err := checkpoints.LastExportTime(ctx, "privatbank-9010")
	if err != nil {
		t.Fatalf("LastExportTime failed: %v", err)
	}
	if got != 0 {
		t.Errorf("LastExportTime = %d, want 0 for other caption", got)
	}
}

func TestCheckpointStore_MalformedBlob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.PutObject(ctx, "monobank-9010/settings.json", []byte("not json")); err != nil {
		t.Fatalf("PutObject failed: %v", err)
	}

	checkpoints := NewCheckpointStore(store)
	if _, err := checkpoints.LastExportTime(ctx, "monobank-9010"); err == nil {
		t.Fatal("expected error for malformed checkpoint blob")
	}
}
