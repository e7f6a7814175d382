package storage

import (
	"context"
)

// SnapshotStore persists pre-delete subtree snapshots in object storage.
// Writes are best-effort from the caller's perspective: a failed snapshot
// never blocks the cascade that requested it.
type SnapshotStore interface {
	// Put stores one object under the given key, overwriting any previous
	// object with that key.
	Put(ctx context.Context, objectKey string, contentType string, body []byte) error
}
