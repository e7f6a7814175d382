// internal/repository/mongo/batch.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// storeBatchCeiling is the hard per-batch operation limit of the
	// backing store. Never submit a chunk this large.
	storeBatchCeiling = 500
	// maxBatchOps is the safety threshold the cascade writer chunks at,
	// kept with margin below storeBatchCeiling.
	maxBatchOps = 450
)

// batchOp is one pending write destined for a named collection.
type batchOp struct {
	collection string
	model      mongo.WriteModel
}

// commitFunc commits one chunk of at most maxOps operations.
type commitFunc func(ctx context.Context, ops []batchOp) error

// writeBatch is the explicit batching state of a cascade: the pending
// operations and a commit function. Adding an operation that would push the
// pending count past maxOps commits the current chunk first. Chunks are
// committed sequentially and awaited; a chunk that fails after earlier
// chunks committed leaves those applied; there is no rollback.
type writeBatch struct {
	maxOps  int
	ops     []batchOp
	commit  commitFunc
	commits int // chunks committed so far
}

func newWriteBatch(maxOps int, commit commitFunc) *writeBatch {
	if maxOps <= 0 || maxOps > storeBatchCeiling {
		maxOps = maxBatchOps
	}
	return &writeBatch{maxOps: maxOps, commit: commit}
}

// Add enqueues one operation, rotating the chunk when full.
func (b *writeBatch) Add(ctx context.Context, op batchOp) error {
	if len(b.ops) >= b.maxOps {
		if err := b.Flush(ctx); err != nil {
			return err
		}
	}
	b.ops = append(b.ops, op)
	return nil
}

// Flush commits all pending operations. No-op when nothing is pending.
func (b *writeBatch) Flush(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	ops := b.ops
	b.ops = nil
	b.commits++
	return b.commit(ctx, ops)
}

// Pending returns the number of not-yet-committed operations.
func (b *writeBatch) Pending() int {
	return len(b.ops)
}
