package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CascadeAction distinguishes audit log entries.
type CascadeAction string

const (
	ActionDuplicate CascadeAction = "duplicate"
	ActionDelete    CascadeAction = "delete"
)

// AuditRecord is a best-effort log entry appended after a cascade operation.
// Writing it must never fail the operation itself.
type AuditRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Action      CascadeAction      `bson:"action" json:"action"`
	Level       Level              `bson:"level" json:"level"`
	RootID      primitive.ObjectID `bson:"rootId" json:"rootId"` // The entity the cascade was rooted at
	Counts      CascadeCounts      `bson:"counts" json:"counts"`
	SnapshotKey *string            `bson:"snapshotKey" json:"snapshotKey"` // Object-storage key of the pre-delete snapshot, if one was taken
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
