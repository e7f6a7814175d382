package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User owns exactly one training hierarchy. Every entity in the tree is
// scoped to a single user; cross-user access is rejected at the storage
// boundary.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
