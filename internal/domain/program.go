// internal/domain/program.go
package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is the root of a user's training hierarchy.
// Children: Weeks.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"` // User who owns the whole subtree
	Name        string             `bson:"name" json:"name"`
	Description *string            `bson:"description" json:"description"` // Optional, stored as explicit null
	IsArchived  bool               `bson:"isArchived" json:"isArchived"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the required fields the storage boundary enforces.
func (p *Program) Validate() error {
	if p.OwnerID == primitive.NilObjectID {
		return errors.New("program requires ownerId")
	}
	if p.Name == "" {
		return errors.New("program requires name")
	}
	return nil
}
