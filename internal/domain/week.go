// internal/domain/week.go
package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Week is one training week inside a Program.
// Children: Workouts.
type Week struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`
	Name      string             `bson:"name" json:"name"`
	Order     int                `bson:"order" json:"order"` // Position within the program; gaps tolerated
	Notes     *string            `bson:"notes" json:"notes"` // Optional, stored as explicit null
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the required fields, including the full ancestor chain.
func (w *Week) Validate() error {
	if w.OwnerID == primitive.NilObjectID || w.ProgramID == primitive.NilObjectID {
		return errors.New("week requires ownerId and programId")
	}
	if w.Name == "" {
		return errors.New("week requires name")
	}
	return nil
}
