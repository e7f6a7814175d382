package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout represents a single workout session within a Week.
// Children: Exercises.
type Workout struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ProgramID  primitive.ObjectID `bson:"programId" json:"programId"` // Denormalized ancestor chain, required by the access-control layer
	WeekID     primitive.ObjectID `bson:"weekId" json:"weekId"`
	Name       string             `bson:"name" json:"name"` // e.g., "Day 1: Upper Body", "Long Run"
	DayOfWeek  *int               `bson:"dayOfWeek" json:"dayOfWeek"` // Optional: 1 (Mon) - 7 (Sun), explicit null when unset
	OrderIndex int                `bson:"orderIndex" json:"orderIndex"`
	Notes      *string            `bson:"notes" json:"notes"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the required fields, including the full ancestor chain.
func (w *Workout) Validate() error {
	if w.OwnerID == primitive.NilObjectID || w.ProgramID == primitive.NilObjectID || w.WeekID == primitive.NilObjectID {
		return errors.New("workout requires ownerId, programId, and weekId")
	}
	if w.Name == "" {
		return errors.New("workout requires name")
	}
	if w.DayOfWeek != nil && (*w.DayOfWeek < 1 || *w.DayOfWeek > 7) {
		return errors.New("workout dayOfWeek must be between 1 and 7")
	}
	return nil
}
