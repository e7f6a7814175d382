// internal/domain/set.go
package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Set is the leaf of the hierarchy: one performed (or planned) set of an
// Exercise. Which metric fields are meaningful depends on the parent
// exercise's type; all of them are nullable and stored as explicit nulls.
type Set struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ProgramID  primitive.ObjectID `bson:"programId" json:"programId"`
	WeekID     primitive.ObjectID `bson:"weekId" json:"weekId"`
	WorkoutID  primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	SetNumber  int                `bson:"setNumber" json:"setNumber"`
	Reps       *int               `bson:"reps" json:"reps"`
	Weight     *float64           `bson:"weight" json:"weight"`     // kg
	Duration   *int               `bson:"duration" json:"duration"` // seconds
	Distance   *float64           `bson:"distance" json:"distance"` // meters
	RestTime   *int               `bson:"restTime" json:"restTime"` // seconds
	Checked    bool               `bson:"checked" json:"checked"`   // Marked done by the user
	Notes      *string            `bson:"notes" json:"notes"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasMetric reports whether at least one of reps, duration, or distance is
// present. Every stored set must satisfy this.
func (s *Set) HasMetric() bool {
	return s.Reps != nil || s.Duration != nil || s.Distance != nil
}

// Validate checks the required fields, the full ancestor chain, and the
// at-least-one-metric rule.
func (s *Set) Validate() error {
	if s.OwnerID == primitive.NilObjectID || s.ProgramID == primitive.NilObjectID ||
		s.WeekID == primitive.NilObjectID || s.WorkoutID == primitive.NilObjectID ||
		s.ExerciseID == primitive.NilObjectID {
		return errors.New("set requires ownerId, programId, weekId, workoutId, and exerciseId")
	}
	if s.SetNumber < 1 {
		return errors.New("set requires setNumber >= 1")
	}
	if !s.HasMetric() {
		return errors.New("set requires at least one of reps, duration, or distance")
	}
	return nil
}
