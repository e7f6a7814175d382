// internal/domain/exercise.go
package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseType classifies an exercise and drives which Set metrics apply.
type ExerciseType string

const (
	ExerciseStrength   ExerciseType = "strength"
	ExerciseCardio     ExerciseType = "cardio"
	ExerciseTimeBased  ExerciseType = "timeBased"
	ExerciseBodyweight ExerciseType = "bodyweight"
	ExerciseCustom     ExerciseType = "custom"
)

// IsValid reports whether t is one of the known exercise types.
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseStrength, ExerciseCardio, ExerciseTimeBased, ExerciseBodyweight, ExerciseCustom:
		return true
	}
	return false
}

// Exercise is a single exercise within a Workout.
// Children: Sets.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ProgramID    primitive.ObjectID `bson:"programId" json:"programId"`
	WeekID       primitive.ObjectID `bson:"weekId" json:"weekId"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Name         string             `bson:"name" json:"name"`
	ExerciseType ExerciseType       `bson:"exerciseType" json:"exerciseType"`
	OrderIndex   int                `bson:"orderIndex" json:"orderIndex"`
	Notes        *string            `bson:"notes" json:"notes"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the required fields, including the full ancestor chain.
func (e *Exercise) Validate() error {
	if e.OwnerID == primitive.NilObjectID || e.ProgramID == primitive.NilObjectID ||
		e.WeekID == primitive.NilObjectID || e.WorkoutID == primitive.NilObjectID {
		return errors.New("exercise requires ownerId, programId, weekId, and workoutId")
	}
	if e.Name == "" {
		return errors.New("exercise requires name")
	}
	if !e.ExerciseType.IsValid() {
		return errors.New("exercise requires a valid exerciseType")
	}
	return nil
}
