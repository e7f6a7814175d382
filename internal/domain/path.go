// internal/domain/path.go
package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level names one of the five tiers of the hierarchy.
type Level string

const (
	LevelProgram  Level = "program"
	LevelWeek     Level = "week"
	LevelWorkout  Level = "workout"
	LevelExercise Level = "exercise"
	LevelSet      Level = "set"
)

// Collection returns the MongoDB collection name backing this level.
func (l Level) Collection() string {
	switch l {
	case LevelProgram:
		return "programs"
	case LevelWeek:
		return "weeks"
	case LevelWorkout:
		return "workouts"
	case LevelExercise:
		return "exercises"
	case LevelSet:
		return "sets"
	}
	return ""
}

// Child returns the level directly below l, or "" for LevelSet.
func (l Level) Child() Level {
	switch l {
	case LevelProgram:
		return LevelWeek
	case LevelWeek:
		return LevelWorkout
	case LevelWorkout:
		return LevelExercise
	case LevelExercise:
		return LevelSet
	}
	return ""
}

// EntityPath addresses one entity by its full ancestor chain:
// owner → program → week → workout → exercise → set. Ids below the target
// level stay zero. This is the unit the cascade operator works on.
type EntityPath struct {
	OwnerID    primitive.ObjectID `json:"ownerId"`
	ProgramID  primitive.ObjectID `json:"programId"`
	WeekID     primitive.ObjectID `json:"weekId,omitempty"`
	WorkoutID  primitive.ObjectID `json:"workoutId,omitempty"`
	ExerciseID primitive.ObjectID `json:"exerciseId,omitempty"`
	SetID      primitive.ObjectID `json:"setId,omitempty"`
}

// Level returns the deepest level the path addresses.
func (p EntityPath) Level() Level {
	switch {
	case p.SetID != primitive.NilObjectID:
		return LevelSet
	case p.ExerciseID != primitive.NilObjectID:
		return LevelExercise
	case p.WorkoutID != primitive.NilObjectID:
		return LevelWorkout
	case p.WeekID != primitive.NilObjectID:
		return LevelWeek
	default:
		return LevelProgram
	}
}

// TargetID returns the id of the entity the path points at.
func (p EntityPath) TargetID() primitive.ObjectID {
	switch p.Level() {
	case LevelSet:
		return p.SetID
	case LevelExercise:
		return p.ExerciseID
	case LevelWorkout:
		return p.WorkoutID
	case LevelWeek:
		return p.WeekID
	default:
		return p.ProgramID
	}
}

// Validate rejects paths with a broken ancestor chain, e.g. an exerciseId
// without a weekId. The access-control layer depends on every hop being
// present.
func (p EntityPath) Validate() error {
	if p.OwnerID == primitive.NilObjectID {
		return errors.New("path requires ownerId")
	}
	if p.ProgramID == primitive.NilObjectID {
		return errors.New("path requires programId")
	}
	if p.WorkoutID != primitive.NilObjectID && p.WeekID == primitive.NilObjectID {
		return errors.New("path has workoutId without weekId")
	}
	if p.ExerciseID != primitive.NilObjectID && p.WorkoutID == primitive.NilObjectID {
		return errors.New("path has exerciseId without workoutId")
	}
	if p.SetID != primitive.NilObjectID && p.ExerciseID == primitive.NilObjectID {
		return errors.New("path has setId without exerciseId")
	}
	return nil
}
