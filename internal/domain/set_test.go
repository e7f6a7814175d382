package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validSet() Set {
	reps := 8
	return Set{
		OwnerID:    primitive.NewObjectID(),
		ProgramID:  primitive.NewObjectID(),
		WeekID:     primitive.NewObjectID(),
		WorkoutID:  primitive.NewObjectID(),
		ExerciseID: primitive.NewObjectID(),
		SetNumber:  1,
		Reps:       &reps,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func TestSetValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := validSet()
		assert.NoError(t, s.Validate())
	})

	t.Run("requires the full ancestor chain", func(t *testing.T) {
		s := validSet()
		s.WorkoutID = primitive.NilObjectID
		assert.Error(t, s.Validate())
	})

	t.Run("requires setNumber >= 1", func(t *testing.T) {
		s := validSet()
		s.SetNumber = 0
		assert.Error(t, s.Validate())
	})

	t.Run("requires at least one metric", func(t *testing.T) {
		s := validSet()
		s.Reps = nil
		assert.Error(t, s.Validate())

		duration := 60
		s.Duration = &duration
		assert.NoError(t, s.Validate())

		s.Duration = nil
		distance := 5000.0
		s.Distance = &distance
		assert.NoError(t, s.Validate())
	})

	t.Run("weight alone is not a metric", func(t *testing.T) {
		s := validSet()
		s.Reps = nil
		weight := 80.0
		s.Weight = &weight
		assert.Error(t, s.Validate())
	})
}

func TestExerciseTypeIsValid(t *testing.T) {
	for _, typ := range []ExerciseType{ExerciseStrength, ExerciseCardio, ExerciseTimeBased, ExerciseBodyweight, ExerciseCustom} {
		assert.True(t, typ.IsValid(), string(typ))
	}
	assert.False(t, ExerciseType("yoga").IsValid())
	assert.False(t, ExerciseType("").IsValid())
}
