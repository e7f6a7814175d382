package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEntityPathLevel(t *testing.T) {
	owner := primitive.NewObjectID()
	program := primitive.NewObjectID()
	week := primitive.NewObjectID()
	workout := primitive.NewObjectID()
	exercise := primitive.NewObjectID()
	set := primitive.NewObjectID()

	cases := []struct {
		name string
		path EntityPath
		want Level
	}{
		{"program", EntityPath{OwnerID: owner, ProgramID: program}, LevelProgram},
		{"week", EntityPath{OwnerID: owner, ProgramID: program, WeekID: week}, LevelWeek},
		{"workout", EntityPath{OwnerID: owner, ProgramID: program, WeekID: week, WorkoutID: workout}, LevelWorkout},
		{"exercise", EntityPath{OwnerID: owner, ProgramID: program, WeekID: week, WorkoutID: workout, ExerciseID: exercise}, LevelExercise},
		{"set", EntityPath{OwnerID: owner, ProgramID: program, WeekID: week, WorkoutID: workout, ExerciseID: exercise, SetID: set}, LevelSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.path.Level())
			assert.NoError(t, tc.path.Validate())
			assert.NotEqual(t, primitive.NilObjectID, tc.path.TargetID())
		})
	}
}

func TestEntityPathValidate(t *testing.T) {
	owner := primitive.NewObjectID()
	program := primitive.NewObjectID()

	t.Run("requires owner and program", func(t *testing.T) {
		assert.Error(t, EntityPath{}.Validate())
		assert.Error(t, EntityPath{OwnerID: owner}.Validate())
	})

	t.Run("rejects broken ancestor chains", func(t *testing.T) {
		assert.Error(t, EntityPath{
			OwnerID: owner, ProgramID: program,
			WorkoutID: primitive.NewObjectID(),
		}.Validate(), "workoutId without weekId")

		assert.Error(t, EntityPath{
			OwnerID: owner, ProgramID: program,
			WeekID:     primitive.NewObjectID(),
			ExerciseID: primitive.NewObjectID(),
		}.Validate(), "exerciseId without workoutId")

		assert.Error(t, EntityPath{
			OwnerID: owner, ProgramID: program,
			WeekID:    primitive.NewObjectID(),
			WorkoutID: primitive.NewObjectID(),
			SetID:     primitive.NewObjectID(),
		}.Validate(), "setId without exerciseId")
	})
}

func TestLevelChild(t *testing.T) {
	assert.Equal(t, LevelWeek, LevelProgram.Child())
	assert.Equal(t, LevelWorkout, LevelWeek.Child())
	assert.Equal(t, LevelExercise, LevelWorkout.Child())
	assert.Equal(t, LevelSet, LevelExercise.Child())
	assert.Equal(t, Level(""), LevelSet.Child())
}
