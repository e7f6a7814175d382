package service

import (
	"context"
	"testing"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSetRepo struct {
	sets    map[primitive.ObjectID]*domain.Set
	updated *domain.Set
	deleted []primitive.ObjectID
}

func (f *fakeSetRepo) Create(ctx context.Context, s *domain.Set) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}
func (f *fakeSetRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error) {
	if s, ok := f.sets[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeSetRepo) GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	return nil, nil
}
func (f *fakeSetRepo) Update(ctx context.Context, s *domain.Set) error {
	f.updated = s
	return nil
}
func (f *fakeSetRepo) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type programFixture struct {
	*cascadeFixture
	setRepo *fakeSetRepo
	svc     ProgramService
}

func newProgramFixture(t *testing.T) *programFixture {
	t.Helper()
	base := newCascadeFixture(t)

	setRepo := &fakeSetRepo{sets: map[primitive.ObjectID]*domain.Set{}}
	for i := range base.subtree.Sets {
		setRepo.sets[base.subtree.Sets[i].ID] = &base.subtree.Sets[i]
	}

	return &programFixture{
		cascadeFixture: base,
		setRepo:        setRepo,
		svc:            NewProgramService(base.programRepo, base.weekRepo, base.workoutRepo, base.exerciseRepo, setRepo),
	}
}

func TestCreateWorkout(t *testing.T) {
	ctx := context.Background()

	t.Run("copies the ancestor chain from the parent week", func(t *testing.T) {
		f := newProgramFixture(t)

		workout, err := f.svc.CreateWorkout(ctx, f.ownerID, f.week.ID, CreateWorkoutInput{Name: "Day 1"})
		require.NoError(t, err)
		assert.Equal(t, f.ownerID, workout.OwnerID)
		assert.Equal(t, f.programID, workout.ProgramID)
		assert.Equal(t, f.week.ID, workout.WeekID)
		assert.NotEqual(t, primitive.NilObjectID, workout.ID)
	})

	t.Run("rejects a week the caller does not own", func(t *testing.T) {
		f := newProgramFixture(t)

		_, err := f.svc.CreateWorkout(ctx, primitive.NewObjectID(), f.week.ID, CreateWorkoutInput{Name: "Day 1"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("requires a name", func(t *testing.T) {
		f := newProgramFixture(t)

		_, err := f.svc.CreateWorkout(ctx, f.ownerID, f.week.ID, CreateWorkoutInput{})
		assert.Error(t, err)
	})
}

func TestUpdateWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("nil fields stay untouched", func(t *testing.T) {
		f := newProgramFixture(t)
		newName := "Deload"

		week, err := f.svc.UpdateWeek(ctx, f.ownerID, f.week.ID, UpdateWeekInput{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Deload", week.Name)
		assert.Equal(t, f.week.Order, week.Order, "order not in the input, must not change")
	})

	t.Run("missing week", func(t *testing.T) {
		f := newProgramFixture(t)

		_, err := f.svc.UpdateWeek(ctx, f.ownerID, primitive.NewObjectID(), UpdateWeekInput{})
		assert.ErrorIs(t, err, ErrWeekNotFound)
	})
}

func TestUpdateSet(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps the other metrics", func(t *testing.T) {
		f := newProgramFixture(t)
		target := f.subtree.Sets[0]

		set, err := f.svc.UpdateSet(ctx, f.ownerID, target.ID, UpdateSetInput{Weight: floatPtr(102.5)})
		require.NoError(t, err)
		require.NotNil(t, set.Weight)
		assert.Equal(t, 102.5, *set.Weight)
		require.NotNil(t, set.Reps)
		assert.Equal(t, 10, *set.Reps)
		assert.True(t, set.Checked, "checked not in the input, must not change")
		require.NotNil(t, f.setRepo.updated)
	})

	t.Run("checked can be toggled", func(t *testing.T) {
		f := newProgramFixture(t)
		target := f.subtree.Sets[0]
		checked := false

		set, err := f.svc.UpdateSet(ctx, f.ownerID, target.ID, UpdateSetInput{Checked: &checked})
		require.NoError(t, err)
		assert.False(t, set.Checked)
	})

	t.Run("denies foreign sets", func(t *testing.T) {
		f := newProgramFixture(t)
		target := f.subtree.Sets[0]

		_, err := f.svc.UpdateSet(ctx, primitive.NewObjectID(), target.ID, UpdateSetInput{})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, f.setRepo.updated)
	})
}

func TestDeleteSet(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes one leaf", func(t *testing.T) {
		f := newProgramFixture(t)
		target := f.subtree.Sets[0]

		err := f.svc.DeleteSet(ctx, f.ownerID, target.ID)
		require.NoError(t, err)
		require.Len(t, f.setRepo.deleted, 1)
		assert.Equal(t, target.ID, f.setRepo.deleted[0])
	})

	t.Run("missing set", func(t *testing.T) {
		f := newProgramFixture(t)

		err := f.svc.DeleteSet(ctx, f.ownerID, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrSetNotFound)
	})
}
