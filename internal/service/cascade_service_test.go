package service

import (
	"context"
	"testing"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Fake repositories ---

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]*domain.Program
}

func (f *fakeProgramRepo) Create(ctx context.Context, p *domain.Program) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}
func (f *fakeProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	if p, ok := f.programs[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeProgramRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error) {
	return nil, nil
}
func (f *fakeProgramRepo) Update(ctx context.Context, p *domain.Program) error { return nil }
func (f *fakeProgramRepo) SetArchived(ctx context.Context, id, ownerID primitive.ObjectID, archived bool) error {
	return nil
}

type fakeWeekRepo struct {
	weeks map[primitive.ObjectID]*domain.Week
	names []string
}

func (f *fakeWeekRepo) Create(ctx context.Context, w *domain.Week) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}
func (f *fakeWeekRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Week, error) {
	if w, ok := f.weeks[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeWeekRepo) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Week, error) {
	return nil, nil
}
func (f *fakeWeekRepo) GetNamesByProgramID(ctx context.Context, programID primitive.ObjectID) ([]string, error) {
	return f.names, nil
}
func (f *fakeWeekRepo) Update(ctx context.Context, w *domain.Week) error { return nil }

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}
func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	if w, ok := f.workouts[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeWorkoutRepo) GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.Workout, error) {
	return nil, nil
}
func (f *fakeWorkoutRepo) Update(ctx context.Context, w *domain.Workout) error { return nil }

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func (f *fakeExerciseRepo) Create(ctx context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}
func (f *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if e, ok := f.exercises[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeExerciseRepo) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	return nil, nil
}
func (f *fakeExerciseRepo) Update(ctx context.Context, e *domain.Exercise) error { return nil }

type fakeCascadeRepo struct {
	subtree  *domain.Subtree
	inserted *domain.Subtree
	deleted  *domain.Subtree
}

func (f *fakeCascadeRepo) GetSubtree(ctx context.Context, path domain.EntityPath) (*domain.Subtree, error) {
	if f.subtree == nil {
		return nil, repository.ErrNotFound
	}
	return f.subtree, nil
}
func (f *fakeCascadeRepo) CountSubtree(ctx context.Context, path domain.EntityPath) (domain.CascadeCounts, error) {
	if f.subtree == nil {
		return domain.CascadeCounts{}, repository.ErrNotFound
	}
	return f.subtree.Counts(), nil
}
func (f *fakeCascadeRepo) InsertSubtree(ctx context.Context, subtree *domain.Subtree) error {
	f.inserted = subtree
	return nil
}
func (f *fakeCascadeRepo) DeleteSubtree(ctx context.Context, subtree *domain.Subtree) error {
	f.deleted = subtree
	return nil
}

type fakeAuditRepo struct {
	records []*domain.AuditRecord
}

func (f *fakeAuditRepo) Create(ctx context.Context, record *domain.AuditRecord) (primitive.ObjectID, error) {
	f.records = append(f.records, record)
	return primitive.NewObjectID(), nil
}

// --- Fixture ---

type cascadeFixture struct {
	ownerID   primitive.ObjectID
	programID primitive.ObjectID
	week      *domain.Week
	subtree   *domain.Subtree

	programRepo  *fakeProgramRepo
	weekRepo     *fakeWeekRepo
	workoutRepo  *fakeWorkoutRepo
	exerciseRepo *fakeExerciseRepo
	cascadeRepo  *fakeCascadeRepo
	auditRepo    *fakeAuditRepo

	svc CascadeService
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// newCascadeFixture builds one owner with one program containing one week,
// two workouts, one exercise per workout (one strength, one cardio), and two
// sets per exercise.
func newCascadeFixture(t *testing.T) *cascadeFixture {
	t.Helper()

	ownerID := primitive.NewObjectID()
	programID := primitive.NewObjectID()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	week := &domain.Week{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		ProgramID: programID,
		Name:      "Week 1",
		Order:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	subtree := &domain.Subtree{Weeks: []domain.Week{*week}}
	exerciseTypes := []domain.ExerciseType{domain.ExerciseStrength, domain.ExerciseCardio}
	for i := 0; i < 2; i++ {
		workout := domain.Workout{
			ID:         primitive.NewObjectID(),
			OwnerID:    ownerID,
			ProgramID:  programID,
			WeekID:     week.ID,
			Name:       "Workout",
			OrderIndex: i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		subtree.Workouts = append(subtree.Workouts, workout)

		exercise := domain.Exercise{
			ID:           primitive.NewObjectID(),
			OwnerID:      ownerID,
			ProgramID:    programID,
			WeekID:       week.ID,
			WorkoutID:    workout.ID,
			Name:         "Exercise",
			ExerciseType: exerciseTypes[i],
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		subtree.Exercises = append(subtree.Exercises, exercise)

		for n := 1; n <= 2; n++ {
			subtree.Sets = append(subtree.Sets, domain.Set{
				ID:         primitive.NewObjectID(),
				OwnerID:    ownerID,
				ProgramID:  programID,
				WeekID:     week.ID,
				WorkoutID:  workout.ID,
				ExerciseID: exercise.ID,
				SetNumber:  n,
				Reps:       intPtr(10),
				Weight:     floatPtr(100),
				Checked:    true,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}

	f := &cascadeFixture{
		ownerID:   ownerID,
		programID: programID,
		week:      week,
		subtree:   subtree,
		programRepo: &fakeProgramRepo{programs: map[primitive.ObjectID]*domain.Program{
			programID: {ID: programID, OwnerID: ownerID, Name: "Strength Block"},
		}},
		weekRepo: &fakeWeekRepo{
			weeks: map[primitive.ObjectID]*domain.Week{week.ID: week},
			names: []string{"Week 1"},
		},
		workoutRepo:  &fakeWorkoutRepo{workouts: map[primitive.ObjectID]*domain.Workout{}},
		exerciseRepo: &fakeExerciseRepo{exercises: map[primitive.ObjectID]*domain.Exercise{}},
		cascadeRepo:  &fakeCascadeRepo{subtree: subtree},
		auditRepo:    &fakeAuditRepo{},
	}
	for i := range subtree.Workouts {
		f.workoutRepo.workouts[subtree.Workouts[i].ID] = &subtree.Workouts[i]
	}
	for i := range subtree.Exercises {
		f.exerciseRepo.exercises[subtree.Exercises[i].ID] = &subtree.Exercises[i]
	}

	f.svc = NewCascadeService(f.programRepo, f.weekRepo, f.workoutRepo, f.exerciseRepo, f.cascadeRepo, f.auditRepo, nil)
	return f
}

// --- DuplicateWeek ---

func TestDuplicateWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("copies the full subtree with fresh ids", func(t *testing.T) {
		f := newCascadeFixture(t)

		result, err := f.svc.DuplicateWeek(ctx, f.ownerID, f.programID, f.week.ID)
		require.NoError(t, err)
		require.NotNil(t, f.cascadeRepo.inserted)

		// 1 week + 2 workouts + 2 exercises + 4 sets.
		assert.Equal(t, domain.CascadeCounts{Weeks: 1, Workouts: 2, Exercises: 2, Sets: 4}, result.Counts)
		assert.Equal(t, "Week 1 Copy 1", result.Name)
		assert.Len(t, result.Mapping, 9)

		// Every mapped id is new.
		for src, dst := range result.Mapping {
			assert.NotEqual(t, src, dst)
		}
		assert.Equal(t, result.WeekID.Hex(), result.Mapping[f.week.ID.Hex()])
	})

	t.Run("rewrites parent references to the new ids", func(t *testing.T) {
		f := newCascadeFixture(t)

		result, err := f.svc.DuplicateWeek(ctx, f.ownerID, f.programID, f.week.ID)
		require.NoError(t, err)

		dup := f.cascadeRepo.inserted
		require.NotNil(t, dup)
		newWeekID := result.WeekID

		for _, workout := range dup.Workouts {
			assert.Equal(t, newWeekID, workout.WeekID)
			assert.Equal(t, f.programID, workout.ProgramID)
			assert.Equal(t, f.ownerID, workout.OwnerID)
		}
		for i, exercise := range dup.Exercises {
			assert.Equal(t, newWeekID, exercise.WeekID)
			assert.Equal(t, dup.Workouts[i].ID, exercise.WorkoutID)
		}
		for _, set := range dup.Sets {
			assert.Equal(t, newWeekID, set.WeekID)
			srcExerciseHex := ""
			for src, dst := range result.Mapping {
				if dst == set.ExerciseID.Hex() {
					srcExerciseHex = src
				}
			}
			assert.NotEmpty(t, srcExerciseHex, "set references an exercise outside the mapping")
		}
	})

	t.Run("resets checked and clears weight on strength sets only", func(t *testing.T) {
		f := newCascadeFixture(t)

		_, err := f.svc.DuplicateWeek(ctx, f.ownerID, f.programID, f.week.ID)
		require.NoError(t, err)

		dup := f.cascadeRepo.inserted
		require.NotNil(t, dup)

		strengthExercise := dup.Exercises[0]
		require.Equal(t, domain.ExerciseStrength, strengthExercise.ExerciseType)
		cardioExercise := dup.Exercises[1]
		require.Equal(t, domain.ExerciseCardio, cardioExercise.ExerciseType)

		for _, set := range dup.Sets {
			assert.False(t, set.Checked)
			require.NotNil(t, set.Reps)
			assert.Equal(t, 10, *set.Reps)
			switch set.ExerciseID {
			case strengthExercise.ID:
				assert.Nil(t, set.Weight, "strength sets restart without a target weight")
			case cardioExercise.ID:
				require.NotNil(t, set.Weight)
				assert.Equal(t, 100.0, *set.Weight)
			}
		}
	})

	t.Run("picks the next free copy name", func(t *testing.T) {
		f := newCascadeFixture(t)
		f.weekRepo.names = []string{"Week 1", "Week 1 Copy 1", "Week 1 Copy 2"}

		result, err := f.svc.DuplicateWeek(ctx, f.ownerID, f.programID, f.week.ID)
		require.NoError(t, err)
		assert.Equal(t, "Week 1 Copy 3", result.Name)
	})

	t.Run("rejects a caller who does not own the week", func(t *testing.T) {
		f := newCascadeFixture(t)

		_, err := f.svc.DuplicateWeek(ctx, primitive.NewObjectID(), f.programID, f.week.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, f.cascadeRepo.inserted, "no writes after a failed pre-flight")
	})

	t.Run("rejects a week under a different program", func(t *testing.T) {
		f := newCascadeFixture(t)

		_, err := f.svc.DuplicateWeek(ctx, f.ownerID, primitive.NewObjectID(), f.week.ID)
		assert.ErrorIs(t, err, ErrPathMismatch)
		assert.Nil(t, f.cascadeRepo.inserted)
	})

	t.Run("missing week", func(t *testing.T) {
		f := newCascadeFixture(t)

		_, err := f.svc.DuplicateWeek(ctx, f.ownerID, f.programID, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrWeekNotFound)
	})

	t.Run("writes an audit record", func(t *testing.T) {
		f := newCascadeFixture(t)

		_, err := f.svc.DuplicateWeek(ctx, f.ownerID, f.programID, f.week.ID)
		require.NoError(t, err)
		require.Len(t, f.auditRepo.records, 1)
		record := f.auditRepo.records[0]
		assert.Equal(t, domain.ActionDuplicate, record.Action)
		assert.Equal(t, domain.LevelWeek, record.Level)
		assert.Equal(t, f.week.ID, record.RootID)
	})
}

// --- PreviewDelete / DeleteCascade ---

func TestPreviewDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("counts the subtree without writing", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{OwnerID: f.ownerID, ProgramID: f.programID, WeekID: f.week.ID}

		counts, err := f.svc.PreviewDelete(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, domain.CascadeCounts{Weeks: 1, Workouts: 2, Exercises: 2, Sets: 4}, counts)
		assert.Equal(t, 9, counts.Total())
		assert.Nil(t, f.cascadeRepo.deleted)
		assert.Empty(t, f.auditRepo.records)
	})

	t.Run("denies foreign subtrees", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{OwnerID: primitive.NewObjectID(), ProgramID: f.programID, WeekID: f.week.ID}

		_, err := f.svc.PreviewDelete(ctx, target)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the week subtree and reports counts", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{OwnerID: f.ownerID, ProgramID: f.programID, WeekID: f.week.ID}

		counts, err := f.svc.DeleteCascade(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, 9, counts.Total())
		require.NotNil(t, f.cascadeRepo.deleted)
		assert.Equal(t, counts, f.cascadeRepo.deleted.Counts())
	})

	t.Run("rejects a workout whose path does not match", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{
			OwnerID:   f.ownerID,
			ProgramID: f.programID,
			WeekID:    primitive.NewObjectID(), // not the workout's week
			WorkoutID: f.subtree.Workouts[0].ID,
		}

		_, err := f.svc.DeleteCascade(ctx, target)
		assert.ErrorIs(t, err, ErrPathMismatch)
		assert.Nil(t, f.cascadeRepo.deleted)
	})

	t.Run("rejects set-level cascade targets", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{
			OwnerID:    f.ownerID,
			ProgramID:  f.programID,
			WeekID:     f.week.ID,
			WorkoutID:  f.subtree.Workouts[0].ID,
			ExerciseID: f.subtree.Exercises[0].ID,
			SetID:      f.subtree.Sets[0].ID,
		}

		_, err := f.svc.DeleteCascade(ctx, target)
		assert.Error(t, err)
		assert.Nil(t, f.cascadeRepo.deleted)
	})

	t.Run("rejects a broken ancestor chain", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{
			OwnerID:   f.ownerID,
			ProgramID: f.programID,
			WorkoutID: f.subtree.Workouts[0].ID, // workoutId without weekId
		}

		_, err := f.svc.DeleteCascade(ctx, target)
		assert.Error(t, err)
	})

	t.Run("writes an audit record with the snapshot key absent", func(t *testing.T) {
		f := newCascadeFixture(t)
		target := domain.EntityPath{OwnerID: f.ownerID, ProgramID: f.programID, WeekID: f.week.ID}

		_, err := f.svc.DeleteCascade(ctx, target)
		require.NoError(t, err)
		require.Len(t, f.auditRepo.records, 1)
		record := f.auditRepo.records[0]
		assert.Equal(t, domain.ActionDelete, record.Action)
		assert.Nil(t, record.SnapshotKey, "snapshots disabled in this fixture")
	})
}

// --- duplicateWeekSubtree (pure transform) ---

func TestDuplicateWeekSubtree(t *testing.T) {
	t.Run("rejects sources not rooted at a single week", func(t *testing.T) {
		now := time.Now().UTC()
		_, _, err := duplicateWeekSubtree(&domain.Subtree{}, "X", now)
		assert.Error(t, err)

		_, _, err = duplicateWeekSubtree(&domain.Subtree{
			Programs: []domain.Program{{ID: primitive.NewObjectID()}},
			Weeks:    []domain.Week{{ID: primitive.NewObjectID()}},
		}, "X", now)
		assert.Error(t, err)
	})

	t.Run("rejects documents referencing parents outside the subtree", func(t *testing.T) {
		now := time.Now().UTC()
		src := &domain.Subtree{
			Weeks: []domain.Week{{ID: primitive.NewObjectID()}},
			Workouts: []domain.Workout{
				{ID: primitive.NewObjectID(), WeekID: primitive.NewObjectID()}, // stranger week
			},
		}
		_, _, err := duplicateWeekSubtree(src, "X", now)
		assert.Error(t, err)
	})

	t.Run("uses the supplied timestamp everywhere", func(t *testing.T) {
		now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
		weekID := primitive.NewObjectID()
		src := &domain.Subtree{
			Weeks: []domain.Week{{ID: weekID, Name: "Old", CreatedAt: now.AddDate(-1, 0, 0)}},
			Workouts: []domain.Workout{
				{ID: primitive.NewObjectID(), WeekID: weekID, CreatedAt: now.AddDate(-1, 0, 0)},
			},
		}

		dup, mapping, err := duplicateWeekSubtree(src, "New", now)
		require.NoError(t, err)
		assert.Len(t, mapping, 2)
		assert.Equal(t, "New", dup.Weeks[0].Name)
		assert.Equal(t, now, dup.Weeks[0].CreatedAt)
		assert.Equal(t, now, dup.Weeks[0].UpdatedAt)
		assert.Equal(t, now, dup.Workouts[0].CreatedAt)
	})
}
