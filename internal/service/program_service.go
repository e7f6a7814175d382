// internal/service/program_service.go
package service

import (
	"context"
	"errors"
	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Inputs ---
// Update inputs carry pointers: nil means "leave the field alone". Updates
// are always field-level; no full-document overwrite happens anywhere.

type CreateProgramInput struct {
	Name        string
	Description *string
}

type UpdateProgramInput struct {
	Name        *string
	Description *string
}

type CreateWeekInput struct {
	Name  string
	Order int
	Notes *string
}

type UpdateWeekInput struct {
	Name  *string
	Order *int
	Notes *string
}

type CreateWorkoutInput struct {
	Name       string
	DayOfWeek  *int
	OrderIndex int
	Notes      *string
}

type UpdateWorkoutInput struct {
	Name       *string
	DayOfWeek  *int
	OrderIndex *int
	Notes      *string
}

type CreateExerciseInput struct {
	Name         string
	ExerciseType domain.ExerciseType
	OrderIndex   int
	Notes        *string
}

type UpdateExerciseInput struct {
	Name         *string
	ExerciseType *domain.ExerciseType
	OrderIndex   *int
	Notes        *string
}

type CreateSetInput struct {
	SetNumber int
	Reps      *int
	Weight    *float64
	Duration  *int
	Distance  *float64
	RestTime  *int
	Notes     *string
}

type UpdateSetInput struct {
	SetNumber *int
	Reps      *int
	Weight    *float64
	Duration  *int
	Distance  *float64
	RestTime  *int
	Checked   *bool
	Notes     *string
}

// ProgramService covers create/read/update per hierarchy level plus the
// non-cascading operations (program archiving, leaf set deletion). Every
// mutation verifies ownership against the stored document before writing.
type ProgramService interface {
	CreateProgram(ctx context.Context, ownerID primitive.ObjectID, input CreateProgramInput) (*domain.Program, error)
	GetPrograms(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error)
	GetProgram(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.Program, error)
	UpdateProgram(ctx context.Context, ownerID, programID primitive.ObjectID, input UpdateProgramInput) (*domain.Program, error)
	SetProgramArchived(ctx context.Context, ownerID, programID primitive.ObjectID, archived bool) error

	CreateWeek(ctx context.Context, ownerID, programID primitive.ObjectID, input CreateWeekInput) (*domain.Week, error)
	GetWeeks(ctx context.Context, ownerID, programID primitive.ObjectID) ([]domain.Week, error)
	UpdateWeek(ctx context.Context, ownerID, weekID primitive.ObjectID, input UpdateWeekInput) (*domain.Week, error)

	CreateWorkout(ctx context.Context, ownerID, weekID primitive.ObjectID, input CreateWorkoutInput) (*domain.Workout, error)
	GetWorkouts(ctx context.Context, ownerID, weekID primitive.ObjectID) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID, input UpdateWorkoutInput) (*domain.Workout, error)

	CreateExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, input CreateExerciseInput) (*domain.Exercise, error)
	GetExercises(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, input UpdateExerciseInput) (*domain.Exercise, error)

	CreateSet(ctx context.Context, ownerID, exerciseID primitive.ObjectID, input CreateSetInput) (*domain.Set, error)
	GetSets(ctx context.Context, ownerID, exerciseID primitive.ObjectID) ([]domain.Set, error)
	UpdateSet(ctx context.Context, ownerID, setID primitive.ObjectID, input UpdateSetInput) (*domain.Set, error)
	DeleteSet(ctx context.Context, ownerID, setID primitive.ObjectID) error
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo  repository.ProgramRepository
	weekRepo     repository.WeekRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	setRepo      repository.SetRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	weekRepo repository.WeekRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	setRepo repository.SetRepository,
) ProgramService {
	return &programService{
		programRepo:  programRepo,
		weekRepo:     weekRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		setRepo:      setRepo,
	}
}

// === Programs ===

func (s *programService) CreateProgram(ctx context.Context, ownerID primitive.ObjectID, input CreateProgramInput) (*domain.Program, error) {
	if ownerID == primitive.NilObjectID || input.Name == "" {
		return nil, errors.New("owner ID and name are required")
	}
	program := &domain.Program{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
	}
	id, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = id
	return program, nil
}

func (s *programService) GetPrograms(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required")
	}
	return s.programRepo.GetByOwnerID(ctx, ownerID, includeArchived)
}

// getOwnedProgram loads a program and enforces ownership.
func (s *programService) getOwnedProgram(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, mapNotFound(err, ErrProgramNotFound)
	}
	if program.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return program, nil
}

func (s *programService) GetProgram(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.Program, error) {
	return s.getOwnedProgram(ctx, ownerID, programID)
}

func (s *programService) UpdateProgram(ctx context.Context, ownerID, programID primitive.ObjectID, input UpdateProgramInput) (*domain.Program, error) {
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		program.Name = *input.Name
	}
	if input.Description != nil {
		program.Description = input.Description
	}
	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, mapNotFound(err, ErrProgramNotFound)
	}
	return program, nil
}

func (s *programService) SetProgramArchived(ctx context.Context, ownerID, programID primitive.ObjectID, archived bool) error {
	if _, err := s.getOwnedProgram(ctx, ownerID, programID); err != nil {
		return err
	}
	return s.programRepo.SetArchived(ctx, programID, ownerID, archived)
}

// === Weeks ===

func (s *programService) CreateWeek(ctx context.Context, ownerID, programID primitive.ObjectID, input CreateWeekInput) (*domain.Week, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	// Parent must exist and belong to the caller.
	if _, err := s.getOwnedProgram(ctx, ownerID, programID); err != nil {
		return nil, err
	}
	week := &domain.Week{
		OwnerID:   ownerID,
		ProgramID: programID,
		Name:      input.Name,
		Order:     input.Order,
		Notes:     input.Notes,
	}
	id, err := s.weekRepo.Create(ctx, week)
	if err != nil {
		return nil, err
	}
	week.ID = id
	return week, nil
}

func (s *programService) GetWeeks(ctx context.Context, ownerID, programID primitive.ObjectID) ([]domain.Week, error) {
	if _, err := s.getOwnedProgram(ctx, ownerID, programID); err != nil {
		return nil, err
	}
	return s.weekRepo.GetByProgramID(ctx, programID)
}

// getOwnedWeek loads a week and enforces ownership.
func (s *programService) getOwnedWeek(ctx context.Context, ownerID, weekID primitive.ObjectID) (*domain.Week, error) {
	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, mapNotFound(err, ErrWeekNotFound)
	}
	if week.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return week, nil
}

func (s *programService) UpdateWeek(ctx context.Context, ownerID, weekID primitive.ObjectID, input UpdateWeekInput) (*domain.Week, error) {
	week, err := s.getOwnedWeek(ctx, ownerID, weekID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		week.Name = *input.Name
	}
	if input.Order != nil {
		week.Order = *input.Order
	}
	if input.Notes != nil {
		week.Notes = input.Notes
	}
	if err := s.weekRepo.Update(ctx, week); err != nil {
		return nil, mapNotFound(err, ErrWeekNotFound)
	}
	return week, nil
}

// === Workouts ===

func (s *programService) CreateWorkout(ctx context.Context, ownerID, weekID primitive.ObjectID, input CreateWorkoutInput) (*domain.Workout, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	week, err := s.getOwnedWeek(ctx, ownerID, weekID)
	if err != nil {
		return nil, err
	}
	workout := &domain.Workout{
		OwnerID:    ownerID,
		ProgramID:  week.ProgramID,
		WeekID:     weekID,
		Name:       input.Name,
		DayOfWeek:  input.DayOfWeek,
		OrderIndex: input.OrderIndex,
		Notes:      input.Notes,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *programService) GetWorkouts(ctx context.Context, ownerID, weekID primitive.ObjectID) ([]domain.Workout, error) {
	if _, err := s.getOwnedWeek(ctx, ownerID, weekID); err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByWeekID(ctx, weekID)
}

// getOwnedWorkout loads a workout and enforces ownership.
func (s *programService) getOwnedWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	if workout.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return workout, nil
}

func (s *programService) UpdateWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID, input UpdateWorkoutInput) (*domain.Workout, error) {
	workout, err := s.getOwnedWorkout(ctx, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		workout.Name = *input.Name
	}
	if input.DayOfWeek != nil {
		workout.DayOfWeek = input.DayOfWeek
	}
	if input.OrderIndex != nil {
		workout.OrderIndex = *input.OrderIndex
	}
	if input.Notes != nil {
		workout.Notes = input.Notes
	}
	if err := workout.Validate(); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return workout, nil
}

// === Exercises ===

func (s *programService) CreateExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, input CreateExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	workout, err := s.getOwnedWorkout(ctx, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	exercise := &domain.Exercise{
		OwnerID:      ownerID,
		ProgramID:    workout.ProgramID,
		WeekID:       workout.WeekID,
		WorkoutID:    workoutID,
		Name:         input.Name,
		ExerciseType: input.ExerciseType,
		OrderIndex:   input.OrderIndex,
		Notes:        input.Notes,
	}
	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *programService) GetExercises(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	if _, err := s.getOwnedWorkout(ctx, ownerID, workoutID); err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByWorkoutID(ctx, workoutID)
}

// getOwnedExercise loads an exercise and enforces ownership.
func (s *programService) getOwnedExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, mapNotFound(err, ErrExerciseNotFound)
	}
	if exercise.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return exercise, nil
}

func (s *programService) UpdateExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID, input UpdateExerciseInput) (*domain.Exercise, error) {
	exercise, err := s.getOwnedExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		exercise.Name = *input.Name
	}
	if input.ExerciseType != nil {
		exercise.ExerciseType = *input.ExerciseType
	}
	if input.OrderIndex != nil {
		exercise.OrderIndex = *input.OrderIndex
	}
	if input.Notes != nil {
		exercise.Notes = input.Notes
	}
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, mapNotFound(err, ErrExerciseNotFound)
	}
	return exercise, nil
}

// === Sets ===

func (s *programService) CreateSet(ctx context.Context, ownerID, exerciseID primitive.ObjectID, input CreateSetInput) (*domain.Set, error) {
	exercise, err := s.getOwnedExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return nil, err
	}
	set := &domain.Set{
		OwnerID:    ownerID,
		ProgramID:  exercise.ProgramID,
		WeekID:     exercise.WeekID,
		WorkoutID:  exercise.WorkoutID,
		ExerciseID: exerciseID,
		SetNumber:  input.SetNumber,
		Reps:       input.Reps,
		Weight:     input.Weight,
		Duration:   input.Duration,
		Distance:   input.Distance,
		RestTime:   input.RestTime,
		Notes:      input.Notes,
	}
	id, err := s.setRepo.Create(ctx, set)
	if err != nil {
		return nil, err
	}
	set.ID = id
	return set, nil
}

func (s *programService) GetSets(ctx context.Context, ownerID, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	if _, err := s.getOwnedExercise(ctx, ownerID, exerciseID); err != nil {
		return nil, err
	}
	return s.setRepo.GetByExerciseID(ctx, exerciseID)
}

// getOwnedSet loads a set and enforces ownership.
func (s *programService) getOwnedSet(ctx context.Context, ownerID, setID primitive.ObjectID) (*domain.Set, error) {
	set, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		return nil, mapNotFound(err, ErrSetNotFound)
	}
	if set.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return set, nil
}

func (s *programService) UpdateSet(ctx context.Context, ownerID, setID primitive.ObjectID, input UpdateSetInput) (*domain.Set, error) {
	set, err := s.getOwnedSet(ctx, ownerID, setID)
	if err != nil {
		return nil, err
	}
	if input.SetNumber != nil {
		set.SetNumber = *input.SetNumber
	}
	if input.Reps != nil {
		set.Reps = input.Reps
	}
	if input.Weight != nil {
		set.Weight = input.Weight
	}
	if input.Duration != nil {
		set.Duration = input.Duration
	}
	if input.Distance != nil {
		set.Distance = input.Distance
	}
	if input.RestTime != nil {
		set.RestTime = input.RestTime
	}
	if input.Checked != nil {
		set.Checked = *input.Checked
	}
	if input.Notes != nil {
		set.Notes = input.Notes
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if err := s.setRepo.Update(ctx, set); err != nil {
		return nil, mapNotFound(err, ErrSetNotFound)
	}
	return set, nil
}

// DeleteSet removes one leaf set; no cascade applies at this level.
func (s *programService) DeleteSet(ctx context.Context, ownerID, setID primitive.ObjectID) error {
	if _, err := s.getOwnedSet(ctx, ownerID, setID); err != nil {
		return err
	}
	return s.setRepo.Delete(ctx, setID, ownerID)
}
