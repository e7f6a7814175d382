// internal/service/cascade_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
	"fittrack/backend/internal/storage"
	"log"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAccessDenied     = errors.New("caller does not own the target subtree")
	ErrPathMismatch     = errors.New("entity does not belong to the given parent")
	ErrProgramNotFound  = errors.New("program not found")
	ErrWeekNotFound     = errors.New("week not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSetNotFound      = errors.New("set not found")
)

// WeekDuplication is the result of duplicating a week subtree.
type WeekDuplication struct {
	WeekID  primitive.ObjectID   `json:"weekId"`  // Id of the new week
	Name    string               `json:"name"`    // Name chosen by the copy namer
	Mapping domain.IDMapping     `json:"mapping"` // Every source id -> new id, full subtree
	Counts  domain.CascadeCounts `json:"counts"`
}

// CascadeService performs the hierarchical duplicate/delete operations.
//
// Failure contract: pre-flight errors (not found, access denied) are
// returned before any write. Errors during the chunked writes are returned
// as-is with NO rollback of already-committed chunks; callers must treat
// such failures as possibly partially applied and re-read.
type CascadeService interface {
	// DuplicateWeek copies a week and every workout/exercise/set under it
	// into the same program, under a fresh non-colliding name.
	DuplicateWeek(ctx context.Context, ownerID, programID, weekID primitive.ObjectID) (*WeekDuplication, error)
	// PreviewDelete counts what DeleteCascade would remove, without writing.
	PreviewDelete(ctx context.Context, path domain.EntityPath) (domain.CascadeCounts, error)
	// DeleteCascade removes the entity at path and every descendant.
	DeleteCascade(ctx context.Context, path domain.EntityPath) (domain.CascadeCounts, error)
}

// cascadeService implements the CascadeService interface.
type cascadeService struct {
	programRepo  repository.ProgramRepository
	weekRepo     repository.WeekRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	cascadeRepo  repository.CascadeRepository
	auditRepo    repository.AuditRepository
	snapshots    storage.SnapshotStore // may be nil when snapshots are disabled
}

// NewCascadeService creates a new instance of cascadeService.
func NewCascadeService(
	programRepo repository.ProgramRepository,
	weekRepo repository.WeekRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	cascadeRepo repository.CascadeRepository,
	auditRepo repository.AuditRepository,
	snapshots storage.SnapshotStore,
) CascadeService {
	return &cascadeService{
		programRepo:  programRepo,
		weekRepo:     weekRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		cascadeRepo:  cascadeRepo,
		auditRepo:    auditRepo,
		snapshots:    snapshots,
	}
}

// === Duplication ===

// DuplicateWeek duplicates a week and its whole subtree.
func (s *cascadeService) DuplicateWeek(ctx context.Context, ownerID, programID, weekID primitive.ObjectID) (*WeekDuplication, error) {
	// 1. Validate Inputs
	if ownerID == primitive.NilObjectID || programID == primitive.NilObjectID || weekID == primitive.NilObjectID {
		return nil, errors.New("owner ID, program ID, and week ID are required")
	}

	// 2. Pre-flight: the source week must exist, sit under the given
	// program, and belong to the caller. Nothing is written before these
	// checks pass.
	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if week.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	if week.ProgramID != programID {
		return nil, ErrPathMismatch
	}

	// 3. Pick the new name from the current sibling names. Not transactional:
	// a concurrent duplicate can win the name between this scan and the
	// insert below.
	siblings, err := s.weekRepo.GetNamesByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	newName := NextCopyName(week.Name, siblings)

	// 4. Read the full source subtree in deterministic order.
	srcPath := domain.EntityPath{OwnerID: ownerID, ProgramID: programID, WeekID: weekID}
	src, err := s.cascadeRepo.GetSubtree(ctx, srcPath)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	// 5. Build the duplicate: fresh ids allocated up front, ancestor chains
	// rewritten level by level, per-type field resets applied.
	dup, mapping, err := duplicateWeekSubtree(src, newName, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// 6. Chunked creates, parents before children.
	if err := s.cascadeRepo.InsertSubtree(ctx, dup); err != nil {
		return nil, err
	}

	result := &WeekDuplication{
		WeekID:  dup.Weeks[0].ID,
		Name:    newName,
		Mapping: mapping,
		Counts:  dup.Counts(),
	}

	// 7. Best-effort audit; never fails the operation.
	s.writeAudit(ctx, &domain.AuditRecord{
		OwnerID: ownerID,
		Action:  domain.ActionDuplicate,
		Level:   domain.LevelWeek,
		RootID:  weekID,
		Counts:  result.Counts,
	})

	return result, nil
}

// duplicateWeekSubtree builds the duplicate of a single-week subtree: new
// ids for every document, parent references rewritten to the new ids, the
// week renamed, fresh timestamps everywhere, checked reset on every set,
// and weight cleared on sets of strength exercises (the "fresh start"
// policy; other exercise types keep their metrics verbatim).
//
// Ids are allocated before any document is emitted, so no child ever
// references a parent id that has not been decided.
func duplicateWeekSubtree(src *domain.Subtree, newName string, now time.Time) (*domain.Subtree, domain.IDMapping, error) {
	if len(src.Weeks) != 1 || len(src.Programs) != 0 {
		return nil, nil, errors.New("duplication source must be a subtree rooted at a single week")
	}

	mapping := domain.IDMapping{}
	newIDs := make(map[primitive.ObjectID]primitive.ObjectID)
	alloc := func(srcID primitive.ObjectID) primitive.ObjectID {
		id := primitive.NewObjectID()
		newIDs[srcID] = id
		mapping[srcID.Hex()] = id.Hex()
		return id
	}
	remap := func(srcParentID primitive.ObjectID) (primitive.ObjectID, error) {
		id, ok := newIDs[srcParentID]
		if !ok {
			return primitive.NilObjectID, errors.New("subtree document references a parent outside the subtree")
		}
		return id, nil
	}

	dup := &domain.Subtree{}

	week := src.Weeks[0]
	week.ID = alloc(src.Weeks[0].ID)
	week.Name = newName
	week.CreatedAt = now
	week.UpdatedAt = now
	dup.Weeks = append(dup.Weeks, week)

	for _, srcWorkout := range src.Workouts {
		workout := srcWorkout
		workout.ID = alloc(srcWorkout.ID)
		weekID, err := remap(srcWorkout.WeekID)
		if err != nil {
			return nil, nil, err
		}
		workout.WeekID = weekID
		workout.CreatedAt = now
		workout.UpdatedAt = now
		dup.Workouts = append(dup.Workouts, workout)
	}

	// Set duplication depends on the parent exercise's type.
	exerciseType := make(map[primitive.ObjectID]domain.ExerciseType, len(src.Exercises))

	for _, srcExercise := range src.Exercises {
		exerciseType[srcExercise.ID] = srcExercise.ExerciseType

		exercise := srcExercise
		exercise.ID = alloc(srcExercise.ID)
		workoutID, err := remap(srcExercise.WorkoutID)
		if err != nil {
			return nil, nil, err
		}
		exercise.WorkoutID = workoutID
		weekID, err := remap(srcExercise.WeekID)
		if err != nil {
			return nil, nil, err
		}
		exercise.WeekID = weekID
		exercise.CreatedAt = now
		exercise.UpdatedAt = now
		dup.Exercises = append(dup.Exercises, exercise)
	}

	for _, srcSet := range src.Sets {
		set := srcSet
		set.ID = alloc(srcSet.ID)
		exerciseID, err := remap(srcSet.ExerciseID)
		if err != nil {
			return nil, nil, err
		}
		set.ExerciseID = exerciseID
		workoutID, err := remap(srcSet.WorkoutID)
		if err != nil {
			return nil, nil, err
		}
		set.WorkoutID = workoutID
		weekID, err := remap(srcSet.WeekID)
		if err != nil {
			return nil, nil, err
		}
		set.WeekID = weekID

		// A duplicate starts unperformed.
		set.Checked = false
		if exerciseType[srcSet.ExerciseID] == domain.ExerciseStrength {
			set.Weight = nil
		}
		set.CreatedAt = now
		set.UpdatedAt = now
		dup.Sets = append(dup.Sets, set)
	}

	return dup, mapping, nil
}

// === Deletion ===

// PreviewDelete reports what a cascade delete at path would remove.
func (s *cascadeService) PreviewDelete(ctx context.Context, target domain.EntityPath) (domain.CascadeCounts, error) {
	if err := s.verifyTarget(ctx, target); err != nil {
		return domain.CascadeCounts{}, err
	}
	counts, err := s.cascadeRepo.CountSubtree(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.CascadeCounts{}, notFoundError(target.Level())
		}
		return domain.CascadeCounts{}, err
	}
	return counts, nil
}

// DeleteCascade removes the entity at path and every descendant below it.
func (s *cascadeService) DeleteCascade(ctx context.Context, target domain.EntityPath) (domain.CascadeCounts, error) {
	// 1. Pre-flight ownership and existence; rejects before any write.
	if err := s.verifyTarget(ctx, target); err != nil {
		return domain.CascadeCounts{}, err
	}

	// 2. Collect the full subtree.
	subtree, err := s.cascadeRepo.GetSubtree(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.CascadeCounts{}, notFoundError(target.Level())
		}
		return domain.CascadeCounts{}, err
	}
	counts := subtree.Counts()

	// 3. Best-effort pre-delete snapshot to object storage.
	snapshotKey := s.putSnapshot(ctx, target.OwnerID, subtree)

	// 4. Chunked deletes, leaves first.
	if err := s.cascadeRepo.DeleteSubtree(ctx, subtree); err != nil {
		return domain.CascadeCounts{}, err
	}

	// 5. Best-effort audit.
	s.writeAudit(ctx, &domain.AuditRecord{
		OwnerID:     target.OwnerID,
		Action:      domain.ActionDelete,
		Level:       target.Level(),
		RootID:      target.TargetID(),
		Counts:      counts,
		SnapshotKey: snapshotKey,
	})

	return counts, nil
}

// verifyTarget loads the entity the path points at and checks ownership and
// the ancestor chain. Cascade roots are program/week/workout/exercise; leaf
// sets are deleted directly through the set repository.
func (s *cascadeService) verifyTarget(ctx context.Context, target domain.EntityPath) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target.Level() {
	case domain.LevelProgram:
		program, err := s.programRepo.GetByID(ctx, target.ProgramID)
		if err != nil {
			return mapNotFound(err, ErrProgramNotFound)
		}
		if program.OwnerID != target.OwnerID {
			return ErrAccessDenied
		}
	case domain.LevelWeek:
		week, err := s.weekRepo.GetByID(ctx, target.WeekID)
		if err != nil {
			return mapNotFound(err, ErrWeekNotFound)
		}
		if week.OwnerID != target.OwnerID {
			return ErrAccessDenied
		}
		if week.ProgramID != target.ProgramID {
			return ErrPathMismatch
		}
	case domain.LevelWorkout:
		workout, err := s.workoutRepo.GetByID(ctx, target.WorkoutID)
		if err != nil {
			return mapNotFound(err, ErrWorkoutNotFound)
		}
		if workout.OwnerID != target.OwnerID {
			return ErrAccessDenied
		}
		if workout.ProgramID != target.ProgramID || workout.WeekID != target.WeekID {
			return ErrPathMismatch
		}
	case domain.LevelExercise:
		exercise, err := s.exerciseRepo.GetByID(ctx, target.ExerciseID)
		if err != nil {
			return mapNotFound(err, ErrExerciseNotFound)
		}
		if exercise.OwnerID != target.OwnerID {
			return ErrAccessDenied
		}
		if exercise.ProgramID != target.ProgramID || exercise.WeekID != target.WeekID || exercise.WorkoutID != target.WorkoutID {
			return ErrPathMismatch
		}
	default:
		return errors.New("cascade operations target programs, weeks, workouts, or exercises")
	}
	return nil
}

// === Best-effort side effects ===

// putSnapshot serializes the subtree and stores it under a fresh object key.
// Failures are logged and swallowed.
func (s *cascadeService) putSnapshot(ctx context.Context, ownerID primitive.ObjectID, subtree *domain.Subtree) *string {
	if s.snapshots == nil {
		return nil
	}
	data, err := json.Marshal(subtree)
	if err != nil {
		log.Printf("WARN: failed to serialize pre-delete snapshot: %v", err)
		return nil
	}
	key := path.Join("snapshots", ownerID.Hex(), uuid.NewString()+".json")
	if err := s.snapshots.Put(ctx, key, "application/json", data); err != nil {
		log.Printf("WARN: failed to store pre-delete snapshot %s: %v", key, err)
		return nil
	}
	return &key
}

// writeAudit appends an audit record. Failures are logged and swallowed.
func (s *cascadeService) writeAudit(ctx context.Context, record *domain.AuditRecord) {
	if s.auditRepo == nil {
		return
	}
	if _, err := s.auditRepo.Create(ctx, record); err != nil {
		log.Printf("WARN: failed to write audit record: %v", err)
	}
}

func mapNotFound(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

func notFoundError(level domain.Level) error {
	switch level {
	case domain.LevelProgram:
		return ErrProgramNotFound
	case domain.LevelWeek:
		return ErrWeekNotFound
	case domain.LevelWorkout:
		return ErrWorkoutNotFound
	case domain.LevelExercise:
		return ErrExerciseNotFound
	default:
		return ErrSetNotFound
	}
}
