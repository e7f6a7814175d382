package repository

import (
	"context"
	"fittrack/backend/internal/domain" // Import our defined domain models

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProgramRepository defines the interface for interacting with program data.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	SetArchived(ctx context.Context, id, ownerID primitive.ObjectID, archived bool) error
}

// WeekRepository defines the interface for interacting with week data.
type WeekRepository interface {
	Create(ctx context.Context, week *domain.Week) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Week, error)
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Week, error)
	// GetNamesByProgramID returns the names of all weeks in a program; the
	// copy namer uses them as its exclusion set.
	GetNamesByProgramID(ctx context.Context, programID primitive.ObjectID) ([]string, error)
	Update(ctx context.Context, week *domain.Week) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
}

// SetRepository defines the interface for interacting with set data.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error)
	GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.Set, error)
	Update(ctx context.Context, set *domain.Set) error
	// Delete removes a single leaf set; no cascade involved.
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// AuditRepository appends cascade audit records. Best-effort only: callers
// log failures and move on.
type AuditRepository interface {
	Create(ctx context.Context, record *domain.AuditRecord) (primitive.ObjectID, error)
}

// CascadeRepository performs the batched subtree reads and writes behind
// cascade duplicate/delete. Writes are issued as sequential chunks, each
// capped below the store's per-batch operation ceiling; there is NO
// cross-chunk atomicity. A mid-cascade error leaves earlier chunks applied,
// so callers must treat a failure as "possibly partially applied" and
// re-read.
type CascadeRepository interface {
	// GetSubtree reads the entity at path plus every descendant, in
	// deterministic per-level order. Returns ErrNotFound if the root does
	// not exist.
	GetSubtree(ctx context.Context, path domain.EntityPath) (*domain.Subtree, error)
	// CountSubtree counts the entity at path plus every descendant without
	// reading full documents.
	CountSubtree(ctx context.Context, path domain.EntityPath) (domain.CascadeCounts, error)
	// InsertSubtree writes every document in the subtree as chunked creates,
	// parents before children.
	InsertSubtree(ctx context.Context, subtree *domain.Subtree) error
	// DeleteSubtree removes every document in the subtree as chunked
	// deletes, leaves first.
	DeleteSubtree(ctx context.Context, subtree *domain.Subtree) error
}
