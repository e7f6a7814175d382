// internal/repository/mongo/cascade_repo.go
package mongo

import (
	"context"
	"errors"
	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCascadeRepository implements repository.CascadeRepository. It issues
// the chunked bulk writes behind cascade duplicate/delete. Every document in
// the tree carries its full ancestor-id chain, so one filter per level is
// enough to address an entire subtree.
type mongoCascadeRepository struct {
	db *mongo.Database
}

// NewMongoCascadeRepository creates a new cascade repository.
func NewMongoCascadeRepository(db *mongo.Database) repository.CascadeRepository {
	return &mongoCascadeRepository{db: db}
}

// ancestorField returns the hierarchical id field that scopes descendants to
// the subtree rooted at the given level.
func ancestorField(level domain.Level) string {
	switch level {
	case domain.LevelProgram:
		return "programId"
	case domain.LevelWeek:
		return "weekId"
	case domain.LevelWorkout:
		return "workoutId"
	case domain.LevelExercise:
		return "exerciseId"
	}
	return ""
}

// levelSort gives the deterministic read order per level. Stable order is
// what makes the duplication id-mapping reproducible and testable.
func levelSort(level domain.Level) bson.D {
	switch level {
	case domain.LevelWeek:
		return bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
	case domain.LevelWorkout:
		return bson.D{{Key: "weekId", Value: 1}, {Key: "orderIndex", Value: 1}, {Key: "_id", Value: 1}}
	case domain.LevelExercise:
		return bson.D{{Key: "workoutId", Value: 1}, {Key: "orderIndex", Value: 1}, {Key: "_id", Value: 1}}
	case domain.LevelSet:
		return bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "_id", Value: 1}}
}

// GetSubtree reads the root entity plus all of its descendants, level by
// level in deterministic order.
func (r *mongoCascadeRepository) GetSubtree(ctx context.Context, path domain.EntityPath) (*domain.Subtree, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	rootLevel := path.Level()
	subtree := &domain.Subtree{}

	// Root document first; a missing root fails the whole operation before
	// any descendant read.
	rootFilter := bson.M{"_id": path.TargetID()}
	if err := r.readLevel(ctx, rootLevel, rootFilter, subtree); err != nil {
		return nil, err
	}
	if subtree.Counts().Total() == 0 {
		return nil, repository.ErrNotFound
	}

	// Iterative per-level worklist below the root. One query per level: the
	// ancestor chain on every document scopes it to the subtree directly.
	scope := ancestorField(rootLevel)
	for level := rootLevel.Child(); level != ""; level = level.Child() {
		filter := bson.M{scope: path.TargetID()}
		if err := r.readLevel(ctx, level, filter, subtree); err != nil {
			return nil, err
		}
	}
	return subtree, nil
}

// readLevel queries one collection and appends the documents to the subtree.
func (r *mongoCascadeRepository) readLevel(ctx context.Context, level domain.Level, filter bson.M, subtree *domain.Subtree) error {
	findOptions := options.Find().SetSort(levelSort(level))
	cursor, err := r.db.Collection(level.Collection()).Find(ctx, filter, findOptions)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	switch level {
	case domain.LevelProgram:
		return cursor.All(ctx, &subtree.Programs)
	case domain.LevelWeek:
		return cursor.All(ctx, &subtree.Weeks)
	case domain.LevelWorkout:
		return cursor.All(ctx, &subtree.Workouts)
	case domain.LevelExercise:
		return cursor.All(ctx, &subtree.Exercises)
	case domain.LevelSet:
		return cursor.All(ctx, &subtree.Sets)
	}
	return fmt.Errorf("unknown level %q", level)
}

// CountSubtree counts the root and every descendant without reading
// documents. Used for the delete-preview warning.
func (r *mongoCascadeRepository) CountSubtree(ctx context.Context, path domain.EntityPath) (domain.CascadeCounts, error) {
	var counts domain.CascadeCounts
	if err := path.Validate(); err != nil {
		return counts, err
	}
	rootLevel := path.Level()

	rootCount, err := r.db.Collection(rootLevel.Collection()).CountDocuments(ctx, bson.M{"_id": path.TargetID()})
	if err != nil {
		return counts, err
	}
	if rootCount == 0 {
		return counts, repository.ErrNotFound
	}
	counts = addCount(counts, rootLevel, int(rootCount))

	scope := ancestorField(rootLevel)
	for level := rootLevel.Child(); level != ""; level = level.Child() {
		n, err := r.db.Collection(level.Collection()).CountDocuments(ctx, bson.M{scope: path.TargetID()})
		if err != nil {
			return counts, err
		}
		counts = addCount(counts, level, int(n))
	}
	return counts, nil
}

func addCount(counts domain.CascadeCounts, level domain.Level, n int) domain.CascadeCounts {
	switch level {
	case domain.LevelProgram:
		counts.Programs += n
	case domain.LevelWeek:
		counts.Weeks += n
	case domain.LevelWorkout:
		counts.Workouts += n
	case domain.LevelExercise:
		counts.Exercises += n
	case domain.LevelSet:
		counts.Sets += n
	}
	return counts
}

// InsertSubtree writes every document in the subtree, parents before
// children, as sequential chunks of at most maxBatchOps operations. Every
// document is schema-checked before a single write is enqueued: a subtree
// with a broken ancestor chain is rejected up front rather than rejected
// halfway through by the store.
func (r *mongoCascadeRepository) InsertSubtree(ctx context.Context, subtree *domain.Subtree) error {
	if err := validateSubtree(subtree); err != nil {
		return err
	}

	batch := newWriteBatch(maxBatchOps, r.commitChunk)
	for _, p := range subtree.Programs {
		doc := p
		if err := batch.Add(ctx, batchOp{collection: domain.LevelProgram.Collection(), model: mongo.NewInsertOneModel().SetDocument(&doc)}); err != nil {
			return err
		}
	}
	for _, w := range subtree.Weeks {
		doc := w
		if err := batch.Add(ctx, batchOp{collection: domain.LevelWeek.Collection(), model: mongo.NewInsertOneModel().SetDocument(&doc)}); err != nil {
			return err
		}
	}
	for _, w := range subtree.Workouts {
		doc := w
		if err := batch.Add(ctx, batchOp{collection: domain.LevelWorkout.Collection(), model: mongo.NewInsertOneModel().SetDocument(&doc)}); err != nil {
			return err
		}
	}
	for _, e := range subtree.Exercises {
		doc := e
		if err := batch.Add(ctx, batchOp{collection: domain.LevelExercise.Collection(), model: mongo.NewInsertOneModel().SetDocument(&doc)}); err != nil {
			return err
		}
	}
	for _, s := range subtree.Sets {
		doc := s
		if err := batch.Add(ctx, batchOp{collection: domain.LevelSet.Collection(), model: mongo.NewInsertOneModel().SetDocument(&doc)}); err != nil {
			return err
		}
	}
	return batch.Flush(ctx)
}

// DeleteSubtree removes every document in the subtree, leaves first, as
// sequential chunks. Leaf-first order means an interrupted cascade never
// leaves children under an already-deleted parent.
func (r *mongoCascadeRepository) DeleteSubtree(ctx context.Context, subtree *domain.Subtree) error {
	batch := newWriteBatch(maxBatchOps, r.commitChunk)

	addDelete := func(level domain.Level, id, ownerID primitive.ObjectID) error {
		filter := bson.M{"_id": id, "ownerId": ownerID}
		return batch.Add(ctx, batchOp{collection: level.Collection(), model: mongo.NewDeleteOneModel().SetFilter(filter)})
	}

	for _, s := range subtree.Sets {
		if err := addDelete(domain.LevelSet, s.ID, s.OwnerID); err != nil {
			return err
		}
	}
	for _, e := range subtree.Exercises {
		if err := addDelete(domain.LevelExercise, e.ID, e.OwnerID); err != nil {
			return err
		}
	}
	for _, w := range subtree.Workouts {
		if err := addDelete(domain.LevelWorkout, w.ID, w.OwnerID); err != nil {
			return err
		}
	}
	for _, w := range subtree.Weeks {
		if err := addDelete(domain.LevelWeek, w.ID, w.OwnerID); err != nil {
			return err
		}
	}
	for _, p := range subtree.Programs {
		if err := addDelete(domain.LevelProgram, p.ID, p.OwnerID); err != nil {
			return err
		}
	}
	return batch.Flush(ctx)
}

// commitChunk commits one chunk, grouping consecutive operations by
// collection and running one ordered bulk write per group. Groups run
// sequentially in enqueue order.
func (r *mongoCascadeRepository) commitChunk(ctx context.Context, ops []batchOp) error {
	for start := 0; start < len(ops); {
		coll := ops[start].collection
		end := start
		for end < len(ops) && ops[end].collection == coll {
			end++
		}
		models := make([]mongo.WriteModel, 0, end-start)
		for _, op := range ops[start:end] {
			models = append(models, op.model)
		}
		if _, err := r.db.Collection(coll).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
			return err
		}
		start = end
	}
	return nil
}

// validateSubtree runs every document's schema check, including preset ids:
// inserts allocate ids up front so child documents can reference their new
// parents.
func validateSubtree(subtree *domain.Subtree) error {
	for i := range subtree.Programs {
		p := &subtree.Programs[i]
		if p.ID == primitive.NilObjectID {
			return errors.New("program in subtree is missing a preset id")
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for i := range subtree.Weeks {
		w := &subtree.Weeks[i]
		if w.ID == primitive.NilObjectID {
			return errors.New("week in subtree is missing a preset id")
		}
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for i := range subtree.Workouts {
		w := &subtree.Workouts[i]
		if w.ID == primitive.NilObjectID {
			return errors.New("workout in subtree is missing a preset id")
		}
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for i := range subtree.Exercises {
		e := &subtree.Exercises[i]
		if e.ID == primitive.NilObjectID {
			return errors.New("exercise in subtree is missing a preset id")
		}
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for i := range subtree.Sets {
		s := &subtree.Sets[i]
		if s.ID == primitive.NilObjectID {
			return errors.New("set in subtree is missing a preset id")
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
