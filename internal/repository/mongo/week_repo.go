// internal/repository/mongo/week_repo.go
package mongo

import (
	"context"
	"errors"
	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weekCollectionName = "weeks"

// mongoWeekRepository implements repository.WeekRepository
type mongoWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekRepository creates a new Week repository.
func NewMongoWeekRepository(db *mongo.Database) repository.WeekRepository {
	return &mongoWeekRepository{
		collection: db.Collection(weekCollectionName),
	}
}

// Create inserts a new week.
func (r *mongoWeekRepository) Create(ctx context.Context, week *domain.Week) (primitive.ObjectID, error) {
	if err := week.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	week.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, week)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted week ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single week by its ID.
func (r *mongoWeekRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Week, error) {
	var week domain.Week
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// GetByProgramID retrieves all weeks of a program, ordered by position.
func (r *mongoWeekRepository) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Week, error) {
	var weeks []domain.Week
	filter := bson.M{"programId": programID}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// GetNamesByProgramID returns only the names of the weeks in a program.
// The copy namer takes these as its sibling exclusion set.
func (r *mongoWeekRepository) GetNamesByProgramID(ctx context.Context, programID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"programId": programID}
	findOptions := options.Find().SetProjection(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Name string `bson:"name"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

// Update applies a field-level partial update and refreshes updatedAt.
func (r *mongoWeekRepository) Update(ctx context.Context, week *domain.Week) error {
	if week.ID == primitive.NilObjectID {
		return errors.New("week ID is required for update")
	}

	// Ancestor ids are immutable; moving a week between programs is not a
	// supported operation.
	filter := bson.M{"_id": week.ID, "ownerId": week.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      week.Name,
			"order":     week.Order,
			"notes":     week.Notes,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWeekIndexes creates necessary indexes. Call during startup.
func EnsureWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
