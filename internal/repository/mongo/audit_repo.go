// internal/repository/mongo/audit_repo.go
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

const auditCollectionName = "audit_log"

// mongoAuditRepository implements repository.AuditRepository
type mongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new audit log repository.
func NewMongoAuditRepository(db *mongo.Database) repository.AuditRepository {
	return &mongoAuditRepository{
		collection: db.Collection(auditCollectionName),
	}
}

// Create appends an audit record.
func (r *mongoAuditRepository) Create(ctx context.Context, record *domain.AuditRecord) (primitive.ObjectID, error) {
	if record.OwnerID == primitive.NilObjectID || record.RootID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("audit record requires ownerId and rootId")
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted audit record ID")
	}
	return insertedID, nil
}

// EnsureAuditIndexes creates necessary indexes. Call during startup.
func EnsureAuditIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
