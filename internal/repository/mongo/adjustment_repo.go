// internal/repository/mongo/adjustment_repo.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adjustmentCollectionName = "training_adjustments"

// mongoAdjustmentRepository implements repository.AdjustmentRepository.
// The collection is an append-only audit log.
type mongoAdjustmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAdjustmentRepository creates a new TrainingAdjustment repository.
func NewMongoAdjustmentRepository(db *mongo.Database) repository.AdjustmentRepository {
	return &mongoAdjustmentRepository{
		collection: db.Collection(adjustmentCollectionName),
	}
}

// Create appends an adjustment record.
func (r *mongoAdjustmentRepository) Create(ctx context.Context, adjustment *domain.TrainingAdjustment) (primitive.ObjectID, error) {
	if adjustment.TrainingPlanID == primitive.NilObjectID || adjustment.AdjustmentType == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: adjustment requires trainingPlanId and adjustmentType", repository.ErrInvalidInput)
	}
	adjustment.ID = primitive.NewObjectID()
	if adjustment.AdjustmentDate.IsZero() {
		adjustment.AdjustmentDate = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, adjustment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted adjustment ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single adjustment by its ID.
func (r *mongoAdjustmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingAdjustment, error) {
	var adjustment domain.TrainingAdjustment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&adjustment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}

// ListRecentByPlan retrieves the newest adjustments for a plan.
func (r *mongoAdjustmentRepository) ListRecentByPlan(ctx context.Context, planID primitive.ObjectID, limit int) ([]domain.TrainingAdjustment, error) {
	var adjustments []domain.TrainingAdjustment
	findOptions := options.Find().SetSort(bson.D{{Key: "adjustmentDate", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"trainingPlanId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &adjustments); err != nil {
		return nil, err
	}
	return adjustments, nil
}

// ExistsSince reports whether the plan has an adjustment dated at or after since.
func (r *mongoAdjustmentRepository) ExistsSince(ctx context.Context, planID primitive.ObjectID, since time.Time) (bool, error) {
	filter := bson.M{
		"trainingPlanId": planID,
		"adjustmentDate": bson.M{"$gte": since},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureAdjustmentIndexes creates necessary indexes. Call during startup.
func EnsureAdjustmentIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// History and rate-limit lookups: a plan's adjustments by date
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}, {Key: "adjustmentDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	})
}
