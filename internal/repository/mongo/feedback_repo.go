// internal/repository/mongo/feedback_repo.go
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

const feedbackCollectionName = "workout_feedback"

// mongoFeedbackRepository implements repository.FeedbackRepository
type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new WorkoutFeedback repository.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(feedbackCollectionName),
	}
}

// Create inserts a new feedback record.
func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *domain.WorkoutFeedback) (primitive.ObjectID, error) {
	if feedback.UserID == primitive.NilObjectID || feedback.TrainingPlanID == primitive.NilObjectID {
		return primitive.NilObjectID, fmt.Errorf("%w: feedback requires userId and trainingPlanId", repository.ErrInvalidInput)
	}
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now().UTC()
	if feedback.WorkoutDate.IsZero() {
		feedback.WorkoutDate = feedback.CreatedAt
	}

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted feedback ID")
	}
	return insertedID, nil
}

// ListSince retrieves feedback for a user's plan dated at or after since, newest first.
func (r *mongoFeedbackRepository) ListSince(ctx context.Context, userID, planID primitive.ObjectID, since time.Time) ([]domain.WorkoutFeedback, error) {
	var feedback []domain.WorkoutFeedback
	filter := bson.M{
		"userId":         userID,
		"trainingPlanId": planID,
		"workoutDate":    bson.M{"$gte": since},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "workoutDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// EnsureFeedbackIndexes creates necessary indexes. Call during startup.
func EnsureFeedbackIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Main query pattern: a user's feedback for a plan within a date window
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "trainingPlanId", Value: 1}, {Key: "workoutDate", Value: -1}},
			Options: options.Index(),
		},
	})
}
