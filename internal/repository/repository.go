package repository

import (
	"context"
	"time"

	"socialrunner/runner-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// FeedbackRepository stores workout feedback. Feedback is insert-only.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.WorkoutFeedback) (primitive.ObjectID, error)
	// ListSince returns feedback for the user and plan with a workout date at
	// or after since, newest first.
	ListSince(ctx context.Context, userID, planID primitive.ObjectID, since time.Time) ([]domain.WorkoutFeedback, error)
}

// AdjustmentRepository stores the append-only adjustment audit log. There is
// deliberately no Update or Delete.
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *domain.TrainingAdjustment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingAdjustment, error)
	// ListRecentByPlan returns up to limit adjustments for the plan, newest first.
	ListRecentByPlan(ctx context.Context, planID primitive.ObjectID, limit int) ([]domain.TrainingAdjustment, error)
	// ExistsSince reports whether any adjustment for the plan is dated at or after since.
	ExistsSince(ctx context.Context, planID primitive.ObjectID, since time.Time) (bool, error)
}

// TrainingPlanRepository stores training plans.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	UpdateWeeklySchedule(ctx context.Context, id primitive.ObjectID, schedule domain.WeeklySchedule) error
	UpdateCurrentWeek(ctx context.Context, id primitive.ObjectID, week int) error
}

// Repositories bundles the stores a backend provides.
type Repositories struct {
	Feedback    FeedbackRepository
	Adjustments AdjustmentRepository
	Plans       TrainingPlanRepository
}
