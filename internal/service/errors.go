package service

import (
	"context"
	"errors"
	"fmt"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainingPlanNotFound = errors.New("training plan not found")
	ErrPlanAccessDenied     = errors.New("access denied to this training plan")
	ErrInvalidPlan          = errors.New("invalid training plan")
	ErrInvalidFeedback      = errors.New("invalid workout feedback")
	ErrAdjustmentNotFound   = errors.New("training adjustment not found")
	ErrSnapshotUnavailable  = errors.New("no schedule snapshot available for this adjustment")
	ErrInvalidWindow        = errors.New("invalid analysis window")
)

// loadOwnedPlan fetches a plan and verifies it belongs to userID.
func loadOwnedPlan(ctx context.Context, plans repository.TrainingPlanRepository, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingPlanNotFound
		}
		return nil, fmt.Errorf("load training plan: %w", err)
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}
