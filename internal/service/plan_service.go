package service

import (
	"context"
	"fmt"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanService manages a runner's training plans.
type PlanService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, plan *domain.TrainingPlan) (*domain.TrainingPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	AdvanceWeek(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error)
}

type planService struct {
	planRepo repository.TrainingPlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.TrainingPlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// CreatePlan validates and stores a new plan owned by userID.
func (s *planService) CreatePlan(ctx context.Context, userID primitive.ObjectID, plan *domain.TrainingPlan) (*domain.TrainingPlan, error) {
	if userID == primitive.NilObjectID || plan == nil || plan.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	if plan.DurationWeeks < 1 {
		return nil, fmt.Errorf("%w: durationWeeks must be at least 1", ErrInvalidPlan)
	}
	for _, week := range plan.WeeklySchedule.Weeks() {
		if week < 1 || week > plan.DurationWeeks {
			return nil, fmt.Errorf("%w: schedule week %d outside 1..%d", ErrInvalidPlan, week, plan.DurationWeeks)
		}
	}

	plan.UserID = userID
	if plan.CurrentWeek < 1 {
		plan.CurrentWeek = 1
	}
	if plan.WeeklySchedule == nil {
		plan.WeeklySchedule = domain.WeeklySchedule{}
	}
	plan.IsActive = true

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("create training plan: %w", err)
	}
	plan.ID = id
	return plan, nil
}

// GetPlan returns a plan owned by userID.
func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	return loadOwnedPlan(ctx, s.planRepo, userID, planID)
}

// ListPlans returns every plan owned by userID, newest first.
func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list training plans: %w", err)
	}
	return plans, nil
}

// AdvanceWeek moves the plan to its next week, stopping at the final week.
func (s *planService) AdvanceWeek(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := loadOwnedPlan(ctx, s.planRepo, userID, planID)
	if err != nil {
		return nil, err
	}
	next := plan.StartingWeek() + 1
	if plan.DurationWeeks > 0 && next > plan.DurationWeeks {
		next = plan.DurationWeeks
	}
	if next != plan.CurrentWeek {
		if err = s.planRepo.UpdateCurrentWeek(ctx, planID, next); err != nil {
			return nil, fmt.Errorf("advance training plan: %w", err)
		}
		plan.CurrentWeek = next
	}
	return plan, nil
}
