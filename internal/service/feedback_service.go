package service

import (
	"context"
	"fmt"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackService records and lists workout feedback.
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, feedback *domain.WorkoutFeedback) (*domain.WorkoutFeedback, error)
	ListFeedback(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) ([]domain.WorkoutFeedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	planRepo     repository.TrainingPlanRepository
	now          func() time.Time
}

// NewFeedbackService creates a new instance of feedbackService.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, planRepo repository.TrainingPlanRepository) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		planRepo:     planRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SubmitFeedback validates ratings and plan ownership, then stores the feedback.
func (s *feedbackService) SubmitFeedback(ctx context.Context, feedback *domain.WorkoutFeedback) (*domain.WorkoutFeedback, error) {
	if feedback == nil {
		return nil, ErrInvalidFeedback
	}
	for name, r := range map[string]*int{
		"difficultyRating": feedback.DifficultyRating,
		"effortRating":     feedback.EffortRating,
		"energyLevel":      feedback.EnergyLevel,
	} {
		if !domain.ValidRating(r) {
			return nil, fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidFeedback, name, domain.MinRating, domain.MaxRating)
		}
	}
	if _, err := loadOwnedPlan(ctx, s.planRepo, feedback.UserID, feedback.TrainingPlanID); err != nil {
		return nil, err
	}
	if feedback.WorkoutDate.IsZero() {
		feedback.WorkoutDate = s.now()
	}

	id, err := s.feedbackRepo.Create(ctx, feedback)
	if err != nil {
		return nil, fmt.Errorf("create workout feedback: %w", err)
	}
	feedback.ID = id
	return feedback, nil
}

// ListFeedback returns the plan's feedback within the window, newest first.
func (s *feedbackService) ListFeedback(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) ([]domain.WorkoutFeedback, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, userID, planID); err != nil {
		return nil, err
	}
	if windowWeeks <= 0 {
		windowWeeks = DefaultAnalysisWindowWeeks
	}
	since, err := windowStart(s.now(), windowWeeks)
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedbackRepo.ListSince(ctx, userID, planID, since)
	if err != nil {
		return nil, fmt.Errorf("list workout feedback: %w", err)
	}
	return feedback, nil
}
