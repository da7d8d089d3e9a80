// Package memory provides in-process repositories for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewRepositories returns an empty in-memory backend.
func NewRepositories() repository.Repositories {
	return repository.Repositories{
		Feedback:    NewFeedbackRepository(),
		Adjustments: NewAdjustmentRepository(),
		Plans:       NewTrainingPlanRepository(),
	}
}

// FeedbackRepository is an in-memory repository.FeedbackRepository.
type FeedbackRepository struct {
	mu    sync.RWMutex
	items []domain.WorkoutFeedback
}

// NewFeedbackRepository creates an empty feedback store.
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

// Create stores a copy of feedback and assigns its ID.
func (r *FeedbackRepository) Create(_ context.Context, feedback *domain.WorkoutFeedback) (primitive.ObjectID, error) {
	if feedback.UserID == primitive.NilObjectID || feedback.TrainingPlanID == primitive.NilObjectID {
		return primitive.NilObjectID, fmt.Errorf("%w: feedback requires userId and trainingPlanId", repository.ErrInvalidInput)
	}
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now().UTC()
	if feedback.WorkoutDate.IsZero() {
		feedback.WorkoutDate = feedback.CreatedAt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *feedback)
	return feedback.ID, nil
}

// ListSince returns the plan's feedback dated at or after since, newest first.
func (r *FeedbackRepository) ListSince(_ context.Context, userID, planID primitive.ObjectID, since time.Time) ([]domain.WorkoutFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.WorkoutFeedback
	for _, f := range r.items {
		if f.UserID == userID && f.TrainingPlanID == planID && !f.WorkoutDate.Before(since) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WorkoutDate.After(out[j].WorkoutDate) })
	return out, nil
}

// AdjustmentRepository is an in-memory, append-only repository.AdjustmentRepository.
type AdjustmentRepository struct {
	mu    sync.RWMutex
	items []domain.TrainingAdjustment
}

// NewAdjustmentRepository creates an empty adjustment store.
func NewAdjustmentRepository() *AdjustmentRepository {
	return &AdjustmentRepository{}
}

// Create appends an adjustment and assigns its ID.
func (r *AdjustmentRepository) Create(_ context.Context, adjustment *domain.TrainingAdjustment) (primitive.ObjectID, error) {
	if adjustment.TrainingPlanID == primitive.NilObjectID || adjustment.AdjustmentType == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: adjustment requires trainingPlanId and adjustmentType", repository.ErrInvalidInput)
	}
	adjustment.ID = primitive.NewObjectID()
	if adjustment.AdjustmentDate.IsZero() {
		adjustment.AdjustmentDate = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *adjustment)
	return adjustment.ID, nil
}

// GetByID returns repository.ErrNotFound for unknown IDs.
func (r *AdjustmentRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingAdjustment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListRecentByPlan returns the plan's adjustments, newest first. A limit of 0 returns all.
func (r *AdjustmentRepository) ListRecentByPlan(_ context.Context, planID primitive.ObjectID, limit int) ([]domain.TrainingAdjustment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.TrainingAdjustment
	// Walk backwards so equal dates keep insertion recency.
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].TrainingPlanID == planID {
			out = append(out, r.items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AdjustmentDate.After(out[j].AdjustmentDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ExistsSince reports whether the plan has an adjustment dated at or after since.
func (r *AdjustmentRepository) ExistsSince(_ context.Context, planID primitive.ObjectID, since time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.TrainingPlanID == planID && !a.AdjustmentDate.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

// TrainingPlanRepository is an in-memory repository.TrainingPlanRepository.
// Plans are copied on the way in and out, like a real store.
type TrainingPlanRepository struct {
	mu    sync.RWMutex
	plans map[primitive.ObjectID]domain.TrainingPlan
}

// NewTrainingPlanRepository creates an empty plan store.
func NewTrainingPlanRepository() *TrainingPlanRepository {
	return &TrainingPlanRepository{plans: make(map[primitive.ObjectID]domain.TrainingPlan)}
}

// Create stores a copy of plan and assigns its ID.
func (r *TrainingPlanRepository) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: plan requires userId and name", repository.ErrInvalidInput)
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *plan
	stored.WeeklySchedule = plan.WeeklySchedule.Clone()
	r.plans[plan.ID] = stored
	return plan.ID, nil
}

// GetByID returns a copy of the plan or repository.ErrNotFound.
func (r *TrainingPlanRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	plan.WeeklySchedule = plan.WeeklySchedule.Clone()
	return &plan, nil
}

// GetByUserID lists the user's plans, newest first.
func (r *TrainingPlanRepository) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.TrainingPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			p.WeeklySchedule = p.WeeklySchedule.Clone()
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateWeeklySchedule replaces the plan's schedule.
func (r *TrainingPlanRepository) UpdateWeeklySchedule(_ context.Context, id primitive.ObjectID, schedule domain.WeeklySchedule) error {
	return r.update(id, func(p *domain.TrainingPlan) { p.WeeklySchedule = schedule.Clone() })
}

// UpdateCurrentWeek sets the plan's current week.
func (r *TrainingPlanRepository) UpdateCurrentWeek(_ context.Context, id primitive.ObjectID, week int) error {
	return r.update(id, func(p *domain.TrainingPlan) { p.CurrentWeek = week })
}

func (r *TrainingPlanRepository) update(id primitive.ObjectID, fn func(*domain.TrainingPlan)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&plan)
	plan.UpdatedAt = time.Now().UTC()
	r.plans[id] = plan
	return nil
}
