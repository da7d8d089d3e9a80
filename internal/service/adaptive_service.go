package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"
	"socialrunner/runner-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdaptiveService is the adaptive difficulty engine: it analyzes feedback,
// recommends and applies adjustments, and assembles the dashboard.
type AdaptiveService interface {
	AnalyzePerformance(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) (*PerformanceMetrics, error)
	PerformanceReport(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) (*PerformanceReport, error)
	AutoAdjustDifficulty(ctx context.Context, userID, planID primitive.ObjectID, currentWeek int) (bool, error)
	ApplyManualAdjustment(ctx context.Context, userID, planID primitive.ObjectID, adjustmentType domain.AdjustmentType, weekNumber int) (*SessionVarianceSummary, error)
	GetAdaptiveData(ctx context.Context, userID, planID primitive.ObjectID) (*DashboardView, error)
	ListAdjustments(ctx context.Context, userID, planID primitive.ObjectID, limit int) ([]domain.TrainingAdjustment, error)
	SnapshotURL(ctx context.Context, userID, planID, adjustmentID primitive.ObjectID) (string, error)
}

// adaptiveService holds no per-request state; one instance serves all requests.
type adaptiveService struct {
	feedbackRepo   repository.FeedbackRepository
	adjustmentRepo repository.AdjustmentRepository
	planRepo       repository.TrainingPlanRepository
	snapshots      storage.ObjectStorage // nil when snapshot storage is disabled
	windowWeeks    int
	now            func() time.Time
}

// NewAdaptiveService creates the engine. snapshots may be nil. windowWeeks
// falls back to the default when unset and is capped at MaxAnalysisWindowWeeks.
func NewAdaptiveService(
	feedbackRepo repository.FeedbackRepository,
	adjustmentRepo repository.AdjustmentRepository,
	planRepo repository.TrainingPlanRepository,
	snapshots storage.ObjectStorage,
	windowWeeks int,
) AdaptiveService {
	switch {
	case windowWeeks <= 0:
		windowWeeks = DefaultAnalysisWindowWeeks
	case windowWeeks > MaxAnalysisWindowWeeks:
		log.Printf("WARN: Analysis window of %d weeks capped at %d", windowWeeks, MaxAnalysisWindowWeeks)
		windowWeeks = MaxAnalysisWindowWeeks
	}
	return &adaptiveService{
		feedbackRepo:   feedbackRepo,
		adjustmentRepo: adjustmentRepo,
		planRepo:       planRepo,
		snapshots:      snapshots,
		windowWeeks:    windowWeeks,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ListAdjustments returns the plan's adjustment history, newest first.
func (s *adaptiveService) ListAdjustments(ctx context.Context, userID, planID primitive.ObjectID, limit int) ([]domain.TrainingAdjustment, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, userID, planID); err != nil {
		return nil, err
	}
	adjustments, err := s.adjustmentRepo.ListRecentByPlan(ctx, planID, limit)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	return adjustments, nil
}

// SnapshotURL returns a presigned download URL for the schedule as it was
// before the given adjustment was applied.
func (s *adaptiveService) SnapshotURL(ctx context.Context, userID, planID, adjustmentID primitive.ObjectID) (string, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, userID, planID); err != nil {
		return "", err
	}
	adjustment, err := s.adjustmentRepo.GetByID(ctx, adjustmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAdjustmentNotFound
		}
		return "", fmt.Errorf("load adjustment: %w", err)
	}
	if adjustment.TrainingPlanID != planID {
		return "", ErrAdjustmentNotFound
	}
	if adjustment.SnapshotKey == "" || s.snapshots == nil {
		return "", ErrSnapshotUnavailable
	}
	return s.snapshots.GeneratePresignedDownloadURL(ctx, adjustment.SnapshotKey, storage.DefaultPresignedURLExpiry)
}

// currentMultiplier is the multiplier of the plan's most recent adjustment.
func (s *adaptiveService) currentMultiplier(ctx context.Context, planID primitive.ObjectID) (float64, error) {
	latest, err := s.adjustmentRepo.ListRecentByPlan(ctx, planID, 1)
	if err != nil {
		return 0, fmt.Errorf("load latest adjustment: %w", err)
	}
	if len(latest) == 0 {
		return domain.NeutralMultiplier, nil
	}
	return latest[0].Multiplier(), nil
}
