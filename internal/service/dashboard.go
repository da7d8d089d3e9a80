package service

import (
	"context"
	"errors"
	"fmt"

	"socialrunner/runner-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardAdjustments     = 5
	dashboardRecommendations = 3
	weeklyStatsWindowWeeks   = 1
)

// DashboardView is the read-model behind the adaptive training dashboard.
type DashboardView struct {
	CurrentDifficulty float64                    `json:"currentDifficulty"`
	PerformanceScore  float64                    `json:"performanceScore"`
	RecentAdjustments []AdjustmentView           `json:"recentAdjustments"`
	Recommendations   []AdjustmentRecommendation `json:"recommendations"`
	WeeklyStats       WeeklyStats                `json:"weeklyStats"`
}

// AdjustmentView is an audit row formatted for display.
type AdjustmentView struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
	Multiplier string `json:"multiplier"`
	Automatic  bool   `json:"automatic"`
	WeekNumber int    `json:"weekNumber"`
	Notes      string `json:"notes,omitempty"`
}

// WeeklyStats covers the trailing seven days.
type WeeklyStats struct {
	CompletionRate    float64 `json:"completionRate"`
	AverageDifficulty float64 `json:"averageDifficulty"`
	AverageEffort     float64 `json:"averageEffort"`
	WorkoutsLogged    int     `json:"workoutsLogged"`
}

// GetAdaptiveData assembles the dashboard. It returns a nil view and nil
// error when the plan does not exist.
func (s *adaptiveService) GetAdaptiveData(ctx context.Context, userID, planID primitive.ObjectID) (*DashboardView, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, userID, planID); err != nil {
		if errors.Is(err, ErrTrainingPlanNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var (
		adjustments []domain.TrainingAdjustment
		window      []domain.WorkoutFeedback
		lastWeek    []domain.WorkoutFeedback
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		adjustments, err = s.adjustmentRepo.ListRecentByPlan(gctx, planID, dashboardAdjustments)
		if err != nil {
			return fmt.Errorf("list adjustments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		window, err = s.recentFeedback(gctx, userID, planID, s.windowWeeks)
		return err
	})
	g.Go(func() error {
		var err error
		lastWeek, err = s.recentFeedback(gctx, userID, planID, weeklyStatsWindowWeeks)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := ComputeMetrics(window)
	weekly := ComputeMetrics(lastWeek)

	view := &DashboardView{
		CurrentDifficulty: domain.NeutralMultiplier,
		PerformanceScore:  PerformanceScore(metrics),
		RecentAdjustments: make([]AdjustmentView, 0, len(adjustments)),
		Recommendations:   TopRecommendations(GenerateRecommendations(metrics), dashboardRecommendations),
		WeeklyStats: WeeklyStats{
			CompletionRate:    weekly.CompletionRate,
			AverageDifficulty: weekly.AverageDifficulty,
			AverageEffort:     weekly.AverageEffort,
			WorkoutsLogged:    len(lastWeek),
		},
	}
	if len(adjustments) > 0 {
		view.CurrentDifficulty = adjustments[0].Multiplier()
	}

	now := s.now()
	for _, a := range adjustments {
		view.RecentAdjustments = append(view.RecentAdjustments, AdjustmentView{
			ID:         a.ID.Hex(),
			Date:       RelativeDate(a.AdjustmentDate, now),
			Type:       AdjustmentTypeLabel(a.AdjustmentType),
			Reason:     ReasonLabel(a.Reason),
			Multiplier: domain.FormatMultiplier(a.Multiplier()) + "x",
			Automatic:  a.Automatic,
			WeekNumber: a.WeekNumber,
			Notes:      a.Notes,
		})
	}
	return view, nil
}
