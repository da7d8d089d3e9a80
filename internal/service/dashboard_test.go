package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialrunner/runner-app/internal/domain"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetAdaptiveData_MissingPlan(t *testing.T) {
	f := newFixture(t, nil)

	view, err := f.svc.GetAdaptiveData(context.Background(), f.userID, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetAdaptiveData: %v", err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil", view)
	}
}

func TestGetAdaptiveData_AccessDenied(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.GetAdaptiveData(context.Background(), primitive.NewObjectID(), f.plan.ID)
	if !errors.Is(err, ErrPlanAccessDenied) {
		t.Errorf("err = %v, want ErrPlanAccessDenied", err)
	}
}

func TestGetAdaptiveData_NoHistory(t *testing.T) {
	f := newFixture(t, nil)

	view, err := f.svc.GetAdaptiveData(context.Background(), f.userID, f.plan.ID)
	if err != nil {
		t.Fatalf("GetAdaptiveData: %v", err)
	}
	want := &DashboardView{
		CurrentDifficulty: 1.0,
		PerformanceScore:  PerformanceScore(NeutralMetrics()),
		RecentAdjustments: []AdjustmentView{},
		Recommendations:   []AdjustmentRecommendation{},
		WeeklyStats:       WeeklyStats{CompletionRate: 1, AverageDifficulty: 5, AverageEffort: 5},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAdaptiveData_ReflectsManualAdjustment(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	summary, err := f.svc.ApplyManualAdjustment(ctx, f.userID, f.plan.ID, domain.AdjustmentDifficultyIncrease, 1)
	if err != nil {
		t.Fatalf("ApplyManualAdjustment: %v", err)
	}

	view, err := f.svc.GetAdaptiveData(ctx, f.userID, f.plan.ID)
	if err != nil {
		t.Fatalf("GetAdaptiveData: %v", err)
	}
	if view.CurrentDifficulty != 1.15 {
		t.Errorf("CurrentDifficulty = %v, want 1.15", view.CurrentDifficulty)
	}
	want := []AdjustmentView{{
		ID:         summary.AdjustmentID,
		Date:       "Today",
		Type:       "Difficulty Increased",
		Reason:     "Requested by you",
		Multiplier: "1.15x",
		Automatic:  false,
		WeekNumber: 1,
		Notes:      "Manual difficulty_increase: 3 sessions across 3 weeks adjusted",
	}}
	if diff := cmp.Diff(want, view.RecentAdjustments); diff != "" {
		t.Errorf("adjustments mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAdaptiveData_Limits(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		f.svc.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Minute) }
		if _, err := f.svc.ApplyManualAdjustment(ctx, f.userID, f.plan.ID, domain.AdjustmentDifficultyDecrease, 1); err != nil {
			t.Fatalf("ApplyManualAdjustment: %v", err)
		}
	}
	// Very easy but erratic and effortful: three rules match.
	f.addFeedback(t, 1, true, 1, 9)
	f.addFeedback(t, 2, true, 7, 9)
	f.addFeedback(t, 3, true, 1, 9)
	f.addFeedback(t, 4, true, 1, 9)

	view, err := f.svc.GetAdaptiveData(ctx, f.userID, f.plan.ID)
	if err != nil {
		t.Fatalf("GetAdaptiveData: %v", err)
	}
	if got := len(view.RecentAdjustments); got != dashboardAdjustments {
		t.Errorf("got %d adjustments, want %d", got, dashboardAdjustments)
	}
	if diff := cmp.Diff(
		[]domain.AdjustmentType{domain.AdjustmentDifficultyIncrease, domain.AdjustmentScheduleChange, domain.AdjustmentPace},
		recTypes(view.Recommendations),
	); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAdaptiveData_WeeklyStats(t *testing.T) {
	f := newFixture(t, nil)
	f.addFeedback(t, 2, true, 6, 7)
	f.addFeedback(t, 5, false, 0, 0)
	f.addFeedback(t, 10, true, 2, 2)

	view, err := f.svc.GetAdaptiveData(context.Background(), f.userID, f.plan.ID)
	if err != nil {
		t.Fatalf("GetAdaptiveData: %v", err)
	}
	want := WeeklyStats{CompletionRate: 0.5, AverageDifficulty: 6, AverageEffort: 7, WorkoutsLogged: 2}
	if diff := cmp.Diff(want, view.WeeklyStats, approx); diff != "" {
		t.Errorf("weekly stats mismatch (-want +got):\n%s", diff)
	}
}
