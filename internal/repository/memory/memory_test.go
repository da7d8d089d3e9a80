package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFeedbackRepository_ListSince(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()
	userID, planID := primitive.NewObjectID(), primitive.NewObjectID()
	now := time.Now().UTC()

	for _, daysAgo := range []int{5, 1, 20, 3} {
		_, err := repo.Create(ctx, &domain.WorkoutFeedback{
			UserID:         userID,
			TrainingPlanID: planID,
			WorkoutDate:    now.Add(-time.Duration(daysAgo) * 24 * time.Hour),
			Completed:      true,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// Another plan's feedback must not leak in.
	if _, err := repo.Create(ctx, &domain.WorkoutFeedback{UserID: userID, TrainingPlanID: primitive.NewObjectID()}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListSince(ctx, userID, planID, now.Add(-14*24*time.Hour))
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].WorkoutDate.After(got[i-1].WorkoutDate) {
			t.Errorf("rows not newest first at %d", i)
		}
	}
}

func TestAdjustmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAdjustmentRepository()
	planID := primitive.NewObjectID()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, m := range []string{"1.15", "0.85", "1.08"} {
		_, err := repo.Create(ctx, &domain.TrainingAdjustment{
			TrainingPlanID:       planID,
			AdjustmentType:       domain.AdjustmentDifficultyIncrease,
			DifficultyMultiplier: m,
			AdjustmentDate:       base.Add(time.Duration(i) * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	latest, err := repo.ListRecentByPlan(ctx, planID, 2)
	if err != nil {
		t.Fatalf("ListRecentByPlan: %v", err)
	}
	if len(latest) != 2 || latest[0].DifficultyMultiplier != "1.08" || latest[1].DifficultyMultiplier != "0.85" {
		t.Errorf("latest = %+v", latest)
	}

	exists, _ := repo.ExistsSince(ctx, planID, base.Add(2*24*time.Hour))
	if !exists {
		t.Error("expected an adjustment dated exactly at the boundary to count")
	}
	exists, _ = repo.ExistsSince(ctx, planID, base.Add(3*24*time.Hour))
	if exists {
		t.Error("expected no adjustment after the last one")
	}

	if _, err = repo.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err = repo.Create(ctx, &domain.TrainingAdjustment{}); !errors.Is(err, repository.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestTrainingPlanRepository_CopiesSchedule(t *testing.T) {
	ctx := context.Background()
	repo := NewTrainingPlanRepository()

	var schedule domain.WeeklySchedule
	if err := schedule.UnmarshalJSON([]byte(`{"1":{"monday":{"distance":"5km","pace":"6:00"}}}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	plan := &domain.TrainingPlan{UserID: primitive.NewObjectID(), Name: "5K", DurationWeeks: 1, WeeklySchedule: schedule}
	id, err := repo.Create(ctx, plan)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	session := loaded.WeeklySchedule[1][domain.Monday]
	session.Scale(2)
	loaded.WeeklySchedule[1][domain.Monday] = session

	again, _ := repo.GetByID(ctx, id)
	if got := again.WeeklySchedule[1][domain.Monday].DistanceString(); got != "5km" {
		t.Errorf("stored schedule mutated through a loaded copy: %q", got)
	}

	if err = repo.UpdateWeeklySchedule(ctx, id, loaded.WeeklySchedule); err != nil {
		t.Fatalf("UpdateWeeklySchedule: %v", err)
	}
	again, _ = repo.GetByID(ctx, id)
	if got := again.WeeklySchedule[1][domain.Monday].DistanceString(); got != "10km" {
		t.Errorf("distance = %q, want 10km", got)
	}

	if err = repo.UpdateCurrentWeek(ctx, primitive.NewObjectID(), 2); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
