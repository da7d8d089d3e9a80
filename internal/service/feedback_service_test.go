package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialrunner/runner-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestFeedbackService(f *fixture) *feedbackService {
	svc := NewFeedbackService(f.repos.Feedback, f.repos.Plans).(*feedbackService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t, nil)
	svc := newTestFeedbackService(f)

	got, err := svc.SubmitFeedback(context.Background(), &domain.WorkoutFeedback{
		UserID:           f.userID,
		TrainingPlanID:   f.plan.ID,
		Completed:        true,
		DifficultyRating: intPtr(4),
	})
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if got.ID.IsZero() || !got.WorkoutDate.Equal(testNow) {
		t.Errorf("feedback = %+v", got)
	}

	listed, err := svc.ListFeedback(context.Background(), f.userID, f.plan.ID, 1)
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != got.ID {
		t.Errorf("listed = %+v", listed)
	}
}

func TestSubmitFeedback_Rejected(t *testing.T) {
	f := newFixture(t, nil)
	svc := newTestFeedbackService(f)

	tests := []struct {
		name    string
		fb      *domain.WorkoutFeedback
		wantErr error
	}{
		{"nil", nil, ErrInvalidFeedback},
		{"rating too high", &domain.WorkoutFeedback{UserID: f.userID, TrainingPlanID: f.plan.ID, EffortRating: intPtr(11)}, ErrInvalidFeedback},
		{"rating too low", &domain.WorkoutFeedback{UserID: f.userID, TrainingPlanID: f.plan.ID, EnergyLevel: intPtr(0)}, ErrInvalidFeedback},
		{"someone else's plan", &domain.WorkoutFeedback{UserID: primitive.NewObjectID(), TrainingPlanID: f.plan.ID}, ErrPlanAccessDenied},
		{"missing plan", &domain.WorkoutFeedback{UserID: f.userID, TrainingPlanID: primitive.NewObjectID()}, ErrTrainingPlanNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SubmitFeedback(context.Background(), tt.fb); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	listed, err := svc.ListFeedback(context.Background(), f.userID, f.plan.ID, 0)
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("got %d stored rows, want 0", len(listed))
	}
}

func TestListFeedback_WindowBound(t *testing.T) {
	f := newFixture(t, nil)
	svc := newTestFeedbackService(f)
	f.addFeedback(t, 1, true, 5, 5)

	if _, err := svc.ListFeedback(context.Background(), f.userID, f.plan.ID, 20000); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("err = %v, want ErrInvalidWindow", err)
	}
	listed, err := svc.ListFeedback(context.Background(), f.userID, f.plan.ID, MaxAnalysisWindowWeeks)
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("got %d rows, want 1", len(listed))
	}
}
