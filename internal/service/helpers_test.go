package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/repository"
	"socialrunner/runner-app/internal/repository/memory"
	"socialrunner/runner-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

const testScheduleJSON = `{
	"1": {
		"monday":    {"type": "tempo", "distance": "10km", "pace": "5:00"},
		"tuesday":   {"type": "rest"},
		"wednesday": {"type": "easy_run", "distance": "easy"}
	},
	"2": {
		"saturday": {"type": "long_run", "distance": "12km", "pace": "6:00"}
	},
	"3": {
		"monday": {"type": "easy_run", "distance": "8km"}
	}
}`

func mustSchedule(t *testing.T, raw string) domain.WeeklySchedule {
	t.Helper()
	var s domain.WeeklySchedule
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	return s
}

// fakeSnapshots records uploaded objects in memory.
type fakeSnapshots struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{objects: make(map[string][]byte)}
}

func (f *fakeSnapshots) PutObject(_ context.Context, key, _ string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
	return nil
}

func (f *fakeSnapshots) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://snapshots.test/" + key, nil
}

type fixture struct {
	repos  repository.Repositories
	svc    *adaptiveService
	userID primitive.ObjectID
	plan   *domain.TrainingPlan
}

func newFixture(t *testing.T, snapshots storage.ObjectStorage) *fixture {
	t.Helper()
	repos := memory.NewRepositories()
	svc := NewAdaptiveService(repos.Feedback, repos.Adjustments, repos.Plans, snapshots, 2).(*adaptiveService)
	svc.now = func() time.Time { return testNow }

	f := &fixture{repos: repos, svc: svc, userID: primitive.NewObjectID()}
	f.plan = &domain.TrainingPlan{
		UserID:         f.userID,
		Name:           "Road to 10K",
		DurationWeeks:  3,
		CurrentWeek:    1,
		IsActive:       true,
		WeeklySchedule: mustSchedule(t, testScheduleJSON),
	}
	if _, err := repos.Plans.Create(context.Background(), f.plan); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return f
}

func intPtr(v int) *int { return &v }

// addFeedback stores one row dated daysAgo before testNow. Zero ratings are omitted.
func (f *fixture) addFeedback(t *testing.T, daysAgo int, completed bool, difficulty, effort int) {
	t.Helper()
	fb := &domain.WorkoutFeedback{
		UserID:         f.userID,
		TrainingPlanID: f.plan.ID,
		WorkoutDate:    testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
		Completed:      completed,
	}
	if difficulty > 0 {
		fb.DifficultyRating = intPtr(difficulty)
	}
	if effort > 0 {
		fb.EffortRating = intPtr(effort)
	}
	if _, err := f.repos.Feedback.Create(context.Background(), fb); err != nil {
		t.Fatalf("create feedback: %v", err)
	}
}

func (f *fixture) adjustments(t *testing.T) []domain.TrainingAdjustment {
	t.Helper()
	out, err := f.repos.Adjustments.ListRecentByPlan(context.Background(), f.plan.ID, 0)
	if err != nil {
		t.Fatalf("list adjustments: %v", err)
	}
	return out
}

func (f *fixture) storedPlan(t *testing.T) *domain.TrainingPlan {
	t.Helper()
	p, err := f.repos.Plans.GetByID(context.Background(), f.plan.ID)
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	return p
}
