package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"socialrunner/runner-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAnalysisWindowWeeks is the lookback used when none is given.
const DefaultAnalysisWindowWeeks = 2

// MaxAnalysisWindowWeeks bounds any lookback to roughly ten years.
const MaxAnalysisWindowWeeks = 520

// neutralRating stands in for a missing difficulty or effort rating.
const neutralRating = 5.0

// PerformanceMetrics summarises recent workout feedback. It is derived on
// every request and never stored.
type PerformanceMetrics struct {
	CompletionRate    float64 `json:"completionRate"`    // 0-1
	AverageDifficulty float64 `json:"averageDifficulty"` // 1-10
	AverageEffort     float64 `json:"averageEffort"`     // 1-10
	ConsistencyScore  float64 `json:"consistencyScore"`  // 0-1
	// ImprovementTrend is later-half minus earlier-half mean effort. The
	// recommendation rules read a positive value as improving fitness.
	ImprovementTrend float64 `json:"improvementTrend"`
}

// NeutralMetrics is what a plan with no feedback is assumed to look like.
func NeutralMetrics() PerformanceMetrics {
	return PerformanceMetrics{
		CompletionRate:    1.0,
		AverageDifficulty: neutralRating,
		AverageEffort:     neutralRating,
		ConsistencyScore:  1.0,
		ImprovementTrend:  0.0,
	}
}

// AnalyzePerformance reduces the user's feedback for the plan within the
// last windowWeeks weeks into PerformanceMetrics.
func (s *adaptiveService) AnalyzePerformance(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) (*PerformanceMetrics, error) {
	feedback, err := s.recentFeedback(ctx, userID, planID, windowWeeks)
	if err != nil {
		return nil, err
	}
	m := ComputeMetrics(feedback)
	return &m, nil
}

// PerformanceReport pairs metrics with their score and recommendations.
type PerformanceReport struct {
	Metrics          PerformanceMetrics         `json:"metrics"`
	PerformanceScore float64                    `json:"performanceScore"`
	Recommendations  []AdjustmentRecommendation `json:"recommendations"`
}

// PerformanceReport analyzes a plan owned by userID.
func (s *adaptiveService) PerformanceReport(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) (*PerformanceReport, error) {
	if _, err := loadOwnedPlan(ctx, s.planRepo, userID, planID); err != nil {
		return nil, err
	}
	m, err := s.AnalyzePerformance(ctx, userID, planID, windowWeeks)
	if err != nil {
		return nil, err
	}
	return &PerformanceReport{
		Metrics:          *m,
		PerformanceScore: PerformanceScore(*m),
		Recommendations:  GenerateRecommendations(*m),
	}, nil
}

func (s *adaptiveService) recentFeedback(ctx context.Context, userID, planID primitive.ObjectID, windowWeeks int) ([]domain.WorkoutFeedback, error) {
	if windowWeeks <= 0 {
		windowWeeks = s.windowWeeks
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

// windowStart is the earliest timestamp inside a lookback of weeks.
func windowStart(now time.Time, weeks int) (time.Time, error) {
	if weeks > MaxAnalysisWindowWeeks {
		return time.Time{}, fmt.Errorf("%w: %d weeks exceeds the %d week maximum", ErrInvalidWindow, weeks, MaxAnalysisWindowWeeks)
	}
	return now.Add(-time.Duration(weeks) * 7 * 24 * time.Hour), nil
}

// ComputeMetrics reduces feedback, ordered newest first, into metrics.
func ComputeMetrics(feedback []domain.WorkoutFeedback) PerformanceMetrics {
	if len(feedback) == 0 {
		return NeutralMetrics()
	}

	var completed []domain.WorkoutFeedback
	for _, f := range feedback {
		if f.Completed {
			completed = append(completed, f)
		}
	}

	m := NeutralMetrics()
	m.CompletionRate = float64(len(completed)) / float64(len(feedback))
	if len(completed) == 0 {
		return m
	}

	difficulty := make([]float64, len(completed))
	effort := make([]float64, len(completed))
	for i, f := range completed {
		difficulty[i] = ratingOrNeutral(f.DifficultyRating)
		effort[i] = ratingOrNeutral(f.EffortRating)
	}

	m.AverageDifficulty = mean(difficulty)
	m.AverageEffort = mean(effort)
	m.ConsistencyScore = math.Max(0, 1-variance(difficulty)/10)
	m.ImprovementTrend = effortTrend(effort)
	return m
}

// effortTrend expects effort newest first and compares the chronological
// second half against the first half.
func effortTrend(effort []float64) float64 {
	n := len(effort)
	if n < 2 {
		return 0
	}
	chronological := make([]float64, n)
	for i, e := range effort {
		chronological[n-1-i] = e
	}
	mid := n / 2
	return mean(chronological[mid:]) - mean(chronological[:mid])
}

// PerformanceScore is the weighted 0-1 composite shown on the dashboard and
// recorded with automatic adjustments.
func PerformanceScore(m PerformanceMetrics) float64 {
	return 0.4*m.CompletionRate +
		0.3*(1-math.Abs(m.AverageDifficulty-5.5)/10) +
		0.2*m.ConsistencyScore +
		0.1*math.Max(0, 1+m.ImprovementTrend/10)
}

func ratingOrNeutral(r *int) float64 {
	if r == nil {
		return neutralRating
	}
	return float64(*r)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mu := mean(xs)
	var sum float64
	for _, x := range xs {
		sum += (x - mu) * (x - mu)
	}
	return sum / float64(len(xs))
}
