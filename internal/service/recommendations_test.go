package service

import (
	"testing"

	"socialrunner/runner-app/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func recTypes(recs []AdjustmentRecommendation) []domain.AdjustmentType {
	out := []domain.AdjustmentType{}
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}

func TestGenerateRecommendations(t *testing.T) {
	base := NeutralMetrics()
	with := func(fn func(*PerformanceMetrics)) PerformanceMetrics {
		m := base
		fn(&m)
		return m
	}

	tests := []struct {
		name    string
		metrics PerformanceMetrics
		want    []domain.AdjustmentType
	}{
		{"neutral", base, []domain.AdjustmentType{}},
		{
			"easy at threshold",
			with(func(m *PerformanceMetrics) { m.CompletionRate = 0.90; m.AverageDifficulty = 3.5 }),
			[]domain.AdjustmentType{domain.AdjustmentDifficultyIncrease},
		},
		{
			"easy but completion just below",
			with(func(m *PerformanceMetrics) { m.CompletionRate = 0.89; m.AverageDifficulty = 3.5 }),
			[]domain.AdjustmentType{},
		},
		{
			"hard at threshold",
			with(func(m *PerformanceMetrics) { m.CompletionRate = 0.60; m.AverageDifficulty = 7.5 }),
			[]domain.AdjustmentType{domain.AdjustmentDifficultyDecrease},
		},
		{
			"hard but difficulty just below",
			with(func(m *PerformanceMetrics) { m.CompletionRate = 0.60; m.AverageDifficulty = 7.4 }),
			[]domain.AdjustmentType{},
		},
		{
			"trend strictly above one",
			with(func(m *PerformanceMetrics) { m.AverageEffort = 6.0; m.ImprovementTrend = 1.01 }),
			[]domain.AdjustmentType{domain.AdjustmentVolumeIncrease},
		},
		{
			"trend exactly one",
			with(func(m *PerformanceMetrics) { m.AverageEffort = 6.0; m.ImprovementTrend = 1.0 }),
			[]domain.AdjustmentType{},
		},
		{
			"inconsistent at threshold",
			with(func(m *PerformanceMetrics) { m.ConsistencyScore = 0.5 }),
			[]domain.AdjustmentType{domain.AdjustmentScheduleChange},
		},
		{
			"effort at threshold",
			with(func(m *PerformanceMetrics) { m.AverageEffort = 8.5 }),
			[]domain.AdjustmentType{domain.AdjustmentPace},
		},
		{
			"several rules in rule order",
			with(func(m *PerformanceMetrics) {
				m.CompletionRate = 0.95
				m.AverageDifficulty = 3
				m.ConsistencyScore = 0.4
				m.AverageEffort = 9
			}),
			[]domain.AdjustmentType{domain.AdjustmentDifficultyIncrease, domain.AdjustmentScheduleChange, domain.AdjustmentPace},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRecommendations(tt.metrics)
			if got == nil {
				t.Fatal("expected a non-nil slice")
			}
			if diff := cmp.Diff(tt.want, recTypes(got)); diff != "" {
				t.Errorf("types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateRecommendations_Confidence(t *testing.T) {
	m := PerformanceMetrics{CompletionRate: 0.5, AverageDifficulty: 8, AverageEffort: 9, ConsistencyScore: 0.3}
	want := []AdjustmentRecommendation{
		{Type: domain.AdjustmentDifficultyDecrease, Confidence: 90, Reason: domain.ReasonLowCompletionHighDifficulty},
		{Type: domain.AdjustmentScheduleChange, Confidence: 70, Reason: domain.ReasonInconsistentPerformance},
		{Type: domain.AdjustmentPace, Confidence: 80, Reason: domain.ReasonHighEffortLevels},
	}
	ignoreText := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Suggestion"
	}, cmp.Ignore())
	if diff := cmp.Diff(want, GenerateRecommendations(m), ignoreText); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestTopRecommendations(t *testing.T) {
	recs := make([]AdjustmentRecommendation, 5)
	if got := len(TopRecommendations(recs, 3)); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
	if got := len(TopRecommendations(recs[:2], 3)); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestAutoMultiplier(t *testing.T) {
	tests := []struct {
		name string
		t    domain.AdjustmentType
		m    PerformanceMetrics
		want float64
	}{
		{"increase", domain.AdjustmentDifficultyIncrease, PerformanceMetrics{AverageDifficulty: 3}, 1.07},
		{"increase capped", domain.AdjustmentDifficultyIncrease, PerformanceMetrics{AverageDifficulty: -10}, 1.20},
		{"decrease", domain.AdjustmentDifficultyDecrease, PerformanceMetrics{AverageDifficulty: 8}, 0.92},
		{"volume capped", domain.AdjustmentVolumeIncrease, PerformanceMetrics{ImprovementTrend: 4}, 1.15},
		{"volume", domain.AdjustmentVolumeIncrease, PerformanceMetrics{ImprovementTrend: 2}, 1.10},
		{"volume decrease", domain.AdjustmentVolumeDecrease, PerformanceMetrics{CompletionRate: 0.5}, 0.95},
		{"pace is neutral", domain.AdjustmentPace, PerformanceMetrics{}, 1.0},
		{"schedule is neutral", domain.AdjustmentScheduleChange, PerformanceMetrics{}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, AutoMultiplier(tt.t, tt.m), approx); diff != "" {
				t.Errorf("multiplier mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManualMultiplier(t *testing.T) {
	if got := ManualMultiplier(domain.AdjustmentDifficultyIncrease); got != 1.15 {
		t.Errorf("increase = %v, want 1.15", got)
	}
	if got := ManualMultiplier(domain.AdjustmentDifficultyDecrease); got != 0.85 {
		t.Errorf("decrease = %v, want 0.85", got)
	}
	if got := ManualMultiplier(domain.AdjustmentVolumeIncrease); got != 1.0 {
		t.Errorf("volume increase = %v, want 1.0", got)
	}
}
