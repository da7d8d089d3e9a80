package service

import "socialrunner/runner-app/internal/domain"

// AdjustmentRecommendation is a suggested change derived from metrics.
type AdjustmentRecommendation struct {
	Type       domain.AdjustmentType `json:"type"`
	Suggestion string                `json:"suggestion"`
	Confidence int                   `json:"confidence"` // 0-100
	Reason     string                `json:"reason"`
}

// GenerateRecommendations evaluates every rule independently and returns
// matches in rule order. The result is not sorted by confidence.
func GenerateRecommendations(m PerformanceMetrics) []AdjustmentRecommendation {
	recs := []AdjustmentRecommendation{}

	if m.CompletionRate >= 0.90 && m.AverageDifficulty <= 3.5 {
		recs = append(recs, AdjustmentRecommendation{
			Type:       domain.AdjustmentDifficultyIncrease,
			Suggestion: "You're completing your workouts with ease. Consider increasing the difficulty.",
			Confidence: 85,
			Reason:     domain.ReasonHighCompletionLowDifficulty,
		})
	}

	if m.CompletionRate <= 0.60 && m.AverageDifficulty >= 7.5 {
		recs = append(recs, AdjustmentRecommendation{
			Type:       domain.AdjustmentDifficultyDecrease,
			Suggestion: "Your workouts seem too challenging. Reducing the difficulty can help you stay consistent.",
			Confidence: 90,
			Reason:     domain.ReasonLowCompletionHighDifficulty,
		})
	}

	if m.AverageEffort <= 6.0 && m.ImprovementTrend > 1.0 {
		recs = append(recs, AdjustmentRecommendation{
			Type:       domain.AdjustmentVolumeIncrease,
			Suggestion: "Your fitness is improving. You could handle a little more weekly volume.",
			Confidence: 75,
			Reason:     domain.ReasonImprovingFitnessTrend,
		})
	}

	if m.ConsistencyScore <= 0.5 {
		recs = append(recs, AdjustmentRecommendation{
			Type:       domain.AdjustmentScheduleChange,
			Suggestion: "Your workouts vary a lot in difficulty. A more regular schedule may help.",
			Confidence: 70,
			Reason:     domain.ReasonInconsistentPerformance,
		})
	}

	if m.AverageEffort >= 8.5 {
		recs = append(recs, AdjustmentRecommendation{
			Type:       domain.AdjustmentPace,
			Suggestion: "You're pushing very hard. Try slowing your target paces to build an aerobic base.",
			Confidence: 80,
			Reason:     domain.ReasonHighEffortLevels,
		})
	}

	return recs
}

// TopRecommendations returns the first n recommendations in rule order.
func TopRecommendations(recs []AdjustmentRecommendation, n int) []AdjustmentRecommendation {
	if len(recs) <= n {
		return recs
	}
	return recs[:n]
}
