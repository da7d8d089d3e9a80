package service

import (
	"fmt"
	"time"

	"socialrunner/runner-app/internal/domain"
)

var adjustmentTypeLabels = map[domain.AdjustmentType]string{
	domain.AdjustmentDifficultyIncrease: "Difficulty Increased",
	domain.AdjustmentDifficultyDecrease: "Difficulty Decreased",
	domain.AdjustmentVolumeIncrease:     "Volume Increased",
	domain.AdjustmentVolumeDecrease:     "Volume Decreased",
	domain.AdjustmentPace:               "Pace Adjusted",
	domain.AdjustmentScheduleChange:     "Schedule Changed",
}

var reasonLabels = map[string]string{
	domain.ReasonHighCompletionLowDifficulty: "Workouts felt too easy",
	domain.ReasonLowCompletionHighDifficulty: "Workouts felt too hard",
	domain.ReasonImprovingFitnessTrend:       "Fitness is improving",
	domain.ReasonInconsistentPerformance:     "Inconsistent difficulty ratings",
	domain.ReasonHighEffortLevels:            "Effort consistently very high",
	domain.ReasonUserRequest:                 "Requested by you",
}

// AdjustmentTypeLabel maps a type code to display text; unknown codes read "Adjusted".
func AdjustmentTypeLabel(t domain.AdjustmentType) string {
	if label, ok := adjustmentTypeLabels[t]; ok {
		return label
	}
	return "Adjusted"
}

// ReasonLabel maps a reason code to display text; unknown codes read "System adjustment".
func ReasonLabel(reason string) string {
	if label, ok := reasonLabels[reason]; ok {
		return label
	}
	return "System adjustment"
}

// RelativeDate renders t relative to now in calendar days.
func RelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	y1, m1, d1 := t.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days < 0:
		return t.UTC().Format("Jan 2, 2006")
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return t.UTC().Format("Jan 2, 2006")
	}
}
