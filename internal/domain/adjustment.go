package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdjustmentType identifies the kind of change applied to (or suggested for) a plan.
type AdjustmentType string

const (
	AdjustmentDifficultyIncrease AdjustmentType = "difficulty_increase"
	AdjustmentDifficultyDecrease AdjustmentType = "difficulty_decrease"
	AdjustmentVolumeIncrease     AdjustmentType = "volume_increase"
	AdjustmentVolumeDecrease     AdjustmentType = "volume_decrease"
	AdjustmentPace               AdjustmentType = "pace_adjustment"
	AdjustmentScheduleChange     AdjustmentType = "schedule_change"
)

// Reason codes attached to recommendations and audit rows.
const (
	ReasonHighCompletionLowDifficulty = "high_completion_low_difficulty"
	ReasonLowCompletionHighDifficulty = "low_completion_high_difficulty"
	ReasonImprovingFitnessTrend       = "improving_fitness_trend"
	ReasonInconsistentPerformance     = "inconsistent_performance"
	ReasonHighEffortLevels            = "high_effort_levels"
	ReasonUserRequest                 = "user_request"
)

// TrainingAdjustment is an append-only audit record of an applied change.
type TrainingAdjustment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               primitive.ObjectID `bson:"userId" json:"userId"`
	TrainingPlanID       primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	AdjustmentType       AdjustmentType     `bson:"adjustmentType" json:"adjustmentType"`
	Reason               string             `bson:"reason" json:"reason"`
	PreviousValue        string             `bson:"previousValue,omitempty" json:"previousValue,omitempty"`
	NewValue             string             `bson:"newValue,omitempty" json:"newValue,omitempty"`
	DifficultyMultiplier string             `bson:"difficultyMultiplier" json:"difficultyMultiplier"` // e.g. "1.15"
	PerformanceScore     string             `bson:"performanceScore" json:"performanceScore"`         // e.g. "0.82"
	Automatic            bool               `bson:"automatic" json:"automatic"`
	WeekNumber           int                `bson:"weekNumber" json:"weekNumber"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
	SnapshotKey          string             `bson:"snapshotKey,omitempty" json:"-"` // object key of the pre-adjustment schedule
	AdjustmentDate       time.Time          `bson:"adjustmentDate" json:"adjustmentDate"`
}

// Multiplier returns the stored difficulty multiplier as a number.
func (a *TrainingAdjustment) Multiplier() float64 {
	return ParseMultiplier(a.DifficultyMultiplier)
}
