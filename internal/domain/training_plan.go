// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is a runner's multi-week plan. The weekly schedule is the
// only part the adaptive engine rewrites.
type TrainingPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Name           string             `bson:"name" json:"name"` // e.g. "Couch to 10K"
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Goal           string             `bson:"goal,omitempty" json:"goal,omitempty"` // e.g. "10k", "half_marathon"
	StartDate      *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DurationWeeks  int                `bson:"durationWeeks" json:"durationWeeks"`
	CurrentWeek    int                `bson:"currentWeek" json:"currentWeek"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	WeeklySchedule WeeklySchedule     `bson:"weeklySchedule" json:"weeklySchedule"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StartingWeek returns the first week an adjustment should touch. Plans
// that were never started begin at week 1.
func (p *TrainingPlan) StartingWeek() int {
	if p.CurrentWeek < 1 {
		return 1
	}
	return p.CurrentWeek
}
