// internal/domain/feedback.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating bounds shared by difficulty, effort and energy ratings.
const (
	MinRating = 1
	MaxRating = 10
)

// WorkoutFeedback is one runner's report on one scheduled workout.
// Feedback is immutable once created.
type WorkoutFeedback struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	TrainingPlanID   primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	WorkoutDate      time.Time          `bson:"workoutDate" json:"workoutDate"`
	Completed        bool               `bson:"completed" json:"completed"`
	DifficultyRating *int               `bson:"difficultyRating,omitempty" json:"difficultyRating,omitempty"` // 1-10
	EffortRating     *int               `bson:"effortRating,omitempty" json:"effortRating,omitempty"`         // 1-10
	EnergyLevel      *int               `bson:"energyLevel,omitempty" json:"energyLevel,omitempty"`           // 1-10
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidRating reports whether an optional rating is absent or within bounds.
func ValidRating(r *int) bool {
	return r == nil || (*r >= MinRating && *r <= MaxRating)
}
