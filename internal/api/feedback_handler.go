// internal/api/feedback_handler.go
package api

import (
	"net/http"
	"strconv"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// SubmitFeedbackRequest defines the payload for reporting on a workout.
type SubmitFeedbackRequest struct {
	WorkoutDate      *time.Time `json:"workoutDate"`
	Completed        *bool      `json:"completed" binding:"required"`
	DifficultyRating *int       `json:"difficultyRating" binding:"omitempty,min=1,max=10"`
	EffortRating     *int       `json:"effortRating" binding:"omitempty,min=1,max=10"`
	EnergyLevel      *int       `json:"energyLevel" binding:"omitempty,min=1,max=10"`
	Notes            string     `json:"notes" binding:"max=2000"`
}

// SubmitFeedback godoc
// @Summary Submit feedback for a workout
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param feedback body SubmitFeedbackRequest true "Workout feedback"
// @Success 201 {object} domain.WorkoutFeedback
// @Failure 400 {object} gin.H "Validation error"
// @Failure 404 {object} gin.H "Training Plan not found"
// @Router /plans/{planId}/feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	feedback := &domain.WorkoutFeedback{
		UserID:           userID,
		TrainingPlanID:   planID,
		Completed:        *req.Completed,
		DifficultyRating: req.DifficultyRating,
		EffortRating:     req.EffortRating,
		EnergyLevel:      req.EnergyLevel,
		Notes:            req.Notes,
	}
	if req.WorkoutDate != nil {
		feedback.WorkoutDate = req.WorkoutDate.UTC()
	}

	created, err := h.feedbackService.SubmitFeedback(c.Request.Context(), feedback)
	if err != nil {
		respondServiceError(c, err, "Failed to submit feedback.")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListFeedback godoc
// @Summary List recent workout feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param weeks query int false "Lookback window in weeks (default 2)"
// @Success 200 {array} domain.WorkoutFeedback
// @Router /plans/{planId}/feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}
	weeks, err := optionalIntQuery(c, "weeks")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weeks parameter.")
		return
	}

	feedback, err := h.feedbackService.ListFeedback(c.Request.Context(), userID, planID, weeks)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve feedback.")
		return
	}
	if feedback == nil {
		feedback = []domain.WorkoutFeedback{}
	}
	c.JSON(http.StatusOK, feedback)
}

// optionalIntQuery returns 0 when the query parameter is absent.
func optionalIntQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
