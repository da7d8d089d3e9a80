// internal/api/plan_handler.go
package api

import (
	"net/http"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for Training Plans ---

// CreatePlanRequest defines the payload for creating a training plan.
type CreatePlanRequest struct {
	Name           string                `json:"name" binding:"required"`
	Description    string                `json:"description"`
	Goal           string                `json:"goal"`
	StartDate      *time.Time            `json:"startDate"`
	DurationWeeks  int                   `json:"durationWeeks" binding:"required,min=1"`
	CurrentWeek    int                   `json:"currentWeek" binding:"omitempty,min=1"`
	WeeklySchedule domain.WeeklySchedule `json:"weeklySchedule"`
}

// TrainingPlanResponse is the DTO for returning plan details.
type TrainingPlanResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Goal           string                `json:"goal,omitempty"`
	StartDate      *time.Time            `json:"startDate,omitempty"`
	DurationWeeks  int                   `json:"durationWeeks"`
	CurrentWeek    int                   `json:"currentWeek"`
	IsActive       bool                  `json:"isActive"`
	WeeklySchedule domain.WeeklySchedule `json:"weeklySchedule"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// MapTrainingPlanToResponse converts domain.TrainingPlan to its DTO.
func MapTrainingPlanToResponse(p *domain.TrainingPlan) TrainingPlanResponse {
	return TrainingPlanResponse{
		ID:             p.ID.Hex(),
		Name:           p.Name,
		Description:    p.Description,
		Goal:           p.Goal,
		StartDate:      p.StartDate,
		DurationWeeks:  p.DurationWeeks,
		CurrentWeek:    p.CurrentWeek,
		IsActive:       p.IsActive,
		WeeklySchedule: p.WeeklySchedule,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// MapTrainingPlansToResponse converts a slice of plans.
func MapTrainingPlansToResponse(plans []domain.TrainingPlan) []TrainingPlanResponse {
	out := make([]TrainingPlanResponse, len(plans))
	for i := range plans {
		out[i] = MapTrainingPlanToResponse(&plans[i])
	}
	return out
}

// CreatePlan godoc
// @Summary Create a training plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} TrainingPlanResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, &domain.TrainingPlan{
		Name:           req.Name,
		Description:    req.Description,
		Goal:           req.Goal,
		StartDate:      req.StartDate,
		DurationWeeks:  req.DurationWeeks,
		CurrentWeek:    req.CurrentWeek,
		WeeklySchedule: req.WeeklySchedule,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create training plan.")
		return
	}
	c.JSON(http.StatusCreated, MapTrainingPlanToResponse(plan))
}

// ListPlans godoc
// @Summary List my training plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TrainingPlanResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve training plans.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingPlansToResponse(plans))
}

// GetPlan godoc
// @Summary Get one of my training plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Success 200 {object} TrainingPlanResponse
// @Failure 403 {object} gin.H "Plan belongs to another user"
// @Failure 404 {object} gin.H "Training Plan not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve training plan.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingPlanToResponse(plan))
}

// AdvanceWeek godoc
// @Summary Move a plan to its next week
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Success 200 {object} TrainingPlanResponse
// @Router /plans/{planId}/advance [post]
func (h *PlanHandler) AdvanceWeek(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}

	plan, err := h.planService.AdvanceWeek(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err, "Failed to advance training plan.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingPlanToResponse(plan))
}
