// internal/api/adaptive_handler.go
package api

import (
	"net/http"
	"time"

	"socialrunner/runner-app/internal/domain"
	"socialrunner/runner-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultAdjustmentHistory = 20

type AdaptiveHandler struct {
	adaptiveService service.AdaptiveService
}

func NewAdaptiveHandler(adaptiveService service.AdaptiveService) *AdaptiveHandler {
	return &AdaptiveHandler{adaptiveService: adaptiveService}
}

// --- DTOs ---

// ManualAdjustmentRequest asks for a one-step change to the plan.
type ManualAdjustmentRequest struct {
	AdjustmentType string `json:"adjustmentType" binding:"required,oneof=difficulty_increase difficulty_decrease volume_increase volume_decrease pace_adjustment schedule_change"`
	WeekNumber     int    `json:"weekNumber" binding:"omitempty,min=1"`
}

// AutoAdjustRequest triggers the automatic adjustment check.
type AutoAdjustRequest struct {
	CurrentWeek int `json:"currentWeek" binding:"omitempty,min=1"`
}

// AdjustmentResponse is the DTO for an audit row.
type AdjustmentResponse struct {
	ID                   string `json:"id"`
	AdjustmentType       string `json:"adjustmentType"`
	TypeLabel            string `json:"typeLabel"`
	Reason               string `json:"reason"`
	ReasonLabel          string `json:"reasonLabel"`
	PreviousValue        string `json:"previousValue,omitempty"`
	NewValue             string `json:"newValue,omitempty"`
	DifficultyMultiplier string `json:"difficultyMultiplier"`
	PerformanceScore     string `json:"performanceScore"`
	Automatic            bool   `json:"automatic"`
	WeekNumber           int    `json:"weekNumber"`
	Notes                string `json:"notes,omitempty"`
	HasSnapshot          bool   `json:"hasSnapshot"`
	AdjustmentDate       string `json:"adjustmentDate"`
}

// MapAdjustmentToResponse converts domain.TrainingAdjustment to its DTO.
func MapAdjustmentToResponse(a *domain.TrainingAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:                   a.ID.Hex(),
		AdjustmentType:       string(a.AdjustmentType),
		TypeLabel:            service.AdjustmentTypeLabel(a.AdjustmentType),
		Reason:               a.Reason,
		ReasonLabel:          service.ReasonLabel(a.Reason),
		PreviousValue:        a.PreviousValue,
		NewValue:             a.NewValue,
		DifficultyMultiplier: a.DifficultyMultiplier,
		PerformanceScore:     a.PerformanceScore,
		Automatic:            a.Automatic,
		WeekNumber:           a.WeekNumber,
		Notes:                a.Notes,
		HasSnapshot:          a.SnapshotKey != "",
		AdjustmentDate:       a.AdjustmentDate.UTC().Format(time.RFC3339),
	}
}

// GetPerformance godoc
// @Summary Analyze recent performance
// @Tags Adaptive
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param weeks query int false "Lookback window in weeks"
// @Success 200 {object} service.PerformanceReport
// @Router /plans/{planId}/performance [get]
func (h *AdaptiveHandler) GetPerformance(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}
	weeks, err := optionalIntQuery(c, "weeks")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weeks parameter.")
		return
	}

	report, err := h.adaptiveService.PerformanceReport(c.Request.Context(), userID, planID, weeks)
	if err != nil {
		respondServiceError(c, err, "Failed to analyze performance.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetAdaptiveData godoc
// @Summary Get the adaptive training dashboard
// @Tags Adaptive
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Success 200 {object} service.DashboardView
// @Failure 404 {object} gin.H "Training Plan not found"
// @Router /plans/{planId}/adaptive [get]
func (h *AdaptiveHandler) GetAdaptiveData(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}

	view, err := h.adaptiveService.GetAdaptiveData(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, err, "Failed to load adaptive training data.")
		return
	}
	if view == nil {
		abortWithError(c, http.StatusNotFound, service.ErrTrainingPlanNotFound.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApplyManualAdjustment godoc
// @Summary Apply a manual difficulty adjustment
// @Tags Adaptive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param adjustment body ManualAdjustmentRequest true "Adjustment"
// @Success 200 {object} service.SessionVarianceSummary
// @Failure 404 {object} gin.H "Training Plan not found"
// @Router /plans/{planId}/adjustments [post]
func (h *AdaptiveHandler) ApplyManualAdjustment(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req ManualAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	summary, err := h.adaptiveService.ApplyManualAdjustment(c.Request.Context(), userID, planID, domain.AdjustmentType(req.AdjustmentType), req.WeekNumber)
	if err != nil {
		respondServiceError(c, err, "Failed to apply adjustment.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AutoAdjust godoc
// @Summary Run the automatic adjustment check
// @Tags Adaptive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param request body AutoAdjustRequest false "Current week"
// @Success 200 {object} gin.H "{\"applied\": bool}"
// @Router /plans/{planId}/adjustments/auto [post]
func (h *AdaptiveHandler) AutoAdjust(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req AutoAdjustRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	applied, err := h.adaptiveService.AutoAdjustDifficulty(c.Request.Context(), userID, planID, req.CurrentWeek)
	if err != nil {
		respondServiceError(c, err, "Failed to run automatic adjustment.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

// ListAdjustments godoc
// @Summary List applied adjustments
// @Tags Adaptive
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param limit query int false "Maximum rows (default 20)"
// @Success 200 {array} AdjustmentResponse
// @Router /plans/{planId}/adjustments [get]
func (h *AdaptiveHandler) ListAdjustments(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}
	limit, err := optionalIntQuery(c, "limit")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid limit parameter.")
		return
	}
	if limit == 0 {
		limit = defaultAdjustmentHistory
	}

	adjustments, err := h.adaptiveService.ListAdjustments(c.Request.Context(), userID, planID, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve adjustments.")
		return
	}
	out := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		out[i] = MapAdjustmentToResponse(&adjustments[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetSnapshotURL godoc
// @Summary Get a download URL for the schedule before an adjustment
// @Tags Adaptive
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Training Plan's ObjectID Hex"
// @Param adjustmentId path string true "Adjustment's ObjectID Hex"
// @Success 200 {object} gin.H "{\"url\": string}"
// @Failure 404 {object} gin.H "No snapshot"
// @Router /plans/{planId}/adjustments/{adjustmentId}/snapshot [get]
func (h *AdaptiveHandler) GetSnapshotURL(c *gin.Context) {
	userID, planID, ok := requestIDs(c)
	if !ok {
		return
	}
	adjustmentID, err := primitive.ObjectIDFromHex(c.Param("adjustmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid adjustment ID format.")
		return
	}

	url, err := h.adaptiveService.SnapshotURL(c.Request.Context(), userID, planID, adjustmentID)
	if err != nil {
		respondServiceError(c, err, "Failed to create snapshot URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
