package api

import (
	"errors"
	"log"
	"net/http"

	"socialrunner/runner-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondServiceError maps service errors to HTTP status codes.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTrainingPlanNotFound),
		errors.Is(err, service.ErrAdjustmentNotFound),
		errors.Is(err, service.ErrSnapshotUnavailable):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrInvalidFeedback),
		errors.Is(err, service.ErrInvalidWindow):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// requestIDs extracts the authenticated user and the :planId path parameter.
// It writes the error response itself and reports false on failure.
func requestIDs(c *gin.Context) (userID, planID primitive.ObjectID, ok bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	planID, err = primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}
	return userID, planID, true
}
