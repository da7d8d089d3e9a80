package api

import (
	"net/http"

	"socialrunner/runner-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	feedbackService service.FeedbackService,
	adaptiveService service.AdaptiveService,
) {
	planHandler := NewPlanHandler(planService)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	adaptiveHandler := NewAdaptiveHandler(adaptiveService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		plans := protected.Group("/plans")
		{
			plans.POST("", planHandler.CreatePlan)
			plans.GET("", planHandler.ListPlans)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.POST("/:planId/advance", planHandler.AdvanceWeek)

			// --- Workout Feedback ---
			plans.POST("/:planId/feedback", feedbackHandler.SubmitFeedback)
			plans.GET("/:planId/feedback", feedbackHandler.ListFeedback)

			// --- Adaptive Difficulty ---
			plans.GET("/:planId/performance", adaptiveHandler.GetPerformance)
			plans.GET("/:planId/adaptive", adaptiveHandler.GetAdaptiveData)
			plans.POST("/:planId/adjustments", adaptiveHandler.ApplyManualAdjustment)
			plans.POST("/:planId/adjustments/auto", adaptiveHandler.AutoAdjust)
			plans.GET("/:planId/adjustments", adaptiveHandler.ListAdjustments)
			plans.GET("/:planId/adjustments/:adjustmentId/snapshot", adaptiveHandler.GetSnapshotURL)
		}
	}
}
