package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tutorhive/tutorhive/internal/app/controllers"
	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	offeringController *controllers.OfferingController,
	enrollmentController *controllers.EnrollmentController,
	sessionController *controllers.SessionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public Offering routes ---
	offerings := v1.Group("/offerings")
	{
		offerings.GET("", offeringController.ListOfferings)
		offerings.GET("/:id", offeringController.GetOffering)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Tutor-only offering management
		offeringsTutorProtected := authenticated.Group("/offerings")
		offeringsTutorProtected.Use(authMiddleware.RoleRequired(models.RoleTutor))
		{
			offeringsTutorProtected.POST("", offeringController.CreateOffering)
			offeringsTutorProtected.POST("/preview",
				middleware.ValidateRequest(&dto.PreviewOfferingRequest{}),
				offeringController.PreviewOffering)
			offeringsTutorProtected.GET("/:id/enrollments", enrollmentController.ListForOffering)
		}

		// Learner enrollment routes
		learnerProtected := authenticated.Group("")
		learnerProtected.Use(authMiddleware.RoleRequired(models.RoleLearner))
		{
			learnerProtected.POST("/offerings/:id/enrollments", enrollmentController.Request)
			learnerProtected.DELETE("/enrollments/:id", enrollmentController.Cancel)
			learnerProtected.GET("/enrollments", enrollmentController.ListOwn)
		}

		// Tutor decisions on enrollments
		enrollmentsTutorProtected := authenticated.Group("/enrollments")
		enrollmentsTutorProtected.Use(authMiddleware.RoleRequired(models.RoleTutor))
		{
			enrollmentsTutorProtected.POST("/:id/approve", enrollmentController.Approve)
			enrollmentsTutorProtected.POST("/:id/reject", enrollmentController.Reject)
			enrollmentsTutorProtected.POST("/:id/promote", enrollmentController.Promote)
		}

		// Tutor session amendments
		sessionsTutorProtected := authenticated.Group("/sessions")
		sessionsTutorProtected.Use(authMiddleware.RoleRequired(models.RoleTutor))
		{
			sessionsTutorProtected.PATCH("/:id", sessionController.Reschedule)
			sessionsTutorProtected.POST("/:id/complete", sessionController.Complete)
			sessionsTutorProtected.POST("/:id/cancel", sessionController.Cancel)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// Swagger routes are set up in bootstrap.go already
}
