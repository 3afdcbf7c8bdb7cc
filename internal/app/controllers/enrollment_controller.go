package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/app/services"
	"github.com/tutorhive/tutorhive/internal/middleware"
)

// EnrollmentController handles the enrollment lifecycle endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Request registers the authenticated learner for an offering
// @Summary Request enrollment
// @Description Registers the learner for an offering. The returned status reflects the capacity gate: PENDING when approval is required, ACTIVE when a seat is free, WAITLIST otherwise.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Learner role required"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 409 {object} dto.ErrorResponse "Learner already has an open enrollment"
// @Router /offerings/{id}/enrollments [post]
func (c *EnrollmentController) Request(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	offeringID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Request(ctx.Request.Context(), offeringID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment))
}

// Approve activates or waitlists a pending enrollment
// @Summary Approve a pending enrollment
// @Description Applies the tutor's approval. Capacity is re-checked at decision time: a full offering waitlists the learner instead of activating them.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment approved"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Offering belongs to another tutor"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not permitted from current state"
// @Router /enrollments/{id}/approve [post]
func (c *EnrollmentController) Approve(ctx *gin.Context) {
	c.decide(ctx, models.ActionApprove)
}

// Reject cancels a pending enrollment
// @Summary Reject a pending enrollment
// @Description Applies the tutor's rejection, moving the enrollment to CANCELLED
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment rejected"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Offering belongs to another tutor"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not permitted from current state"
// @Router /enrollments/{id}/reject [post]
func (c *EnrollmentController) Reject(ctx *gin.Context) {
	c.decide(ctx, models.ActionReject)
}

// Promote moves a waitlisted enrollment into a free seat
// @Summary Promote from waitlist
// @Description Manually activates a waitlisted enrollment. Fails with a conflict when no seat is free.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment promoted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Offering belongs to another tutor"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "No seat available or not waitlisted"
// @Router /enrollments/{id}/promote [post]
func (c *EnrollmentController) Promote(ctx *gin.Context) {
	userID, enrollmentID, ok := c.authedEnrollmentID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Promote(ctx.Request.Context(), userID, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// Cancel withdraws the learner's own enrollment
// @Summary Cancel own enrollment
// @Description Withdraws the authenticated learner's enrollment. Cancelling an active enrollment frees a seat, which goes to the oldest waitlisted learner.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment cancelled"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Enrollment belongs to another learner"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not permitted from current state"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Cancel(ctx *gin.Context) {
	userID, enrollmentID, ok := c.authedEnrollmentID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Cancel(ctx.Request.Context(), userID, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// ListForOffering retrieves an offering's enrollments for its tutor
// @Summary List enrollments of an offering
// @Description Retrieves all enrollments of the tutor's offering, with derived waitlist positions
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Offering belongs to another tutor"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id}/enrollments [get]
func (c *EnrollmentController) ListForOffering(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	offeringID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollments, err := c.enrollmentService.ListForOffering(ctx.Request.Context(), userID, offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments))
}

// ListOwn retrieves the authenticated learner's enrollments
// @Summary List own enrollments
// @Description Retrieves the learner's enrollments across offerings, with derived waitlist positions
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /enrollments [get]
func (c *EnrollmentController) ListOwn(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollments, err := c.enrollmentService.ListForLearner(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments))
}

func (c *EnrollmentController) decide(ctx *gin.Context, action models.EnrollmentAction) {
	userID, enrollmentID, ok := c.authedEnrollmentID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.Decide(ctx.Request.Context(), userID, enrollmentID, action)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// authedEnrollmentID extracts the authenticated user and the :id path param,
// writing the error response itself when either is missing.
func (c *EnrollmentController) authedEnrollmentID(ctx *gin.Context) (userID, enrollmentID int64, ok bool) {
	userID, found := middleware.GetUserID(ctx)
	if !found {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, 0, false
	}

	enrollmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, 0, false
	}

	return userID, enrollmentID, true
}
