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

// SessionController handles amendments to generated sessions
type SessionController struct {
	sessionService *services.SessionService
	logger         zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService, logger zerolog.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Reschedule amends a single session of a series
// @Summary Reschedule a session
// @Description Moves one session's date, time or topic. The window duration is preserved and the rest of the series never shifts.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.RescheduleSessionRequest true "Fields to amend"
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session rescheduled"
// @Failure 400 {object} dto.ErrorResponse "Empty patch or invalid date/time"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Session belongs to another tutor's offering"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed or cancelled"
// @Router /sessions/{id} [patch]
func (c *SessionController) Reschedule(ctx *gin.Context) {
	userID, sessionID, ok := c.authedSessionID(ctx)
	if !ok {
		return
	}

	var req dto.RescheduleSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.sessionService.Reschedule(ctx.Request.Context(), userID, sessionID, models.SessionPatch{
		Date:      req.Date,
		StartTime: req.StartTime,
		Topic:     req.Topic,
		Reason:    req.Reason,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// Complete marks a session as held
// @Summary Complete a session
// @Description Marks the session as held. Completing an already completed session is a no-op.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session completed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Session belongs to another tutor's offering"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is cancelled"
// @Router /sessions/{id}/complete [post]
func (c *SessionController) Complete(ctx *gin.Context) {
	userID, sessionID, ok := c.authedSessionID(ctx)
	if !ok {
		return
	}

	session, err := c.sessionService.Complete(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

// Cancel calls off a single session
// @Summary Cancel a session
// @Description Calls off one session with an optional reason. The session stays in the series as CANCELLED; cancelling twice is a no-op.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.CancelSessionRequest false "Optional reason"
// @Success 200 {object} dto.APIResponse{data=models.Session} "Session cancelled"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Session belongs to another tutor's offering"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is completed"
// @Router /sessions/{id}/cancel [post]
func (c *SessionController) Cancel(ctx *gin.Context) {
	userID, sessionID, ok := c.authedSessionID(ctx)
	if !ok {
		return
	}

	// Body is optional for cancellation
	var req dto.CancelSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.HandleValidationError(err)
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	session, err := c.sessionService.Cancel(ctx.Request.Context(), userID, sessionID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(session))
}

func (c *SessionController) authedSessionID(ctx *gin.Context) (userID, sessionID int64, ok bool) {
	userID, found := middleware.GetUserID(ctx)
	if !found {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, 0, false
	}

	sessionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, 0, false
	}

	return userID, sessionID, true
}
