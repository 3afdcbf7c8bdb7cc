package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/app/services"
	"github.com/tutorhive/tutorhive/internal/middleware"
	"github.com/tutorhive/tutorhive/internal/pkg/helpers"
)

// OfferingController handles course offering operations
type OfferingController struct {
	offeringService *services.OfferingService
	logger          zerolog.Logger
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(offeringService *services.OfferingService, logger zerolog.Logger) *OfferingController {
	return &OfferingController{
		offeringService: offeringService,
		logger:          logger,
	}
}

// CreateOffering creates a course offering and generates its session series
// @Summary Create a course offering
// @Description Creates an offering and expands its recurrence descriptor into dated sessions, persisted together
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferingRequest true "Offering with recurrence descriptor"
// @Success 201 {object} dto.APIResponse{data=models.CourseOffering} "Offering created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or recurrence descriptor"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Tutor role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings [post]
func (c *OfferingController) CreateOffering(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid offering request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offering, err := c.offeringService.CreateOffering(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(offering))
}

// PreviewOffering expands a recurrence descriptor without persisting anything
// @Summary Preview a session series
// @Description Expands a recurrence descriptor into the session windows a create would generate, without saving
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PreviewOfferingRequest true "Recurrence descriptor"
// @Success 200 {object} dto.APIResponse{data=[]scheduling.Window} "Expanded windows"
// @Failure 400 {object} dto.ErrorResponse "Invalid recurrence descriptor"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /offerings/preview [post]
func (c *OfferingController) PreviewOffering(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.PreviewOfferingRequest](ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	windows, err := c.offeringService.PreviewSessions(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(windows))
}

// GetOffering retrieves one offering with its session series
// @Summary Get an offering
// @Description Retrieves a course offering together with its generated sessions
// @Tags offerings
// @Produce json
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseOffering} "Offering with sessions"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offering, err := c.offeringService.GetOffering(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(offering))
}

// ListOfferings retrieves a page of offerings
// @Summary List offerings
// @Description Retrieves course offerings with pagination
// @Tags offerings
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Offerings"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings [get]
func (c *OfferingController) ListOfferings(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	offerings, total, err := c.offeringService.ListOfferings(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      offerings,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}))
}
