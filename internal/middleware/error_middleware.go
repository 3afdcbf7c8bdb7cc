package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses in one place, so
// controllers never reinvent status-code decisions.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	// Surface the specific message when the error carries one
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		detail.Detail.Message = custom.Message
	}

	c.JSON(detail.Status, dto.NewErrorResponse(detail.Detail))
}

type mappedError struct {
	Status int
	Detail *dto.ErrorDetail
}

func errorDetailFor(err error) mappedError {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return mappedError{http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")}

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return mappedError{http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")}

	case errors.Is(err, apperrors.ErrTokenExpired):
		return mappedError{http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")}

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		return mappedError{http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")}

	case errors.Is(err, apperrors.ErrTokenNotFound):
		return mappedError{http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")}

	case errors.Is(err, apperrors.ErrAccountDisabled):
		return mappedError{http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled")}

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return mappedError{http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")}

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return mappedError{http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")}

	case errors.Is(err, apperrors.ErrEnrollmentExists):
		return mappedError{http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeDuplicateRequest, "Learner already has an open enrollment for this offering")}

	case errors.Is(err, apperrors.ErrInvalidTransition):
		return mappedError{http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Transition not permitted from current state")}

	case errors.Is(err, apperrors.ErrNoSeatAvailable):
		return mappedError{http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeCapacityConflict, "No seat available")}

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrOfferingNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return mappedError{http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")}

	case errors.Is(err, apperrors.ErrConflict):
		return mappedError{http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflict")}

	default:
		return mappedError{http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")}
	}
}
