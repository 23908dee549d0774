package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Every
// controller funnels its error paths through here so the error taxonomy maps
// to status codes in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	// A CustomError carries a caller-facing message; keep it, but classify by
	// the wrapped sentinel.
	message := ""
	var details map[string]interface{}
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		message = customErr.Message
		details = customErr.Details
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		detail := dto.NewErrorDetail(code, message)
		if details != nil {
			detail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(detail))
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrNoFileUploaded):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	case errors.Is(err, apperrors.ErrInvalidResetToken):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidToken, apperrors.ErrInvalidResetToken.Error())

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, apperrors.ErrInvalidCredentials.Error())

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrNotAuthenticated):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, apperrors.ErrNotAuthenticated.Error())

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrCollegeNotFound),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrForumPostNotFound),
		errors.Is(err, apperrors.ErrResourceEntryNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrFileNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrNameAlreadyInUse),
		errors.Is(err, apperrors.ErrEmailAlreadyInUse),
		errors.Is(err, apperrors.ErrCollegeExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrEmailDelivery):
		respond(http.StatusBadGateway, dto.ErrorCodeExternalServiceError, apperrors.ErrEmailDelivery.Error())

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		message = ""
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
