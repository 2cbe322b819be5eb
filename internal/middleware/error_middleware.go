package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursescope/coursescope/internal/app/models/dto"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
)

// HandleAPIError maps a service error onto the wire taxonomy: validation
// failures are 400, a busy refresh cycle is 409, upstream transport and
// parse failures are 502, and a failed catalog replace is 500. Everything
// unrecognized falls through to a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeValidationFailed, "Validation failed")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrRefreshInProgress):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeRefreshConflict, "A catalog refresh is already in progress")))
	case errors.Is(err, apperrors.ErrUpstream):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeUpstreamFailed, "Bulletin request failed")))
	case errors.Is(err, apperrors.ErrParse):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeUpstreamParse, "Bulletin response could not be parsed")))
	case errors.Is(err, apperrors.ErrTransaction):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeTransactionFailed, "Catalog replace failed")))
	case errors.Is(err, apperrors.ErrDatabaseOperation):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			errorDetailFor(err, dto.ErrorCodeDatabaseError, "Database operation failed")))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// errorDetailFor builds the wire error detail, preferring the message and
// context attached to a CustomError over the generic fallback.
func errorDetailFor(err error, code dto.ErrorCode, fallback string) *dto.ErrorDetail {
	message := fallback
	var details map[string]interface{}

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			message = customErr.Message
		}
		details = customErr.Details
	}

	detail := dto.NewErrorDetail(code, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	return detail
}
