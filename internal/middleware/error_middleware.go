package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/akgec/studentreg/internal/app/models/dto"
	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps application errors to their HTTP response
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).
			WithDetails(apperrors.FieldErrors(err))
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(errorDetail))
		return
	case errors.Is(err, apperrors.ErrUnknownField):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnknownField, err.Error())
		var ce *apperrors.CustomError
		if errors.As(err, &ce) {
			if field, ok := ce.Details["field"].(string); ok {
				errorDetail = errorDetail.WithField(field)
			}
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	case errors.Is(err, apperrors.ErrCaptchaRequired):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeCaptchaRequired, err.Error()).WithField("captchaToken"),
		))
		return
	case errors.Is(err, apperrors.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSubmissionInProgress, "A submission is already in progress").
				WithSeverity(dto.ErrorSeverityWarning),
		))
		return
	case errors.Is(err, apperrors.ErrRegistrationFailed):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, err.Error()),
		))
		return
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
		))
		return
	case errors.Is(err, apperrors.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTooManyRequests, "Too many requests, slow down").
				WithSeverity(dto.ErrorSeverityWarning),
		))
		return
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
		return
	}
}
