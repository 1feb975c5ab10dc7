package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/akgec/studentreg/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure it writes
// a 400 response, aborts the context and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var errorDetail *dto.ErrorDetail
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		list := dto.NewValidationErrors()
		for _, fe := range verrs {
			list.AddError(fe.Field(), formatValidationError(fe))
		}
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, list.Errors[0].Message).
			WithField(list.Errors[0].Field).
			WithDetails(list.Errors)
	} else {
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format").
			WithDetails(err.Error())
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return false
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
