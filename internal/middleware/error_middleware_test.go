package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akgec/studentreg/internal/app/models/dto"
	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

func handle(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{
			name:    "validation",
			err:     apperrors.NewValidationError(map[string]string{"phone": "Phone number is required"}),
			status:  http.StatusUnprocessableEntity,
			code:    dto.ErrorCodeValidationFailed,
			message: "Please correct the highlighted fields",
		},
		{
			name:   "unknown field",
			err:    &apperrors.CustomError{Err: apperrors.ErrUnknownField, Message: "unknown field: age", Details: map[string]interface{}{"field": "age"}},
			status: http.StatusBadRequest,
			code:   dto.ErrorCodeUnknownField,
		},
		{
			name:    "captcha",
			err:     apperrors.NewCustomError(apperrors.ErrCaptchaRequired, "Please complete the CAPTCHA verification."),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeCaptchaRequired,
			message: "Please complete the CAPTCHA verification.",
		},
		{
			name:   "in progress",
			err:    apperrors.ErrSubmissionInProgress,
			status: http.StatusConflict,
			code:   dto.ErrorCodeSubmissionInProgress,
		},
		{
			name:    "remote",
			err:     apperrors.NewRemoteError(http.StatusConflict, "Duplicate entry"),
			status:  http.StatusBadGateway,
			code:    dto.ErrorCodeExternalServiceError,
			message: "Duplicate entry",
		},
		{
			name:   "not found",
			err:    apperrors.NewResourceNotFoundError("Route not found"),
			status: http.StatusNotFound,
			code:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:   "rate limited",
			err:    apperrors.ErrTooManyRequests,
			status: http.StatusTooManyRequests,
			code:   dto.ErrorCodeTooManyRequests,
		},
		{
			name:    "unhandled",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeInternalServer,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := handle(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
		})
	}
}

func TestHandleAPIError_UnknownFieldNamesField(t *testing.T) {
	_, resp := handle(t, &apperrors.CustomError{
		Err:     apperrors.ErrUnknownField,
		Details: map[string]interface{}{"field": "age"},
	})
	assert.Equal(t, "age", resp.Error.Field)
}
