package registrar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akgec/studentreg/internal/app/models"
	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

const testEndpoint = "https://register.example.com/api/register"

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	mock := httpmock.NewMockTransport()
	c := NewClient(Config{Endpoint: testEndpoint, Timeout: time.Second, Transport: mock}, zerolog.Nop())
	return c, mock
}

func sampleRecord() models.RegistrationRecord {
	return models.RegistrationRecord{
		Name:          "rohan",
		StudentNumber: "2412345",
		Email:         "rohan2412345@akgec.ac.in",
		Gender:        "Male",
		Branch:        "CSE",
		Phone:         "9123456789",
		UnstopID:      "learner123",
		Residence:     "Hosteller",
	}
}

func TestRegister_Success(t *testing.T) {
	c, mock := newTestClient(t)

	var gotBody map[string]string
	var gotContentType string
	mock.RegisterResponder(http.MethodPost, testEndpoint, func(req *http.Request) (*http.Response, error) {
		gotContentType = req.Header.Get("Content-Type")
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			return nil, err
		}
		return httpmock.NewStringResponse(http.StatusCreated, `{"message":"Registered","id":"r-1"}`), nil
	})

	receipt, err := c.Register(context.Background(), sampleRecord(), "captcha-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, receipt.StatusCode)
	assert.Equal(t, "Registered", receipt.Message)
	assert.Equal(t, "r-1", receipt.ID)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "captcha-token", gotBody["captchaToken"])
	assert.Equal(t, "rohan", gotBody["name"])
	assert.Equal(t, "2412345", gotBody["studentNumber"])
	assert.Equal(t, "learner123", gotBody["unstopId"])
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestRegister_EmptySuccessBody(t *testing.T) {
	c, mock := newTestClient(t)
	mock.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusNoContent, ""))

	receipt, err := c.Register(context.Background(), sampleRecord(), "tok")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, receipt.StatusCode)
	assert.Empty(t, receipt.Message)
}

func TestRegister_ServerMessage(t *testing.T) {
	c, mock := newTestClient(t)
	mock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusConflict, `{"message":"Duplicate entry"}`))

	_, err := c.Register(context.Background(), sampleRecord(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRegistrationFailed))

	msg, ok := apperrors.StatusMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Duplicate entry", msg)
}

func TestRegister_ServerErrorWithoutMessage(t *testing.T) {
	c, mock := newTestClient(t)
	mock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusInternalServerError, `<html>oops</html>`))

	_, err := c.Register(context.Background(), sampleRecord(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRegistrationFailed))

	_, ok := apperrors.StatusMessage(err)
	assert.False(t, ok)
}

func TestRegister_TransportError(t *testing.T) {
	c, mock := newTestClient(t)
	mock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := c.Register(context.Background(), sampleRecord(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRegistrationFailed))

	_, ok := apperrors.StatusMessage(err)
	assert.False(t, ok)
}
