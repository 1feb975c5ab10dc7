// Package registrar implements the client for the remote registration API.
package registrar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/akgec/studentreg/internal/app/models"
	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Config contains configuration for the registration API client.
type Config struct {
	// Endpoint is the full URL registrations are POSTed to
	Endpoint string

	// Timeout is the HTTP request timeout; zero means no client timeout
	Timeout time.Duration

	// UserAgent is sent with every request when set
	UserAgent string

	// Transport overrides the HTTP transport; nil uses http.DefaultTransport
	Transport http.RoundTripper
}

// Client posts registration records to the remote endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new registration API client.
func NewClient(config Config, logger zerolog.Logger) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		logger: logger.With().Str("component", "registrar").Logger(),
	}
}

// Payload is the request body: the record fields plus the CAPTCHA token.
type Payload struct {
	models.RegistrationRecord
	CaptchaToken string `json:"captchaToken"`
}

// Receipt is what a successful registration returned. Both fields are
// optional; the endpoint may answer with an empty body.
type Receipt struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message,omitempty"`
	ID         string `json:"id,omitempty"`
}

// errorBody is the subset of an error response the client understands.
type errorBody struct {
	Message string `json:"message"`
}

// Register submits one record. Any 2xx response is success. A non-2xx
// response yields an *apperrors.CustomError wrapping ErrRegistrationFailed whose
// StatusMsg is the body's "message" field when present.
func (c *Client) Register(ctx context.Context, record models.RegistrationRecord, captchaToken string) (*Receipt, error) {
	body, err := json.Marshal(Payload{RegistrationRecord: record, CaptchaToken: captchaToken})
	if err != nil {
		return nil, fmt.Errorf("marshal registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("endpoint", c.config.Endpoint).Msg("Registration request failed")
		return nil, fmt.Errorf("%w: execute request: %v", apperrors.ErrRegistrationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", apperrors.ErrRegistrationFailed, err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("studentNumber", record.StudentNumber).
		Msg("Registration endpoint responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if len(respBody) > 0 {
			// A body that is not JSON simply carries no message.
			_ = json.Unmarshal(respBody, &eb)
		}
		c.logger.Info().
			Int("status", resp.StatusCode).
			Str("message", eb.Message).
			Msg("Registration rejected")
		return nil, apperrors.NewRemoteError(resp.StatusCode, eb.Message)
	}

	receipt := &Receipt{StatusCode: resp.StatusCode}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, receipt); err != nil {
			c.logger.Debug().Err(err).Msg("Ignoring non-JSON success body")
		}
	}
	receipt.StatusCode = resp.StatusCode
	return receipt, nil
}
