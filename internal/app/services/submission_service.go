package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/akgec/studentreg/internal/app/models"
	"github.com/akgec/studentreg/internal/app/registrar"
	"github.com/akgec/studentreg/internal/pkg/apperrors"
	"github.com/akgec/studentreg/internal/pkg/validation"
)

// Status is the submission state of a form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// User-visible notices.
const (
	NoticeSuccess         = "Form submitted. A confirmation mail has been sent!"
	NoticeCaptchaRequired = "Please complete the CAPTCHA verification."
	NoticeFallback        = "Failed to register. Please try again later."
)

// DefaultDisplayTimeout is how long a success or error notice stays visible.
const DefaultDisplayTimeout = 4 * time.Second

// Registrar submits a validated record to the remote registration API.
type Registrar interface {
	Register(ctx context.Context, record models.RegistrationRecord, captchaToken string) (*registrar.Receipt, error)
}

// CaptchaWidget is the verification widget the form is gated on.
type CaptchaWidget interface {
	Verify(token string)
	Token() string
	Reset()
}

// SubmissionConfig configures a SubmissionController.
type SubmissionConfig struct {
	Schema         *validation.Schema
	DisplayTimeout time.Duration
	Logger         zerolog.Logger
}

// Snapshot is a point-in-time copy of a form's state.
type Snapshot struct {
	Record        models.RegistrationRecord
	FieldErrors   map[string]string
	Status        Status
	Notice        string
	HasCaptcha    bool
	LastSubmitted *models.RegistrationRecord
	UpdatedAt     time.Time
}

// SubmissionController owns one form record and its submission lifecycle:
// idle -> submitting -> success|error -> idle.
type SubmissionController struct {
	mu sync.Mutex

	schema         *validation.Schema
	registrar      Registrar
	captcha        CaptchaWidget
	displayTimeout time.Duration
	logger         zerolog.Logger

	record        models.RegistrationRecord
	touched       map[string]bool
	fieldErrors   map[string]string
	status        Status
	notice        string
	lastSubmitted *models.RegistrationRecord
	updatedAt     time.Time

	timer      *time.Timer
	generation uint64
	closed     bool
}

// NewSubmissionController creates an idle controller with an empty record.
func NewSubmissionController(cfg SubmissionConfig, reg Registrar, widget CaptchaWidget) *SubmissionController {
	if cfg.Schema == nil {
		cfg.Schema = models.RegistrationSchema
	}
	if cfg.DisplayTimeout <= 0 {
		cfg.DisplayTimeout = DefaultDisplayTimeout
	}
	return &SubmissionController{
		schema:         cfg.Schema,
		registrar:      reg,
		captcha:        widget,
		displayTimeout: cfg.DisplayTimeout,
		logger:         cfg.Logger,
		touched:        make(map[string]bool),
		fieldErrors:    make(map[string]string),
		status:         StatusIdle,
		updatedAt:      time.Now(),
	}
}

// UpdateField sets one field, as on change or blur, and returns its error
// message ("" when valid). Fields that depend on it and were already touched
// are re-validated too. Any visible notice is dismissed.
func (c *SubmissionController) UpdateField(name, value string) (string, error) {
	errs, err := c.UpdateFields(map[string]string{name: value})
	if err != nil {
		return "", err
	}
	return errs[name], nil
}

// UpdateFields sets several fields at once and returns the error messages of
// the updated fields. Unknown fields reject the whole update.
func (c *SubmissionController) UpdateFields(fields map[string]string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting {
		return nil, apperrors.ErrSubmissionInProgress
	}
	for name := range fields {
		if !c.schema.Has(name) {
			return nil, apperrors.NewCustomError(apperrors.ErrUnknownField, "Unknown field: "+name).
				WithDetails(map[string]interface{}{"field": name})
		}
	}

	c.dismissLocked()

	next := c.record
	for name, value := range fields {
		if err := next.Set(name, value); err != nil {
			return nil, err
		}
	}
	c.record = next

	values := c.record.Values()
	result := make(map[string]string, len(fields))
	revalidate := make(map[string]bool)
	for name := range fields {
		c.touched[name] = true
		revalidate[name] = true
		for _, dep := range c.schema.Dependents(name) {
			if c.touched[dep] {
				revalidate[dep] = true
			}
		}
	}
	for name := range revalidate {
		msg, ok := c.schema.ValidateField(values, name)
		if ok {
			delete(c.fieldErrors, name)
		} else {
			c.fieldErrors[name] = msg
		}
		if _, updated := fields[name]; updated {
			result[name] = msg
		}
	}
	c.updatedAt = time.Now()
	return result, nil
}

// VerifyCaptcha forwards a token from the verification widget. An empty
// token marks the challenge as expired. Tokens are refused while a submission
// is in flight, since the widget is reset when it returns.
func (c *SubmissionController) VerifyCaptcha(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting {
		return apperrors.ErrSubmissionInProgress
	}
	c.captcha.Verify(token)
	c.dismissLocked()
	c.updatedAt = time.Now()
	return nil
}

// Submit validates the record and, if it is valid and a CAPTCHA token is
// present, posts it to the registration endpoint. Local failures make no
// network call. The request is not cancelled with ctx; once issued it runs
// until the HTTP client returns.
func (c *SubmissionController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return apperrors.ErrSubmissionInProgress
	}
	c.dismissLocked()

	errs := c.schema.Validate(c.record.Values())
	if len(errs) > 0 {
		c.fieldErrors = errs
		for name := range errs {
			c.touched[name] = true
		}
		c.updatedAt = time.Now()
		c.mu.Unlock()
		return apperrors.NewValidationError(errs)
	}

	token := c.captcha.Token()
	if token == "" {
		c.finishLocked(StatusError, NoticeCaptchaRequired)
		c.mu.Unlock()
		return apperrors.NewCustomError(apperrors.ErrCaptchaRequired, NoticeCaptchaRequired)
	}

	record := c.record.Normalized()
	c.fieldErrors = make(map[string]string)
	c.status = StatusSubmitting
	c.notice = ""
	c.updatedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info().Str("studentNumber", record.StudentNumber).Msg("Submitting registration")
	_, err := c.registrar.Register(context.WithoutCancel(ctx), record, token)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.captcha.Reset()
	if err != nil {
		notice := NoticeFallback
		if msg, ok := apperrors.StatusMessage(err); ok {
			notice = msg
		}
		c.logger.Warn().Err(err).Str("notice", notice).Msg("Registration failed")
		c.finishLocked(StatusError, notice)
		if errors.Is(err, apperrors.ErrRegistrationFailed) {
			return apperrors.NewCustomError(err, notice)
		}
		return apperrors.NewCustomError(apperrors.ErrRegistrationFailed, notice)
	}

	c.logger.Info().Str("studentNumber", record.StudentNumber).Msg("Registration accepted")
	c.lastSubmitted = &record
	c.record = models.RegistrationRecord{}
	c.touched = make(map[string]bool)
	c.finishLocked(StatusSuccess, NoticeSuccess)
	return nil
}

// Reset clears the record, field errors and CAPTCHA token.
func (c *SubmissionController) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting {
		return apperrors.ErrSubmissionInProgress
	}
	c.dismissLocked()
	c.record = models.RegistrationRecord{}
	c.touched = make(map[string]bool)
	c.fieldErrors = make(map[string]string)
	c.captcha.Reset()
	c.updatedAt = time.Now()
	return nil
}

// Snapshot returns a copy of the current state.
func (c *SubmissionController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		errs[k] = v
	}
	var last *models.RegistrationRecord
	if c.lastSubmitted != nil {
		r := *c.lastSubmitted
		last = &r
	}
	return Snapshot{
		Record:        c.record,
		FieldErrors:   errs,
		Status:        c.status,
		Notice:        c.notice,
		HasCaptcha:    c.captcha.Token() != "",
		LastSubmitted: last,
		UpdatedAt:     c.updatedAt,
	}
}

// Status returns the current submission status.
func (c *SubmissionController) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Close stops the pending display timer. The controller remains usable but
// notices no longer expire on their own.
func (c *SubmissionController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimerLocked()
}

// finishLocked enters a terminal notice state and schedules the return to idle.
func (c *SubmissionController) finishLocked(status Status, notice string) {
	c.status = status
	c.notice = notice
	c.updatedAt = time.Now()
	c.stopTimerLocked()
	if c.closed {
		return
	}
	gen := c.generation
	c.timer = time.AfterFunc(c.displayTimeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			return
		}
		c.dismissLocked()
	})
}

// dismissLocked returns a success or error state to idle.
func (c *SubmissionController) dismissLocked() {
	if c.status != StatusSuccess && c.status != StatusError {
		return
	}
	c.stopTimerLocked()
	c.status = StatusIdle
	c.notice = ""
	c.updatedAt = time.Now()
}

func (c *SubmissionController) stopTimerLocked() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
