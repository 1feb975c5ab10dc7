package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akgec/studentreg/internal/app/models"
	"github.com/akgec/studentreg/internal/app/models/dto"
	"github.com/akgec/studentreg/internal/app/services"
	"github.com/akgec/studentreg/internal/middleware"
	"github.com/akgec/studentreg/internal/pkg/validation"
)

// CookieConfig controls the form session cookie
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// FormController exposes a form session over HTTP
type FormController struct {
	sessions *services.SessionStore
	schema   *validation.Schema
	cookie   CookieConfig
	logger   zerolog.Logger
}

// NewFormController creates a new FormController
func NewFormController(sessions *services.SessionStore, schema *validation.Schema, cookie CookieConfig, logger zerolog.Logger) *FormController {
	if schema == nil {
		schema = models.RegistrationSchema
	}
	if cookie.Name == "" {
		cookie.Name = "form_session"
	}
	return &FormController{
		sessions: sessions,
		schema:   schema,
		cookie:   cookie,
		logger:   logger,
	}
}

// session resolves the caller's form session, starting one when needed
func (c *FormController) session(ctx *gin.Context) *services.SubmissionController {
	id, _ := ctx.Cookie(c.cookie.Name)
	newID, ctrl, created := c.sessions.GetOrCreate(id)
	if created {
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(c.cookie.Name, newID, int(c.cookie.MaxAge.Seconds()), "/", "", c.cookie.Secure, true)
		c.logger.Debug().Str("session", newID).Msg("Form session started")
	}
	return ctrl
}

// GetSchema returns the form fields
// @Summary Get form schema
// @Description Returns the ordered list of form fields with labels, control types and options
// @Tags form
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormSchemaResponse} "Form schema"
// @Router /form/schema [get]
func (c *FormController) GetSchema(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toSchemaResponse(c.schema), ""))
}

// GetForm returns the caller's form state
// @Summary Get form state
// @Tags form
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormStateResponse} "Form state"
// @Router /form [get]
func (c *FormController) GetForm(ctx *gin.Context) {
	ctrl := c.session(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toFormState(ctrl.Snapshot()), ""))
}

// UpdateFields applies changed fields and validates them
// @Summary Update form fields
// @Description Sets one or more fields as on change/blur and returns their validation errors
// @Tags form
// @Accept json
// @Produce json
// @Param request body dto.UpdateFieldsRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateFieldsResponse} "Fields updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown field or malformed body"
// @Failure 409 {object} dto.ErrorResponse "Submission in progress"
// @Router /form/fields [patch]
func (c *FormController) UpdateFields(ctx *gin.Context) {
	var req dto.UpdateFieldsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	ctrl := c.session(ctx)
	errs, err := ctrl.UpdateFields(req.Fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	state := toFormState(ctrl.Snapshot())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UpdateFieldsResponse{
		FieldErrors: errs,
		Form:        &state,
	}, ""))
}

// Validate checks a record without touching the caller's session
// @Summary Validate a record
// @Tags form
// @Accept json
// @Produce json
// @Param request body models.RegistrationRecord true "Candidate record"
// @Success 200 {object} dto.APIResponse{data=dto.ValidateResponse} "Validation result"
// @Failure 400 {object} dto.ErrorResponse "Malformed body"
// @Router /form/validate [post]
func (c *FormController) Validate(ctx *gin.Context) {
	var record models.RegistrationRecord
	if !middleware.BindJSON(ctx, &record) {
		return
	}

	errs := c.schema.Validate(record.Values())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ValidateResponse{
		Valid:       len(errs) == 0,
		FieldErrors: errs,
	}, ""))
}

// VerifyCaptcha receives the token emitted by the CAPTCHA widget
// @Summary Deliver CAPTCHA token
// @Tags form
// @Accept json
// @Produce json
// @Param request body dto.CaptchaRequest true "Widget token; empty when expired"
// @Success 200 {object} dto.APIResponse{data=dto.FormStateResponse} "Token recorded"
// @Failure 409 {object} dto.ErrorResponse "Submission in progress"
// @Router /form/captcha [post]
func (c *FormController) VerifyCaptcha(ctx *gin.Context) {
	var req dto.CaptchaRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	ctrl := c.session(ctx)
	if err := ctrl.VerifyCaptcha(req.Token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toFormState(ctrl.Snapshot()), ""))
}

// Submit posts the caller's form to the registration endpoint
// @Summary Submit the form
// @Tags form
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormStateResponse} "Registration accepted"
// @Failure 400 {object} dto.ErrorResponse "CAPTCHA token missing"
// @Failure 409 {object} dto.ErrorResponse "Submission in progress"
// @Failure 422 {object} dto.ErrorResponse "Field validation failed"
// @Failure 502 {object} dto.ErrorResponse "Registration endpoint rejected the record"
// @Router /form/submit [post]
func (c *FormController) Submit(ctx *gin.Context) {
	ctrl := c.session(ctx)
	if err := ctrl.Submit(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	snap := ctrl.Snapshot()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toFormState(snap), snap.Notice))
}

// Reset clears the caller's form
// @Summary Reset the form
// @Tags form
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormStateResponse} "Form cleared"
// @Failure 409 {object} dto.ErrorResponse "Submission in progress"
// @Router /form/reset [post]
func (c *FormController) Reset(ctx *gin.Context) {
	ctrl := c.session(ctx)
	if err := ctrl.Reset(); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toFormState(ctrl.Snapshot()), ""))
}

func toSchemaResponse(schema *validation.Schema) dto.FormSchemaResponse {
	fields := schema.Fields()
	out := dto.FormSchemaResponse{Fields: make([]dto.FieldSchemaResponse, 0, len(fields))}
	for _, f := range fields {
		fs := dto.FieldSchemaResponse{
			Name:        f.Name,
			Label:       f.Label,
			Type:        string(f.Kind),
			Placeholder: f.Placeholder,
			Options:     f.Options,
		}
		if f.Kind == validation.KindSelect && fs.Placeholder == "" {
			fs.Placeholder = "Select " + f.Label + "..."
		}
		for _, r := range f.Rules {
			fs.DependsOn = append(fs.DependsOn, r.Requires...)
		}
		out.Fields = append(out.Fields, fs)
	}
	return out
}

func toFormState(s services.Snapshot) dto.FormStateResponse {
	return dto.FormStateResponse{
		Record:        s.Record,
		FieldErrors:   s.FieldErrors,
		Status:        string(s.Status),
		Notice:        s.Notice,
		CaptchaReady:  s.HasCaptcha,
		CanSubmit:     s.Status != services.StatusSubmitting && s.HasCaptcha,
		LastSubmitted: s.LastSubmitted,
		UpdatedAt:     s.UpdatedAt,
	}
}
