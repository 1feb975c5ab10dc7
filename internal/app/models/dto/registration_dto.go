package dto

import (
	"time"

	"github.com/akgec/studentreg/internal/app/models"
)

// FieldSchemaResponse describes one form field for rendering
type FieldSchemaResponse struct {
	Name        string   `json:"name" example:"branch"`
	Label       string   `json:"label" example:"Branch"`
	Type        string   `json:"type" example:"select" enums:"text,email,tel,select"`
	Placeholder string   `json:"placeholder,omitempty" example:"Select Branch..."`
	Options     []string `json:"options,omitempty"`
	DependsOn   []string `json:"dependsOn,omitempty"`
}

// FormSchemaResponse is the ordered list of form fields
type FormSchemaResponse struct {
	Fields []FieldSchemaResponse `json:"fields"`
}

// FormStateResponse is the state of the caller's form session
type FormStateResponse struct {
	Record        models.RegistrationRecord  `json:"record"`
	FieldErrors   map[string]string          `json:"fieldErrors"`
	Status        string                     `json:"status" example:"idle" enums:"idle,submitting,success,error"`
	Notice        string                     `json:"notice,omitempty" example:"Duplicate entry"`
	CaptchaReady  bool                       `json:"captchaReady"`
	CanSubmit     bool                       `json:"canSubmit"`
	LastSubmitted *models.RegistrationRecord `json:"lastSubmitted,omitempty"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// UpdateFieldsRequest carries one or more changed fields
type UpdateFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required,min=1"`
}

// UpdateFieldsResponse returns the errors of the updated fields; valid
// fields map to an empty string
type UpdateFieldsResponse struct {
	FieldErrors map[string]string  `json:"fieldErrors"`
	Form        *FormStateResponse `json:"form"`
}

// ValidateResponse is the result of validating a detached record
type ValidateResponse struct {
	Valid       bool              `json:"valid" example:"false"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

// CaptchaRequest delivers the token emitted by the verification widget.
// An empty token reports an expired challenge.
type CaptchaRequest struct {
	Token string `json:"token" example:"03AFcWeA..."`
}
