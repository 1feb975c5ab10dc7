package models

import (
	"strings"

	"github.com/akgec/studentreg/internal/pkg/apperrors"
	"github.com/akgec/studentreg/internal/pkg/validation"
)

// Form field names, as they appear in JSON and in field error maps.
const (
	FieldName          = "name"
	FieldStudentNumber = "studentNumber"
	FieldEmail         = "email"
	FieldGender        = "gender"
	FieldBranch        = "branch"
	FieldPhone         = "phone"
	FieldUnstopID      = "unstopId"
	FieldResidence     = "residence"
)

// CollegeEmailDomain is the domain every student email must use.
const CollegeEmailDomain = "akgec.ac.in"

// Genders lists the accepted gender values.
var Genders = []string{"Male", "Female", "Other"}

// Branches lists the accepted branches.
var Branches = []string{
	"CSE", "CSE (AIML)", "CSE (DS)", "AIML", "CS", "CS (H)",
	"IT", "CSIT", "ECE", "EEE", "Civil", "Mechanical",
}

// Residences lists the accepted residence types.
var Residences = []string{"Day Scholar", "Hosteller"}

// RegistrationRecord is the student registration form.
type RegistrationRecord struct {
	Name          string `json:"name" example:"rohan"`
	StudentNumber string `json:"studentNumber" example:"2412345"`
	Email         string `json:"email" example:"rohan2412345@akgec.ac.in"`
	Gender        string `json:"gender" example:"Male"`
	Branch        string `json:"branch" example:"CSE"`
	Phone         string `json:"phone" example:"9876543210"`
	UnstopID      string `json:"unstopId" example:"learner123"`
	Residence     string `json:"residence" example:"Hosteller"`
}

// Values exposes the record to the validation schema, trimmed as Set would store it.
func (r RegistrationRecord) Values() validation.Values {
	return validation.Values{
		FieldName:          strings.TrimSpace(r.Name),
		FieldStudentNumber: strings.TrimSpace(r.StudentNumber),
		FieldEmail:         strings.TrimSpace(r.Email),
		FieldGender:        strings.TrimSpace(r.Gender),
		FieldBranch:        strings.TrimSpace(r.Branch),
		FieldPhone:         strings.TrimSpace(r.Phone),
		FieldUnstopID:      strings.TrimSpace(r.UnstopID),
		FieldResidence:     strings.TrimSpace(r.Residence),
	}
}

// Set assigns a field by its form name. Values are trimmed.
func (r *RegistrationRecord) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case FieldName:
		r.Name = value
	case FieldStudentNumber:
		r.StudentNumber = value
	case FieldEmail:
		r.Email = value
	case FieldGender:
		r.Gender = value
	case FieldBranch:
		r.Branch = value
	case FieldPhone:
		r.Phone = value
	case FieldUnstopID:
		r.UnstopID = value
	case FieldResidence:
		r.Residence = value
	default:
		return apperrors.NewCustomError(apperrors.ErrUnknownField, "Unknown field: "+field).
			WithDetails(map[string]interface{}{"field": field})
	}
	return nil
}

// IsZero reports whether no field has been filled.
func (r RegistrationRecord) IsZero() bool {
	return r == RegistrationRecord{}
}

// Normalized returns a copy with whitespace trimmed, the email lower-cased and
// enum fields mapped to their display label.
func (r RegistrationRecord) Normalized() RegistrationRecord {
	out := RegistrationRecord{
		Name:          strings.TrimSpace(r.Name),
		StudentNumber: strings.TrimSpace(r.StudentNumber),
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
		Gender:        strings.TrimSpace(r.Gender),
		Branch:        strings.TrimSpace(r.Branch),
		Phone:         strings.TrimSpace(r.Phone),
		UnstopID:      strings.TrimSpace(r.UnstopID),
		Residence:     strings.TrimSpace(r.Residence),
	}
	if v, ok := validation.MatchOption(Genders, out.Gender); ok {
		out.Gender = v
	}
	if v, ok := validation.MatchOption(Branches, out.Branch); ok {
		out.Branch = v
	}
	if v, ok := validation.MatchOption(Residences, out.Residence); ok {
		out.Residence = v
	}
	return out
}

// NamePrefix is the local-part prefix derived from a name: lower-cased with
// all whitespace removed.
func NamePrefix(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// ExpectedEmail derives the college email for a name and student number.
func ExpectedEmail(name, studentNumber string) string {
	return NamePrefix(name) + strings.TrimSpace(studentNumber) + "@" + CollegeEmailDomain
}
