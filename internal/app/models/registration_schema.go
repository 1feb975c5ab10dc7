package models

import (
	"strings"

	"github.com/akgec/studentreg/internal/pkg/validation"
)

// RegistrationSchema is the canonical rule set for the registration form.
// Gender accepts "Other" and the email must match name and student number.
var RegistrationSchema = validation.MustSchema(
	validation.Field{
		Name:        FieldName,
		Label:       "Name",
		Kind:        validation.KindText,
		Placeholder: "e.g. rohan (3-50 letters)",
		Rules: []validation.Rule{
			validation.Tag("required", "Name is required"),
			validation.Tag("min=3", "Min 3 characters"),
			validation.Tag("max=50", "Max 50 characters"),
			validation.Tag("lettersspaces", "Only letters and spaces allowed"),
		},
	},
	validation.Field{
		Name:        FieldStudentNumber,
		Label:       "Student Number",
		Kind:        validation.KindText,
		Placeholder: "e.g. 2412345 (7-9 digits, starts with 24)",
		Rules: []validation.Rule{
			validation.Tag("required", "Student number is required"),
			validation.Tag("digits", "Only digits allowed"),
			validation.Tag("startswith=24", "Must be 7-9 digits starting with 24"),
			validation.Tag("min=7", "Must be 7-9 digits starting with 24"),
			validation.Tag("max=9", "Must be 7-9 digits starting with 24"),
		},
	},
	validation.Field{
		Name:        FieldEmail,
		Label:       "College Email",
		Kind:        validation.KindEmail,
		Placeholder: "e.g. [name][studentnumber]@" + CollegeEmailDomain,
		Rules: []validation.Rule{
			validation.Tag("required", "College email is required"),
			validation.Requires("", FieldName, FieldStudentNumber),
			validation.Check(func(value string, values validation.Values) bool {
				expected := ExpectedEmail(values.Get(FieldName), values.Get(FieldStudentNumber))
				return strings.EqualFold(strings.TrimSpace(value), expected)
			}, "Must be [name]{"+FieldStudentNumber+"}@"+CollegeEmailDomain),
		},
	},
	validation.Field{
		Name:    FieldGender,
		Label:   "Gender",
		Kind:    validation.KindSelect,
		Options: Genders,
		Rules: []validation.Rule{
			validation.Tag("required", "Please select a gender"),
			validation.OneOf(Genders, "Please select a valid gender"),
		},
	},
	validation.Field{
		Name:    FieldBranch,
		Label:   "Branch",
		Kind:    validation.KindSelect,
		Options: Branches,
		Rules: []validation.Rule{
			validation.Tag("required", "Please select a branch"),
			validation.OneOf(Branches, "Please select a valid branch"),
		},
	},
	validation.Field{
		Name:        FieldPhone,
		Label:       "Phone Number",
		Kind:        validation.KindTel,
		Placeholder: "e.g. 9876543210 (10 digits, starts 6-9)",
		Rules: []validation.Rule{
			validation.Tag("required", "Phone number is required"),
			validation.Tag("mobile", "Must be a 10-digit Indian number (starting 6-9)"),
		},
	},
	validation.Field{
		Name:        FieldUnstopID,
		Label:       "Unstop ID",
		Kind:        validation.KindText,
		Placeholder: "e.g. learner123 (3+ letters, max 20 chars)",
		Rules: []validation.Rule{
			validation.Tag("required", "Unstop ID is required"),
			validation.Tag("max=20", "Max 20 characters"),
			validation.Tag("handle", "Start with 3+ letters, can contain numbers"),
		},
	},
	validation.Field{
		Name:    FieldResidence,
		Label:   "Residence",
		Kind:    validation.KindSelect,
		Options: Residences,
		Rules: []validation.Rule{
			validation.Tag("required", "Please select residence"),
			validation.OneOf(Residences, "Please select a valid residence"),
		},
	},
)

// Validate checks the record against RegistrationSchema and returns the
// failing fields mapped to their message.
func (r RegistrationRecord) Validate() map[string]string {
	return RegistrationSchema.Validate(r.Values())
}
