package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

func validRecord() RegistrationRecord {
	return RegistrationRecord{
		Name:          "rohan",
		StudentNumber: "2412345",
		Email:         "rohan2412345@akgec.ac.in",
		Gender:        "Male",
		Branch:        "CSE (AIML)",
		Phone:         "9123456789",
		UnstopID:      "learner123",
		Residence:     "Hosteller",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	assert.Empty(t, validRecord().Validate())

	r := validRecord()
	r.Name = "Rohan Kumar"
	r.Email = "ROHANKUMAR2412345@AKGEC.AC.IN"
	r.Gender = "other"
	r.Branch = "cse-(ds)"
	r.Residence = "day-scholar"
	assert.Empty(t, r.Validate())
}

func TestValidate_EmailCrossCheck(t *testing.T) {
	cases := map[string]bool{
		"rohan2412345@akgec.ac.in":   true,
		"Rohan2412345@AKGEC.ac.in":   true,
		"rohan2412346@akgec.ac.in":   false,
		"rohit2412345@akgec.ac.in":   false,
		"rohan2412345@gmail.com":     false,
		"xrohan2412345@akgec.ac.in":  false,
		"rohan2412345@akgec.ac.in.x": false,
	}
	for email, valid := range cases {
		r := validRecord()
		r.Email = email
		msg, ok := RegistrationSchema.ValidateField(r.Values(), FieldEmail)
		assert.Equal(t, valid, ok, email)
		if !valid {
			assert.Equal(t, "Must be [name]2412345@akgec.ac.in", msg, email)
		}
	}
}

func TestValidate_EmailNeedsDependencies(t *testing.T) {
	r := validRecord()
	r.StudentNumber = ""
	msg, ok := RegistrationSchema.ValidateField(r.Values(), FieldEmail)
	assert.False(t, ok)
	assert.Equal(t, "Please fill Student Number first", msg)

	r = validRecord()
	r.Name = "r1"
	msg, ok = RegistrationSchema.ValidateField(r.Values(), FieldEmail)
	assert.False(t, ok)
	assert.Equal(t, "Please fill Name first", msg)

	r = validRecord()
	r.Email = ""
	r.Name = ""
	msg, ok = RegistrationSchema.ValidateField(r.Values(), FieldEmail)
	assert.False(t, ok)
	assert.Equal(t, "College email is required", msg)
}

func TestValidate_StudentNumber(t *testing.T) {
	cases := []struct {
		number string
		valid  bool
	}{
		{"1234567", false},
		{"241234", false},
		{"2412345", true},
		{"241234567", true},
		{"2412345678", false},
		{"24123a5", false},
	}
	for _, tc := range cases {
		r := validRecord()
		r.StudentNumber = tc.number
		_, ok := RegistrationSchema.ValidateField(r.Values(), FieldStudentNumber)
		assert.Equal(t, tc.valid, ok, tc.number)
	}
}

func TestValidate_Phone(t *testing.T) {
	r := validRecord()
	r.Phone = "5123456789"
	msg, ok := RegistrationSchema.ValidateField(r.Values(), FieldPhone)
	assert.False(t, ok)
	assert.Equal(t, "Must be a 10-digit Indian number (starting 6-9)", msg)

	r.Phone = "9123456789"
	_, ok = RegistrationSchema.ValidateField(r.Values(), FieldPhone)
	assert.True(t, ok)

	r.Phone = "912345678"
	_, ok = RegistrationSchema.ValidateField(r.Values(), FieldPhone)
	assert.False(t, ok)
}

func TestValidate_NameAndUnstopID(t *testing.T) {
	r := validRecord()
	r.Name = "ro"
	msg, _ := RegistrationSchema.ValidateField(r.Values(), FieldName)
	assert.Equal(t, "Min 3 characters", msg)

	r.Name = "rohan_k"
	msg, _ = RegistrationSchema.ValidateField(r.Values(), FieldName)
	assert.Equal(t, "Only letters and spaces allowed", msg)

	r.UnstopID = "learner1234567890abcd"
	msg, _ = RegistrationSchema.ValidateField(r.Values(), FieldUnstopID)
	assert.Equal(t, "Max 20 characters", msg)

	r.UnstopID = "ab123"
	msg, _ = RegistrationSchema.ValidateField(r.Values(), FieldUnstopID)
	assert.Equal(t, "Start with 3+ letters, can contain numbers", msg)

	r.UnstopID = "abc1d2"
	msg, _ = RegistrationSchema.ValidateField(r.Values(), FieldUnstopID)
	assert.Equal(t, "Start with 3+ letters, can contain numbers", msg)

	r.UnstopID = "learner"
	_, ok := RegistrationSchema.ValidateField(r.Values(), FieldUnstopID)
	assert.True(t, ok)
}

func TestValidate_WhitespaceName(t *testing.T) {
	r := validRecord()
	r.Name = "   "
	r.Email = "2412345@akgec.ac.in"
	errs := r.Validate()
	assert.Equal(t, "Name is required", errs[FieldName])
	assert.NotEmpty(t, errs[FieldEmail])

	r = validRecord()
	r.Name = " rohan "
	assert.Empty(t, r.Validate())

	// Validation sees the same value Set would store
	stored := validRecord()
	require.NoError(t, stored.Set(FieldName, " rohan "))
	assert.Equal(t, "rohan", stored.Name)
	assert.Equal(t, stored.Values(), r.Values())

	r = validRecord()
	r.Name = "rohan  kumar"
	msg, _ := RegistrationSchema.ValidateField(r.Values(), FieldName)
	assert.Equal(t, "Only letters and spaces allowed", msg)
}

func TestValidate_Enums(t *testing.T) {
	r := validRecord()
	r.Branch = "Biotech"
	r.Gender = ""
	errs := r.Validate()
	assert.Equal(t, map[string]string{
		FieldBranch: "Please select a valid branch",
		FieldGender: "Please select a gender",
	}, errs)
	assert.Len(t, Branches, 12)
}

func TestRecord_SetAndNormalize(t *testing.T) {
	var r RegistrationRecord
	assert.True(t, r.IsZero())

	require.NoError(t, r.Set(FieldName, "  rohan "))
	require.NoError(t, r.Set(FieldResidence, "day-scholar"))
	require.NoError(t, r.Set(FieldEmail, "Rohan2412345@AKGEC.ac.in"))
	assert.Equal(t, "rohan", r.Name)
	assert.False(t, r.IsZero())

	n := r.Normalized()
	assert.Equal(t, "Day Scholar", n.Residence)
	assert.Equal(t, "rohan2412345@akgec.ac.in", n.Email)

	err := r.Set("age", "20")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownField))
}

func TestExpectedEmail(t *testing.T) {
	assert.Equal(t, "rohan2412345@akgec.ac.in", ExpectedEmail("rohan", "2412345"))
	assert.Equal(t, "rohankumar2412345@akgec.ac.in", ExpectedEmail("Rohan  Kumar", "2412345"))
}
