package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Words of letters separated by single spaces
	LettersSpacesPattern = `^[A-Za-z]+( [A-Za-z]+)*$`

	// Plain decimal digits, no sign or fraction
	DigitsPattern = `^[0-9]+$`

	// Indian mobile number - 10 digits starting 6-9
	MobilePattern = `^[6-9][0-9]{9}$`

	// Handle: at least 3 letters, then optional trailing digits
	HandlePattern = `^[A-Za-z]{3,}[0-9]*$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	LettersSpaces *regexp.Regexp
	Digits        *regexp.Regexp
	Mobile        *regexp.Regexp
	Handle        *regexp.Regexp
}{
	LettersSpaces: regexp.MustCompile(LettersSpacesPattern),
	Digits:        regexp.MustCompile(DigitsPattern),
	Mobile:        regexp.MustCompile(MobilePattern),
	Handle:        regexp.MustCompile(HandlePattern),
}

var validate = newValidator()

// newValidator builds the shared validator with the pattern tags registered.
func newValidator() *validator.Validate {
	v := validator.New()
	patterns := map[string]*regexp.Regexp{
		"lettersspaces": CompiledPatterns.LettersSpaces,
		"digits":        CompiledPatterns.Digits,
		"mobile":        CompiledPatterns.Mobile,
		"handle":        CompiledPatterns.Handle,
	}
	for tag, re := range patterns {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return v
}

// Values is a candidate record keyed by field name. Missing keys read as empty.
type Values map[string]string

// Get returns the value of a field, or "" when it is absent.
func (v Values) Get(field string) string {
	if v == nil {
		return ""
	}
	return v[field]
}

// Rule is a single constraint on a field. Exactly one of Tag, Check or
// Requires is set.
type Rule struct {
	// Tag is a validator/v10 tag evaluated against the field value (e.g. "min=3").
	Tag string
	// Check is an arbitrary predicate that may look at other fields.
	Check func(value string, values Values) bool
	// Requires lists fields that must be present and valid before the
	// remaining rules are evaluated.
	Requires []string
	// Message is reported when the rule fails. "{field}" placeholders are
	// replaced with the current value of that field.
	Message string
}

// Tag creates a rule backed by a validator tag.
func Tag(tag, message string) Rule {
	return Rule{Tag: tag, Message: message}
}

// Check creates a rule backed by a predicate.
func Check(fn func(value string, values Values) bool, message string) Rule {
	return Rule{Check: fn, Message: message}
}

// Requires creates a dependency gate. Its message is derived from the label of
// the first dependency that is missing or invalid, unless message is non-empty.
func Requires(message string, fields ...string) Rule {
	return Rule{Requires: fields, Message: message}
}

// OneOf creates a rule that accepts any option by label or slug.
func OneOf(options []string, message string) Rule {
	return Check(func(value string, _ Values) bool {
		_, ok := MatchOption(options, value)
		return ok
	}, message)
}

// MatchOption resolves value against options. A value matches an option when it
// equals the option case-insensitively or equals its slug (see Slug). The
// canonical option label is returned.
func MatchOption(options []string, value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(opt, v) || Slug(opt) == strings.ToLower(v) {
			return opt, true
		}
	}
	return "", false
}

// Slug lower-cases s and joins whitespace runs with "-".
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// passes reports whether the rule's own constraint holds. Dependency gates are
// handled by the schema.
func (r Rule) passes(value string, values Values) bool {
	switch {
	case r.Check != nil:
		return r.Check(value, values)
	case r.Tag != "":
		return validate.Var(value, r.Tag) == nil
	default:
		return true
	}
}

// message expands {field} placeholders in the rule message.
func (r Rule) message(values Values) string {
	if !strings.Contains(r.Message, "{") {
		return r.Message
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(r.Message)
}
