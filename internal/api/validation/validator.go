package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/osa911/portfolio-contact/internal/models"
)

// Whitespace here is the browser's set: ASCII blanks, every Unicode separator and the BOM.
var emailRegex = regexp.MustCompile(`^[^\t\n\v\f\r\p{Z}\x{FEFF}@]+@[^\t\n\v\f\r\p{Z}\x{FEFF}@]+\.[^\t\n\v\f\r\p{Z}\x{FEFF}@]+$`)

// Kind identifies why a submission was rejected
type Kind string

const (
	MissingFields Kind = "missing_fields"
	InvalidEmail  Kind = "invalid_email"
)

// ValidationError is returned for client-caused input problems
type ValidationError struct {
	Kind   Kind
	Fields []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidEmail:
		return "Invalid email address."
	default:
		return "All fields are required."
	}
}

// IsValidationError reports whether err is a *ValidationError and returns it
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validator checks contact submissions
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterValidators(v)
	return &Validator{validate: v}
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contactemail", validateContactEmail)
}

// validateContactEmail checks the basic local@domain.tld shape
func validateContactEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// IsValidEmail checks the basic local@domain.tld shape after trimming
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(trimSpace(email))
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// Normalize trims every field of the submission
func Normalize(in models.Submission) models.Submission {
	return models.Submission{
		Name:    trimSpace(in.Name),
		Email:   trimSpace(in.Email),
		Subject: trimSpace(in.Subject),
		Message: trimSpace(in.Message),
	}
}

// ValidateSubmission trims the submission and checks it.
// Missing fields take precedence over a malformed email.
func (v *Validator) ValidateSubmission(in models.Submission) (models.Submission, error) {
	s := Normalize(in)

	err := v.validate.Struct(s)
	if err == nil {
		return s, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return s, err
	}

	var missing, malformed []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			malformed = append(malformed, fe.Field())
		}
	}

	if len(missing) > 0 {
		return s, &ValidationError{Kind: MissingFields, Fields: missing}
	}
	return s, &ValidationError{Kind: InvalidEmail, Fields: malformed}
}
