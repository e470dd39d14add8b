package validation

import (
	"testing"

	"github.com/osa911/portfolio-contact/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() models.Submission {
	return models.Submission{Name: "A", Email: "a@b.com", Subject: "S", Message: "M"}
}

func TestValidateSubmission_Valid(t *testing.T) {
	v := NewValidator()

	in := models.Submission{Name: "  Ada ", Email: " ada@example.com\n", Subject: "\tHi", Message: " Hello \n"}
	got, err := v.ValidateSubmission(in)

	require.NoError(t, err)
	assert.Equal(t, models.Submission{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}, got)
}

func TestValidateSubmission_MissingFields(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(*models.Submission)
		field  string
	}{
		{"no name", func(s *models.Submission) { s.Name = "" }, "Name"},
		{"blank email", func(s *models.Submission) { s.Email = "   " }, "Email"},
		{"no subject", func(s *models.Submission) { s.Subject = "" }, "Subject"},
		{"whitespace message", func(s *models.Submission) { s.Message = "\n\t " }, "Message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)

			_, err := v.ValidateSubmission(s)
			ve, ok := IsValidationError(err)
			require.True(t, ok, "expected ValidationError, got %v", err)
			assert.Equal(t, MissingFields, ve.Kind)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Equal(t, "All fields are required.", ve.Error())
		})
	}
}

func TestValidateSubmission_MissingTakesPrecedence(t *testing.T) {
	v := NewValidator()

	_, err := v.ValidateSubmission(models.Submission{Email: "not-an-email"})
	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, MissingFields, ve.Kind)
}

func TestValidateSubmission_UnicodeBlankIsMissing(t *testing.T) {
	v := NewValidator()

	for _, blank := range []string{"\ufeff", "\u00a0", "\u2003\u3000", " \u2028 "} {
		in := validSubmission()
		in.Name = blank

		out, err := v.ValidateSubmission(in)
		ve, ok := IsValidationError(err)
		require.True(t, ok, "name %q", blank)
		assert.Equal(t, MissingFields, ve.Kind)
		assert.Equal(t, []string{"Name"}, ve.Fields)
		assert.Empty(t, out.Name)
	}
}

func TestValidateSubmission_InvalidEmail(t *testing.T) {
	v := NewValidator()

	for _, email := range []string{"not-an-email", "a@b", "a b@c.com", "@b.com", "a@@b.com", "a@b.", "a@.com "} {
		t.Run(email, func(t *testing.T) {
			s := validSubmission()
			s.Email = email

			_, err := v.ValidateSubmission(s)
			ve, ok := IsValidationError(err)
			require.True(t, ok, "expected ValidationError for %q, got %v", email, err)
			assert.Equal(t, InvalidEmail, ve.Kind)
			assert.Equal(t, "Invalid email address.", ve.Error())
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"  padded@example.com  ", true},
		{"a@b", false},
		{"not-an-email", false},
		{"a@b c.com", false},
		{"", false},
		{"a\u00a0b@c.com", false},
		{"a\vb@c.com", false},
		{"a@b\u2003c.com", false},
		{"a@b.c\u00a0m", false},
		{"a@b.c\u2028m", false},
		{"a\ufeffb@c.com", false},
		{"\u00a0\ufeffa@b.com\u3000", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}
