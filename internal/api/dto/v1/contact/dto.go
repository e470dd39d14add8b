package contact

import "github.com/osa911/portfolio-contact/internal/models"

// ContactRequest represents a contact form submission. Field rules are
// enforced by the service layer so every store backend sees the same checks.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ToSubmission converts the request into the domain input
func (r *ContactRequest) ToSubmission() models.Submission {
	return models.Submission{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}
