package routes

import (
	"github.com/osa911/portfolio-contact/internal/api/handlers"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health   *handlers.HealthHandler
	Contact  *handlers.ContactHandler
	Messages *handlers.MessagesHandler
	SMTP     *handlers.SMTPHandler
}
