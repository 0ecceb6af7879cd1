package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationSummaryEmailData holds data for the registration summary email
// sent after registrations have been generated for an order.
type RegistrationSummaryEmailData struct {
	OrderNumber string
	Lists       []*RegistrantList
}

// NotificationService sends operator-facing notifications about registrations.
type NotificationService interface {
	SendRegistrationSummary(ctx context.Context, order *Order) error
}
