package services

import (
	"context"
	"fmt"
	"log/slog"

	"commerceregistrations/internal/domain"
)

type notificationService struct {
	mailer       domain.Mailer
	renderer     domain.EmailTemplateRenderer
	registration domain.RegistrationService
	logger       *slog.Logger
	to           string
}

// NewNotificationService returns a NotificationService that mails a
// registration summary for an order to the given operator address.
// An empty address disables the notification.
func NewNotificationService(
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	registration domain.RegistrationService,
	logger *slog.Logger,
	to string,
) domain.NotificationService {
	return &notificationService{
		mailer:       mailer,
		renderer:     renderer,
		registration: registration,
		logger:       logger,
		to:           to,
	}
}

// SendRegistrationSummary sends the "registration_summary" template with the
// order's registrant lists.
func (s *notificationService) SendRegistrationSummary(ctx context.Context, order *domain.Order) error {
	if s.to == "" {
		return nil
	}

	lists, err := s.registration.RegistrantLists(ctx, order)
	if err != nil {
		return fmt.Errorf("build registrant lists: %w", err)
	}

	data := &domain.RegistrationSummaryEmailData{
		OrderNumber: order.OrderNumber,
	}
	// Keep the lists in order-item order for a stable email body.
	for _, item := range order.Items {
		if list, ok := lists[item.ID]; ok {
			data.Lists = append(data.Lists, list)
		}
	}

	subject, htmlBody, textBody, err := s.renderer.Render("registration_summary", data)
	if err != nil {
		return fmt.Errorf("render registration_summary template: %w", err)
	}
	if err := s.mailer.Send(s.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send registration summary: %w", err)
	}
	s.logger.Info("registration summary sent", "order", order.OrderNumber, "to", s.to)
	return nil
}
