package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"commerceregistrations/internal/domain"
)

type fakeMailer struct {
	to      string
	subject string
	sent    int
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.to = to
	f.subject = subject
	f.sent++
	return nil
}

type fakeRenderer struct {
	data any
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.data = data
	return "Registrations for order", "<p>ok</p>", "ok", nil
}

func TestNotificationService_SendRegistrationSummary(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	regRepo := newMockRegistrationRepository()
	regRepo.byOrderItem[5] = &domain.Registration{ID: 200, OrderItemID: 5}
	registrants := &mockRegistrantRepository{
		byRegistration: map[int64][]*domain.Registrant{
			200: {{ID: 1, Label: "Ada"}},
		},
	}
	regSvc := NewRegistrationService(newMockEventManager(), regRepo, registrants, newMockOrderRepository(), &mockProductRepository{})

	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewNotificationService(mailer, renderer, regSvc, logger, "ops@example.com")

	order := &domain.Order{ID: 1, OrderNumber: "ORD-7", Items: []*domain.OrderItem{{ID: 5}}}
	if err := svc.SendRegistrationSummary(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.sent != 1 || mailer.to != "ops@example.com" {
		t.Fatalf("expected one mail to ops@example.com, got %d to %q", mailer.sent, mailer.to)
	}
	data, ok := renderer.data.(*domain.RegistrationSummaryEmailData)
	if !ok {
		t.Fatalf("unexpected template data type %T", renderer.data)
	}
	if data.OrderNumber != "ORD-7" || len(data.Lists) != 1 || data.Lists[0].Items[0] != "Ada" {
		t.Errorf("unexpected template data: %+v", data)
	}
}

func TestNotificationService_DisabledWithoutAddress(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	regSvc := NewRegistrationService(newMockEventManager(), newMockRegistrationRepository(), &mockRegistrantRepository{}, newMockOrderRepository(), &mockProductRepository{})
	mailer := &fakeMailer{}
	svc := NewNotificationService(mailer, &fakeRenderer{}, regSvc, logger, "")

	if err := svc.SendRegistrationSummary(context.Background(), &domain.Order{ID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.sent != 0 {
		t.Errorf("expected no mail without a configured address, got %d", mailer.sent)
	}
}
