package services

import (
	"context"
	"errors"
	"testing"

	"commerceregistrations/internal/domain"
)

type denyAllEligibility struct{}

func (denyAllEligibility) Eligible(ctx context.Context, item *domain.OrderItem, event *domain.Product) (bool, error) {
	return false, nil
}

func newAvailabilityFixture(setup func(products *mockProductRepository, events *mockEventManager)) domain.AvailabilityChecker {
	products := &mockProductRepository{
		variations:     map[int64]*domain.ProductVariation{},
		products:       map[int64]*domain.Product{},
		variationTypes: map[string]*domain.VariationType{},
	}
	events := newMockEventManager()
	if setup != nil {
		setup(products, events)
	}
	regSvc := NewRegistrationService(events, newMockRegistrationRepository(), &mockRegistrantRepository{}, newMockOrderRepository(), products)
	return NewAvailabilityChecker(events, regSvc, nil)
}

func TestAvailabilityChecker_Applies(t *testing.T) {
	checker := newAvailabilityFixture(func(products *mockProductRepository, events *mockEventManager) {
		eventFixture(products, events, 1, 10, &domain.RegistrationType{ID: "standard"})
		products.variations[2] = &domain.ProductVariation{ID: 2, ProductID: 20}
		products.products[20] = &domain.Product{ID: 20, Title: "Mug"}
	})

	applies, err := checker.Applies(context.Background(), &domain.OrderItem{ID: 5, VariationID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !applies {
		t.Error("expected checker to apply to event item")
	}

	applies, err = checker.Applies(context.Background(), &domain.OrderItem{ID: 6, VariationID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applies {
		t.Error("expected checker not to apply to non-event item")
	}
}

func TestAvailabilityChecker_Check(t *testing.T) {
	tests := []struct {
		name  string
		setup func(products *mockProductRepository, events *mockEventManager)
		item  *domain.OrderItem
		want  bool
	}{
		{
			name: "non-event item is unavailable",
			setup: func(products *mockProductRepository, events *mockEventManager) {
				products.variations[2] = &domain.ProductVariation{ID: 2, ProductID: 20}
				products.products[20] = &domain.Product{ID: 20, Title: "Mug"}
			},
			item: &domain.OrderItem{ID: 6, VariationID: 2},
			want: false,
		},
		{
			name: "event without metadata is unavailable",
			setup: func(products *mockProductRepository, events *mockEventManager) {
				products.variations[1] = &domain.ProductVariation{ID: 1, ProductID: 10}
				products.products[10] = &domain.Product{ID: 10, Title: "Conference"}
				events.isEvent[10] = true
			},
			item: &domain.OrderItem{ID: 5, VariationID: 1},
			want: false,
		},
		{
			name: "closed registrations are unavailable",
			setup: func(products *mockProductRepository, events *mockEventManager) {
				eventFixture(products, events, 1, 10, &domain.RegistrationType{ID: "standard"})
				events.metas[10].AcceptingRegistrations = false
			},
			item: &domain.OrderItem{ID: 5, VariationID: 1},
			want: false,
		},
		{
			name: "no registration types is unavailable",
			setup: func(products *mockProductRepository, events *mockEventManager) {
				eventFixture(products, events, 1, 10)
			},
			item: &domain.OrderItem{ID: 5, VariationID: 1},
			want: false,
		},
		{
			name: "open event with one type is available",
			setup: func(products *mockProductRepository, events *mockEventManager) {
				eventFixture(products, events, 1, 10, &domain.RegistrationType{ID: "standard"})
			},
			item: &domain.OrderItem{ID: 5, VariationID: 1},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newAvailabilityFixture(tt.setup)
			got, err := checker.Check(context.Background(), tt.item)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected available=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestAvailabilityChecker_EligibilityPolicy(t *testing.T) {
	products := &mockProductRepository{
		variations:     map[int64]*domain.ProductVariation{},
		products:       map[int64]*domain.Product{},
		variationTypes: map[string]*domain.VariationType{},
	}
	events := newMockEventManager()
	eventFixture(products, events, 1, 10, &domain.RegistrationType{ID: "standard"})
	regSvc := NewRegistrationService(events, newMockRegistrationRepository(), &mockRegistrantRepository{}, newMockOrderRepository(), products)
	checker := NewAvailabilityChecker(events, regSvc, denyAllEligibility{})

	got, err := checker.Check(context.Background(), &domain.OrderItem{ID: 5, VariationID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("expected deny-all policy to make the item unavailable")
	}
}

func TestAvailabilityChecker_MetaError(t *testing.T) {
	products := &mockProductRepository{
		variations:     map[int64]*domain.ProductVariation{},
		products:       map[int64]*domain.Product{},
		variationTypes: map[string]*domain.VariationType{},
	}
	events := newMockEventManager()
	eventFixture(products, events, 1, 10, &domain.RegistrationType{ID: "standard"})
	regSvc := NewRegistrationService(events, newMockRegistrationRepository(), &mockRegistrantRepository{}, newMockOrderRepository(), products)
	checker := NewAvailabilityChecker(events, regSvc, nil)

	events.err = errors.New("db down")
	if _, err := checker.Check(context.Background(), &domain.OrderItem{ID: 5, VariationID: 1}); err == nil {
		t.Fatal("expected storage error to surface")
	}
}
