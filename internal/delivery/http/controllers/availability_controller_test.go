package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"commerceregistrations/internal/domain"
)

type mockAvailabilityChecker struct {
	applies   bool
	available bool
	err       error
}

func (m *mockAvailabilityChecker) Applies(ctx context.Context, item *domain.OrderItem) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.applies, nil
}

func (m *mockAvailabilityChecker) Check(ctx context.Context, item *domain.OrderItem) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.available, nil
}

func TestAvailabilityController_Check(t *testing.T) {
	tests := []struct {
		name          string
		checker       *mockAvailabilityChecker
		wantApplies   bool
		wantAvailable bool
	}{
		{
			name:          "event item accepting registrations",
			checker:       &mockAvailabilityChecker{applies: true, available: true},
			wantApplies:   true,
			wantAvailable: true,
		},
		{
			name:          "event item closed for registrations",
			checker:       &mockAvailabilityChecker{applies: true, available: false},
			wantApplies:   true,
			wantAvailable: false,
		},
		{
			name:          "non-event item",
			checker:       &mockAvailabilityChecker{applies: false, available: true},
			wantApplies:   false,
			wantAvailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderStore{items: map[int64]*domain.OrderItem{
				21: {ID: 21, OrderID: 7, VariationID: 1, Quantity: 1},
			}}
			ctrl := NewAvailabilityController(testLogger(), tt.checker, orders)

			req := httptest.NewRequest(http.MethodGet, "/order-items/21/availability", nil)
			req.SetPathValue("orderItemID", "21")
			w := httptest.NewRecorder()

			ctrl.Check(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var resp struct {
				Data availabilityResponse `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Data.Applies != tt.wantApplies {
				t.Fatalf("expected applies=%v, got %v", tt.wantApplies, resp.Data.Applies)
			}
			if resp.Data.Available != tt.wantAvailable {
				t.Fatalf("expected available=%v, got %v", tt.wantAvailable, resp.Data.Available)
			}
		})
	}
}

func TestAvailabilityController_Check_ItemNotFound(t *testing.T) {
	orders := &mockOrderStore{items: map[int64]*domain.OrderItem{}}
	ctrl := NewAvailabilityController(testLogger(), &mockAvailabilityChecker{}, orders)

	req := httptest.NewRequest(http.MethodGet, "/order-items/99/availability", nil)
	req.SetPathValue("orderItemID", "99")
	w := httptest.NewRecorder()

	ctrl.Check(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestAvailabilityController_Check_CheckerError(t *testing.T) {
	orders := &mockOrderStore{items: map[int64]*domain.OrderItem{
		21: {ID: 21, OrderID: 7, VariationID: 1, Quantity: 1},
	}}
	checker := &mockAvailabilityChecker{err: errors.New("event lookup failed")}
	ctrl := NewAvailabilityController(testLogger(), checker, orders)

	req := httptest.NewRequest(http.MethodGet, "/order-items/21/availability", nil)
	req.SetPathValue("orderItemID", "21")
	w := httptest.NewRecorder()

	ctrl.Check(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
