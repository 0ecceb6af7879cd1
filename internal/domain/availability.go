package domain

import "context"

// AvailabilityChecker gates whether an order item can currently be purchased.
// It is consumed by the order-validation pipeline; a false from Check means
// "this item cannot be purchased right now", not an error.
type AvailabilityChecker interface {
	// Applies reports whether this checker has an opinion on the order item,
	// i.e. whether the item resolves to an event product.
	Applies(ctx context.Context, item *OrderItem) (bool, error)
	// Check reports whether the event behind the order item currently
	// accepts registrations. Must be cheap and must not mutate state.
	Check(ctx context.Context, item *OrderItem) (bool, error)
}

// EligibilityPolicy decides whether the current purchase context may register
// for the event. The default policy allows everyone; deployments can plug in
// their own rules.
type EligibilityPolicy interface {
	Eligible(ctx context.Context, item *OrderItem, event *Product) (bool, error)
}

// AllowAllEligibility is the default EligibilityPolicy: everyone is eligible.
type AllowAllEligibility struct{}

func (AllowAllEligibility) Eligible(ctx context.Context, item *OrderItem, event *Product) (bool, error) {
	return true, nil
}
