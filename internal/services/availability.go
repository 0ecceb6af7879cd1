package services

import (
	"context"
	"errors"
	"fmt"

	"commerceregistrations/internal/domain"
)

type availabilityChecker struct {
	events       domain.EventManager
	registration domain.RegistrationService
	eligibility  domain.EligibilityPolicy
}

// NewAvailabilityChecker creates the availability gate for event order items.
// A nil eligibility policy defaults to allowing everyone.
func NewAvailabilityChecker(
	events domain.EventManager,
	registration domain.RegistrationService,
	eligibility domain.EligibilityPolicy,
) domain.AvailabilityChecker {
	if eligibility == nil {
		eligibility = domain.AllowAllEligibility{}
	}
	return &availabilityChecker{
		events:       events,
		registration: registration,
		eligibility:  eligibility,
	}
}

func (c *availabilityChecker) Applies(ctx context.Context, item *domain.OrderItem) (bool, error) {
	product, err := c.registration.OrderItemEvent(ctx, item)
	if err != nil {
		return false, fmt.Errorf("resolve event: %w", err)
	}
	return product != nil, nil
}

func (c *availabilityChecker) Check(ctx context.Context, item *domain.OrderItem) (bool, error) {
	product, err := c.registration.OrderItemEvent(ctx, item)
	if err != nil {
		return false, fmt.Errorf("resolve event: %w", err)
	}
	if product == nil {
		return false, nil
	}

	meta, err := c.events.Meta(ctx, product.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// No metadata available.
			return false, nil
		}
		return false, fmt.Errorf("get event meta: %w", err)
	}

	if !meta.AcceptingRegistrations {
		return false, nil
	}
	if len(meta.RegistrationTypeIDs) == 0 {
		// No registration types.
		return false, nil
	}

	return c.eligibility.Eligible(ctx, item, product)
}
