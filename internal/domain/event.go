package domain

import (
	"context"
	"fmt"
)

// RegistrationType is a configured category governing how registrations for
// an event behave. Events supported by this module have exactly one.
type RegistrationType struct {
	ID             string `json:"id"`
	EventProductID int64  `json:"event_product_id"`
	Label          string `json:"label"`
}

// EventMeta is a snapshot of an event's registration settings.
type EventMeta struct {
	ProductID               int64
	AcceptingRegistrations  bool
	RegistrationTypeIDs     []string
}

// EventManager decides which products are events and exposes their
// registration settings. It is the boundary to the event subsystem.
type EventManager interface {
	// IsEvent reports whether the product is configured as an event.
	IsEvent(ctx context.Context, productID int64) (bool, error)
	// Meta returns the event settings for the product, or ErrNotFound if the
	// product is not an event.
	Meta(ctx context.Context, productID int64) (*EventMeta, error)
	// RegistrationTypes returns the registration types configured for the event.
	RegistrationTypes(ctx context.Context, productID int64) ([]*RegistrationType, error)
	// RegistrationType loads a single registration type by id.
	RegistrationType(ctx context.Context, id string) (*RegistrationType, error)
}

// ConfigurationError indicates an event whose registration-type configuration
// cannot be handled: registrations require exactly one configured type.
// It is a content mistake, not a transient condition; callers should surface
// it to an operator rather than retry.
type ConfigurationError struct {
	EventID   int64
	TypeCount int
}

func (e *ConfigurationError) Error() string {
	if e.TypeCount == 0 {
		return fmt.Sprintf("event %d has no registration types", e.EventID)
	}
	return fmt.Sprintf("event %d has %d registration types, only one is supported", e.EventID, e.TypeCount)
}
