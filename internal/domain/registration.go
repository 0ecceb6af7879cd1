package domain

import (
	"context"
	"time"
)

// Registration ties one order item to one event and owns a set of
// registrants. At most one registration exists per order item; the storage
// layer enforces this with a unique constraint on the order item reference.
// swagger:model Registration
type Registration struct {
	ID            int64         `json:"id"`
	TypeID        string        `json:"type_id"`
	EventID       int64         `json:"event_id"`
	OrderItemID   int64         `json:"order_item_id"`
	RegistrantQty int           `json:"registrant_qty"`
	Registrants   []*Registrant `json:"registrants,omitempty"`
}

// NewRegistration returns a registration for the given event, order item and
// registration type. ID is set by the repository on create.
func NewRegistration(typeID string, eventID, orderItemID int64) *Registration {
	return &Registration{
		TypeID:      typeID,
		EventID:     eventID,
		OrderItemID: orderItemID,
	}
}

// Registrant is one person/seat within a registration. A registrant with
// ID == 0 is a stub: a placeholder row that has not been persisted yet.
// swagger:model Registrant
type Registrant struct {
	ID             int64     `json:"id"`
	RegistrationID int64     `json:"registration_id"`
	IdentityID     *int64    `json:"identity_id,omitempty"`
	Identity       *Identity `json:"identity,omitempty"`
	Label          string    `json:"label"`
}

// IsStub reports whether the registrant is a placeholder without an assigned id.
func (r *Registrant) IsStub() bool {
	return r.ID == 0
}

// DisplayLabel prefers the linked identity's label over the registrant's own.
func (r *Registrant) DisplayLabel() string {
	if r.Identity != nil {
		return r.Identity.Label
	}
	return r.Label
}

// Identity is a person or organization a registrant can be linked to.
type Identity struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// RegistrantList is the per-order-item view model of registrant display labels.
// swagger:model RegistrantList
type RegistrantList struct {
	OrderItemID int64    `json:"order_item_id"`
	Title       string   `json:"title"`
	Items       []string `json:"items"`
}

// ExportRow is one flattened report record per registrant.
// swagger:model ExportRow
type ExportRow struct {
	OrderID                   string    `json:"order_id"`
	OrderDate                 time.Time `json:"order_date"`
	ConferenceID              int64     `json:"conference_id"`
	ConferenceName            string    `json:"conference_name"`
	RegistrationID            int64     `json:"registration_id"`
	RegistrationType          string    `json:"registration_type"`
	OrderItemID               int64     `json:"order_item_id"`
	ProductVariationID        int64     `json:"product_variation_id"`
	ProductVariationTitle     string    `json:"product_variation_title"`
	ProductVariationType      string    `json:"product_variation_type"`
	ProductVariationTypeTitle string    `json:"product_variation_type_title"`
	RegistrantCompany         string    `json:"registrant_company"`
	RegistrantID              int64     `json:"registrant_id"`
	RegistrantIdentityID      int64     `json:"registrant_identity_id"`
	RegistrantIdentityType    string    `json:"registrant_identity_type"`
	RegistrantLabel           string    `json:"registrant_label"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create persists the registration and sets its ID. Returns ErrConflict
	// if a registration already exists for the same order item.
	Create(ctx context.Context, reg *Registration) error
	GetByOrderItemID(ctx context.Context, orderItemID int64) (*Registration, error)
	// ListByOrderItemIDs returns registrations referencing any of the given
	// order items, newest (highest id) first.
	ListByOrderItemIDs(ctx context.Context, orderItemIDs []int64) ([]*Registration, error)
	UpdateRegistrantQty(ctx context.Context, registrationID int64, qty int) error
}

// RegistrantRepository defines storage operations for registrants.
type RegistrantRepository interface {
	Create(ctx context.Context, registrant *Registrant) error
	// ListByRegistrationID returns the persisted registrants of a
	// registration with their identities resolved.
	ListByRegistrationID(ctx context.Context, registrationID int64) ([]*Registrant, error)
}

// RegistrationService reconciles orders with their registrations.
type RegistrationService interface {
	// OrderItemEvent resolves the order item's purchased variation to its
	// product and returns the product only if it is an event. Returns
	// (nil, nil) for items that do not resolve to an event.
	OrderItemEvent(ctx context.Context, item *OrderItem) (*Product, error)
	// GenerateOrderRegistrations creates a registration for every order item
	// that resolves to an event and does not have one yet. Idempotent.
	// Returns a *ConfigurationError when an event has zero or more than one
	// registration type; items after the failing one are left unprocessed.
	GenerateOrderRegistrations(ctx context.Context, order *Order) error
	RegistrationByOrderItemID(ctx context.Context, orderItemID int64) (*Registration, error)
	// OrderRegistrations returns all registrations belonging to the order's
	// items, newest first. An order without items yields an empty slice.
	OrderRegistrations(ctx context.Context, order *Order) ([]*Registration, error)
	// RegistrationOrderItem returns the order item a registration points at.
	RegistrationOrderItem(ctx context.Context, reg *Registration) (*OrderItem, error)
	// OrderItemUpdateQuantity derives the order item quantity from the number
	// of non-stub registrants and keeps the registration's registrant qty in
	// sync. The passed item is mutated and its row updated.
	OrderItemUpdateQuantity(ctx context.Context, item *OrderItem) error
	// RegistrantLists builds display label lists keyed by order item id.
	RegistrantLists(ctx context.Context, order *Order) (map[int64]*RegistrantList, error)
	// ExportRegistrationData flattens registrations into one report row per
	// registrant, keyed by registrant id.
	ExportRegistrationData(ctx context.Context, regs []*Registration) (map[int64]*ExportRow, error)
}
