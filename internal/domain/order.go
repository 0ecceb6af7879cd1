package domain

import (
	"context"
	"time"
)

// Order represents a commerce order with its line items.
// swagger:model Order
type Order struct {
	ID               int64        `json:"id"`
	OrderNumber      string       `json:"order_number"`
	BillingProfileID *int64       `json:"billing_profile_id,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	Items            []*OrderItem `json:"items"`
}

// ItemIDs returns the ids of all order items, in order.
func (o *Order) ItemIDs() []int64 {
	ids := make([]int64, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// OrderItem is one line of an order, referencing the purchased product variation.
// swagger:model OrderItem
type OrderItem struct {
	ID          int64 `json:"id"`
	OrderID     int64 `json:"order_id"`
	VariationID int64 `json:"variation_id"`
	Quantity    int   `json:"quantity"`
}

// Profile holds the billing data attached to an order.
type Profile struct {
	ID           int64  `json:"id"`
	Organization string `json:"organization"`
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
}

// OrderRepository defines storage operations for orders and their items.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetItem(ctx context.Context, id int64) (*OrderItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	GetBillingProfile(ctx context.Context, profileID int64) (*Profile, error)
}
