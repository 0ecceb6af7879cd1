package domain

import "context"

// Product is a sellable product. A product may represent an event; whether it
// does is decided by the EventManager, not by the product itself.
type Product struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ProductVariation is the purchasable entity an order item references.
type ProductVariation struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	TypeID    string `json:"type_id"`
	SKU       string `json:"sku"`
	Title     string `json:"title"`
}

// VariationType describes a class of product variations.
type VariationType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProductRepository defines storage operations for products and variations.
type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetVariation(ctx context.Context, id int64) (*ProductVariation, error)
	GetVariationType(ctx context.Context, id string) (*VariationType, error)
}
