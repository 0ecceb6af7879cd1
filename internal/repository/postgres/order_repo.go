package postgres

import (
	"context"
	"database/sql"
	"errors"

	"commerceregistrations/internal/domain"
)

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) domain.OrderRepository {
	return &orderRepository{
		DB: db,
	}
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, order_number, billing_profile_id, created_at
		FROM orders
		WHERE id = $1
	`
	order := &domain.Order{}
	var profileID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&order.ID, &order.OrderNumber, &profileID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if profileID.Valid {
		order.BillingProfileID = &profileID.Int64
	}

	items, err := r.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, variation_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		item := &domain.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariationID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepository) GetItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, variation_id, quantity
		FROM order_items
		WHERE id = $1
	`
	item := &domain.OrderItem{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.OrderID, &item.VariationID, &item.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *orderRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	query := `UPDATE order_items SET quantity = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, quantity, itemID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetBillingProfile(ctx context.Context, profileID int64) (*domain.Profile, error) {
	query := `
		SELECT id, organization, given_name, family_name
		FROM profiles
		WHERE id = $1
	`
	profile := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, query, profileID).
		Scan(&profile.ID, &profile.Organization, &profile.GivenName, &profile.FamilyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}
