package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"commerceregistrations/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (type_id, event_product_id, order_item_id, registrant_qty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.TypeID, reg.EventID, reg.OrderItemID, reg.RegistrantQty).
		Scan(&reg.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23505 unique_violation: another writer registered this order item.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByOrderItemID(ctx context.Context, orderItemID int64) (*domain.Registration, error) {
	query := `
		SELECT id, type_id, event_product_id, order_item_id, registrant_qty
		FROM registrations
		WHERE order_item_id = $1
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, orderItemID).
		Scan(&reg.ID, &reg.TypeID, &reg.EventID, &reg.OrderItemID, &reg.RegistrantQty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByOrderItemIDs(ctx context.Context, orderItemIDs []int64) ([]*domain.Registration, error) {
	query := `
		SELECT id, type_id, event_product_id, order_item_id, registrant_qty
		FROM registrations
		WHERE order_item_id = ANY($1)
		ORDER BY id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(orderItemIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.TypeID, &reg.EventID, &reg.OrderItemID, &reg.RegistrantQty); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (r *registrationRepository) UpdateRegistrantQty(ctx context.Context, registrationID int64, qty int) error {
	query := `UPDATE registrations SET registrant_qty = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, qty, registrationID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
