// Package events implements the EventManager boundary on top of the
// event_settings and registration_types tables.
package events

import (
	"context"
	"database/sql"
	"errors"

	"commerceregistrations/internal/domain"
)

type manager struct {
	DB *sql.DB
}

// NewManager returns an EventManager backed by the given database.
func NewManager(db *sql.DB) domain.EventManager {
	return &manager{
		DB: db,
	}
}

func (m *manager) IsEvent(ctx context.Context, productID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM event_settings WHERE product_id = $1)`
	var isEvent bool
	if err := m.DB.QueryRowContext(ctx, query, productID).Scan(&isEvent); err != nil {
		return false, err
	}
	return isEvent, nil
}

func (m *manager) Meta(ctx context.Context, productID int64) (*domain.EventMeta, error) {
	query := `
		SELECT product_id, accepting_registrations
		FROM event_settings
		WHERE product_id = $1
	`
	meta := &domain.EventMeta{}
	err := m.DB.QueryRowContext(ctx, query, productID).
		Scan(&meta.ProductID, &meta.AcceptingRegistrations)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	typeQuery := `SELECT id FROM registration_types WHERE event_product_id = $1 ORDER BY id`
	rows, err := m.DB.QueryContext(ctx, typeQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		meta.RegistrationTypeIDs = append(meta.RegistrationTypeIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meta, nil
}

func (m *manager) RegistrationTypes(ctx context.Context, productID int64) ([]*domain.RegistrationType, error) {
	query := `
		SELECT id, event_product_id, label
		FROM registration_types
		WHERE event_product_id = $1
		ORDER BY id
	`
	rows, err := m.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.RegistrationType
	for rows.Next() {
		rt := &domain.RegistrationType{}
		if err := rows.Scan(&rt.ID, &rt.EventProductID, &rt.Label); err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, rows.Err()
}

func (m *manager) RegistrationType(ctx context.Context, id string) (*domain.RegistrationType, error) {
	query := `SELECT id, event_product_id, label FROM registration_types WHERE id = $1`
	rt := &domain.RegistrationType{}
	err := m.DB.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.EventProductID, &rt.Label)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rt, nil
}
