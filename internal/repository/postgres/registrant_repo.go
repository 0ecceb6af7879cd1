package postgres

import (
	"context"
	"database/sql"

	"commerceregistrations/internal/domain"
)

type registrantRepository struct {
	DB *sql.DB
}

func NewRegistrantRepository(db *sql.DB) domain.RegistrantRepository {
	return &registrantRepository{
		DB: db,
	}
}

func (r *registrantRepository) Create(ctx context.Context, registrant *domain.Registrant) error {
	query := `
		INSERT INTO registrants (registration_id, identity_id, label)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var identityID sql.NullInt64
	if registrant.IdentityID != nil {
		identityID = sql.NullInt64{Int64: *registrant.IdentityID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, registrant.RegistrationID, identityID, registrant.Label).
		Scan(&registrant.ID)
}

func (r *registrantRepository) ListByRegistrationID(ctx context.Context, registrationID int64) ([]*domain.Registrant, error) {
	query := `
		SELECT r.id, r.registration_id, r.identity_id, r.label,
		       i.id, i.identity_type, i.label
		FROM registrants r
		LEFT JOIN identities i ON i.id = r.identity_id
		WHERE r.registration_id = $1
		ORDER BY r.id
	`
	rows, err := r.DB.QueryContext(ctx, query, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registrants []*domain.Registrant
	for rows.Next() {
		registrant := &domain.Registrant{}
		var identityID sql.NullInt64
		var idID sql.NullInt64
		var idType, idLabel sql.NullString
		if err := rows.Scan(
			&registrant.ID, &registrant.RegistrationID, &identityID, &registrant.Label,
			&idID, &idType, &idLabel,
		); err != nil {
			return nil, err
		}
		if identityID.Valid {
			registrant.IdentityID = &identityID.Int64
		}
		if idID.Valid {
			registrant.Identity = &domain.Identity{
				ID:    idID.Int64,
				Type:  idType.String,
				Label: idLabel.String,
			}
		}
		registrants = append(registrants, registrant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if registrants == nil {
		registrants = []*domain.Registrant{}
	}
	return registrants, nil
}
