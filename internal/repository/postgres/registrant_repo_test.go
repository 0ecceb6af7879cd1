package postgres

import (
	"context"
	"database/sql"
	"testing"

	"commerceregistrations/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRegistrantRepository_ListByRegistrationID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "registration_id", "identity_id", "label", "i_id", "identity_type", "i_label"}
	mock.ExpectQuery(`SELECT r.id, r.registration_id, r.identity_id, r.label`).
		WithArgs(int64(200)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(31), int64(200), int64(9), "fallback", int64(9), "person", "Grace Hopper").
			AddRow(int64(32), int64(200), nil, "Anonymous seat", nil, nil, nil))

	repo := NewRegistrantRepository(db)
	registrants, err := repo.ListByRegistrationID(ctx, 200)
	require.NoError(t, err)
	require.Len(t, registrants, 2)

	withIdentity := registrants[0]
	require.Equal(t, int64(31), withIdentity.ID)
	require.NotNil(t, withIdentity.IdentityID)
	require.NotNil(t, withIdentity.Identity)
	require.Equal(t, "person", withIdentity.Identity.Type)
	require.Equal(t, "Grace Hopper", withIdentity.DisplayLabel())

	without := registrants[1]
	require.Nil(t, without.IdentityID)
	require.Nil(t, without.Identity)
	require.Equal(t, "Anonymous seat", without.DisplayLabel())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrantRepository_ListByRegistrationID_Empty(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "registration_id", "identity_id", "label", "i_id", "identity_type", "i_label"}
	mock.ExpectQuery(`SELECT r.id, r.registration_id, r.identity_id, r.label`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(cols))

	repo := NewRegistrantRepository(db)
	registrants, err := repo.ListByRegistrationID(ctx, 404)
	require.NoError(t, err)
	require.NotNil(t, registrants)
	require.Empty(t, registrants)
}

func TestRegistrantRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("with identity", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		identityID := int64(9)
		mock.ExpectQuery(`INSERT INTO registrants \(registration_id, identity_id, label\)`).
			WithArgs(int64(200), sql.NullInt64{Int64: 9, Valid: true}, "Grace").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))

		repo := NewRegistrantRepository(db)
		registrant := &domain.Registrant{RegistrationID: 200, IdentityID: &identityID, Label: "Grace"}
		require.NoError(t, repo.Create(ctx, registrant))
		require.Equal(t, int64(31), registrant.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without identity", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO registrants \(registration_id, identity_id, label\)`).
			WithArgs(int64(200), sql.NullInt64{}, "Seat 2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(32)))

		repo := NewRegistrantRepository(db)
		registrant := &domain.Registrant{RegistrationID: 200, Label: "Seat 2"}
		require.NoError(t, repo.Create(ctx, registrant))
		require.Equal(t, int64(32), registrant.ID)
	})
}
