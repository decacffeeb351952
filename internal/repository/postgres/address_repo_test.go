package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

func addressRows(addrs ...*domain.GuestAddress) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "email", "name", "phone", "street_address", "street_address_2",
		"city", "state", "postal_code", "country", "linked_rsvp_id",
		"created_at", "updated_at",
	})
	for _, a := range addrs {
		rows.AddRow(
			a.ID, a.Email, a.Name, a.Phone, a.StreetAddress, a.StreetAddress2,
			a.City, a.State, a.PostalCode, a.Country, a.LinkedRSVPID,
			a.CreatedAt, a.UpdatedAt,
		)
	}
	return rows
}

func TestAddressRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		linked := "rsvp-uuid-1"
		mock.ExpectQuery(`SELECT (.+) FROM guest_addresses`).
			WithArgs("guest@example.com").
			WillReturnRows(addressRows(&domain.GuestAddress{
				ID:            "addr-uuid-1",
				Email:         "guest@example.com",
				Name:          "Alex",
				StreetAddress: "123 Main St",
				PostalCode:    "97201",
				LinkedRSVPID:  &linked,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}))

		repo := NewAddressRepository(db)
		got, err := repo.GetByEmail(ctx, "guest@example.com")
		require.NoError(t, err)
		assert.Equal(t, "addr-uuid-1", got.ID)
		require.NotNil(t, got.LinkedRSVPID)
		assert.Equal(t, "rsvp-uuid-1", *got.LinkedRSVPID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM guest_addresses`).
			WithArgs("unknown@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewAddressRepository(db)
		_, err = repo.GetByEmail(ctx, "unknown@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddressRepository_Link(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE guest_addresses SET linked_rsvp_id`).
			WithArgs("rsvp-uuid-1", "addr-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewAddressRepository(db)
		require.NoError(t, repo.Link(ctx, "addr-uuid-1", "rsvp-uuid-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing address", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE guest_addresses SET linked_rsvp_id`).
			WithArgs("rsvp-uuid-1", "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewAddressRepository(db)
		assert.ErrorIs(t, repo.Link(ctx, "missing", "rsvp-uuid-1"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddressRepository_LinkByEmail(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Zero matched rows is a no-op, not an error.
	mock.ExpectExec(`UPDATE guest_addresses SET linked_rsvp_id`).
		WithArgs("rsvp-uuid-1", "unknown@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAddressRepository(db)
	n, err := repo.LinkByEmail(ctx, "unknown@example.com", "rsvp-uuid-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_ListLinkedAtSameStreet(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	linked := "rsvp-uuid-2"
	self := &domain.GuestAddress{
		ID:            "addr-uuid-1",
		StreetAddress: "123 Main St",
		PostalCode:    "97201",
	}
	mock.ExpectQuery(`SELECT (.+) FROM guest_addresses`).
		WithArgs("123 Main St", "97201", "addr-uuid-1").
		WillReturnRows(addressRows(&domain.GuestAddress{
			ID:            "addr-uuid-2",
			Email:         "partner@example.com",
			StreetAddress: "123 Main St",
			PostalCode:    "97201",
			LinkedRSVPID:  &linked,
		}))

	repo := NewAddressRepository(db)
	got, err := repo.ListLinkedAtSameStreet(ctx, self)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "addr-uuid-2", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
