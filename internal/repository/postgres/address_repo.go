package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepository(db *sql.DB) domain.AddressRepository {
	return &addressRepository{DB: db}
}

const addressColumns = `id, email, name, phone, street_address, street_address_2,
		city, state, postal_code, country, linked_rsvp_id, created_at, updated_at`

func (r *addressRepository) Create(ctx context.Context, a *domain.GuestAddress) error {
	query := `
		INSERT INTO guest_addresses (email, name, phone, street_address, street_address_2,
			city, state, postal_code, country, linked_rsvp_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.Email, a.Name, a.Phone, a.StreetAddress, a.StreetAddress2,
		a.City, a.State, a.PostalCode, a.Country, a.LinkedRSVPID,
		a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

func (r *addressRepository) GetByID(ctx context.Context, id string) (*domain.GuestAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM guest_addresses WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *addressRepository) GetByEmail(ctx context.Context, email string) (*domain.GuestAddress, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM guest_addresses
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *addressRepository) Update(ctx context.Context, a *domain.GuestAddress) error {
	query := `
		UPDATE guest_addresses
		SET email = $1, name = $2, phone = $3, street_address = $4, street_address_2 = $5,
			city = $6, state = $7, postal_code = $8, country = $9, linked_rsvp_id = $10,
			updated_at = $11
		WHERE id = $12
	`
	res, err := r.DB.ExecContext(ctx, query,
		a.Email, a.Name, a.Phone, a.StreetAddress, a.StreetAddress2,
		a.City, a.State, a.PostalCode, a.Country, a.LinkedRSVPID,
		a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addressRepository) Link(ctx context.Context, addressID, rsvpID string) error {
	query := `UPDATE guest_addresses SET linked_rsvp_id = $1, updated_at = now() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, rsvpID, addressID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addressRepository) LinkByEmail(ctx context.Context, email, rsvpID string) (int, error) {
	query := `UPDATE guest_addresses SET linked_rsvp_id = $1, updated_at = now() WHERE email = $2`
	res, err := r.DB.ExecContext(ctx, query, rsvpID, email)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *addressRepository) ListLinkedAtSameStreet(ctx context.Context, a *domain.GuestAddress) ([]*domain.GuestAddress, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM guest_addresses
		WHERE street_address = $1 AND postal_code = $2
			AND id <> $3 AND linked_rsvp_id IS NOT NULL
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, a.StreetAddress, a.PostalCode, a.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *addressRepository) List(ctx context.Context) ([]*domain.GuestAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM guest_addresses ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *addressRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM guest_addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addressRepository) collect(rows *sql.Rows) ([]*domain.GuestAddress, error) {
	var out []*domain.GuestAddress
	for rows.Next() {
		a, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.GuestAddress{}
	}
	return out, nil
}

func (r *addressRepository) scanOne(row rowScanner) (*domain.GuestAddress, error) {
	a := &domain.GuestAddress{}
	var linked sql.NullString
	err := row.Scan(
		&a.ID, &a.Email, &a.Name, &a.Phone, &a.StreetAddress, &a.StreetAddress2,
		&a.City, &a.State, &a.PostalCode, &a.Country, &linked,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if linked.Valid {
		a.LinkedRSVPID = &linked.String
	}
	return a, nil
}
