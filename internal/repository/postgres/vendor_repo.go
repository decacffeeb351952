package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type vendorRepository struct {
	DB *sql.DB
}

func NewVendorRepository(db *sql.DB) domain.VendorRepository {
	return &vendorRepository{DB: db}
}

func (r *vendorRepository) Create(ctx context.Context, v *domain.Vendor) error {
	query := `
		INSERT INTO vendors (name, category, contact_email, phone, booked, contract_cents, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		v.Name, v.Category, v.ContactEmail, v.Phone, v.Booked, v.ContractCents,
		v.Notes, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `
		SELECT id, name, category, contact_email, phone, booked, contract_cents, notes, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`
	v := &domain.Vendor{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Category, &v.ContactEmail, &v.Phone, &v.Booked,
		&v.ContractCents, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *vendorRepository) Update(ctx context.Context, v *domain.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, category = $2, contact_email = $3, phone = $4, booked = $5,
			contract_cents = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.DB.ExecContext(ctx, query,
		v.Name, v.Category, v.ContactEmail, v.Phone, v.Booked,
		v.ContractCents, v.Notes, v.UpdatedAt, v.ID,
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

func (r *vendorRepository) List(ctx context.Context) ([]*domain.Vendor, error) {
	query := `
		SELECT id, name, category, contact_email, phone, booked, contract_cents, notes, created_at, updated_at
		FROM vendors
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Vendor
	for rows.Next() {
		v := &domain.Vendor{}
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Category, &v.ContactEmail, &v.Phone, &v.Booked,
			&v.ContractCents, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Vendor{}
	}
	return out, nil
}

func (r *vendorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
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
