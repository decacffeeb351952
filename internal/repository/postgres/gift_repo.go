package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type giftRepository struct {
	DB *sql.DB
}

func NewGiftRepository(db *sql.DB) domain.GiftRepository {
	return &giftRepository{DB: db}
}

func (r *giftRepository) Create(ctx context.Context, g *domain.Gift) error {
	query := `
		INSERT INTO gifts (guest_name, description, thank_you_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		g.GuestName, g.Description, g.ThankYouSent, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
}

func (r *giftRepository) GetByID(ctx context.Context, id string) (*domain.Gift, error) {
	query := `
		SELECT id, guest_name, description, thank_you_sent, created_at, updated_at
		FROM gifts
		WHERE id = $1
	`
	g := &domain.Gift{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.GuestName, &g.Description, &g.ThankYouSent, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *giftRepository) Update(ctx context.Context, g *domain.Gift) error {
	query := `
		UPDATE gifts
		SET guest_name = $1, description = $2, thank_you_sent = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := r.DB.ExecContext(ctx, query,
		g.GuestName, g.Description, g.ThankYouSent, g.UpdatedAt, g.ID,
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

func (r *giftRepository) List(ctx context.Context) ([]*domain.Gift, error) {
	query := `
		SELECT id, guest_name, description, thank_you_sent, created_at, updated_at
		FROM gifts
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Gift
	for rows.Next() {
		g := &domain.Gift{}
		if err := rows.Scan(
			&g.ID, &g.GuestName, &g.Description, &g.ThankYouSent, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Gift{}
	}
	return out, nil
}

func (r *giftRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM gifts WHERE id = $1`, id)
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
