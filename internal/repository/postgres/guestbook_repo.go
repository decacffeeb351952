package postgres

import (
	"context"
	"database/sql"

	"weddingplanner/internal/domain"
)

type guestbookRepository struct {
	DB *sql.DB
}

func NewGuestbookRepository(db *sql.DB) domain.GuestbookRepository {
	return &guestbookRepository{DB: db}
}

func (r *guestbookRepository) Create(ctx context.Context, e *domain.GuestbookEntry) error {
	query := `
		INSERT INTO guestbook_entries (name, message, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Name, e.Message, e.CreatedAt).Scan(&e.ID)
}

func (r *guestbookRepository) List(ctx context.Context) ([]*domain.GuestbookEntry, error) {
	query := `
		SELECT id, name, message, created_at
		FROM guestbook_entries
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.GuestbookEntry
	for rows.Next() {
		e := &domain.GuestbookEntry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.GuestbookEntry{}
	}
	return out, nil
}

func (r *guestbookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM guestbook_entries WHERE id = $1`, id)
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
