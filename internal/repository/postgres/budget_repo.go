package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type budgetRepository struct {
	DB *sql.DB
}

func NewBudgetRepository(db *sql.DB) domain.BudgetRepository {
	return &budgetRepository{DB: db}
}

func (r *budgetRepository) Create(ctx context.Context, b *domain.BudgetItem) error {
	query := `
		INSERT INTO budget_items (category, description, planned_cents, actual_cents, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		b.Category, b.Description, b.PlannedCents, b.ActualCents, b.Paid,
		b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*domain.BudgetItem, error) {
	query := `
		SELECT id, category, description, planned_cents, actual_cents, paid, created_at, updated_at
		FROM budget_items
		WHERE id = $1
	`
	b := &domain.BudgetItem{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Category, &b.Description, &b.PlannedCents, &b.ActualCents,
		&b.Paid, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *budgetRepository) Update(ctx context.Context, b *domain.BudgetItem) error {
	query := `
		UPDATE budget_items
		SET category = $1, description = $2, planned_cents = $3, actual_cents = $4,
			paid = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := r.DB.ExecContext(ctx, query,
		b.Category, b.Description, b.PlannedCents, b.ActualCents, b.Paid,
		b.UpdatedAt, b.ID,
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

func (r *budgetRepository) List(ctx context.Context) ([]*domain.BudgetItem, error) {
	query := `
		SELECT id, category, description, planned_cents, actual_cents, paid, created_at, updated_at
		FROM budget_items
		ORDER BY category, created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.BudgetItem
	for rows.Next() {
		b := &domain.BudgetItem{}
		if err := rows.Scan(
			&b.ID, &b.Category, &b.Description, &b.PlannedCents, &b.ActualCents,
			&b.Paid, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.BudgetItem{}
	}
	return out, nil
}

func (r *budgetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM budget_items WHERE id = $1`, id)
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
