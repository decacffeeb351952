package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"weddingplanner/internal/domain"
)

type weddingEventRepository struct {
	DB *sql.DB
}

func NewWeddingEventRepository(db *sql.DB) domain.WeddingEventRepository {
	return &weddingEventRepository{DB: db}
}

func (r *weddingEventRepository) ListEvents(ctx context.Context) ([]*domain.WeddingEvent, error) {
	query := `
		SELECT slug, name, starts_at, sort_order
		FROM wedding_events
		ORDER BY sort_order, starts_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.WeddingEvent
	for rows.Next() {
		e := &domain.WeddingEvent{}
		if err := rows.Scan(&e.Slug, &e.Name, &e.StartsAt, &e.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.WeddingEvent{}
	}
	return out, nil
}

// ReplaceResponses swaps the full response set for an RSVP inside one
// transaction so readers never observe a half-written set.
func (r *weddingEventRepository) ReplaceResponses(ctx context.Context, rsvpID string, responses map[string]bool) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rsvp_event_responses WHERE rsvp_id = $1`, rsvpID); err != nil {
		return fmt.Errorf("clear event responses: %w", err)
	}
	for slug, attending := range responses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rsvp_event_responses (rsvp_id, event_slug, attending) VALUES ($1, $2, $3)`,
			rsvpID, slug, attending,
		); err != nil {
			return fmt.Errorf("insert event response %q: %w", slug, err)
		}
	}
	return tx.Commit()
}

func (r *weddingEventRepository) ListResponses(ctx context.Context, rsvpID string) (map[string]bool, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT event_slug, attending FROM rsvp_event_responses WHERE rsvp_id = $1`, rsvpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var slug string
		var attending bool
		if err := rows.Scan(&slug, &attending); err != nil {
			return nil, err
		}
		out[slug] = attending
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
