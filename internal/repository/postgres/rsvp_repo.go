package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

const rsvpColumns = `id, email, name, attending, meal_choice, dietary_restrictions,
		song_request, message, additional_guests, plus_one, plus_one_name,
		plus_one_meal_choice, version, created_at, updated_at`

func (r *rsvpRepository) Create(ctx context.Context, rec *domain.RSVP) error {
	guests, err := marshalGuests(rec.AdditionalGuests)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO rsvps (email, name, attending, meal_choice, dietary_restrictions,
			song_request, message, additional_guests, plus_one, plus_one_name,
			plus_one_meal_choice, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13)
		RETURNING id
	`
	if err := r.DB.QueryRowContext(ctx, query,
		rec.Email, rec.Name, rec.Attending, rec.MealChoice, rec.DietaryRestrictions,
		rec.SongRequest, rec.Message, guests, rec.PlusOne, rec.PlusOneName,
		rec.PlusOneMealChoice, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID); err != nil {
		// Unique index on email: a concurrent insert for the same guest
		// surfaces here rather than as a second row.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		return err
	}
	rec.Version = 1
	return nil
}

func (r *rsvpRepository) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *rsvpRepository) GetByEmail(ctx context.Context, email string) (*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// UpdateVersioned writes conditionally on the version read earlier. Zero rows
// affected means either a concurrent writer bumped the version or the row is
// gone; a follow-up existence check distinguishes the two.
func (r *rsvpRepository) UpdateVersioned(ctx context.Context, rec *domain.RSVP) error {
	guests, err := marshalGuests(rec.AdditionalGuests)
	if err != nil {
		return err
	}
	query := `
		UPDATE rsvps
		SET name = $1, attending = $2, meal_choice = $3, dietary_restrictions = $4,
			song_request = $5, message = $6, additional_guests = $7, plus_one = $8,
			plus_one_name = $9, plus_one_meal_choice = $10, version = version + 1,
			updated_at = $11
		WHERE id = $12 AND version = $13
	`
	res, err := r.DB.ExecContext(ctx, query,
		rec.Name, rec.Attending, rec.MealChoice, rec.DietaryRestrictions,
		rec.SongRequest, rec.Message, guests, rec.PlusOne,
		rec.PlusOneName, rec.PlusOneMealChoice, rec.UpdatedAt,
		rec.ID, rec.Version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rsvps WHERE id = $1)`, rec.ID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrVersionConflict
		}
		return domain.ErrNotFound
	}
	rec.Version++
	return nil
}

func (r *rsvpRepository) List(ctx context.Context) ([]*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.RSVP
	for rows.Next() {
		rec, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.RSVP{}
	}
	return out, nil
}

func (r *rsvpRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rsvps WHERE id = $1`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *rsvpRepository) scanOne(row rowScanner) (*domain.RSVP, error) {
	rec := &domain.RSVP{}
	var guestsRaw []byte
	var plusOneName, plusOneMeal sql.NullString
	err := row.Scan(
		&rec.ID, &rec.Email, &rec.Name, &rec.Attending, &rec.MealChoice,
		&rec.DietaryRestrictions, &rec.SongRequest, &rec.Message, &guestsRaw,
		&rec.PlusOne, &plusOneName, &plusOneMeal, &rec.Version,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if plusOneName.Valid {
		rec.PlusOneName = &plusOneName.String
	}
	if plusOneMeal.Valid {
		rec.PlusOneMealChoice = &plusOneMeal.String
	}
	rec.AdditionalGuests = []domain.AdditionalGuest{}
	if len(guestsRaw) > 0 {
		if err := json.Unmarshal(guestsRaw, &rec.AdditionalGuests); err != nil {
			return nil, fmt.Errorf("decode additional_guests: %w", err)
		}
	}
	return rec, nil
}

func marshalGuests(guests []domain.AdditionalGuest) ([]byte, error) {
	if guests == nil {
		guests = []domain.AdditionalGuest{}
	}
	raw, err := json.Marshal(guests)
	if err != nil {
		return nil, fmt.Errorf("encode additional_guests: %w", err)
	}
	return raw, nil
}
