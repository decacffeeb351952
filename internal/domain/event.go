package domain

import (
	"context"
	"time"
)

// WeddingEvent is one invitable event of the wedding weekend (ceremony,
// reception, brunch, ...). Slug is the stable identifier used in RSVP
// event responses.
// swagger:model WeddingEvent
type WeddingEvent struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"starts_at"`
	SortOrder int       `json:"sort_order"`
}

// WeddingEventRepository defines storage for wedding events and per-RSVP
// event responses.
type WeddingEventRepository interface {
	ListEvents(ctx context.Context) ([]*WeddingEvent, error)
	// ReplaceResponses replaces all event responses for an RSVP wholesale.
	ReplaceResponses(ctx context.Context, rsvpID string, responses map[string]bool) error
	ListResponses(ctx context.Context, rsvpID string) (map[string]bool, error)
}
