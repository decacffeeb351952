package domain

import (
	"context"
	"time"
)

// GuestbookEntry is one public guestbook message.
// swagger:model GuestbookEntry
type GuestbookEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestbookRepository defines storage for guestbook entries.
type GuestbookRepository interface {
	Create(ctx context.Context, e *GuestbookEntry) error
	// List returns entries newest first.
	List(ctx context.Context) ([]*GuestbookEntry, error)
	Delete(ctx context.Context, id string) error
}
