package domain

import (
	"context"
	"time"
)

// Announcement is a live day-of update published by the couple.
// swagger:model Announcement
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncementRepository defines storage for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	// List returns announcements newest first.
	List(ctx context.Context) ([]*Announcement, error)
	Delete(ctx context.Context, id string) error
}
