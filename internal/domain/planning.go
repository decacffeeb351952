package domain

import (
	"context"
	"time"
)

// BudgetItem is one line of the couple's wedding budget. Amounts are in cents.
// swagger:model BudgetItem
type BudgetItem struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	PlannedCents int64     `json:"planned_cents"`
	ActualCents  int64     `json:"actual_cents"`
	Paid         bool      `json:"paid"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Vendor is a wedding vendor tracked on the planning dashboard.
// swagger:model Vendor
type Vendor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	ContactEmail  string    `json:"contact_email"`
	Phone         string    `json:"phone"`
	Booked        bool      `json:"booked"`
	ContractCents int64     `json:"contract_cents"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Gift is a received gift and its thank-you state.
// swagger:model Gift
type Gift struct {
	ID           string    `json:"id"`
	GuestName    string    `json:"guest_name"`
	Description  string    `json:"description"`
	ThankYouSent bool      `json:"thank_you_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BudgetRepository defines storage for budget items.
type BudgetRepository interface {
	Create(ctx context.Context, b *BudgetItem) error
	GetByID(ctx context.Context, id string) (*BudgetItem, error)
	Update(ctx context.Context, b *BudgetItem) error
	List(ctx context.Context) ([]*BudgetItem, error)
	Delete(ctx context.Context, id string) error
}

// VendorRepository defines storage for vendors.
type VendorRepository interface {
	Create(ctx context.Context, v *Vendor) error
	GetByID(ctx context.Context, id string) (*Vendor, error)
	Update(ctx context.Context, v *Vendor) error
	List(ctx context.Context) ([]*Vendor, error)
	Delete(ctx context.Context, id string) error
}

// GiftRepository defines storage for gifts.
type GiftRepository interface {
	Create(ctx context.Context, g *Gift) error
	GetByID(ctx context.Context, id string) (*Gift, error)
	Update(ctx context.Context, g *Gift) error
	List(ctx context.Context) ([]*Gift, error)
	Delete(ctx context.Context, id string) error
}

// PlanningSummary is the dashboard aggregate view, recomputed server-side
// from the current rows.
// swagger:model PlanningSummary
type PlanningSummary struct {
	RSVPCount          int   `json:"rsvp_count"`
	AttendingRSVPCount int   `json:"attending_rsvp_count"`
	Headcount          int   `json:"headcount"`
	BudgetPlannedCents int64 `json:"budget_planned_cents"`
	BudgetActualCents  int64 `json:"budget_actual_cents"`
	VendorCount        int   `json:"vendor_count"`
	BookedVendorCount  int   `json:"booked_vendor_count"`
	ContractTotalCents int64 `json:"contract_total_cents"`
	GiftCount          int   `json:"gift_count"`
	ThankYouSentCount  int   `json:"thank_you_sent_count"`
}

// PlanningService computes dashboard aggregates over the planning entities.
type PlanningService interface {
	Summary(ctx context.Context) (*PlanningSummary, error)
}
