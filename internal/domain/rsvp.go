package domain

import (
	"context"
	"strings"
	"time"
)

// AdditionalGuest is one guest embedded on an RSVP. Order is insertion order
// and is display-significant: the first entry doubles as the legacy plus-one.
// swagger:model AdditionalGuest
type AdditionalGuest struct {
	Name       string `json:"name"`
	MealChoice string `json:"mealChoice"`
	IsChild    bool   `json:"isChild"`
}

// RSVP is the canonical response record for one invited email.
// swagger:model RSVP
type RSVP struct {
	ID                  string            `json:"id"`
	Email               string            `json:"email"`
	Name                string            `json:"name"`
	Attending           bool              `json:"attending"`
	MealChoice          string            `json:"meal_choice"`
	DietaryRestrictions string            `json:"dietary_restrictions"`
	SongRequest         string            `json:"song_request"`
	Message             string            `json:"message"`
	AdditionalGuests    []AdditionalGuest `json:"additional_guests"`
	PlusOne             bool              `json:"plus_one"`
	PlusOneName         *string           `json:"plus_one_name"`
	PlusOneMealChoice   *string           `json:"plus_one_meal_choice"`
	Version             int               `json:"-"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// PartySize is the headcount this RSVP accounts for.
func (r *RSVP) PartySize() int {
	return 1 + len(r.AdditionalGuests)
}

// SyncPlusOne recomputes the legacy plus_one fields from additional_guests[0].
// Must be called after every mutation of AdditionalGuests.
func (r *RSVP) SyncPlusOne() {
	if len(r.AdditionalGuests) == 0 {
		r.PlusOne = false
		r.PlusOneName = nil
		r.PlusOneMealChoice = nil
		return
	}
	first := r.AdditionalGuests[0]
	r.PlusOne = true
	name := first.Name
	meal := first.MealChoice
	r.PlusOneName = &name
	r.PlusOneMealChoice = &meal
}

// NormalizeEmail trims and lowercases an email for use as the RSVP natural key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FilterGuests drops entries with blank names, trims the rest, and preserves
// order.
func FilterGuests(guests []AdditionalGuest) []AdditionalGuest {
	out := make([]AdditionalGuest, 0, len(guests))
	for _, g := range guests {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		out = append(out, AdditionalGuest{
			Name:       name,
			MealChoice: strings.TrimSpace(g.MealChoice),
			IsChild:    g.IsChild,
		})
	}
	return out
}

// LookupStatus classifies an email against the RSVP and address tables.
// The four values are mutually exclusive and collectively exhaustive.
type LookupStatus string

const (
	LookupExistingRSVP   LookupStatus = "existing_rsvp"
	LookupHouseholdFound LookupStatus = "household_found"
	LookupAddressFound   LookupStatus = "address_found"
	LookupNewGuest       LookupStatus = "new_guest"
)

// HouseholdRSVPSummary is the non-sensitive view of a household's RSVP shown
// to a guest deciding whether to join it.
// swagger:model HouseholdRSVPSummary
type HouseholdRSVPSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Attending  bool   `json:"attending"`
	GuestCount int    `json:"guestCount"`
}

// LookupResult is the outcome of classifying an email. Exactly the fields
// documented for Status are set; construct results only via the New*Lookup
// helpers so a status never leaks another status's payload.
type LookupResult struct {
	Status         LookupStatus
	RSVP           *RSVP
	Address        *GuestAddress
	HouseholdRSVPs []HouseholdRSVPSummary
	EventResponses map[string]bool
}

// NewExistingRSVPLookup returns a LookupResult for an email with its own RSVP.
func NewExistingRSVPLookup(r *RSVP, eventResponses map[string]bool) LookupResult {
	return LookupResult{Status: LookupExistingRSVP, RSVP: r, EventResponses: eventResponses}
}

// NewHouseholdFoundLookup returns a LookupResult for an email that maps to
// another party's RSVP through an address.
func NewHouseholdFoundLookup(households []HouseholdRSVPSummary) LookupResult {
	return LookupResult{Status: LookupHouseholdFound, HouseholdRSVPs: households}
}

// NewAddressFoundLookup returns a LookupResult for an email with only an
// address record.
func NewAddressFoundLookup(a *GuestAddress) LookupResult {
	return LookupResult{Status: LookupAddressFound, Address: a}
}

// NewNewGuestLookup returns a LookupResult for an unknown email.
func NewNewGuestLookup() LookupResult {
	return LookupResult{Status: LookupNewGuest}
}

// RSVPRepository defines storage operations for RSVPs.
type RSVPRepository interface {
	Create(ctx context.Context, r *RSVP) error
	GetByID(ctx context.Context, id string) (*RSVP, error)
	GetByEmail(ctx context.Context, email string) (*RSVP, error)
	// UpdateVersioned writes r conditionally on r.Version matching the stored
	// row. On success the stored version is incremented and r.Version is
	// updated to match. Returns ErrVersionConflict when the row exists at a
	// different version, ErrNotFound when it no longer exists.
	UpdateVersioned(ctx context.Context, r *RSVP) error
	List(ctx context.Context) ([]*RSVP, error)
	Delete(ctx context.Context, id string) error
}

// RSVPUpsertInput is the normalized payload for creating or updating an RSVP.
type RSVPUpsertInput struct {
	Name                string
	Email               string
	Attending           bool
	MealChoice          string
	DietaryRestrictions string
	SongRequest         string
	Message             string
	AdditionalGuests    []AdditionalGuest
	Address             *GuestAddressInput
	ExistingAddressID   string
	EventResponses      map[string]bool
}

// RSVPUpsertResult reports the outcome of an upsert. Warnings carry advisory
// sub-operation failures (auto-link, confirmation email) that did not affect
// the primary write.
type RSVPUpsertResult struct {
	RSVP       *RSVP
	IsUpdate   bool
	GuestCount int
	Message    string
	Warnings   []string
}

// HouseholdJoinInput attaches a guest to an existing household RSVP.
type HouseholdJoinInput struct {
	HouseholdRSVPID   string
	Name              string
	Email             string
	MealChoice        string
	IsChild           bool
	ExistingAddressID string
}

// HouseholdJoinResult reports the outcome of a household join.
type HouseholdJoinResult struct {
	HouseholdRSVPID string
	Message         string
	Warnings        []string
}

// RSVPService defines the RSVP intake workflow.
type RSVPService interface {
	Upsert(ctx context.Context, in RSVPUpsertInput) (*RSVPUpsertResult, error)
	JoinHousehold(ctx context.Context, in HouseholdJoinInput) (*HouseholdJoinResult, error)
}

// LookupService classifies an email into exactly one lookup status.
type LookupService interface {
	Lookup(ctx context.Context, email string) (*LookupResult, error)
}
