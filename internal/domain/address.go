package domain

import (
	"context"
	"time"
)

// GuestAddress is a mailing address collected for a guest email. It may exist
// before any RSVP and becomes linked once the guest resolves into one.
// swagger:model GuestAddress
type GuestAddress struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	StreetAddress  string    `json:"street_address"`
	StreetAddress2 string    `json:"street_address_2"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	PostalCode     string    `json:"postal_code"`
	Country        string    `json:"country"`
	LinkedRSVPID   *string   `json:"linked_rsvp_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GuestAddressInput is the address payload accepted from guests.
type GuestAddressInput struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	StreetAddress  string `json:"street_address"`
	StreetAddress2 string `json:"street_address_2"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
}

// AddressRepository defines storage operations for guest addresses.
type AddressRepository interface {
	Create(ctx context.Context, a *GuestAddress) error
	GetByID(ctx context.Context, id string) (*GuestAddress, error)
	GetByEmail(ctx context.Context, email string) (*GuestAddress, error)
	Update(ctx context.Context, a *GuestAddress) error
	// Link sets linked_rsvp_id on the address row. Last write wins.
	Link(ctx context.Context, addressID, rsvpID string) error
	// LinkByEmail links every address row matching email to rsvpID and
	// returns the number of rows linked. Zero rows is not an error.
	LinkByEmail(ctx context.Context, email, rsvpID string) (int, error)
	// ListLinkedAtSameStreet returns linked addresses sharing street_address
	// and postal_code with the given address, excluding the address itself.
	ListLinkedAtSameStreet(ctx context.Context, a *GuestAddress) ([]*GuestAddress, error)
	List(ctx context.Context) ([]*GuestAddress, error)
	Delete(ctx context.Context, id string) error
}

// AddressService maintains guest addresses collected ahead of RSVPs.
type AddressService interface {
	// CollectAddress creates or updates the address for an email (soft key,
	// one address per email). Returns the stored address and whether a new
	// row was created.
	CollectAddress(ctx context.Context, email string, in GuestAddressInput) (*GuestAddress, bool, error)
}

// StandardizedAddress is the USPS-standardized form of a mailing address.
type StandardizedAddress struct {
	StreetAddress  string
	StreetAddress2 string
	City           string
	State          string
	PostalCode     string
}

// AddressStandardizer validates and standardizes a mailing address against an
// external authority. Returns ErrNotConfigured when no credentials are set and
// ErrInvalidInput when the authority rejects the address.
type AddressStandardizer interface {
	Standardize(ctx context.Context, in GuestAddressInput) (*StandardizedAddress, error)
}
