package services

import (
	"context"
	"errors"
	"fmt"

	"weddingplanner/internal/domain"
)

type lookupService struct {
	rsvpRepo    domain.RSVPRepository
	addressRepo domain.AddressRepository
	eventRepo   domain.WeddingEventRepository
}

// NewLookupService creates a LookupService with the given repositories.
func NewLookupService(
	rsvpRepo domain.RSVPRepository,
	addressRepo domain.AddressRepository,
	eventRepo domain.WeddingEventRepository,
) domain.LookupService {
	return &lookupService{
		rsvpRepo:    rsvpRepo,
		addressRepo: addressRepo,
		eventRepo:   eventRepo,
	}
}

// Lookup classifies an email into exactly one of the four statuses. It is
// read-only: any repository error surfaces to the caller and nothing is
// written.
func (s *lookupService) Lookup(ctx context.Context, email string) (*domain.LookupResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	rec, err := s.rsvpRepo.GetByEmail(ctx, email)
	if err == nil {
		responses, err := s.eventRepo.ListResponses(ctx, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("list event responses: %w", err)
		}
		res := domain.NewExistingRSVPLookup(rec, responses)
		return &res, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get rsvp by email: %w", err)
	}

	addr, err := s.addressRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res := domain.NewNewGuestLookup()
			return &res, nil
		}
		return nil, fmt.Errorf("get address by email: %w", err)
	}

	households, err := s.findHouseholds(ctx, addr)
	if err != nil {
		return nil, err
	}
	if len(households) > 0 {
		res := domain.NewHouseholdFoundLookup(households)
		return &res, nil
	}

	res := domain.NewAddressFoundLookup(addr)
	return &res, nil
}

// findHouseholds resolves the RSVPs the address belongs to: first through its
// own linked_rsvp_id, then through linked addresses at the same street. A
// dangling link (RSVP deleted) is skipped, not an error.
func (s *lookupService) findHouseholds(ctx context.Context, addr *domain.GuestAddress) ([]domain.HouseholdRSVPSummary, error) {
	var out []domain.HouseholdRSVPSummary
	seen := make(map[string]struct{})

	add := func(rsvpID string) error {
		if _, ok := seen[rsvpID]; ok {
			return nil
		}
		hh, err := s.rsvpRepo.GetByID(ctx, rsvpID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("get household rsvp: %w", err)
		}
		seen[rsvpID] = struct{}{}
		out = append(out, domain.HouseholdRSVPSummary{
			ID:         hh.ID,
			Name:       hh.Name,
			Attending:  hh.Attending,
			GuestCount: hh.PartySize(),
		})
		return nil
	}

	if addr.LinkedRSVPID != nil {
		if err := add(*addr.LinkedRSVPID); err != nil {
			return nil, err
		}
	}

	neighbors, err := s.addressRepo.ListLinkedAtSameStreet(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("list addresses at same street: %w", err)
	}
	for _, n := range neighbors {
		if n.LinkedRSVPID == nil {
			continue
		}
		if err := add(*n.LinkedRSVPID); err != nil {
			return nil, err
		}
	}
	return out, nil
}
