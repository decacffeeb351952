package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type addressService struct {
	addressRepo domain.AddressRepository
}

// NewAddressService creates an AddressService with the given repository.
func NewAddressService(addressRepo domain.AddressRepository) domain.AddressService {
	return &addressService{addressRepo: addressRepo}
}

// CollectAddress stores the mailing address for an email ahead of any RSVP.
// Email is a soft key: one address per email, enforced by lookup-then-write.
// An existing link to an RSVP is preserved across updates.
func (s *addressService) CollectAddress(ctx context.Context, email string, in domain.GuestAddressInput) (*domain.GuestAddress, bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.StreetAddress) == "" {
		return nil, false, fmt.Errorf("%w: name and street_address are required", domain.ErrInvalidInput)
	}

	now := time.Now()
	addr, err := s.addressRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get address by email: %w", err)
	}
	created := false
	if errors.Is(err, domain.ErrNotFound) {
		addr = &domain.GuestAddress{Email: email, CreatedAt: now}
		created = true
	}

	addr.Name = strings.TrimSpace(in.Name)
	addr.Phone = strings.TrimSpace(in.Phone)
	addr.StreetAddress = strings.TrimSpace(in.StreetAddress)
	addr.StreetAddress2 = strings.TrimSpace(in.StreetAddress2)
	addr.City = strings.TrimSpace(in.City)
	addr.State = strings.TrimSpace(in.State)
	addr.PostalCode = strings.TrimSpace(in.PostalCode)
	addr.Country = strings.TrimSpace(in.Country)
	addr.UpdatedAt = now

	if created {
		if err := s.addressRepo.Create(ctx, addr); err != nil {
			return nil, false, fmt.Errorf("create address: %w", err)
		}
	} else {
		if err := s.addressRepo.Update(ctx, addr); err != nil {
			return nil, false, fmt.Errorf("update address: %w", err)
		}
	}
	return addr, created, nil
}
