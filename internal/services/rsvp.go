package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

// maxVersionRetries bounds the read-modify-write retry loop used for all RSVP
// mutations. Conflicts only occur when two writers hit the same RSVP at once,
// so a small bound is enough.
const maxVersionRetries = 3

type rsvpService struct {
	logger      *slog.Logger
	rsvpRepo    domain.RSVPRepository
	addressRepo domain.AddressRepository
	eventRepo   domain.WeddingEventRepository
	email       domain.EmailService
}

// NewRSVPService creates an RSVPService with the given collaborators.
func NewRSVPService(
	logger *slog.Logger,
	rsvpRepo domain.RSVPRepository,
	addressRepo domain.AddressRepository,
	eventRepo domain.WeddingEventRepository,
	email domain.EmailService,
) domain.RSVPService {
	return &rsvpService{
		logger:      logger,
		rsvpRepo:    rsvpRepo,
		addressRepo: addressRepo,
		eventRepo:   eventRepo,
		email:       email,
	}
}

// Upsert creates or updates the RSVP for in.Email. Email is the natural key:
// resubmitting the same payload updates the existing row, never inserts a
// second one. The duplicate check fails closed: a lookup error other than
// not-found aborts the operation rather than risking a duplicate insert.
func (s *rsvpService) Upsert(ctx context.Context, in domain.RSVPUpsertInput) (*domain.RSVPUpsertResult, error) {
	email := domain.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	guests := domain.FilterGuests(in.AdditionalGuests)

	var rec *domain.RSVP
	isUpdate := false
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		existing, err := s.rsvpRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check existing rsvp: %w", err)
		}
		now := time.Now()

		if errors.Is(err, domain.ErrNotFound) {
			rec = &domain.RSVP{
				Email:               email,
				Name:                name,
				Attending:           in.Attending,
				MealChoice:          in.MealChoice,
				DietaryRestrictions: in.DietaryRestrictions,
				SongRequest:         in.SongRequest,
				Message:             in.Message,
				AdditionalGuests:    guests,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			rec.SyncPlusOne()
			err := s.rsvpRepo.Create(ctx, rec)
			if errors.Is(err, domain.ErrDuplicate) {
				// A concurrent first submission won the insert between the
				// read and here. Re-read and take the update path.
				rec = nil
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("create rsvp: %w", err)
			}
			break
		}

		existing.Name = name
		existing.Attending = in.Attending
		existing.MealChoice = in.MealChoice
		existing.DietaryRestrictions = in.DietaryRestrictions
		existing.SongRequest = in.SongRequest
		existing.Message = in.Message
		existing.AdditionalGuests = guests
		existing.SyncPlusOne()
		existing.UpdatedAt = now

		err = s.rsvpRepo.UpdateVersioned(ctx, existing)
		if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrNotFound) {
			// Concurrent writer or concurrent delete; re-read and try again.
			rec = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update rsvp: %w", err)
		}
		rec = existing
		isUpdate = true
		break
	}
	if rec == nil {
		return nil, fmt.Errorf("update rsvp: %w", domain.ErrVersionConflict)
	}

	if rec.Attending && in.EventResponses != nil {
		if err := s.eventRepo.ReplaceResponses(ctx, rec.ID, in.EventResponses); err != nil {
			return nil, fmt.Errorf("save event responses: %w", err)
		}
	}

	warnings, err := s.reconcileAddress(ctx, rec, email, in)
	if err != nil {
		return nil, err
	}

	guestCount := rec.PartySize()
	if err := s.email.SendRSVPConfirmation(ctx, &domain.RSVPConfirmationEmailData{
		Email:      email,
		Name:       name,
		Attending:  rec.Attending,
		IsUpdate:   isUpdate,
		GuestCount: guestCount,
	}); err != nil {
		s.logger.Warn("rsvp confirmation email failed", "email", email, "err", err)
		warnings = append(warnings, "confirmation email could not be sent")
	}

	return &domain.RSVPUpsertResult{
		RSVP:       rec,
		IsUpdate:   isUpdate,
		GuestCount: guestCount,
		Message:    upsertMessage(name, rec.Attending, isUpdate, guestCount),
		Warnings:   warnings,
	}, nil
}

// reconcileAddress applies the link precedence: full address payload >
// explicit existing id > best-effort auto-link by email. Only the auto-link
// fallback is advisory; the two explicit paths surface their errors.
func (s *rsvpService) reconcileAddress(ctx context.Context, rec *domain.RSVP, email string, in domain.RSVPUpsertInput) ([]string, error) {
	var warnings []string

	switch {
	case in.Address != nil && in.ExistingAddressID == "":
		now := time.Now()
		addr, err := s.addressRepo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get address by email: %w", err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			addr = &domain.GuestAddress{Email: email, CreatedAt: now}
		}
		addr.Name = strings.TrimSpace(in.Address.Name)
		addr.Phone = strings.TrimSpace(in.Address.Phone)
		addr.StreetAddress = strings.TrimSpace(in.Address.StreetAddress)
		addr.StreetAddress2 = strings.TrimSpace(in.Address.StreetAddress2)
		addr.City = strings.TrimSpace(in.Address.City)
		addr.State = strings.TrimSpace(in.Address.State)
		addr.PostalCode = strings.TrimSpace(in.Address.PostalCode)
		addr.Country = strings.TrimSpace(in.Address.Country)
		addr.LinkedRSVPID = &rec.ID
		addr.UpdatedAt = now
		if addr.ID == "" {
			if err := s.addressRepo.Create(ctx, addr); err != nil {
				return nil, fmt.Errorf("create address: %w", err)
			}
		} else {
			if err := s.addressRepo.Update(ctx, addr); err != nil {
				return nil, fmt.Errorf("update address: %w", err)
			}
		}

	case in.ExistingAddressID != "":
		if err := s.addressRepo.Link(ctx, in.ExistingAddressID, rec.ID); err != nil {
			return nil, fmt.Errorf("link address: %w", err)
		}

	default:
		// Safety net: link whatever address rows already exist for this email.
		if _, err := s.addressRepo.LinkByEmail(ctx, email, rec.ID); err != nil {
			s.logger.Warn("auto-link address failed", "email", email, "err", err)
			warnings = append(warnings, "address could not be linked")
		}
	}
	return warnings, nil
}

// JoinHousehold appends a guest to an existing household RSVP. No RSVP row is
// created for the joining guest; they exist only as an embedded entry.
func (s *rsvpService) JoinHousehold(ctx context.Context, in domain.HouseholdJoinInput) (*domain.HouseholdJoinResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.HouseholdRSVPID == "" {
		return nil, fmt.Errorf("%w: householdRsvpId is required", domain.ErrInvalidInput)
	}

	var household *domain.RSVP
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		rec, err := s.rsvpRepo.GetByID(ctx, in.HouseholdRSVPID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get household rsvp: %w", err)
		}

		rec.AdditionalGuests = append(rec.AdditionalGuests, domain.AdditionalGuest{
			Name:       name,
			MealChoice: strings.TrimSpace(in.MealChoice),
			IsChild:    in.IsChild,
		})
		rec.SyncPlusOne()
		rec.UpdatedAt = time.Now()

		err = s.rsvpRepo.UpdateVersioned(ctx, rec)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("update household rsvp: %w", err)
		}
		household = rec
		break
	}
	if household == nil {
		return nil, fmt.Errorf("update household rsvp: %w", domain.ErrVersionConflict)
	}

	// Address linking is advisory here: the append already committed.
	var warnings []string
	if in.ExistingAddressID != "" {
		if err := s.addressRepo.Link(ctx, in.ExistingAddressID, household.ID); err != nil {
			s.logger.Warn("household address link failed", "address_id", in.ExistingAddressID, "err", err)
			warnings = append(warnings, "address could not be linked")
		}
	} else if email := domain.NormalizeEmail(in.Email); email != "" {
		if _, err := s.addressRepo.LinkByEmail(ctx, email, household.ID); err != nil {
			s.logger.Warn("household auto-link address failed", "email", email, "err", err)
			warnings = append(warnings, "address could not be linked")
		}
	}

	return &domain.HouseholdJoinResult{
		HouseholdRSVPID: household.ID,
		Message:         fmt.Sprintf("You've been added to %s's RSVP. See you there!", household.Name),
		Warnings:        warnings,
	}, nil
}

func upsertMessage(name string, attending, isUpdate bool, guestCount int) string {
	if !attending {
		if isUpdate {
			return fmt.Sprintf("Thank you, %s. Your RSVP has been updated. We're sorry you can't make it.", name)
		}
		return fmt.Sprintf("Thank you for letting us know, %s. We're sorry you can't make it.", name)
	}
	party := ""
	if guestCount > 1 {
		party = fmt.Sprintf(" for your party of %d", guestCount)
	}
	if isUpdate {
		return fmt.Sprintf("Thanks, %s! Your RSVP has been updated%s.", name, party)
	}
	return fmt.Sprintf("Thank you, %s! Your RSVP has been received%s.", name, party)
}
