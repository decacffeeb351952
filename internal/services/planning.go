package services

import (
	"context"
	"fmt"

	"weddingplanner/internal/domain"
)

type planningService struct {
	rsvpRepo   domain.RSVPRepository
	budgetRepo domain.BudgetRepository
	vendorRepo domain.VendorRepository
	giftRepo   domain.GiftRepository
}

// NewPlanningService creates a PlanningService over the planning repositories.
func NewPlanningService(
	rsvpRepo domain.RSVPRepository,
	budgetRepo domain.BudgetRepository,
	vendorRepo domain.VendorRepository,
	giftRepo domain.GiftRepository,
) domain.PlanningService {
	return &planningService{
		rsvpRepo:   rsvpRepo,
		budgetRepo: budgetRepo,
		vendorRepo: vendorRepo,
		giftRepo:   giftRepo,
	}
}

// Summary recomputes the dashboard aggregates from the current rows. The
// reductions are simple enough that no caching is warranted.
func (s *planningService) Summary(ctx context.Context) (*domain.PlanningSummary, error) {
	sum := &domain.PlanningSummary{}

	rsvps, err := s.rsvpRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	sum.RSVPCount = len(rsvps)
	for _, r := range rsvps {
		if r.Attending {
			sum.AttendingRSVPCount++
			sum.Headcount += r.PartySize()
		}
	}

	budget, err := s.budgetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	for _, b := range budget {
		sum.BudgetPlannedCents += b.PlannedCents
		sum.BudgetActualCents += b.ActualCents
	}

	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	sum.VendorCount = len(vendors)
	for _, v := range vendors {
		if v.Booked {
			sum.BookedVendorCount++
		}
		sum.ContractTotalCents += v.ContractCents
	}

	gifts, err := s.giftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	sum.GiftCount = len(gifts)
	for _, g := range gifts {
		if g.ThankYouSent {
			sum.ThankYouSentCount++
		}
	}

	return sum, nil
}
