package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// PlanningController serves the budget, vendor and gift CRUD routes of the
// couple's dashboard. All routes behind RequireAdmin.
type PlanningController struct {
	Logger     *slog.Logger
	BudgetRepo domain.BudgetRepository
	VendorRepo domain.VendorRepository
	GiftRepo   domain.GiftRepository
}

func NewPlanningController(
	logger *slog.Logger,
	budgetRepo domain.BudgetRepository,
	vendorRepo domain.VendorRepository,
	giftRepo domain.GiftRepository,
) *PlanningController {
	return &PlanningController{
		Logger:     logger,
		BudgetRepo: budgetRepo,
		VendorRepo: vendorRepo,
		GiftRepo:   giftRepo,
	}
}

func (c *PlanningController) writeErr(w http.ResponseWriter, r *http.Request, err error, kind string) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, kind+" not found")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// BudgetItemRequest is the request body for creating or patching a budget item.
type BudgetItemRequest struct {
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	PlannedCents *int64  `json:"planned_cents"`
	ActualCents  *int64  `json:"actual_cents"`
	Paid         *bool   `json:"paid"`
}

func (req *BudgetItemRequest) ValidateCreate() error {
	if req.Category == nil || strings.TrimSpace(*req.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

func (req *BudgetItemRequest) apply(b *domain.BudgetItem) {
	if req.Category != nil {
		b.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.PlannedCents != nil {
		b.PlannedCents = *req.PlannedCents
	}
	if req.ActualCents != nil {
		b.ActualCents = *req.ActualCents
	}
	if req.Paid != nil {
		b.Paid = *req.Paid
	}
}

// ListBudget godoc
// @Summary List budget items
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of budget items"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/budget [get]
func (c *PlanningController) ListBudget(w http.ResponseWriter, r *http.Request) {
	items, err := c.BudgetRepo.List(r.Context())
	if err != nil {
		c.writeErr(w, r, err, "budget item")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// CreateBudgetItem godoc
// @Summary Create a budget item
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.BudgetItemRequest true "Budget item"
// @Success 201 {object} helpers.APIResponse "data is the created budget item"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/budget [post]
func (c *PlanningController) CreateBudgetItem(w http.ResponseWriter, r *http.Request) {
	var req BudgetItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := req.ValidateCreate(); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	now := time.Now()
	item := &domain.BudgetItem{CreatedAt: now, UpdatedAt: now}
	req.apply(item)
	if err := c.BudgetRepo.Create(r.Context(), item); err != nil {
		c.writeErr(w, r, err, "budget item")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

// UpdateBudgetItem godoc
// @Summary Patch a budget item
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget item ID"
// @Param body body controllers.BudgetItemRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data is the updated budget item"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/budget/{id} [patch]
func (c *PlanningController) UpdateBudgetItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req BudgetItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.BudgetRepo.GetByID(r.Context(), id)
	if err != nil {
		c.writeErr(w, r, err, "budget item")
		return
	}
	req.apply(item)
	item.UpdatedAt = time.Now()
	if err := c.BudgetRepo.Update(r.Context(), item); err != nil {
		c.writeErr(w, r, err, "budget item")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// DeleteBudgetItem godoc
// @Summary Delete a budget item
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget item ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/budget/{id} [delete]
func (c *PlanningController) DeleteBudgetItem(w http.ResponseWriter, r *http.Request) {
	if err := c.BudgetRepo.Delete(r.Context(), r.PathValue("id")); err != nil {
		c.writeErr(w, r, err, "budget item")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// VendorRequest is the request body for creating or patching a vendor.
type VendorRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	ContactEmail  *string `json:"contact_email"`
	Phone         *string `json:"phone"`
	Booked        *bool   `json:"booked"`
	ContractCents *int64  `json:"contract_cents"`
	Notes         *string `json:"notes"`
}

func (req *VendorRequest) ValidateCreate() error {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

func (req *VendorRequest) apply(v *domain.Vendor) {
	if req.Name != nil {
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.ContactEmail != nil {
		v.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		v.Phone = *req.Phone
	}
	if req.Booked != nil {
		v.Booked = *req.Booked
	}
	if req.ContractCents != nil {
		v.ContractCents = *req.ContractCents
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}
}

// ListVendors godoc
// @Summary List vendors
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of vendors"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/vendors [get]
func (c *PlanningController) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := c.VendorRepo.List(r.Context())
	if err != nil {
		c.writeErr(w, r, err, "vendor")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendors)
}

// CreateVendor godoc
// @Summary Create a vendor
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.VendorRequest true "Vendor"
// @Success 201 {object} helpers.APIResponse "data is the created vendor"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/vendors [post]
func (c *PlanningController) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req VendorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := req.ValidateCreate(); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	now := time.Now()
	vendor := &domain.Vendor{CreatedAt: now, UpdatedAt: now}
	req.apply(vendor)
	if err := c.VendorRepo.Create(r.Context(), vendor); err != nil {
		c.writeErr(w, r, err, "vendor")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, vendor)
}

// UpdateVendor godoc
// @Summary Patch a vendor
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Param body body controllers.VendorRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data is the updated vendor"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/vendors/{id} [patch]
func (c *PlanningController) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req VendorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	vendor, err := c.VendorRepo.GetByID(r.Context(), id)
	if err != nil {
		c.writeErr(w, r, err, "vendor")
		return
	}
	req.apply(vendor)
	vendor.UpdatedAt = time.Now()
	if err := c.VendorRepo.Update(r.Context(), vendor); err != nil {
		c.writeErr(w, r, err, "vendor")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendor)
}

// DeleteVendor godoc
// @Summary Delete a vendor
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/vendors/{id} [delete]
func (c *PlanningController) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := c.VendorRepo.Delete(r.Context(), r.PathValue("id")); err != nil {
		c.writeErr(w, r, err, "vendor")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GiftRequest is the request body for creating or patching a gift.
type GiftRequest struct {
	GuestName    *string `json:"guest_name"`
	Description  *string `json:"description"`
	ThankYouSent *bool   `json:"thank_you_sent"`
}

func (req *GiftRequest) ValidateCreate() error {
	if req.GuestName == nil || strings.TrimSpace(*req.GuestName) == "" {
		return errors.New("guest_name is required")
	}
	return nil
}

func (req *GiftRequest) apply(g *domain.Gift) {
	if req.GuestName != nil {
		g.GuestName = strings.TrimSpace(*req.GuestName)
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.ThankYouSent != nil {
		g.ThankYouSent = *req.ThankYouSent
	}
}

// ListGifts godoc
// @Summary List gifts
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of gifts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/gifts [get]
func (c *PlanningController) ListGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := c.GiftRepo.List(r.Context())
	if err != nil {
		c.writeErr(w, r, err, "gift")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gifts)
}

// CreateGift godoc
// @Summary Record a gift
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.GiftRequest true "Gift"
// @Success 201 {object} helpers.APIResponse "data is the created gift"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/gifts [post]
func (c *PlanningController) CreateGift(w http.ResponseWriter, r *http.Request) {
	var req GiftRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := req.ValidateCreate(); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	now := time.Now()
	gift := &domain.Gift{CreatedAt: now, UpdatedAt: now}
	req.apply(gift)
	if err := c.GiftRepo.Create(r.Context(), gift); err != nil {
		c.writeErr(w, r, err, "gift")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, gift)
}

// UpdateGift godoc
// @Summary Patch a gift
// @Tags planning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gift ID"
// @Param body body controllers.GiftRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data is the updated gift"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/gifts/{id} [patch]
func (c *PlanningController) UpdateGift(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req GiftRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	gift, err := c.GiftRepo.GetByID(r.Context(), id)
	if err != nil {
		c.writeErr(w, r, err, "gift")
		return
	}
	req.apply(gift)
	gift.UpdatedAt = time.Now()
	if err := c.GiftRepo.Update(r.Context(), gift); err != nil {
		c.writeErr(w, r, err, "gift")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gift)
}

// DeleteGift godoc
// @Summary Delete a gift
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gift ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/gifts/{id} [delete]
func (c *PlanningController) DeleteGift(w http.ResponseWriter, r *http.Request) {
	if err := c.GiftRepo.Delete(r.Context(), r.PathValue("id")); err != nil {
		c.writeErr(w, r, err, "gift")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
