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

// AdminController serves the couple's dashboard: RSVP and address management
// plus the aggregate summary. All routes behind RequireAdmin.
type AdminController struct {
	Logger      *slog.Logger
	RSVPRepo    domain.RSVPRepository
	AddressRepo domain.AddressRepository
	Planning    domain.PlanningService
}

func NewAdminController(
	logger *slog.Logger,
	rsvpRepo domain.RSVPRepository,
	addressRepo domain.AddressRepository,
	planning domain.PlanningService,
) *AdminController {
	return &AdminController{
		Logger:      logger,
		RSVPRepo:    rsvpRepo,
		AddressRepo: addressRepo,
		Planning:    planning,
	}
}

// ListRSVPs godoc
// @Summary List all RSVPs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of RSVPs"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/rsvps [get]
func (c *AdminController) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	rsvps, err := c.RSVPRepo.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvps)
}

// UpdateRSVPRequest is the request body for PATCH /api/admin/rsvps/{id}.
// Only non-nil fields are applied.
type UpdateRSVPRequest struct {
	Name                *string                   `json:"name"`
	Attending           *bool                     `json:"attending"`
	MealChoice          *string                   `json:"meal_choice"`
	DietaryRestrictions *string                   `json:"dietary_restrictions"`
	SongRequest         *string                   `json:"song_request"`
	Message             *string                   `json:"message"`
	AdditionalGuests    *[]domain.AdditionalGuest `json:"additional_guests"`
}

// UpdateRSVP godoc
// @Summary Patch an RSVP
// @Description Applies the non-null fields. The legacy plus-one fields are recomputed whenever additional_guests changes.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "RSVP ID"
// @Param body body controllers.UpdateRSVPRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data is the updated RSVP"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/rsvps/{id} [patch]
func (c *AdminController) UpdateRSVP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	var req UpdateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	// Same read-modify-write discipline as the guest-facing paths: the patch
	// must not clobber a concurrent household join.
	var rec *domain.RSVP
	for attempt := 0; attempt < 3; attempt++ {
		cur, err := c.RSVPRepo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "rsvp not found")
				return
			}
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
			return
		}

		if req.Name != nil {
			cur.Name = strings.TrimSpace(*req.Name)
		}
		if req.Attending != nil {
			cur.Attending = *req.Attending
		}
		if req.MealChoice != nil {
			cur.MealChoice = *req.MealChoice
		}
		if req.DietaryRestrictions != nil {
			cur.DietaryRestrictions = *req.DietaryRestrictions
		}
		if req.SongRequest != nil {
			cur.SongRequest = *req.SongRequest
		}
		if req.Message != nil {
			cur.Message = *req.Message
		}
		if req.AdditionalGuests != nil {
			cur.AdditionalGuests = domain.FilterGuests(*req.AdditionalGuests)
		}
		cur.SyncPlusOne()
		cur.UpdatedAt = time.Now()

		err = c.RSVPRepo.UpdateVersioned(r.Context(), cur)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "rsvp not found")
				return
			}
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
			return
		}
		rec = cur
		break
	}
	if rec == nil {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "update conflicted, please retry")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}

// DeleteRSVP godoc
// @Summary Delete an RSVP
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "RSVP ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/rsvps/{id} [delete]
func (c *AdminController) DeleteRSVP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.RSVPRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "rsvp not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ListAddresses godoc
// @Summary List all guest addresses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of guest addresses"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/addresses [get]
func (c *AdminController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addrs, err := c.AddressRepo.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, addrs)
}

// UpdateAddressRequest is the request body for PATCH /api/admin/addresses/{id}.
type UpdateAddressRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	StreetAddress  *string `json:"street_address"`
	StreetAddress2 *string `json:"street_address_2"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	PostalCode     *string `json:"postal_code"`
	Country        *string `json:"country"`
	LinkedRSVPID   *string `json:"linked_rsvp_id"`
}

// UpdateAddress godoc
// @Summary Patch a guest address
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Param body body controllers.UpdateAddressRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data is the updated address"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/addresses/{id} [patch]
func (c *AdminController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	var req UpdateAddressRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	addr, err := c.AddressRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "address not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	if req.Name != nil {
		addr.Name = *req.Name
	}
	if req.Phone != nil {
		addr.Phone = *req.Phone
	}
	if req.StreetAddress != nil {
		addr.StreetAddress = *req.StreetAddress
	}
	if req.StreetAddress2 != nil {
		addr.StreetAddress2 = *req.StreetAddress2
	}
	if req.City != nil {
		addr.City = *req.City
	}
	if req.State != nil {
		addr.State = *req.State
	}
	if req.PostalCode != nil {
		addr.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		addr.Country = *req.Country
	}
	if req.LinkedRSVPID != nil {
		if *req.LinkedRSVPID == "" {
			addr.LinkedRSVPID = nil
		} else {
			addr.LinkedRSVPID = req.LinkedRSVPID
		}
	}
	addr.UpdatedAt = time.Now()

	if err := c.AddressRepo.Update(r.Context(), addr); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "address not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, addr)
}

// DeleteAddress godoc
// @Summary Delete a guest address
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/addresses/{id} [delete]
func (c *AdminController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.AddressRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "address not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GetSummary godoc
// @Summary Dashboard aggregate summary
// @Description Server-side recomputation of the planning dashboard totals.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is the planning summary"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/summary [get]
func (c *AdminController) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := c.Planning.Summary(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sum)
}
