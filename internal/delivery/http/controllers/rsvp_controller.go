package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// FlexBool accepts JSON booleans and the string forms the RSVP form has sent
// historically: "yes"/"true" mean true, anything else false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = FlexBool(t)
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		*b = FlexBool(s == "yes" || s == "true")
	default:
		*b = false
	}
	return nil
}

type RSVPController struct {
	Logger    *slog.Logger
	Lookup    domain.LookupService
	Service   domain.RSVPService
	EventRepo domain.WeddingEventRepository
}

func NewRSVPController(
	logger *slog.Logger,
	lookup domain.LookupService,
	service domain.RSVPService,
	eventRepo domain.WeddingEventRepository,
) *RSVPController {
	return &RSVPController{
		Logger:    logger,
		Lookup:    lookup,
		Service:   service,
		EventRepo: eventRepo,
	}
}

// LookupRequest is the request body for POST /api/rsvp/lookup.
type LookupRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *LookupRequest) Validate() []string {
	if domain.NormalizeEmail(r.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// LookupResponse is the response body for POST /api/rsvp/lookup. Only the
// fields documented for the returned status are present.
// swagger:model LookupResponse
type LookupResponse struct {
	Status         string                        `json:"status"`
	Message        string                        `json:"message"`
	RSVP           *domain.RSVP                  `json:"rsvp,omitempty"`
	Address        *domain.GuestAddress          `json:"address,omitempty"`
	HouseholdRSVPs []domain.HouseholdRSVPSummary `json:"householdRsvps,omitempty"`
	InvitedEvents  []string                      `json:"invitedEvents"`
	EventResponses map[string]bool               `json:"eventResponses"`
}

// LookupEmail godoc
// @Summary Classify an email for the RSVP wizard
// @Description Classifies the email into exactly one of existing_rsvp, household_found, address_found, new_guest and returns the pre-fill data for that status. Read-only.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param body body controllers.LookupRequest true "Email to look up"
// @Success 200 {object} controllers.LookupResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/rsvp/lookup [post]
func (c *RSVPController) LookupEmail(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Lookup.Lookup(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "lookup failed, please try again")
		return
	}

	events, err := c.EventRepo.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "lookup failed, please try again")
		return
	}
	invited := make([]string, 0, len(events))
	for _, e := range events {
		invited = append(invited, e.Slug)
	}

	resp := LookupResponse{
		Status:         string(result.Status),
		InvitedEvents:  invited,
		EventResponses: map[string]bool{},
	}
	switch result.Status {
	case domain.LookupExistingRSVP:
		resp.Message = "Welcome back! We found your RSVP."
		resp.RSVP = result.RSVP
		if result.EventResponses != nil {
			resp.EventResponses = result.EventResponses
		}
	case domain.LookupHouseholdFound:
		resp.Message = "It looks like someone in your household has already responded."
		resp.HouseholdRSVPs = result.HouseholdRSVPs
	case domain.LookupAddressFound:
		resp.Message = "We found your address on file."
		resp.Address = result.Address
	case domain.LookupNewGuest:
		resp.Message = "We don't have you on file yet. Let's get you set up!"
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// RSVPRequest is the request body for POST /api/rsvp.
type RSVPRequest struct {
	Name                string                    `json:"name"`
	Email               string                    `json:"email"`
	Attending           *FlexBool                 `json:"attending"`
	MealChoice          string                    `json:"mealChoice"`
	DietaryRestrictions string                    `json:"dietaryRestrictions"`
	AdditionalGuests    []domain.AdditionalGuest  `json:"additionalGuests"`
	SongRequest         string                    `json:"songRequest"`
	Message             string                    `json:"message"`
	Address             *domain.GuestAddressInput `json:"address"`
	ExistingAddressID   string                    `json:"existingAddressId"`
	EventResponses      map[string]bool           `json:"eventResponses"`
}

// Validate implements helpers.Validator.
func (r *RSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if domain.NormalizeEmail(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Attending == nil {
		errs = append(errs, "attending is required")
	}
	return errs
}

// RSVPResponse is the response body for POST /api/rsvp.
// swagger:model RSVPResponse
type RSVPResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ID       string `json:"id"`
	IsUpdate bool   `json:"isUpdate"`
}

// SubmitRSVP godoc
// @Summary Create or update an RSVP
// @Description Upserts the RSVP for the email in the payload. Email is the natural key: resubmitting updates the existing record. Linked addresses follow the precedence full address payload > existingAddressId > auto-link by email.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param body body controllers.RSVPRequest true "RSVP payload"
// @Success 200 {object} controllers.RSVPResponse "Updated"
// @Success 201 {object} controllers.RSVPResponse "Created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/rsvp [post]
func (c *RSVPController) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req RSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.Upsert(r.Context(), domain.RSVPUpsertInput{
		Name:                req.Name,
		Email:               req.Email,
		Attending:           bool(*req.Attending),
		MealChoice:          strings.TrimSpace(req.MealChoice),
		DietaryRestrictions: strings.TrimSpace(req.DietaryRestrictions),
		SongRequest:         strings.TrimSpace(req.SongRequest),
		Message:             strings.TrimSpace(req.Message),
		AdditionalGuests:    req.AdditionalGuests,
		Address:             req.Address,
		ExistingAddressID:   strings.TrimSpace(req.ExistingAddressID),
		EventResponses:      req.EventResponses,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "address not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "we couldn't save your RSVP, please try again")
		return
	}

	status := http.StatusCreated
	if result.IsUpdate {
		status = http.StatusOK
	}
	helpers.WriteJSON(w, status, RSVPResponse{
		Success:  true,
		Message:  result.Message,
		ID:       result.RSVP.ID,
		IsUpdate: result.IsUpdate,
	})
}

// HouseholdJoinRequest is the request body for PATCH /api/rsvp.
type HouseholdJoinRequest struct {
	HouseholdRSVPID   string    `json:"householdRsvpId"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	IsChild           *FlexBool `json:"isChild"`
	MealChoice        string    `json:"mealChoice"`
	ExistingAddressID string    `json:"existingAddressId"`
}

// Validate implements helpers.Validator.
func (r *HouseholdJoinRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.HouseholdRSVPID) == "" {
		errs = append(errs, "householdRsvpId is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// HouseholdJoinResponse is the response body for PATCH /api/rsvp.
// swagger:model HouseholdJoinResponse
type HouseholdJoinResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	HouseholdRSVPID string `json:"householdRsvpId"`
}

// JoinHousehold godoc
// @Summary Join an existing household RSVP
// @Description Appends the guest to the household RSVP's additional guests. No new RSVP record is created for the joining guest.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param body body controllers.HouseholdJoinRequest true "Join payload"
// @Success 200 {object} controllers.HouseholdJoinResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/rsvp [patch]
func (c *RSVPController) JoinHousehold(w http.ResponseWriter, r *http.Request) {
	var req HouseholdJoinRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	isChild := false
	if req.IsChild != nil {
		isChild = bool(*req.IsChild)
	}
	result, err := c.Service.JoinHousehold(r.Context(), domain.HouseholdJoinInput{
		HouseholdRSVPID:   strings.TrimSpace(req.HouseholdRSVPID),
		Name:              req.Name,
		Email:             req.Email,
		MealChoice:        req.MealChoice,
		IsChild:           isChild,
		ExistingAddressID: strings.TrimSpace(req.ExistingAddressID),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "household RSVP not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "we couldn't add you to the household, please try again")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, HouseholdJoinResponse{
		Success:         true,
		Message:         result.Message,
		HouseholdRSVPID: result.HouseholdRSVPID,
	})
}
