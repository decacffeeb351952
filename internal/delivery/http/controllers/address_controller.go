package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

type AddressController struct {
	Logger       *slog.Logger
	Service      domain.AddressService
	Standardizer domain.AddressStandardizer
}

func NewAddressController(
	logger *slog.Logger,
	service domain.AddressService,
	standardizer domain.AddressStandardizer,
) *AddressController {
	return &AddressController{
		Logger:       logger,
		Service:      service,
		Standardizer: standardizer,
	}
}

// ValidateAddressRequest is the request body for POST /api/address/validate.
type ValidateAddressRequest struct {
	StreetAddress  string `json:"street_address"`
	StreetAddress2 string `json:"street_address_2"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
}

// Validate implements helpers.Validator.
func (r *ValidateAddressRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.StreetAddress) == "" {
		errs = append(errs, "street_address is required")
	}
	if strings.TrimSpace(r.City) == "" && strings.TrimSpace(r.PostalCode) == "" {
		errs = append(errs, "city or postal_code is required")
	}
	return errs
}

// ValidateAddressResponse is the response body for POST /api/address/validate.
// swagger:model ValidateAddressResponse
type ValidateAddressResponse struct {
	IsValid        bool   `json:"is_valid"`
	IsStandardized bool   `json:"is_standardized,omitempty"`
	StreetAddress  string `json:"street_address,omitempty"`
	StreetAddress2 string `json:"street_address_2,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ValidateAddress godoc
// @Summary Validate and standardize a mailing address
// @Description Runs the address through the USPS standardization service. is_standardized reports whether the returned form differs from the input.
// @Tags address
// @Accept json
// @Produce json
// @Param body body controllers.ValidateAddressRequest true "Address to validate"
// @Success 200 {object} controllers.ValidateAddressResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /api/address/validate [post]
func (c *AddressController) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var req ValidateAddressRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	std, err := c.Standardizer.Standardize(r.Context(), domain.GuestAddressInput{
		StreetAddress:  strings.TrimSpace(req.StreetAddress),
		StreetAddress2: strings.TrimSpace(req.StreetAddress2),
		City:           strings.TrimSpace(req.City),
		State:          strings.TrimSpace(req.State),
		PostalCode:     strings.TrimSpace(req.PostalCode),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "address validation is not configured")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSON(w, http.StatusOK, ValidateAddressResponse{
				IsValid: false,
				Error:   "we couldn't verify that address",
			})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusOK, ValidateAddressResponse{
			IsValid: false,
			Error:   "address validation is temporarily unavailable",
		})
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ValidateAddressResponse{
		IsValid:        true,
		IsStandardized: isStandardized(req, std),
		StreetAddress:  std.StreetAddress,
		StreetAddress2: std.StreetAddress2,
		City:           std.City,
		State:          std.State,
		PostalCode:     std.PostalCode,
	})
}

// isStandardized reports whether USPS changed anything beyond letter case.
func isStandardized(in ValidateAddressRequest, std *domain.StandardizedAddress) bool {
	eq := func(a, b string) bool {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return !eq(in.StreetAddress, std.StreetAddress) ||
		!eq(in.StreetAddress2, std.StreetAddress2) ||
		!eq(in.City, std.City) ||
		!eq(in.State, std.State) ||
		!eq(in.PostalCode, std.PostalCode)
}

// CollectAddressRequest is the request body for POST /api/address.
type CollectAddressRequest struct {
	Email   string                   `json:"email"`
	Address domain.GuestAddressInput `json:"address"`
}

// Validate implements helpers.Validator.
func (r *CollectAddressRequest) Validate() []string {
	var errs []string
	if domain.NormalizeEmail(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.Address.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Address.StreetAddress) == "" {
		errs = append(errs, "street_address is required")
	}
	return errs
}

// CollectAddressResponse is the response body for POST /api/address.
// swagger:model CollectAddressResponse
type CollectAddressResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// CollectAddress godoc
// @Summary Collect a guest mailing address
// @Description Stores the mailing address for an email ahead of any RSVP. One address per email; resubmitting updates the stored address.
// @Tags address
// @Accept json
// @Produce json
// @Param body body controllers.CollectAddressRequest true "Address payload"
// @Success 200 {object} controllers.CollectAddressResponse "Updated"
// @Success 201 {object} controllers.CollectAddressResponse "Created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/address [post]
func (c *AddressController) CollectAddress(w http.ResponseWriter, r *http.Request) {
	var req CollectAddressRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	addr, created, err := c.Service.CollectAddress(r.Context(), req.Email, req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "we couldn't save your address, please try again")
		return
	}

	status := http.StatusOK
	message := "Your address has been updated. Thank you!"
	if created {
		status = http.StatusCreated
		message = "Your address has been saved. Thank you!"
	}
	helpers.WriteJSON(w, status, CollectAddressResponse{
		Success: true,
		Message: message,
		ID:      addr.ID,
	})
}
