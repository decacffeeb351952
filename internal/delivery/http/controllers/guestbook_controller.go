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

type GuestbookController struct {
	Logger *slog.Logger
	Repo   domain.GuestbookRepository
}

func NewGuestbookController(logger *slog.Logger, repo domain.GuestbookRepository) *GuestbookController {
	return &GuestbookController{Logger: logger, Repo: repo}
}

// SignGuestbookRequest is the request body for POST /api/guestbook.
type SignGuestbookRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Validate implements helpers.Validator.
func (r *SignGuestbookRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// ListGuestbook godoc
// @Summary List guestbook entries
// @Description Returns guestbook entries, newest first.
// @Tags guestbook
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of guestbook entries"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/guestbook [get]
func (c *GuestbookController) ListGuestbook(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Repo.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not load the guestbook")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

// SignGuestbook godoc
// @Summary Sign the guestbook
// @Tags guestbook
// @Accept json
// @Produce json
// @Param body body controllers.SignGuestbookRequest true "Entry"
// @Success 201 {object} helpers.APIResponse "data is the created entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/guestbook [post]
func (c *GuestbookController) SignGuestbook(w http.ResponseWriter, r *http.Request) {
	var req SignGuestbookRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	entry := &domain.GuestbookEntry{
		Name:      strings.TrimSpace(req.Name),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now(),
	}
	if err := c.Repo.Create(r.Context(), entry); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not sign the guestbook, please try again")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// DeleteGuestbookEntry godoc
// @Summary Delete a guestbook entry
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/guestbook/{id} [delete]
func (c *GuestbookController) DeleteGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "guestbook entry not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
