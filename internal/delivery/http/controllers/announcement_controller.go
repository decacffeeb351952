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

type AnnouncementController struct {
	Logger *slog.Logger
	Repo   domain.AnnouncementRepository
}

func NewAnnouncementController(logger *slog.Logger, repo domain.AnnouncementRepository) *AnnouncementController {
	return &AnnouncementController{Logger: logger, Repo: repo}
}

// ListAnnouncements godoc
// @Summary List live day-of announcements
// @Description Returns announcements, newest first.
// @Tags announcements
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of announcements"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/announcements [get]
func (c *AnnouncementController) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	items, err := c.Repo.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not load announcements")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// CreateAnnouncementRequest is the request body for POST /api/admin/announcements.
type CreateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate implements helpers.Validator.
func (r *CreateAnnouncementRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(r.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// CreateAnnouncement godoc
// @Summary Publish an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} helpers.APIResponse "data is the created announcement"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/announcements [post]
func (c *AnnouncementController) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req CreateAnnouncementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	a := &domain.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: time.Now(),
	}
	if err := c.Repo.Create(r.Context(), a); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, a)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}
