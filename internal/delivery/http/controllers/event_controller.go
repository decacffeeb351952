package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

type EventController struct {
	Logger *slog.Logger
	Repo   domain.WeddingEventRepository
}

func NewEventController(logger *slog.Logger, repo domain.WeddingEventRepository) *EventController {
	return &EventController{Logger: logger, Repo: repo}
}

// ListEvents godoc
// @Summary List wedding events
// @Description Returns the invitable wedding events in display order.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of wedding events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Repo.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not load events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
