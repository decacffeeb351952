package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddingplanner/internal/delivery/http/controllers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

// Controllers groups everything the router mounts.
type Controllers struct {
	RSVP         *controllers.RSVPController
	Address      *controllers.AddressController
	Guestbook    *controllers.GuestbookController
	Announcement *controllers.AnnouncementController
	Event        *controllers.EventController
	Admin        *controllers.AdminController
	Planning     *controllers.PlanningController
}

// NewRouter initializes the HTTP router with all application routes.
// RSVP writes go through the rate limiter; everything under /api/admin
// requires a bearer token with the admin role.
func NewRouter(c Controllers, limiter middleware.RateLimiter, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	rsvpLimited := middleware.RateLimit(limiter, "rsvp:")
	admin := middleware.RequireAdmin(verifier)

	// Guest-facing RSVP flow
	mux.HandleFunc("POST /api/rsvp/lookup", c.RSVP.LookupEmail)
	mux.HandleFunc("POST /api/rsvp", rsvpLimited(c.RSVP.SubmitRSVP))
	mux.HandleFunc("PATCH /api/rsvp", rsvpLimited(c.RSVP.JoinHousehold))

	// Addresses
	mux.HandleFunc("POST /api/address/validate", c.Address.ValidateAddress)
	mux.HandleFunc("POST /api/address", c.Address.CollectAddress)

	// Public site content
	mux.HandleFunc("GET /api/events", c.Event.ListEvents)
	mux.HandleFunc("GET /api/guestbook", c.Guestbook.ListGuestbook)
	mux.HandleFunc("POST /api/guestbook", c.Guestbook.SignGuestbook)
	mux.HandleFunc("GET /api/announcements", c.Announcement.ListAnnouncements)

	// Couple's dashboard
	mux.HandleFunc("GET /api/admin/rsvps", admin(c.Admin.ListRSVPs))
	mux.HandleFunc("PATCH /api/admin/rsvps/{id}", admin(c.Admin.UpdateRSVP))
	mux.HandleFunc("DELETE /api/admin/rsvps/{id}", admin(c.Admin.DeleteRSVP))
	mux.HandleFunc("GET /api/admin/addresses", admin(c.Admin.ListAddresses))
	mux.HandleFunc("PATCH /api/admin/addresses/{id}", admin(c.Admin.UpdateAddress))
	mux.HandleFunc("DELETE /api/admin/addresses/{id}", admin(c.Admin.DeleteAddress))
	mux.HandleFunc("GET /api/admin/summary", admin(c.Admin.GetSummary))

	mux.HandleFunc("GET /api/admin/budget", admin(c.Planning.ListBudget))
	mux.HandleFunc("POST /api/admin/budget", admin(c.Planning.CreateBudgetItem))
	mux.HandleFunc("PATCH /api/admin/budget/{id}", admin(c.Planning.UpdateBudgetItem))
	mux.HandleFunc("DELETE /api/admin/budget/{id}", admin(c.Planning.DeleteBudgetItem))

	mux.HandleFunc("GET /api/admin/vendors", admin(c.Planning.ListVendors))
	mux.HandleFunc("POST /api/admin/vendors", admin(c.Planning.CreateVendor))
	mux.HandleFunc("PATCH /api/admin/vendors/{id}", admin(c.Planning.UpdateVendor))
	mux.HandleFunc("DELETE /api/admin/vendors/{id}", admin(c.Planning.DeleteVendor))

	mux.HandleFunc("GET /api/admin/gifts", admin(c.Planning.ListGifts))
	mux.HandleFunc("POST /api/admin/gifts", admin(c.Planning.CreateGift))
	mux.HandleFunc("PATCH /api/admin/gifts/{id}", admin(c.Planning.UpdateGift))
	mux.HandleFunc("DELETE /api/admin/gifts/{id}", admin(c.Planning.DeleteGift))
	mux.HandleFunc("DELETE /api/admin/announcements/{id}", admin(c.Announcement.DeleteAnnouncement))
	mux.HandleFunc("POST /api/admin/announcements", admin(c.Announcement.CreateAnnouncement))
	mux.HandleFunc("DELETE /api/admin/guestbook/{id}", admin(c.Guestbook.DeleteGuestbookEntry))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
