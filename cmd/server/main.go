package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"weddingplanner/config"
	_ "weddingplanner/docs"
	"weddingplanner/internal/adapters/auth"
	"weddingplanner/internal/adapters/email"
	"weddingplanner/internal/adapters/usps"
	httpdelivery "weddingplanner/internal/delivery/http"
	"weddingplanner/internal/delivery/http/controllers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/repository/postgres"
	"weddingplanner/internal/services"
)

// @title Wedding Planner API
// @version 1.0
// @description RSVP intake, guest address collection and planning dashboard for the wedding site.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	rsvpRepo := postgres.NewRSVPRepository(db)
	addressRepo := postgres.NewAddressRepository(db)
	eventRepo := postgres.NewWeddingEventRepository(db)
	guestbookRepo := postgres.NewGuestbookRepository(db)
	announcementRepo := postgres.NewAnnouncementRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	vendorRepo := postgres.NewVendorRepository(db)
	giftRepo := postgres.NewGiftRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	standardizer := usps.NewHTTPStandardizer(
		&http.Client{Timeout: 10 * time.Second},
		cfg.USPSAPIURL,
		cfg.USPSUserID,
	)

	lookupService := services.NewLookupService(rsvpRepo, addressRepo, eventRepo)
	rsvpService := services.NewRSVPService(logger, rsvpRepo, addressRepo, eventRepo, emailService)
	addressService := services.NewAddressService(addressRepo)
	planningService := services.NewPlanningService(rsvpRepo, budgetRepo, vendorRepo, giftRepo)

	limiter := middleware.NewFixedWindowLimiter(cfg.RSVPRateLimit, cfg.RSVPRateWindow)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		RSVP:         controllers.NewRSVPController(logger, lookupService, rsvpService, eventRepo),
		Address:      controllers.NewAddressController(logger, addressService, standardizer),
		Guestbook:    controllers.NewGuestbookController(logger, guestbookRepo),
		Announcement: controllers.NewAnnouncementController(logger, announcementRepo),
		Event:        controllers.NewEventController(logger, eventRepo),
		Admin:        controllers.NewAdminController(logger, rsvpRepo, addressRepo, planningService),
		Planning:     controllers.NewPlanningController(logger, budgetRepo, vendorRepo, giftRepo),
	}, limiter, verifier)

	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
