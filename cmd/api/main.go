package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stayhost/stayhost-api/internal/config"
	"github.com/stayhost/stayhost-api/internal/domain/booking"
	"github.com/stayhost/stayhost-api/internal/domain/notification"
	"github.com/stayhost/stayhost-api/internal/domain/payment"
	"github.com/stayhost/stayhost-api/internal/domain/pricing"
	"github.com/stayhost/stayhost-api/internal/domain/property"
	"github.com/stayhost/stayhost-api/internal/domain/user"
	"github.com/stayhost/stayhost-api/internal/middleware"
	"github.com/stayhost/stayhost-api/internal/pkg/database"
	"github.com/stayhost/stayhost-api/internal/pkg/email"
	"github.com/stayhost/stayhost-api/internal/pkg/events"
	"github.com/stayhost/stayhost-api/internal/pkg/jwt"
	"github.com/stayhost/stayhost-api/internal/pkg/lock"
	"github.com/stayhost/stayhost-api/internal/pkg/logger"
	"github.com/stayhost/stayhost-api/internal/pkg/processor"
	pkgresponse "github.com/stayhost/stayhost-api/internal/pkg/response"
)

// handlers groups everything mounted on the router
type handlers struct {
	pricing      *pricing.Handler
	booking      *booking.Handler
	notification *notification.Handler
}

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting StayHost API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	// tokens are issued elsewhere, the TTL only matters for tests and tooling
	jwtService := jwt.NewService(cfg.JWTSecret, 15*time.Minute)

	// ---------- Repositories ----------
	propertyRepo := property.NewRepository(db)
	userRepo := user.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// ---------- Services ----------
	fees := pricing.FeeSchedule{
		ServiceFeeBps:    cfg.Booking.ServiceFeeBps,
		TaxBps:           cfg.Booking.TaxBps,
		GuestsPerVehicle: cfg.Booking.GuestsPerVehicle,
	}
	pricingService := pricing.NewService(propertyRepo, fees)

	processorClient := processor.NewClient(processor.Config{
		BaseURL:   cfg.Processor.BaseURL,
		SecretKey: cfg.Processor.SecretKey,
		Timeout:   time.Duration(cfg.Processor.TimeoutSeconds) * time.Second,
	})
	paymentService := payment.NewService(paymentRepo, payment.NewProcessorGateway(processorClient), cfg.Booking.Currency)

	locker := lock.NewLocker(redis, "booking:submit", cfg.Booking.SubmissionLockTTL)

	bookingService := booking.NewService(
		bookingRepo,
		propertyRepo,
		booking.NewAuthorizer(propertyRepo),
		paymentService,
		locker,
		booking.Config{
			BaseURL:            cfg.Booking.BaseURL,
			InstantBookEnabled: cfg.Booking.InstantBookEnabled,
		},
	)
	bookingService.SetQuoter(pricingService)

	notificationService := notification.NewService(notificationRepo)

	var mailer notification.Mailer
	sendGrid := email.NewSendGridClient(email.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	})
	if sendGrid.Enabled() {
		emailService := email.NewService(sendGrid)
		defer emailService.Close()
		mailer = emailService
	} else {
		log.Warn().Msg("SendGrid API key not set, booking emails disabled")
	}

	var publisher notification.EventPublisher
	if cfg.RabbitMQURL != "" {
		p, err := events.NewPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to RabbitMQ, booking events disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	bookingService.SetNotifier(notification.NewBookingNotifier(
		notificationService,
		propertyRepo,
		userRepo,
		mailer,
		publisher,
		cfg.Booking.BaseURL,
	))

	if cfg.Processor.WebhookSecret == "" {
		log.Warn().Msg("PROCESSOR_WEBHOOK_SECRET not set, payment webhooks will be rejected")
	}

	// ---------- Background jobs ----------
	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	go notification.NewCleanupJob(notificationRepo, cfg.NotificationRetentionDays).Start(jobCtx, 24*time.Hour)

	h := handlers{
		pricing:      pricing.NewHandler(pricingService),
		booking:      booking.NewHandler(bookingService, cfg.Processor.WebhookSecret),
		notification: notification.NewHandler(notificationService),
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, middleware.Auth(jwtService), h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, authMiddleware func(http.Handler) http.Handler, h handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/quotes", h.pricing.Routes())
		r.Mount("/availability", h.booking.AvailabilityRoutes())
		r.Mount("/bookings", h.booking.Routes(authMiddleware))
		r.Mount("/notifications", h.notification.Routes(authMiddleware))
	})

	r.Mount("/webhooks", h.booking.WebhookRoutes())

	return r
}
