// @title Commerce Registrations API
// @version 1.0
// @description Bridges commerce orders with event registrations: generates registrations for purchased event products, keeps quantities in sync with assigned registrants, and exports registration data.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"commerceregistrations/config"
	_ "commerceregistrations/docs"
	"commerceregistrations/internal/adapters/auth"
	"commerceregistrations/internal/adapters/email"
	"commerceregistrations/internal/adapters/events"
	httpdelivery "commerceregistrations/internal/delivery/http"
	"commerceregistrations/internal/delivery/http/controllers"
	"commerceregistrations/internal/delivery/http/middleware"
	"commerceregistrations/internal/repository/postgres"
	"commerceregistrations/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	orderRepo := postgres.NewOrderRepository(db)
	productRepo := postgres.NewProductRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	registrantRepo := postgres.NewRegistrantRepository(db)
	eventManager := events.NewManager(db)

	registrationSvc := services.NewRegistrationService(eventManager, registrationRepo, registrantRepo, orderRepo, productRepo)
	availability := services.NewAvailabilityChecker(eventManager, registrationSvc, nil)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddr,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	notifications := services.NewNotificationService(mailer, email.NewTemplateRenderer(), registrationSvc, logger, cfg.NotifyAddress)

	tokens := auth.NewJWTTokens(cfg.JWTSecret)

	registrationController := controllers.NewRegistrationController(logger, registrationSvc, orderRepo, notifications)
	availabilityController := controllers.NewAvailabilityController(logger, availability, orderRepo)

	mux := httpdelivery.NewRouter(logger, tokens, registrationController, availabilityController)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
