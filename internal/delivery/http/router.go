package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"commerceregistrations/internal/delivery/http/controllers"
	"commerceregistrations/internal/delivery/http/middleware"
	"commerceregistrations/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	registrationController *controllers.RegistrationController,
	availabilityController *controllers.AvailabilityController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Storefront
	mux.HandleFunc("GET /orders/{orderID}/registrants", registrationController.ListRegistrants)
	mux.HandleFunc("GET /order-items/{orderItemID}/availability", availabilityController.Check)

	// Operator
	mux.HandleFunc("GET /orders/{orderID}/registrations", requireAuth(registrationController.ListRegistrations))
	mux.HandleFunc("POST /orders/{orderID}/registrations", requireAuth(registrationController.Generate))
	mux.HandleFunc("GET /orders/{orderID}/registrations/export", requireAuth(registrationController.Export))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
