package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"commerceregistrations/internal/delivery/http/helpers"
	"commerceregistrations/internal/domain"
)

type AvailabilityController struct {
	Logger  *slog.Logger
	Checker domain.AvailabilityChecker
	Orders  domain.OrderRepository
}

func NewAvailabilityController(logger *slog.Logger, checker domain.AvailabilityChecker, orders domain.OrderRepository) *AvailabilityController {
	return &AvailabilityController{Logger: logger, Checker: checker, Orders: orders}
}

type availabilityResponse struct {
	Applies   bool `json:"applies"`
	Available bool `json:"available"`
}

// Check godoc
// @Summary Check purchase availability of an order item
// @Description Reports whether the item resolves to an event and, if so, whether that event currently accepts registrations.
// @Tags availability
// @Produce json
// @Param orderItemID path int true "Order item ID"
// @Success 200 {object} helpers.APIResponse{data=controllers.availabilityResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /order-items/{orderItemID}/availability [get]
func (c *AvailabilityController) Check(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseID(r, "orderItemID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	item, err := c.Orders.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "order item not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	applies, err := c.Checker.Applies(r.Context(), item)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	resp := availabilityResponse{Applies: applies}
	if applies {
		available, err := c.Checker.Check(r.Context(), item)
		if err != nil {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
			return
		}
		resp.Available = available
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
