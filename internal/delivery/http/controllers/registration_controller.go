package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"commerceregistrations/internal/delivery/http/helpers"
	"commerceregistrations/internal/domain"
)

type RegistrationController struct {
	Logger        *slog.Logger
	Service       domain.RegistrationService
	Orders        domain.OrderRepository
	Notifications domain.NotificationService
}

func NewRegistrationController(
	logger *slog.Logger,
	svc domain.RegistrationService,
	orders domain.OrderRepository,
	notifications domain.NotificationService,
) *RegistrationController {
	return &RegistrationController{
		Logger:        logger,
		Service:       svc,
		Orders:        orders,
		Notifications: notifications,
	}
}

func parseID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func (c *RegistrationController) loadOrder(w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	orderID, err := parseID(r, "orderID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return nil, false
	}
	order, err := c.Orders.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "order not found")
			return nil, false
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return nil, false
	}
	return order, true
}

// ListRegistrants godoc
// @Summary List registrants for an order
// @Description Returns registrant display labels grouped per order item. Stub registrants are excluded.
// @Tags registrations
// @Produce json
// @Param orderID path int true "Order ID"
// @Success 200 {object} helpers.APIResponse{data=[]domain.RegistrantList}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /orders/{orderID}/registrants [get]
func (c *RegistrationController) ListRegistrants(w http.ResponseWriter, r *http.Request) {
	order, ok := c.loadOrder(w, r)
	if !ok {
		return
	}

	lists, err := c.Service.RegistrantLists(r.Context(), order)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	// Respond in order-item order for a stable payload.
	result := make([]*domain.RegistrantList, 0, len(lists))
	for _, item := range order.Items {
		if list, ok := lists[item.ID]; ok {
			result = append(result, list)
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListRegistrations godoc
// @Summary List registrations for an order
// @Description Returns all registrations referencing the order's items, newest first.
// @Tags registrations
// @Produce json
// @Param orderID path int true "Order ID"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Registration}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /orders/{orderID}/registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	order, ok := c.loadOrder(w, r)
	if !ok {
		return
	}

	regs, err := c.Service.OrderRegistrations(r.Context(), order)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// Generate godoc
// @Summary Generate registrations for an order
// @Description Creates a registration for every order item that resolves to an event and has none yet. Idempotent.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param orderID path int true "Order ID"
// @Success 201 {object} helpers.APIResponse{data=[]domain.Registration}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable; event has zero or multiple registration types"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /orders/{orderID}/registrations [post]
func (c *RegistrationController) Generate(w http.ResponseWriter, r *http.Request) {
	order, ok := c.loadOrder(w, r)
	if !ok {
		return
	}

	if err := c.Service.GenerateOrderRegistrations(r.Context(), order); err != nil {
		var confErr *domain.ConfigurationError
		if errors.As(err, &confErr) {
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessable, confErr.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	if c.Notifications != nil {
		if err := c.Notifications.SendRegistrationSummary(r.Context(), order); err != nil {
			// The registrations exist; a failed notification is not a request failure.
			c.Logger.WarnContext(r.Context(), "registration summary notification failed", "order", order.ID, "err", err)
		}
	}

	regs, err := c.Service.OrderRegistrations(r.Context(), order)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, regs)
}

// exportHeader is the column order of the CSV export.
var exportHeader = []string{
	"order_id", "order_date", "conference_id", "conference_name",
	"registration_id", "registration_type", "order_item_id",
	"product_variation_id", "product_variation_title", "product_variation_type",
	"product_variation_type_title", "registrant_company", "registrant_id",
	"registrant_identity_id", "registrant_identity_type", "registrant_label",
}

// Export godoc
// @Summary Export registration data for an order
// @Description Returns one flat record per registrant, keyed by registrant id. Use format=csv for a CSV download.
// @Tags registrations
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param orderID path int true "Order ID"
// @Param format query string false "Response format" Enums(json, csv)
// @Success 200 {object} helpers.APIResponse{data=map[string]domain.ExportRow}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /orders/{orderID}/registrations/export [get]
func (c *RegistrationController) Export(w http.ResponseWriter, r *http.Request) {
	order, ok := c.loadOrder(w, r)
	if !ok {
		return
	}

	regs, err := c.Service.OrderRegistrations(r.Context(), order)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	data, err := c.Service.ExportRegistrationData(r.Context(), regs)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		c.writeCSV(w, order, data)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, data)
}

func (c *RegistrationController) writeCSV(w http.ResponseWriter, order *domain.Order, data map[int64]*domain.ExportRow) {
	ids := make([]int64, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("registrations-%s.csv", order.OrderNumber)))
	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for _, id := range ids {
		row := data[id]
		_ = cw.Write([]string{
			row.OrderID,
			row.OrderDate.Format("2006-01-02 15:04:05"),
			strconv.FormatInt(row.ConferenceID, 10),
			row.ConferenceName,
			strconv.FormatInt(row.RegistrationID, 10),
			row.RegistrationType,
			strconv.FormatInt(row.OrderItemID, 10),
			strconv.FormatInt(row.ProductVariationID, 10),
			row.ProductVariationTitle,
			row.ProductVariationType,
			row.ProductVariationTypeTitle,
			row.RegistrantCompany,
			strconv.FormatInt(row.RegistrantID, 10),
			strconv.FormatInt(row.RegistrantIdentityID, 10),
			row.RegistrantIdentityType,
			row.RegistrantLabel,
		})
	}
	cw.Flush()
}
