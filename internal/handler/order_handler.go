package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shopcart/internal/model"
	"shopcart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/orders requests.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "userId is required", h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req.UserID)
	if err != nil {
		switch err {
		case model.ErrCartNotFound:
			writeError(w, http.StatusNotFound, "cart not found", h.logger)
		case model.ErrEmptyCart:
			writeError(w, http.StatusBadRequest, "cannot place an order for an empty cart", h.logger)
		case model.ErrProductNotFound:
			writeError(w, http.StatusBadRequest, "one or more products not found", h.logger)
		case model.ErrInsufficientInventory:
			writeError(w, http.StatusConflict, "not enough inventory to fulfil the order", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to place order", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/orders/{id}
	orderIDStr := r.URL.Path[len("/api/orders/"):]
	if orderIDStr == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if err == model.ErrOrderNotFound {
			writeError(w, http.StatusNotFound, "order not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// GetByUser handles GET /api/orders?userId=N requests.
func (h *OrderHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	userIDStr := r.URL.Query().Get("userId")
	if userIDStr == "" {
		writeError(w, http.StatusBadRequest, "userId query parameter is required", h.logger)
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid userId", h.logger)
		return
	}

	orders, err := h.service.GetUserOrders(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve orders", h.logger)
		return
	}

	if orders == nil {
		orders = []model.OrderSummary{}
	}

	writeJSON(w, http.StatusOK, orders)
}
