package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"shopcart/internal/model"
	"shopcart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart and cart item HTTP requests.
type CartHandler struct {
	carts  service.CartService
	items  service.CartItemService
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts service.CartService, items service.CartItemService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		items:  items,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// Create handles POST /api/carts requests, returning the user's cart and
// creating it first when the user has none.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CreateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "userId is required", h.logger)
		return
	}

	cart, err := h.carts.GetOrCreateCart(r.Context(), req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to initialise cart", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, cart)
}

// Get handles GET /api/carts/{id} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.parseCartID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, err, "failed to retrieve cart")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/carts/{id} requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.parseCartID(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(r.Context(), cartID); err != nil {
		h.writeCartError(w, err, "failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTotal handles GET /api/carts/{id}/total requests.
func (h *CartHandler) GetTotal(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.parseCartID(w, r)
	if !ok {
		return
	}

	total, err := h.carts.GetTotalPrice(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, err, "failed to retrieve cart total")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"total": total})
}

// AddItem handles POST /api/carts/{id}/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.parseCartID(w, r)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	if err := h.items.AddItemToCart(r.Context(), cartID, req.ProductID, req.Quantity); err != nil {
		h.writeCartError(w, err, "failed to add item to cart")
		return
	}

	h.respondWithCart(w, r, cartID)
}

// UpdateItem handles PUT /api/carts/{id}/items requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.parseCartID(w, r)
	if !ok {
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}

	if err := h.items.UpdateItemQuantity(r.Context(), cartID, req.ProductID, req.Quantity); err != nil {
		h.writeCartError(w, err, "failed to update cart item")
		return
	}

	h.respondWithCart(w, r, cartID)
}

// RemoveItem handles DELETE /api/carts/{id}/items/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, productID, ok := h.parseCartItemPath(w, r)
	if !ok {
		return
	}

	if err := h.items.RemoveItemFromCart(r.Context(), cartID, productID); err != nil {
		h.writeCartError(w, err, "failed to remove item from cart")
		return
	}

	h.respondWithCart(w, r, cartID)
}

// GetItem handles GET /api/carts/{id}/items/{productId} requests.
func (h *CartHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	cartID, productID, ok := h.parseCartItemPath(w, r)
	if !ok {
		return
	}

	item, err := h.items.GetCartItem(r.Context(), cartID, productID)
	if err != nil {
		h.writeCartError(w, err, "failed to retrieve cart item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// parseCartID extracts the cart ID segment from /api/carts/{id}[/...].
func (h *CartHandler) parseCartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/carts/")
	idStr, _, _ := strings.Cut(rest, "/")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "cart ID is required", h.logger)
		return uuid.Nil, false
	}

	cartID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart ID format", h.logger)
		return uuid.Nil, false
	}

	return cartID, true
}

// parseCartItemPath extracts cart ID and product ID from
// /api/carts/{id}/items/{productId}.
func (h *CartHandler) parseCartItemPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	cartID, ok := h.parseCartID(w, r)
	if !ok {
		return uuid.Nil, "", false
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/carts/")
	_, tail, _ := strings.Cut(rest, "/items/")
	if tail == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return uuid.Nil, "", false
	}

	return cartID, tail, true
}

// respondWithCart re-reads the cart after a mutation so the caller sees the
// updated item set and total.
func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, cartID uuid.UUID) {
	cart, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, err, "failed to retrieve cart")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// writeCartError maps domain errors to HTTP statuses.
func (h *CartHandler) writeCartError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case model.ErrCartNotFound:
		writeError(w, http.StatusNotFound, "cart not found", h.logger)
	case model.ErrCartItemNotFound:
		writeError(w, http.StatusNotFound, "cart item not found", h.logger)
	case model.ErrProductNotFound:
		writeError(w, http.StatusNotFound, "product not found", h.logger)
	case model.ErrInvalidQuantity:
		writeError(w, http.StatusBadRequest, "quantity must be greater than zero", h.logger)
	default:
		writeError(w, http.StatusInternalServerError, fallback, h.logger)
	}
}
