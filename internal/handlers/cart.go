package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/services"
)

// CartHandler exposes cart line CRUD.
type CartHandler struct {
	cart services.CartServiceInterface
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart services.CartServiceInterface) *CartHandler {
	return &CartHandler{cart: cart}
}

// AddItems handles POST /api/cart/items. The body is a JSON array of lines
// to add; all lines must belong to the same user. Responds with the order
// the lines were attached to.
func (h *CartHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var reqs []*models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, fmt.Errorf("%w: malformed json body", models.ErrInvalidInput))
		return
	}

	order, err := h.cart.AddToCart(r.Context(), reqs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Items handles GET /api/cart/{userId} and lists the user's cart lines.
func (h *CartHandler) Items(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.cart.ItemsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// RemoveItem handles DELETE /api/cart/items/{cartItemId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartItemID, err := pathInt(r, "cartItemId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cart.RemoveItem(r.Context(), cartItemID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
