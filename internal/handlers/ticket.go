package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/services"
)

// maxUploadSize bounds decode uploads. QR rasters are small; anything
// bigger is not a ticket.
const maxUploadSize = 5 << 20

// TicketHandler exposes ticket issuance, retrieval, decoding and redemption.
type TicketHandler struct {
	tickets services.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(tickets services.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Issue handles POST /api/cart/qrcode/{userId}/{orderId}. It writes one
// ticket raster per cart line of the order and reports how many were issued.
func (h *TicketHandler) Issue(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	orderID, err := pathInt(r, "orderId")
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := h.tickets.IssueTickets(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Image handles GET /api/cart/items/{cartItemId}/qrcode and streams the
// stored raster as a PNG.
func (h *TicketHandler) Image(w http.ResponseWriter, r *http.Request) {
	cartItemID, err := pathInt(r, "cartItemId")
	if err != nil {
		writeError(w, err)
		return
	}

	raster, err := h.tickets.TicketImage(r.Context(), cartItemID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(raster)
}

// Decode handles POST /api/cart/qrcode/decode. The scanned image arrives as
// the multipart field "img"; the response carries the opaque ciphertext so
// the client can stage it for redemption.
func (h *TicketHandler) Decode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, fmt.Errorf("%w: expected multipart form", models.ErrInvalidInput))
		return
	}

	file, _, err := r.FormFile("img")
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing img field", models.ErrInvalidInput))
		return
	}
	defer file.Close()

	raster, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeError(w, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	code, err := h.tickets.DecodeImage(raster)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

type redeemRequest struct {
	UserID  int    `json:"userId"`
	OrderID int    `json:"orderId"`
	Code    string `json:"code"`
}

// Redeem handles POST /api/cart/qrcode/redeem. The caller claims a (user,
// order) pair; the code is accepted only if it decrypts under that pair's key.
func (h *TicketHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed json body", models.ErrInvalidInput))
		return
	}
	if req.UserID <= 0 || req.OrderID <= 0 || req.Code == "" {
		writeError(w, fmt.Errorf("%w: userId, orderId and code are required", models.ErrInvalidInput))
		return
	}

	result, err := h.tickets.Redeem(r.Context(), req.UserID, req.OrderID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", models.ErrInvalidInput, name)
	}
	return value, nil
}
