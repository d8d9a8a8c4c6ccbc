package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cart-ticketing-service/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Absent principals are
// 404, rejected or unreadable tickets are 422, collaborator outages are 502
// and malformed requests are 400; anything else is an internal error.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCartItemNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, models.ErrInvalidTicket),
		errors.Is(err, models.ErrUnreadableImage):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, models.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
		message = err.Error()
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		log.Printf("Unhandled error: %v", err)
	}

	writeJSON(w, status, map[string]string{"error": message})
}
