package middleware

import (
	"log"
	"net/http"
	"strings"

	"cart-ticketing-service/internal/clients"
)

// TechnicalAuth guards the service-to-service routes. Callers must present
// the shared technical token as a bearer credential.
type TechnicalAuth struct {
	secret string
}

// NewTechnicalAuth creates the auth middleware for internal routes.
func NewTechnicalAuth(secret string) *TechnicalAuth {
	return &TechnicalAuth{secret: secret}
}

// Require rejects requests that do not carry a valid technical token.
func (m *TechnicalAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"missing bearer token"}`))
			return
		}

		if err := clients.VerifyToken(m.secret, token); err != nil {
			log.Printf("Rejected technical token: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid bearer token"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
