package clients

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer is the issuer claim stamped on technical tokens.
const TokenIssuer = "cart-ticketing-service"

// TokenProvider mints the short-lived technical token the collaborator
// clients authenticate with. Tokens are cached until shortly before expiry.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	cached string
	expiry time.Time
}

// NewTokenProvider creates a technical token provider signing with secret.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TokenProvider{secret: []byte(secret), ttl: ttl}
}

// Token returns a valid technical token, minting a new one when the cached
// token is within a minute of expiring.
func (p *TokenProvider) Token() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" && time.Until(p.expiry) > time.Minute {
		return p.cached, nil
	}

	now := time.Now()
	expiry := now.Add(p.ttl)
	claims := jwt.MapClaims{
		"iss": TokenIssuer,
		"sub": "technical",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiry.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign technical token: %w", err)
	}

	p.cached = token
	p.expiry = expiry
	return token, nil
}

// VerifyToken validates a technical token signed with secret and checks the
// issuer claim. Used by the auth middleware on service-to-service routes.
func VerifyToken(secret, tokenString string) error {
	token, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("invalid technical token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid technical token")
	}
	return nil
}
