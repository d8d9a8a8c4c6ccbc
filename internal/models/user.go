package models

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAgent UserRole = "agent"
	RoleAdmin UserRole = "admin"
)

// User represents a customer account. SecretKey is the user's ticket-signing
// secret: random bytes generated once at creation, stored base64-encoded,
// and used only for deriving ticket encryption keys.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	SecretKey    string    `json:"-" db:"secret_key"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Provisioned returns true if the user exists and carries a secret key.
// A user without a secret must never be used for key derivation.
func (u *User) Provisioned() bool {
	return u != nil && u.ID != 0 && u.SecretKey != ""
}

// SecretBytes decodes the stored secret key into raw bytes.
func (u *User) SecretBytes() ([]byte, error) {
	if !u.Provisioned() {
		return nil, errors.New("user has no secret key")
	}
	return base64.StdEncoding.DecodeString(u.SecretKey)
}

// UserCreateRequest represents the data needed to create a user
type UserCreateRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// Validate validates user creation data
func (req *UserCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	switch req.Role {
	case RoleUser, RoleAgent, RoleAdmin, "":
	default:
		return errors.New("invalid role")
	}
	return nil
}
