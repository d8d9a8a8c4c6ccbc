package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/utils"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user, hashing the password and provisioning the
// ticket secret. The secret is generated exactly once, here.
func (r *UserRepository) Create(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	secretKey, err := utils.GenerateSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to provision user secret: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	now := time.Now()
	query := `
		INSERT INTO users (name, email, password_hash, role, active, secret_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, req.Name, req.Email, passwordHash, role, secretKey, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	return &models.User{
		ID:        int(id),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Active:    true,
		SecretKey: secretKey,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UserByID retrieves a user by ID
func (r *UserRepository) UserByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, active, secret_key, created_at, updated_at
		FROM users
		WHERE id = ?`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.SecretKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to get user: %v", models.ErrUpstreamUnavailable, err)
	}
	return user, nil
}

// UserByEmail retrieves a user by email
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, active, secret_key, created_at, updated_at
		FROM users
		WHERE email = ?`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.SecretKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: failed to get user: %v", models.ErrUpstreamUnavailable, err)
	}
	return user, nil
}
