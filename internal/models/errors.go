package models

import "errors"

// Common errors used throughout the application. Callers branch on these
// with errors.Is rather than matching message text.
var (
	ErrUserNotFound     = errors.New("user not found or not provisioned")
	ErrOrderNotFound    = errors.New("order not found or not provisioned")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrInvalidTicket covers every decryption failure: wrong key, truncated
	// or corrupted blob, failed authentication. The cases are deliberately
	// not distinguished so the API cannot be used as a decryption oracle.
	ErrInvalidTicket = errors.New("invalid ticket")

	// ErrUnreadableImage means the codec could not recover a QR payload
	// from the submitted raster.
	ErrUnreadableImage = errors.New("unreadable ticket image")

	// ErrUpstreamUnavailable means a collaborator lookup itself failed.
	// The caller may retry; this service never retries internally.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	ErrInvalidInput = errors.New("invalid input")
)
