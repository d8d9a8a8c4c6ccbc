package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/monitoring"
	"cart-ticketing-service/internal/ticket"
)

// TicketService issues and validates QR ticket images for cart lines. A
// ticket's authenticity is proven purely by successful decryption under the
// key re-derived from the claimed (user, order) pair; no ticket database is
// consulted at validation time.
type TicketService struct {
	users    UserSource
	orders   OrderSource
	products ProductSource
	cart     CartRepository
	cipher   *ticket.Cipher
	codec    *ticket.Codec
	locker   OrderLocker
}

// NewTicketService creates a new ticket service. The cipher and codec are
// constructed by the composition root and passed in; the service holds no
// global crypto state.
func NewTicketService(
	users UserSource,
	orders OrderSource,
	products ProductSource,
	cart CartRepository,
	cipher *ticket.Cipher,
	codec *ticket.Codec,
	locker OrderLocker,
) *TicketService {
	return &TicketService{
		users:    users,
		orders:   orders,
		products: products,
		cart:     cart,
		cipher:   cipher,
		codec:    codec,
		locker:   locker,
	}
}

// RedeemResult is returned on successful redemption. RedeemedBy is the
// display name of the user the ticket was issued for; Payload is the full
// decrypted claim string.
type RedeemResult struct {
	RedeemedBy string `json:"redeemedBy"`
	Payload    string `json:"payload"`
}

// IssueTickets builds one ticket per cart line of the order and stores its
// QR raster on the line, overwriting any prior ticket. It returns the number
// of tickets written. A line whose product cannot be resolved is skipped and
// reported in the log; sibling lines are independent and no atomicity is
// implied across the set.
func (s *TicketService) IssueTickets(ctx context.Context, userID, orderID int) (int, error) {
	user, key, err := s.resolveKey(ctx, userID, orderID)
	if err != nil {
		return 0, err
	}

	if s.locker != nil {
		release, err := s.locker.Lock(ctx, orderID)
		if err != nil {
			// Best effort: re-issuance is idempotent by overwrite, so a
			// failed lock degrades to the unguarded behavior.
			log.Printf("issuance lock for order %d unavailable: %v", orderID, err)
		} else {
			defer release()
		}
	}

	items, err := s.cart.ItemsByOrder(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to list cart items for order %d: %w", orderID, err)
	}

	issued := 0
	for _, item := range items {
		product, err := s.products.ProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				log.Printf("skipping cart item %d: product %d not found", item.ID, item.ProductID)
				continue
			}
			return issued, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, err)
		}

		payload := buildPayload(user.Name, product.Name, orderID, item.ID)

		blob, err := s.cipher.Encrypt(key, payload)
		if err != nil {
			return issued, fmt.Errorf("failed to encrypt ticket for cart item %d: %w", item.ID, err)
		}

		raster, err := s.codec.Encode(blob)
		if err != nil {
			return issued, fmt.Errorf("failed to encode ticket for cart item %d: %w", item.ID, err)
		}

		if err := s.cart.SaveTicketImage(ctx, item.ID, raster); err != nil {
			return issued, fmt.Errorf("failed to save ticket for cart item %d: %w", item.ID, err)
		}
		issued++
	}

	monitoring.RecordTicketsIssued(issued)
	return issued, nil
}

// TicketImage returns the stored raster bytes for a cart line. No
// cryptography is involved.
func (s *TicketService) TicketImage(ctx context.Context, cartItemID int) ([]byte, error) {
	return s.cart.TicketImage(ctx, cartItemID)
}

// DecodeImage recovers the opaque ciphertext text from a submitted raster.
// This is the pure codec step: a ticket can be scanned and staged before
// the redeemer's identity claims are known.
func (s *TicketService) DecodeImage(raster []byte) (string, error) {
	return s.codec.Decode(raster)
}

// Redeem re-derives the key for the claimed (user, order) pair and decrypts
// code. Success proves the ticket was produced by someone holding both
// secrets for exactly that pair; any mismatch or corruption surfaces as
// models.ErrInvalidTicket.
func (s *TicketService) Redeem(ctx context.Context, userID, orderID int, code string) (*RedeemResult, error) {
	_, key, err := s.resolveKey(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	payload, err := s.cipher.Decrypt(key, code)
	if err != nil {
		monitoring.RecordRedemption("rejected")
		return nil, err
	}

	monitoring.RecordRedemption("redeemed")
	return &RedeemResult{
		RedeemedBy: payloadDisplayName(payload),
		Payload:    payload,
	}, nil
}

// resolveKey loads both principals and derives the symmetric key. Absence
// and missing provisioning both surface as the principal's not-found error;
// the distinction from crypto failures matters to callers (see Redeem).
func (s *TicketService) resolveKey(ctx context.Context, userID, orderID int) (*models.User, []byte, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	userSecret, err := user.SecretBytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: user %d", models.ErrUserNotFound, userID)
	}

	order, err := s.orders.OrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	orderSecret, err := order.SecretBytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: order %d", models.ErrOrderNotFound, orderID)
	}

	key, err := ticket.DeriveKey(userSecret, orderSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return user, key, nil
}

// buildPayload assembles the plaintext claim string carried by a ticket.
// The display name comes first so redemption output can lead with it.
func buildPayload(displayName, productName string, orderID, cartItemID int) string {
	return fmt.Sprintf("%s|%s|%d|%d", displayName, productName, orderID, cartItemID)
}

func payloadDisplayName(payload string) string {
	if i := strings.IndexByte(payload, '|'); i >= 0 {
		return payload[:i]
	}
	return payload
}
