package ticket

import (
	"crypto/sha256"
	"errors"
)

// KeySize is the derived key length in bytes (AES-256).
const KeySize = 32

// ErrEmptySecret is returned when either principal secret is empty. Callers
// are expected to have resolved both principals before deriving; an empty
// secret here is an invalid input, not a lookup failure.
var ErrEmptySecret = errors.New("secret must not be empty")

// DeriveKey combines a user secret and an order secret into a single
// AES-256 key. The concatenation order is fixed (user secret first, then
// order secret) and must never change: keys are never stored, so
// re-derivation from the same pair is the only way to obtain the same key
// again. Hashing rather than concatenating directly normalizes secrets of
// any length to the cipher's key size without leaking their lengths.
func DeriveKey(userSecret, orderSecret []byte) ([]byte, error) {
	if len(userSecret) == 0 || len(orderSecret) == 0 {
		return nil, ErrEmptySecret
	}

	h := sha256.New()
	h.Write(userSecret)
	h.Write(orderSecret)
	return h.Sum(nil), nil
}
