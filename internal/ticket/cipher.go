package ticket

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"cart-ticketing-service/internal/models"
)

// Cipher encrypts and decrypts ticket payloads with AES-256-GCM. It holds
// no key material; keys are derived per call and live only on the caller's
// stack. Construct one explicitly and pass it where needed; there is no
// package-level instance.
type Cipher struct{}

// NewCipher creates a new ticket payload cipher.
func NewCipher() *Cipher {
	return &Cipher{}
}

// Encrypt seals plaintext under key and returns a self-contained blob:
// base64(nonce || ciphertext). A fresh random nonce is drawn on every call,
// so encrypting the same payload twice never yields the same blob. The
// base64 form is what goes into the QR symbol, keeping the raw bytes
// transport-safe.
func (c *Cipher) Encrypt(key []byte, plaintext string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Every failure mode, whether an
// undecodable transport encoding, a truncated blob, a wrong key or a failed
// authentication, returns models.ErrInvalidTicket; no partial plaintext is
// ever returned and the caller cannot tell the cases apart.
func (c *Cipher) Decrypt(key []byte, blob string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", models.ErrInvalidTicket
	}
	if len(sealed) < gcm.NonceSize() {
		return "", models.ErrInvalidTicket
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", models.ErrInvalidTicket
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size %d, want %d", len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
