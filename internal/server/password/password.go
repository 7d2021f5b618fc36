// Package password models a write-only credential: a Hash can be set from a
// plaintext password and checked against one, but the plaintext can never be
// read back. Reading is structurally impossible, not runtime-guarded.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when an empty plaintext is hashed.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash holds a salted bcrypt digest. The zero value verifies nothing.
type Hash struct {
	digest []byte
}

// New hashes plaintext with the given bcrypt cost and returns the Hash.
func New(plaintext string, cost int) (Hash, error) {
	var h Hash
	if err := h.Set(plaintext, cost); err != nil {
		return Hash{}, err
	}
	return h, nil
}

// FromDigest wraps an already-computed bcrypt digest, e.g. one loaded from
// the users table.
func FromDigest(digest []byte) Hash {
	return Hash{digest: digest}
}

// Set replaces the stored digest with a fresh salted hash of plaintext.
func (h *Hash) Set(plaintext string, cost int) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return err
	}
	h.digest = digest
	return nil
}

// Verify reports whether plaintext matches the stored digest. bcrypt's
// comparison is constant-time over the derived key.
func (h Hash) Verify(plaintext string) bool {
	if len(h.digest) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(h.digest, []byte(plaintext)) == nil
}

// Digest returns the bcrypt digest for persistence. The digest is one-way;
// exposing it does not expose the password.
func (h Hash) Digest() []byte {
	return h.digest
}

// String keeps the digest out of logs and %v formatting.
func (h Hash) String() string {
	return "[redacted]"
}

// MarshalJSON always emits null so a Hash can never leak through an API
// response struct.
func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
