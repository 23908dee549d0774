package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is the validity window for a password reset token.
const ResetTokenTTL = 10 * time.Minute

// GenerateResetToken returns a random raw reset token together with the
// sha256 digest that gets persisted. Only the digest is ever stored, so a
// database read cannot be replayed as a valid reset link.
func GenerateResetToken() (raw string, digest string, err error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken computes the stored digest for a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
