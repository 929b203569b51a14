package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is how long a password-reset link stays valid.
const ResetTokenTTL = 10 * time.Minute

// newResetToken returns a 192-bit random token, hex encoded. The token is
// bearer-equivalent: whoever holds it can set a new password.
func newResetToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
