package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/exp/rand"
)

// AdminToken derives the bearer value that guards admin routes from the shared
// admin password. The same password always yields the same token: this is a
// static shared-secret capability, not a session credential.
func AdminToken(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// RandomHex returns n random bytes encoded as hex.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)

	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", b), nil
}
