package utils

import (
	"crypto/rand"
	"encoding/base64"
	mrand "math/rand"
	"time"

	"github.com/google/uuid"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *mrand.Rand = mrand.New(mrand.NewSource(time.Now().UnixNano()))

// GenerateShortID generates a random identifier of fixed length
func GenerateShortID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GenerateNonce returns a fresh base64 value for CSP script allow-listing.
// Nonces must come from crypto/rand; a predictable nonce defeats the policy.
func GenerateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// NewVisitorID generates a UUID string for the anonymous-visitor cookie
func NewVisitorID() string {
	return uuid.NewString()
}
