// internal/auth/secret.go
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// NewBuid returns a 22-character URL-safe identifier derived from a
// random UUID. Buids are permanent handles for users, organizations,
// teams and sessions.
func NewBuid() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// NewSecret returns a high-entropy URL-safe verification secret, used
// for email verification links and password reset codes.
func NewSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(err) // This should never happen
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}

// PinLength is the number of digits in a phone verification PIN.
const PinLength = 4

// NewPin returns a short numeric PIN suited for SMS delivery. Bytes of
// 250 and above are rejected so every digit is equally likely.
func NewPin() string {
	digits := make([]byte, 0, PinLength)
	buf := make([]byte, 1)
	for len(digits) < PinLength {
		if _, err := rand.Read(buf); err != nil {
			panic(err) // This should never happen
		}
		if buf[0] >= 250 {
			continue
		}
		digits = append(digits, '0'+buf[0]%10)
	}
	return string(digits)
}
