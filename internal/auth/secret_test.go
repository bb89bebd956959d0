package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dangerclosesec/passport/internal/auth"
)

func TestNewBuid(t *testing.T) {
	buid := auth.NewBuid()
	assert.Len(t, buid, 22)
	assert.NotContains(t, buid, "+")
	assert.NotContains(t, buid, "/")
	assert.NotContains(t, buid, "=")
	assert.NotEqual(t, buid, auth.NewBuid())
}

func TestNewSecret(t *testing.T) {
	secret := auth.NewSecret()
	assert.NotEmpty(t, secret)
	assert.NotEqual(t, secret, auth.NewSecret())
	assert.False(t, strings.ContainsAny(secret, "+/="))
}

func TestNewPin(t *testing.T) {
	seen := make(map[rune]bool)
	for i := 0; i < 200; i++ {
		pin := auth.NewPin()
		assert.Len(t, pin, auth.PinLength)
		for _, r := range pin {
			assert.True(t, r >= '0' && r <= '9')
			seen[r] = true
		}
	}
	// 800 uniform draws miss a given digit with probability ~3e-37.
	assert.Len(t, seen, 10)
}
