package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dangerclosesec/passport/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("userbuid", "sessionbuid")
	assert.NoError(t, err)

	claims, err := tm.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "userbuid", claims.UserID)
	assert.Equal(t, "sessionbuid", claims.SessionID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a", time.Hour).Generate("userbuid", "sessionbuid")
	assert.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate("userbuid", "sessionbuid")
	assert.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	_, err := tm.Validate("not.a.jwt")
	assert.Error(t, err)
}
