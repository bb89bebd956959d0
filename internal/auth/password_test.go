package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dangerclosesec/passport/internal/auth"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	hash, err := hasher.Hash("correct horse battery")
	assert.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := hasher.Verify("correct horse battery", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong password", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	first, err := hasher.Hash("same input")
	assert.NoError(t, err)
	second, err := hasher.Hash("same input")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	_, err := hasher.Verify("password", "not-a-hash")
	assert.Error(t, err)

	_, err = hasher.Verify("password", "$argon2id$v=19$m=bad$salt$hash")
	assert.Error(t, err)
}
