package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("supersecret1")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", hash)

	assert.True(t, CheckPassword(hash, "supersecret1"))
	assert.False(t, CheckPassword(hash, "wrongpassword"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "supersecret1"))
	assert.False(t, CheckPassword("", "supersecret1"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("supersecret1")
	require.NoError(t, err)
	h2, err := HashPassword("supersecret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
