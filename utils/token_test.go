package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafehopper/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	token, err := GenerateToken("u1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.Load()

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateUUIDUnique(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
