package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	tok, err := GenerateJWT("u1", string(RoleAdmin), "realtime_service")
	require.NoError(t, err)

	claims, err := ParseJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.MemberID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "realtime_service", claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tok, err := GenerateJWT("u1", string(RoleEmployee), "realtime_service")
	require.NoError(t, err)

	old := JWTSecret
	SetSecret("another")
	defer func() { JWTSecret = old }()

	_, err = ParseJWT(tok)
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}
