package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenCarriesRoleSet(t *testing.T) {
	signed, err := GenerateAccessToken(testSecret, "u1", "s1", "d1",
		[]string{"buyer", "driver"}, "driver", time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Equal(t, "d1", claims.DeviceID)
	assert.Equal(t, []string{"buyer", "driver"}, claims.Roles)
	assert.Equal(t, "driver", claims.ActiveRole)
}

func TestParseAccessTokenRejectsBadSecret(t *testing.T) {
	signed, err := GenerateAccessToken(testSecret, "u1", "s1", "d1", []string{"buyer"}, "buyer", time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	signed, err := GenerateAccessToken(testSecret, "u1", "s1", "d1", []string{"buyer"}, "buyer", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, testSecret)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("anything", []byte("not-a-hash"))
	assert.Error(t, err)
}
