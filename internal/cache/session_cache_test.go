package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSessionRejectsCorruptEntries(t *testing.T) {
	_, err := decodeSession([]byte("{not json"))
	assert.Error(t, err)

	_, err = decodeSession([]byte(`{"deviceId":"d1"}`))
	assert.Error(t, err, "entries missing identity are treated as corrupt")

	session, err := decodeSession([]byte(`{"id":"s1","userId":"u1","deviceId":"d1"}`))
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, "u1", session.UserID)
}
