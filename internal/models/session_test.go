package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The redis mirror stores sessions as JSON; a rehydrated session must be
// equivalent to the original, timestamps included.
func TestSessionJSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	original := Session{
		ID:               "sess-1",
		UserID:           "user-1",
		DeviceID:         "device-1",
		DeviceName:       "Pixel 8",
		RefreshTokenHash: []byte{0x01, 0x02, 0x03},
		IPAddress:        "41.111.0.7",
		UserAgent:        "tawsila-android/2.4",
		CreatedAt:        created,
		LastSeenAt:       created.Add(5 * time.Minute),
		ExpiresAt:        created.Add(720 * time.Hour),
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.RefreshTokenHash, restored.RefreshTokenHash)
	assert.True(t, original.CreatedAt.Equal(restored.CreatedAt))
	assert.True(t, original.LastSeenAt.Equal(restored.LastSeenAt))
	assert.True(t, original.ExpiresAt.Equal(restored.ExpiresAt))
}
