package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawsila/internal/ids"
	"tawsila/internal/models"
	"tawsila/internal/repository"
)

func message(values map[string]interface{}) redis.XMessage {
	return redis.XMessage{ID: "1-0", Values: values}
}

func TestSessionCleanupSweepsExpired(t *testing.T) {
	ctx := context.Background()
	sessions := repository.NewMemorySessionStore()

	expired := models.Session{ID: ids.New(), UserID: "u1", DeviceID: "d1", ExpiresAt: time.Now().Add(-time.Hour)}
	live := models.Session{ID: ids.New(), UserID: "u2", DeviceID: "d2", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Create(ctx, expired))
	require.NoError(t, sessions.Create(ctx, live))

	p := NewProcessor(sessions, repository.NewMemoryUserStore(), zerolog.Nop())
	require.NoError(t, p.Handle(ctx, message(map[string]interface{}{"type": "session_cleanup"})))

	_, err := sessions.GetByID(ctx, expired.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = sessions.GetByID(ctx, live.ID)
	assert.NoError(t, err)
}

func TestTrustRefreshClampsScore(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()

	user := models.User{ID: ids.New(), Email: "u@b.dz", Roles: []models.Role{models.RoleDriver}, ActiveRole: models.RoleDriver, TrustScore: 50}
	require.NoError(t, users.Create(ctx, user))

	p := NewProcessor(repository.NewMemorySessionStore(), users, zerolog.Nop())

	require.NoError(t, p.Handle(ctx, message(map[string]interface{}{
		"type":   "trust_refresh",
		"userId": user.ID,
		"score":  "140",
	})))

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.TrustScore)

	require.NoError(t, p.Handle(ctx, message(map[string]interface{}{
		"type":   "trust_refresh",
		"userId": user.ID,
		"score":  "73",
	})))

	stored, err = users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 73, stored.TrustScore)
}

func TestTrustRefreshRejectsBadPayload(t *testing.T) {
	ctx := context.Background()
	p := NewProcessor(repository.NewMemorySessionStore(), repository.NewMemoryUserStore(), zerolog.Nop())

	err := p.Handle(ctx, message(map[string]interface{}{"type": "trust_refresh", "score": "50"}))
	assert.Error(t, err, "missing userId")

	err = p.Handle(ctx, message(map[string]interface{}{"type": "trust_refresh", "userId": "u1", "score": "high"}))
	assert.Error(t, err, "non-numeric score")
}

func TestUnknownTaskTypeIsDropped(t *testing.T) {
	p := NewProcessor(repository.NewMemorySessionStore(), repository.NewMemoryUserStore(), zerolog.Nop())
	assert.NoError(t, p.Handle(context.Background(), message(map[string]interface{}{"type": "mystery"})))
}
