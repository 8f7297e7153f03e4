package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawsila/internal/config"
	"tawsila/internal/ids"
	"tawsila/internal/models"
	"tawsila/internal/repository"
	"tawsila/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type guardFixture struct {
	cfg      *config.AppConfig
	users    *repository.MemoryUserStore
	sessions *repository.MemorySessionStore
	engine   *gin.Engine
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	f := &guardFixture{
		cfg: &config.AppConfig{
			Security: config.SecurityConfig{
				JWTAccessSecret: "test-secret",
				JWTAccessTTL:    15 * time.Minute,
				JWTRefreshTTL:   720 * time.Hour,
			},
		},
		users:    repository.NewMemoryUserStore(),
		sessions: repository.NewMemorySessionStore(),
	}

	engine := gin.New()
	guarded := engine.Group("/api/v1", Auth(f.cfg, f.users, f.sessions, nil))
	guarded.GET("/profile", func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	guarded.GET("/seller/listings", RequireAnyRole(models.RoleSeller), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	f.engine = engine
	return f
}

// signIn seeds an account with the given roles and returns a bearer token
// bound to a live session.
func (f *guardFixture) signIn(t *testing.T, roles ...models.Role) (models.User, string) {
	t.Helper()
	ctx := context.Background()

	user := models.User{
		ID:         ids.New(),
		Email:      "u@b.dz",
		Roles:      roles,
		ActiveRole: roles[0],
		Status:     models.UserStatusActive,
	}
	require.NoError(t, f.users.Create(ctx, user))

	session := models.Session{
		ID:        ids.New(),
		UserID:    user.ID,
		DeviceID:  ids.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, f.sessions.Create(ctx, session))

	roleStrs := make([]string, 0, len(roles))
	for _, r := range roles {
		roleStrs = append(roleStrs, string(r))
	}
	token, err := security.GenerateAccessToken(
		f.cfg.Security.JWTAccessSecret,
		user.ID, session.ID, session.DeviceID,
		roleStrs, string(user.ActiveRole),
		f.cfg.Security.JWTAccessTTL,
	)
	require.NoError(t, err)
	return user, token
}

func (f *guardFixture) request(token string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestGuardAnonymousGets401WithNextPath(t *testing.T) {
	f := newGuardFixture(t)

	rec := f.request("", "/api/v1/seller/listings")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
	assert.Equal(t, LoginPath, body["login"])
	assert.Equal(t, "/api/v1/seller/listings", body["next"], "the attempted path survives for post-login redirect")
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	f := newGuardFixture(t)

	rec := f.request("not-a-jwt", "/api/v1/profile")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardAuthenticatedWithoutRoleGets403Not401(t *testing.T) {
	f := newGuardFixture(t)
	_, token := f.signIn(t, models.RoleBuyer)

	rec := f.request(token, "/api/v1/seller/listings")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuardChecksFullRoleSetNotActiveRole(t *testing.T) {
	f := newGuardFixture(t)
	// Active role is buyer, but the seller role is still held.
	_, token := f.signIn(t, models.RoleBuyer, models.RoleSeller)

	rec := f.request(token, "/api/v1/seller/listings")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardAllowsValidSession(t *testing.T) {
	f := newGuardFixture(t)
	user, token := f.signIn(t, models.RoleSeller)

	rec := f.request(token, "/api/v1/profile")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["id"])
}

func TestGuardRejectsSuspendedUser(t *testing.T) {
	f := newGuardFixture(t)
	user, token := f.signIn(t, models.RoleBuyer)

	user.Status = models.UserStatusSuspended
	require.NoError(t, f.users.Update(context.Background(), user))

	rec := f.request(token, "/api/v1/profile")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuardRejectsTokenAfterSessionDeleted(t *testing.T) {
	f := newGuardFixture(t)
	user, token := f.signIn(t, models.RoleBuyer)

	sessions, err := f.sessions.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NoError(t, f.sessions.DeleteByID(context.Background(), sessions[0].ID))

	rec := f.request(token, "/api/v1/profile")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	f := newGuardFixture(t)

	engine := gin.New()
	engine.GET("/open", OptionalAuth(f.cfg, f.users, f.sessions, nil), func(c *gin.Context) {
		_, authed := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated": false}`, rec.Body.String())

	_, token := f.signIn(t, models.RoleBuyer)
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"authenticated": true}`, rec.Body.String())
}
