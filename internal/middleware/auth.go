package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tawsila/internal/cache"
	"tawsila/internal/config"
	"tawsila/internal/models"
	"tawsila/internal/security"
)

// LoginPath is where an unauthenticated caller is pointed. The 401 payload
// also carries the path they were trying to reach so the client can come
// back to it after logging in.
const LoginPath = "/api/v1/auth/login"

// Context keys shared with the handlers.
const (
	CtxUser   = "current_user"
	CtxClaims = "access_claims"
	CtxToken  = "access_token"
)

// UserSource and SessionSource are what the guard needs from storage. The
// Postgres repositories and the in-memory test stores both satisfy them.
type UserSource interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type SessionSource interface {
	GetByID(ctx context.Context, id string) (models.Session, error)
	Touch(ctx context.Context, sessionID string, ip string, userAgent string) error
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "unauthorized",
		"login": LoginPath,
		"next":  c.Request.URL.RequestURI(),
	})
}

// Auth is the route guard for protected routes. It resolves the bearer token
// to a live session and an active account, or answers 401 with a pointer to
// the login route. Authorization failures past this point are 403s, never
// 401s.
func Auth(cfg *config.AppConfig, users UserSource, sessions SessionSource, mirror *cache.SessionCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, tokenStr, ok := resolve(c, cfg, users, sessions, mirror)
		if !ok {
			unauthorized(c)
			return
		}

		if user.Status != models.UserStatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user_inactive"})
			return
		}

		_ = sessions.Touch(c.Request.Context(), claims.SessionID, c.ClientIP(), c.GetHeader("User-Agent"))

		c.Set(CtxToken, tokenStr)
		c.Set(CtxClaims, *claims)
		c.Set(CtxUser, user)

		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and otherwise lets the request through anonymously. Public listings use it
// to decide between full and degraded payloads.
func OptionalAuth(cfg *config.AppConfig, users UserSource, sessions SessionSource, mirror *cache.SessionCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, claims, tokenStr, ok := resolve(c, cfg, users, sessions, mirror); ok && user.Status == models.UserStatusActive {
			c.Set(CtxToken, tokenStr)
			c.Set(CtxClaims, *claims)
			c.Set(CtxUser, user)
		}
		c.Next()
	}
}

func resolve(
	c *gin.Context,
	cfg *config.AppConfig,
	users UserSource,
	sessions SessionSource,
	mirror *cache.SessionCache,
) (models.User, *security.AccessClaims, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return models.User{}, nil, "", false
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := security.ParseAccessToken(tokenStr, cfg.Security.JWTAccessSecret)
	if err != nil {
		return models.User{}, nil, "", false
	}

	ctx := c.Request.Context()
	session, err := lookupSession(ctx, sessions, mirror, claims.SessionID)
	if err != nil {
		return models.User{}, nil, "", false
	}

	if session.UserID != claims.UserID || session.DeviceID != claims.DeviceID {
		return models.User{}, nil, "", false
	}
	if session.ExpiresAt.Before(time.Now()) {
		return models.User{}, nil, "", false
	}

	user, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		return models.User{}, nil, "", false
	}

	return user, claims, tokenStr, true
}

// lookupSession consults the redis mirror first and falls back to the
// database on any miss.
func lookupSession(ctx context.Context, sessions SessionSource, mirror *cache.SessionCache, id string) (models.Session, error) {
	if mirror != nil {
		session, err := mirror.Get(ctx, id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, cache.ErrSessionCacheMiss) {
			return models.Session{}, err
		}
	}
	return sessions.GetByID(ctx, id)
}
