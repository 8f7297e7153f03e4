package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"tawsila/internal/config"
	"tawsila/internal/handlers"
	"tawsila/internal/promo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer() *HTTPServer {
	cfg := &config.AppConfig{
		Environment: "test",
		Locale:      config.LocaleConfig{Default: "fr"},
		Security:    config.SecurityConfig{JWTAccessSecret: "test-secret"},
	}
	handlerSet := handlers.NewHandlerSet(zerolog.Nop(), nil, nil, nil, cfg, nil, promo.NewNightFlag(nil))
	return NewHTTPServer(cfg, zerolog.Nop(), handlerSet)
}

func TestMetricsServedAtRoot(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Not mounted under the API prefix.
	rec = httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesAnswer401Anonymously(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
