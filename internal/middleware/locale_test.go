package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tawsila/internal/i18n"
)

func localeEngine() *gin.Engine {
	engine := gin.New()
	engine.GET("/banner", Locale(nil, "fr"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"lang": Lang(c)})
	})
	return engine
}

func getLocale(t *testing.T, target string, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set("X-Locale", header)
	}
	rec := httptest.NewRecorder()
	localeEngine().ServeHTTP(rec, req)
	return rec
}

func TestLocaleQueryOverridesHeader(t *testing.T) {
	rec := getLocale(t, "/banner?lang=ar", "fr")
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
	assert.Equal(t, string(i18n.DirectionRTL), rec.Header().Get("X-Text-Direction"))
}

func TestLocaleHeaderApplies(t *testing.T) {
	rec := getLocale(t, "/banner", "ar")
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
}

func TestLocaleFallsBackOnUnknownValue(t *testing.T) {
	rec := getLocale(t, "/banner?lang=de", "")
	assert.Equal(t, "fr", rec.Header().Get("Content-Language"))
	assert.Equal(t, string(i18n.DirectionLTR), rec.Header().Get("X-Text-Direction"))
}
