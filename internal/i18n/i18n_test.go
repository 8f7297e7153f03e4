package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTFallsBackToKeyInBothLocales(t *testing.T) {
	assert.Equal(t, "nonexistent.key", T(LangFR, "nonexistent.key"))
	assert.Equal(t, "nonexistent.key", T(LangAR, "nonexistent.key"))
}

func TestTReturnsCatalogString(t *testing.T) {
	assert.NotEqual(t, T(LangFR, "auth.login.failed"), T(LangAR, "auth.login.failed"))
	assert.NotEqual(t, "auth.login.failed", T(LangFR, "auth.login.failed"))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirectionRTL, LangAR.Direction())
	assert.Equal(t, DirectionLTR, LangFR.Direction())
}

func TestParseFallsBackToDefault(t *testing.T) {
	assert.Equal(t, LangAR, Parse("ar"))
	assert.Equal(t, LangFR, Parse("fr"))
	assert.Equal(t, DefaultLang, Parse("en"))
	assert.Equal(t, DefaultLang, Parse(""))
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range catalogFR {
		_, ok := catalogAR[key]
		assert.True(t, ok, "missing ar translation for %s", key)
	}
	for key := range catalogAR {
		_, ok := catalogFR[key]
		assert.True(t, ok, "missing fr translation for %s", key)
	}
}
