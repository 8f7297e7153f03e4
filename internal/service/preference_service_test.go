package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawsila/internal/models"
	"tawsila/internal/repository"
)

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, hour, 30, 0, 0, time.UTC)
	}
}

func TestGetMaterializesDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("daytime first read defaults to light", func(t *testing.T) {
		prefs := repository.NewMemoryPreferenceStore()
		svc := NewPreferenceService(prefs, fixedClock(14))

		pref, err := svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "fr", pref.Language)
		assert.Equal(t, models.ThemeLight, pref.Theme)

		// The default was persisted, so it survives the clock moving
		// into the night window.
		svc.now = fixedClock(23)
		again, err := svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.ThemeLight, again.Theme)
	})

	t.Run("night first read defaults to dark", func(t *testing.T) {
		prefs := repository.NewMemoryPreferenceStore()
		svc := NewPreferenceService(prefs, fixedClock(22))

		pref, err := svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.ThemeDark, pref.Theme)
	})
}

func TestUpdateLanguagePersists(t *testing.T) {
	prefs := repository.NewMemoryPreferenceStore()
	svc := NewPreferenceService(prefs, fixedClock(10))
	ctx := context.Background()

	lang := "ar"
	updated, err := svc.Update(ctx, "user-1", PreferenceUpdate{Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, "ar", updated.Language)

	pref, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ar", pref.Language, "language survives subsequent reads")
	assert.Equal(t, models.ThemeLight, pref.Theme, "theme untouched by a language-only update")
}

func TestUpdateRejectsUnknownValues(t *testing.T) {
	prefs := repository.NewMemoryPreferenceStore()
	svc := NewPreferenceService(prefs, fixedClock(10))
	ctx := context.Background()

	lang := "en"
	_, err := svc.Update(ctx, "user-1", PreferenceUpdate{Language: &lang})
	assert.ErrorIs(t, err, ErrLanguageInvalid)

	theme := "sepia"
	_, err = svc.Update(ctx, "user-1", PreferenceUpdate{Theme: &theme})
	assert.ErrorIs(t, err, ErrThemeInvalid)
}

func TestUpdateTheme(t *testing.T) {
	prefs := repository.NewMemoryPreferenceStore()
	svc := NewPreferenceService(prefs, fixedClock(10))
	ctx := context.Background()

	theme := "dark"
	updated, err := svc.Update(ctx, "user-1", PreferenceUpdate{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, updated.Theme)
}
