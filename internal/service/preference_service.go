package service

import (
	"context"
	"errors"
	"time"

	"tawsila/internal/i18n"
	"tawsila/internal/models"
	"tawsila/internal/promo"
	"tawsila/internal/repository"
)

var (
	ErrLanguageInvalid = errors.New("unsupported language")
	ErrThemeInvalid    = errors.New("unsupported theme")
)

type PreferenceService struct {
	prefs PreferenceStore
	now   func() time.Time
}

func NewPreferenceService(prefs PreferenceStore, now func() time.Time) *PreferenceService {
	if now == nil {
		now = time.Now
	}
	return &PreferenceService{prefs: prefs, now: now}
}

// Get returns the user's display preferences, materializing defaults on
// first read: default language, and a theme chosen once by the clock (dark
// inside the night window). The default is persisted immediately so the
// theme never flips on its own afterwards.
func (s *PreferenceService) Get(ctx context.Context, userID string) (models.Preference, error) {
	pref, err := s.prefs.Get(ctx, userID)
	if err == nil {
		return pref, nil
	}
	if !errors.Is(err, repository.ErrPreferenceNotFound) {
		return models.Preference{}, err
	}

	pref = models.Preference{
		UserID:   userID,
		Language: string(i18n.DefaultLang),
		Theme:    promo.DefaultTheme(s.now()),
	}
	if err := s.prefs.Save(ctx, pref); err != nil {
		return models.Preference{}, err
	}
	return pref, nil
}

type PreferenceUpdate struct {
	Language *string
	Theme    *string
}

// Update persists changed fields. Unknown enum values are rejected before
// anything is written.
func (s *PreferenceService) Update(ctx context.Context, userID string, update PreferenceUpdate) (models.Preference, error) {
	pref, err := s.Get(ctx, userID)
	if err != nil {
		return models.Preference{}, err
	}

	if update.Language != nil {
		if !i18n.IsValid(*update.Language) {
			return models.Preference{}, ErrLanguageInvalid
		}
		pref.Language = *update.Language
	}
	if update.Theme != nil {
		theme, err := models.ParseTheme(*update.Theme)
		if err != nil {
			return models.Preference{}, ErrThemeInvalid
		}
		pref.Theme = theme
	}

	if err := s.prefs.Save(ctx, pref); err != nil {
		return models.Preference{}, err
	}
	return pref, nil
}
