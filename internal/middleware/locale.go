package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"tawsila/internal/i18n"
	"tawsila/internal/models"
)

const CtxLang = "lang"

// PreferenceSource resolves a user's persisted display preferences.
type PreferenceSource interface {
	Get(ctx context.Context, userID string) (models.Preference, error)
}

// Locale picks the request language: an explicit ?lang= query wins, then the
// X-Locale header, then the authenticated user's stored preference, then the
// configured default. The choice is echoed in Content-Language plus a text
// direction header so clients can flip to RTL for Arabic.
func Locale(prefs PreferenceSource, fallback string) gin.HandlerFunc {
	defaultLang := i18n.Parse(fallback)

	return func(c *gin.Context) {
		lang := defaultLang

		switch {
		case c.Query("lang") != "":
			lang = i18n.Parse(c.Query("lang"))
		case c.GetHeader("X-Locale") != "":
			lang = i18n.Parse(c.GetHeader("X-Locale"))
		default:
			if user, ok := CurrentUser(c); ok && prefs != nil {
				if pref, err := prefs.Get(c.Request.Context(), user.ID); err == nil {
					lang = i18n.Parse(pref.Language)
				}
			}
		}

		c.Set(CtxLang, lang)
		c.Writer.Header().Set("Content-Language", string(lang))
		c.Writer.Header().Set("X-Text-Direction", string(lang.Direction()))

		c.Next()
	}
}

// Lang returns the language chosen for this request.
func Lang(c *gin.Context) i18n.Language {
	if v, exists := c.Get(CtxLang); exists {
		if lang, ok := v.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.DefaultLang
}
